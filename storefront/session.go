package storefront

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"unicode/utf8"
)

const minPasswordLength = 6

// Identity is the signed-in account as the client keeps it.
type Identity struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

type View string

const (
	ViewHome      View = "/"
	ViewLogin     View = "/login"
	ViewRegister  View = "/register"
	ViewProfile   View = "/profile"
	ViewDashboard View = "/dashboard"
)

// Session holds the current identity, mirrored to SessionKey.
type Session struct {
	mu      sync.Mutex
	current *Identity
	store   Storage
	api     API
}

func NewSession(api API, store Storage) *Session {
	s := &Session{api: api, store: store}
	s.current = loadIdentity(store)
	return s
}

func loadIdentity(store Storage) *Identity {
	raw, ok := store.Get(SessionKey)
	if !ok {
		return nil
	}
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return nil
	}
	return &id
}

// Login signs in and persists the identity. Failures are *FormError with
// the server's text, or MsgInvalidCredentials when it sent none.
func (s *Session) Login(ctx context.Context, email, password string) (*Identity, error) {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, formError(err, MsgInvalidCredentials)
	}

	id := &Identity{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: bool(user.IsAdmin),
		Token:   user.Token,
	}

	s.mu.Lock()
	s.current = id
	if data, err := json.Marshal(id); err == nil {
		_ = s.store.Set(SessionKey, string(data))
	}
	s.mu.Unlock()

	cp := *id
	return &cp, nil
}

// Logout forgets the identity locally, then tells the server. The server
// call cannot make Logout fail.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	_ = s.store.Remove(SessionKey)
	s.mu.Unlock()

	if s.api != nil {
		_ = s.api.Logout(ctx)
	}
}

// Register validates the form locally and only then creates the account.
// It returns the message to show on success.
func (s *Session) Register(ctx context.Context, name, email, password, confirm string) (string, error) {
	if msg := validateRegistration(name, email, password, confirm); msg != "" {
		return "", &FormError{Message: msg, Err: ErrValidation}
	}
	if _, err := s.api.Register(ctx, name, email, password); err != nil {
		return "", formError(err, MsgRegisterFailed)
	}
	return MsgAccountCreated, nil
}

func validateRegistration(name, email, password, confirm string) string {
	switch {
	case strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "":
		return MsgMissingFields
	case utf8.RuneCountInString(password) < minPasswordLength:
		return MsgPasswordTooShort
	case password != confirm:
		return MsgPasswordMismatch
	}
	return ""
}

// Current returns a copy of the identity, or nil when signed out.
func (s *Session) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Email
}

func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.IsAdmin
}

// Resolve returns the view to show for a request to v. The dashboard needs
// an admin identity; everyone else is sent home. This only decides what to
// render. The server checks admin requests on its own.
func (s *Session) Resolve(v View) View {
	if v == ViewDashboard && !s.IsAdmin() {
		return ViewHome
	}
	return v
}
