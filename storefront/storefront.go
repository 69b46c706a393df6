// Package storefront holds the client-side shop state: the signed-in
// session, the cart and the checkout flow. Each piece persists itself
// through a Storage and talks to the server through an API.
package storefront

import (
	"context"
	"errors"

	"github.com/Fausto-Grilo/VulnWebApp/apiclient"
)

// Storage is a durable key to string map. Reads of absent keys report false.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// API is the part of the shop server the client state depends on.
type API interface {
	Login(ctx context.Context, email, password string) (*apiclient.User, error)
	Register(ctx context.Context, name, email, password string) (*apiclient.User, error)
	Logout(ctx context.Context) error
	PlaceOrder(ctx context.Context, order apiclient.OrderRequest) (*apiclient.OrderReceipt, error)
}

const (
	SessionKey = "user_v1"
	CartKey    = "cart_v1"
)

// Messages shown to the user.
const (
	MsgCartEmpty          = "Cart is empty"
	MsgSignInToContinue   = "Please sign in to continue"
	MsgLoginRequired      = "You must be logged in to checkout"
	MsgOrderRecorded      = "Order recorded. Thank you!"
	MsgCheckoutFailed     = "Checkout failed"
	MsgInvalidCredentials = "Invalid email or password"
	MsgMissingFields      = "Please fill out all required fields."
	MsgPasswordTooShort   = "Password must be at least 6 characters."
	MsgPasswordMismatch   = "Passwords do not match."
	MsgRegisterFailed     = "Registration failed"
	MsgAccountCreated     = "Account created. Redirecting to sign in..."
	NetworkErrorMessage   = "Network error. Please try again."
)

var (
	ErrCartEmpty        = errors.New("cart is empty")
	ErrSignInRequired   = errors.New("sign in required")
	ErrCheckoutInFlight = errors.New("checkout already submitting")
	ErrCheckoutClosed   = errors.New("checkout is not open")
	ErrEmailLocked      = errors.New("email is locked to the signed-in account")
	ErrValidation       = errors.New("validation failed")
)

// FormError is a failure meant to be shown to the user as-is.
type FormError struct {
	Message string
	Err     error
}

func (e *FormError) Error() string { return e.Message }

func (e *FormError) Unwrap() error { return e.Err }

// userMessage picks what to show for a failed request: the server's text
// when it sent some, fallback for an empty rejection, the network message
// otherwise.
func userMessage(err error, fallback string) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	return NetworkErrorMessage
}

func formError(err error, fallback string) *FormError {
	return &FormError{Message: userMessage(err, fallback), Err: err}
}
