package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/Fausto-Grilo/VulnWebApp/apiclient"
)

const DefaultSuccessHold = 900 * time.Millisecond

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutOpening
	CheckoutAwaitingConfirmation
	CheckoutSubmitting
	CheckoutSucceeded
	CheckoutFailed
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutOpening:
		return "opening"
	case CheckoutAwaitingConfirmation:
		return "awaiting-confirmation"
	case CheckoutSubmitting:
		return "submitting"
	case CheckoutSucceeded:
		return "succeeded"
	case CheckoutFailed:
		return "failed"
	}
	return "unknown"
}

// Checkout turns the cart into an order. At most one submission is in
// flight at a time.
type Checkout struct {
	mu      sync.Mutex
	state   CheckoutState
	email   string
	errMsg  string
	success string

	cart    *Cart
	session *Session
	notices *Notifier
	api     API

	successHold  time.Duration
	onTransition func(from, to CheckoutState)
}

func NewCheckout(api API, cart *Cart, session *Session, notices *Notifier, successHold time.Duration) *Checkout {
	if successHold < 0 {
		successHold = 0
	}
	return &Checkout{
		api:         api,
		cart:        cart,
		session:     session,
		notices:     notices,
		successHold: successHold,
	}
}

// OnTransition registers fn to observe state changes. fn runs with the
// checkout locked and must not call back into it.
func (co *Checkout) OnTransition(fn func(from, to CheckoutState)) {
	co.mu.Lock()
	co.onTransition = fn
	co.mu.Unlock()
}

func (co *Checkout) setStateLocked(to CheckoutState) {
	from := co.state
	co.state = to
	if co.onTransition != nil && from != to {
		co.onTransition(from, to)
	}
}

func (co *Checkout) notify(msg string) {
	if co.notices != nil {
		co.notices.Show(msg)
	}
}

// Open starts a checkout for the signed-in account. It is refused, leaving
// the checkout idle, when the cart is empty or nobody is signed in.
func (co *Checkout) Open() error {
	co.mu.Lock()
	switch co.state {
	case CheckoutAwaitingConfirmation:
		co.mu.Unlock()
		return nil
	case CheckoutSubmitting, CheckoutSucceeded:
		co.mu.Unlock()
		return ErrCheckoutInFlight
	}

	if co.cart.IsEmpty() {
		co.mu.Unlock()
		co.notify(MsgCartEmpty)
		return ErrCartEmpty
	}
	email := co.session.Email()
	if email == "" {
		co.errMsg = MsgSignInToContinue
		co.mu.Unlock()
		co.notify(MsgLoginRequired)
		return ErrSignInRequired
	}

	co.setStateLocked(CheckoutOpening)
	co.errMsg = ""
	co.success = ""
	co.email = email
	co.setStateLocked(CheckoutAwaitingConfirmation)
	co.mu.Unlock()
	return nil
}

// SetEmail edits the order email. It is refused while an account is signed
// in, since orders then go to the account's address.
func (co *Checkout) SetEmail(email string) error {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.state != CheckoutAwaitingConfirmation {
		return ErrCheckoutClosed
	}
	if co.session.Email() != "" {
		return ErrEmailLocked
	}
	co.email = email
	return nil
}

// Submit sends the cart as an order. On success the succeeded state is held
// for the success delay, then the cart and its stored copy are dropped and
// the checkout closes. On failure it returns to awaiting confirmation with
// the cart untouched and a *FormError describing what went wrong.
func (co *Checkout) Submit(ctx context.Context) (*apiclient.OrderReceipt, error) {
	co.mu.Lock()
	switch co.state {
	case CheckoutSubmitting, CheckoutSucceeded:
		co.mu.Unlock()
		return nil, ErrCheckoutInFlight
	case CheckoutAwaitingConfirmation:
	default:
		co.mu.Unlock()
		return nil, ErrCheckoutClosed
	}

	co.errMsg = ""
	email := co.session.Email()
	if email == "" {
		co.errMsg = MsgLoginRequired
		co.mu.Unlock()
		return nil, &FormError{Message: MsgLoginRequired, Err: ErrSignInRequired}
	}

	items := co.cart.Items()
	order := apiclient.OrderRequest{
		Email: email,
		Items: make([]apiclient.OrderItem, len(items)),
		Total: totalOf(items).InexactFloat64(),
	}
	for i, it := range items {
		order.Items[i] = apiclient.OrderItem{ID: it.ID, Name: it.Name, Price: it.Price, Qty: it.Qty}
	}
	co.setStateLocked(CheckoutSubmitting)
	co.mu.Unlock()

	receipt, err := co.api.PlaceOrder(ctx, order)

	co.mu.Lock()
	if err != nil {
		fe := formError(err, MsgCheckoutFailed)
		co.errMsg = fe.Message
		co.setStateLocked(CheckoutFailed)
		co.setStateLocked(CheckoutAwaitingConfirmation)
		co.mu.Unlock()
		return nil, fe
	}
	co.success = MsgOrderRecorded
	co.setStateLocked(CheckoutSucceeded)
	co.mu.Unlock()

	if co.successHold > 0 {
		t := time.NewTimer(co.successHold)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}

	co.cart.purge()
	co.mu.Lock()
	co.email = ""
	co.setStateLocked(CheckoutIdle)
	co.mu.Unlock()
	return receipt, nil
}

// Cancel abandons an open checkout and keeps the cart.
func (co *Checkout) Cancel() error {
	co.mu.Lock()
	defer co.mu.Unlock()

	switch co.state {
	case CheckoutSubmitting, CheckoutSucceeded:
		return ErrCheckoutInFlight
	case CheckoutIdle:
		return nil
	}
	co.errMsg = ""
	co.setStateLocked(CheckoutIdle)
	return nil
}

func (co *Checkout) State() CheckoutState {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.state
}

func (co *Checkout) Email() string {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.email
}

// Error is the message from the last refused or failed step.
func (co *Checkout) Error() string {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.errMsg
}

func (co *Checkout) Success() string {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.success
}
