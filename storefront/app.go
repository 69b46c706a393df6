package storefront

import (
	"strings"
	"time"

	"github.com/Fausto-Grilo/VulnWebApp/apiclient"
)

type Options struct {
	NoticeTTL   time.Duration
	SuccessHold time.Duration
}

func DefaultOptions() Options {
	return Options{NoticeTTL: DefaultNoticeTTL, SuccessHold: DefaultSuccessHold}
}

// App is the client state handle. Session and Cart persist independently
// to the same Storage.
type App struct {
	Session  *Session
	Cart     *Cart
	Checkout *Checkout
	Notices  *Notifier
}

func NewApp(api API, store Storage, opts Options) *App {
	notices := NewNotifier(opts.NoticeTTL)
	session := NewSession(api, store)
	cart := NewCart(store, notices)
	return &App{
		Session:  session,
		Cart:     cart,
		Checkout: NewCheckout(api, cart, session, notices, opts.SuccessHold),
		Notices:  notices,
	}
}

// FilterProducts keeps the products whose name, tag or price contains query,
// ignoring case. An empty query keeps everything.
func FilterProducts(products []apiclient.Product, query string) []apiclient.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	var out []apiclient.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Tag), q) ||
			strings.Contains(strings.ToLower(p.Price), q) {
			out = append(out, p)
		}
	}
	return out
}
