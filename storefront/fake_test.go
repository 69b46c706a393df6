package storefront

import (
	"context"
	"sync"

	"github.com/Fausto-Grilo/VulnWebApp/apiclient"
	"github.com/Fausto-Grilo/VulnWebApp/localstore"
)

// fakeAPI records calls and answers with whatever the test configured.
type fakeAPI struct {
	mu sync.Mutex

	loginUser *apiclient.User
	loginErr  error
	regErr    error
	orderErr  error
	logoutErr error

	// block, when set, holds PlaceOrder until it is closed.
	block chan struct{}

	loginCalls    int
	registerCalls int
	logoutCalls   int
	orders        []apiclient.OrderRequest
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*apiclient.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginUser, nil
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (*apiclient.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &apiclient.User{ID: 9, Name: name, Email: email}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) PlaceOrder(ctx context.Context, order apiclient.OrderRequest) (*apiclient.OrderReceipt, error) {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return &apiclient.OrderReceipt{ID: uint(len(f.orders)), CreatedAt: "2024-01-01T00:00:00.000Z"}, nil
}

func (f *fakeAPI) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func newTestApp(api *fakeAPI) (*App, *localstore.MemoryStore) {
	store := localstore.NewMemoryStore()
	app := NewApp(api, store, Options{NoticeTTL: DefaultNoticeTTL, SuccessHold: 0})
	return app, store
}

var (
	wallet = apiclient.Product{ID: 1, Name: "Classic Leather Wallet", Price: "$10.00"}
	sample = apiclient.Product{ID: 2, Name: "Sticker", Price: "free"}
)
