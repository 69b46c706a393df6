package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

func (c *Client) PlaceOrder(ctx context.Context, order OrderRequest) (*OrderReceipt, error) {
	var receipt OrderReceipt
	err := c.doJSON(ctx, request{method: http.MethodPost, path: "/orders", body: order}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Orders lists every stored order, newest first.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/orders", admin: true}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ExportOrders(ctx context.Context, w io.Writer) error {
	return c.download(ctx, "/orders/export", w)
}

// WatchOrders streams newly placed orders to fn until ctx ends or the
// connection drops.
func (c *Client) WatchOrders(ctx context.Context, fn func(Order)) error {
	wsURL, err := websocketURL(c.baseURL + "/orders/ws")
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set(adminHeader, "true")
	if c.adminToken != "" {
		header.Set("Authorization", "Bearer "+c.adminToken)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			data, _ := io.ReadAll(resp.Body)
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		}
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
		var order Order
		if err := json.Unmarshal(msg, &order); err != nil {
			continue
		}
		fn(order)
	}
}

func websocketURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return u.String(), nil
}
