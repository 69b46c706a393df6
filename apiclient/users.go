package apiclient

import (
	"context"
	"net/http"
)

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/users/login",
		body:   map[string]string{"email": email, "password": password},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var user User
	err := c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/users/register",
		body:   map[string]string{"name": name, "email": email, "password": password},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout notifies the server. The server keeps no session, so callers
// treat the result as advisory.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/users/logout"})
	return err
}
