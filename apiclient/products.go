package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Products lists the catalog, newest first.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/products"}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id uint) (*Product, error) {
	var product Product
	err := c.doJSON(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/products/%d", id)}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (uint, error) {
	var created struct {
		ID uint `json:"id"`
	}
	err := c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/products",
		body:   in,
		admin:  true,
	}, &created)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, in ProductInput) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/products/%d", id),
		body:   in,
		admin:  true,
	})
	return err
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/products/%d", id),
		admin:  true,
	})
	return err
}

// ExportProducts writes the catalog spreadsheet to w.
func (c *Client) ExportProducts(ctx context.Context, w io.Writer) error {
	return c.download(ctx, "/products/export", w)
}

func (c *Client) download(ctx context.Context, path string, w io.Writer) error {
	data, err := c.do(ctx, request{method: http.MethodGet, path: path, admin: true})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type ImportSummary struct {
	Message string `json:"message"`
	Created int    `json:"created_count"`
	Updated int    `json:"updated_count"`
	Skipped int    `json:"skipped_count"`
}

// ImportProducts uploads a spreadsheet laid out like ExportProducts. Rows
// whose ID exists are updated, the rest are created.
func (c *Client) ImportProducts(ctx context.Context, filename string, r io.Reader) (*ImportSummary, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, request{method: http.MethodPost, path: "/products/import", admin: true})
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(&body)
	req.ContentLength = int64(body.Len())
	req.Header.Set("Content-Type", mw.FormDataContentType())

	data, err := c.send(req)
	if err != nil {
		return nil, err
	}
	var summary ImportSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("%w: decode import summary: %v", ErrTransport, err)
	}
	return &summary, nil
}
