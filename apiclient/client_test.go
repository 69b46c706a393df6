package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginDecodesAdminFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/login" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "admin@thestore.fh" {
			t.Errorf("email = %q", body["email"])
		}
		w.Write([]byte(`{"id":1,"name":"admin","email":"admin@thestore.fh","is_admin":1}`))
	}))
	defer srv.Close()

	user, err := New(srv.URL).Login(context.Background(), "admin@thestore.fh", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !user.IsAdmin || user.ID != 1 {
		t.Fatalf("user = %+v", user)
	}
}

func TestAdminFlagForms(t *testing.T) {
	for raw, want := range map[string]bool{`1`: true, `true`: true, `"1"`: true, `0`: false, `false`: false, `null`: false} {
		var f AdminFlag
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if bool(f) != want {
			t.Errorf("%s decoded as %v", raw, f)
		}
	}
}

func TestRejectionCarriesBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "a@b.c", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "Invalid email or password" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).Products(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestTimeoutIsTransportFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, WithTimeout(20*time.Millisecond)).Products(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestAdminRequestsSendMarker(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	id, err := New(srv.URL).WithAdminToken("tok").CreateProduct(context.Background(), ProductInput{Name: "Mug", Price: "$14.00"})
	if err != nil || id != 7 {
		t.Fatalf("CreateProduct = %d, %v", id, err)
	}
	if got.Get("X-Admin") != "true" {
		t.Fatalf("X-Admin = %q", got.Get("X-Admin"))
	}
	if got.Get("Authorization") != "Bearer tok" {
		t.Fatalf("Authorization = %q", got.Get("Authorization"))
	}
}

func TestPublicRequestsOmitMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Admin") != "" {
			t.Errorf("public request carried X-Admin")
		}
		w.Write([]byte(`{"id":3,"created_at":"2024-05-01T10:00:00.000Z"}`))
	}))
	defer srv.Close()

	receipt, err := New(srv.URL).PlaceOrder(context.Background(), OrderRequest{
		Email: "a@b.c",
		Items: []OrderItem{{ID: 1, Name: "Mug", Price: "$14.00", Qty: 1}},
		Total: 14,
	})
	if err != nil || receipt.ID != 3 {
		t.Fatalf("PlaceOrder = %+v, %v", receipt, err)
	}
}

func TestExportWritesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PK\x03\x04data"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	if err := New(srv.URL).ExportOrders(context.Background(), &buf); err != nil {
		t.Fatalf("ExportOrders: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Fatalf("body = %q", buf.Bytes())
	}
}

func TestOrderLineItems(t *testing.T) {
	o := Order{Items: json.RawMessage(`[{"id":1,"name":"Mug","price":"$14.00","qty":2}]`)}
	if items := o.LineItems(); len(items) != 1 || items[0].Qty != 2 {
		t.Fatalf("items = %+v", items)
	}
	o.Items = json.RawMessage(`{"weird":true}`)
	if items := o.LineItems(); items != nil {
		t.Fatalf("expected nil, got %+v", items)
	}
}
