package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Fausto-Grilo/VulnWebApp/config"
	orderControllers "github.com/Fausto-Grilo/VulnWebApp/controllers/order"
	"github.com/Fausto-Grilo/VulnWebApp/database"
	"github.com/Fausto-Grilo/VulnWebApp/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@thestore.fh"
	adminPassword = "th3bestPassw0rd"
)

type testServer struct {
	db     *gorm.DB
	hub    *orderControllers.Hub
	router *gin.Engine
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedAdmin(db, adminEmail, adminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := database.SeedProducts(db); err != nil {
		t.Fatalf("seed products: %v", err)
	}

	if cfg == nil {
		cfg = &config.Config{AdminMarker: config.AdminMarkerHeader, AllowOrigins: []string{"*"}}
	}
	hub := orderControllers.NewHub()
	return &testServer{db: db, hub: hub, router: NewRouter(db, cfg, hub)}
}

func (s *testServer) do(method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

var asAdmin = http.Header{"X-Admin": []string{"true"}}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/users/login", gin.H{"email": adminEmail, "password": adminPassword}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
	var user models.PublicUser
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatal(err)
	}
	if user.IsAdmin != 1 || user.Email != adminEmail || user.Token != "" {
		t.Fatalf("user = %+v", user)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("login echoed the password: %s", w.Body.String())
	}

	w = s.do(http.MethodPost, "/users/login", gin.H{"email": adminEmail, "password": "wrong"}, nil)
	if w.Code != http.StatusUnauthorized || w.Body.String() != "Invalid email or password" {
		t.Fatalf("bad password: %d %q", w.Code, w.Body.String())
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t, nil)

	body := gin.H{"name": "Ann", "email": "ann@example.com", "password": "secret1"}
	w := s.do(http.MethodPost, "/users/register", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("register status %d: %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/users/register", body, nil)
	if w.Code != http.StatusConflict || w.Body.String() != "Email already registered" {
		t.Fatalf("duplicate: %d %q", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/users/register", gin.H{"name": "Ann"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: %d", w.Code)
	}

	w = s.do(http.MethodPost, "/users/login", gin.H{"email": "ann@example.com", "password": "secret1"}, nil)
	var user models.PublicUser
	_ = json.Unmarshal(w.Body.Bytes(), &user)
	if w.Code != http.StatusOK || user.IsAdmin != 0 {
		t.Fatalf("login after register: %d %+v", w.Code, user)
	}

	var stored models.User
	s.db.Where("email = ?", "ann@example.com").First(&stored)
	if stored.Password == "secret1" {
		t.Fatal("password stored in clear")
	}
}

func TestLogout(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodPost, "/users/logout", nil, nil)
	if w.Code != http.StatusOK || w.Body.String() != "Logout successful" {
		t.Fatalf("logout: %d %q", w.Code, w.Body.String())
	}
}

func TestProductsNewestFirst(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/products", nil, nil)
	var products []models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 6 {
		t.Fatalf("got %d products", len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i-1].ID < products[i].ID {
			t.Fatalf("not newest first: %d before %d", products[i-1].ID, products[i].ID)
		}
	}
}

func TestAdminMarkerGatesMutations(t *testing.T) {
	s := newTestServer(t, nil)
	product := gin.H{"name": "Ceramic Coffee Mug", "price": "$14.00"}

	cases := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"no marker", nil, http.StatusForbidden},
		{"not true", http.Header{"X-Admin": []string{"yes"}}, http.StatusForbidden},
		{"true", asAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		w := s.do(http.MethodPost, "/products", product, tc.header)
		if w.Code != tc.want {
			t.Errorf("%s: status %d, want %d", tc.name, w.Code, tc.want)
		}
		if tc.want == http.StatusForbidden && w.Body.String() != "Admin required" {
			t.Errorf("%s: body %q", tc.name, w.Body.String())
		}
	}

	for _, path := range []string{"/orders", "/orders/export", "/products/export"} {
		if w := s.do(http.MethodGet, path, nil, nil); w.Code != http.StatusForbidden {
			t.Errorf("GET %s without marker: %d", path, w.Code)
		}
	}
}

func TestProductLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/products", gin.H{"name": "Tote"}, asAdmin)
	if w.Code != http.StatusBadRequest || w.Body.String() != "name and price required" {
		t.Fatalf("missing price: %d %q", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/products", gin.H{"name": "Tote", "price": "$24.50", "tag": "bags"}, asAdmin)
	var created struct {
		ID uint `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if w.Code != http.StatusOK || created.ID == 0 {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	path := "/products/" + strconv.FormatUint(uint64(created.ID), 10)

	w = s.do(http.MethodPut, path, gin.H{"name": "Big Tote", "price": "$30.00", "img": "", "tag": "bags"}, asAdmin)
	if w.Code != http.StatusOK || w.Body.String() != "Updated" {
		t.Fatalf("update: %d %q", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, path, nil, nil)
	var got models.Product
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Name != "Big Tote" || got.Price != "$30.00" {
		t.Fatalf("after update: %+v", got)
	}

	w = s.do(http.MethodPut, "/products/9999", gin.H{"name": "x", "price": "1"}, asAdmin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("update missing: %d", w.Code)
	}

	w = s.do(http.MethodDelete, path, nil, asAdmin)
	if w.Code != http.StatusOK || w.Body.String() != "Deleted" {
		t.Fatalf("delete: %d %q", w.Code, w.Body.String())
	}
	if w = s.do(http.MethodGet, path, nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: %d", w.Code)
	}
}

func TestPlaceOrderAndList(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/orders", gin.H{"email": "ann@example.com"}, nil)
	if w.Code != http.StatusBadRequest || w.Body.String() != "email and items required" {
		t.Fatalf("missing items: %d %q", w.Code, w.Body.String())
	}

	items := []gin.H{{"id": 1, "name": "Classic Leather Wallet", "price": "$39.00", "qty": 2}}
	w = s.do(http.MethodPost, "/orders", gin.H{"email": "ann@example.com", "items": items, "total": "78.00"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("place order: %d %s", w.Code, w.Body.String())
	}
	var receipt struct {
		ID        uint   `json:"id"`
		CreatedAt string `json:"created_at"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &receipt)
	if _, err := time.Parse(models.OrderTimeLayout, receipt.CreatedAt); err != nil || receipt.ID == 0 {
		t.Fatalf("receipt = %+v (%v)", receipt, err)
	}

	// a row written by something else with unreadable items
	s.db.Create(&models.Order{Email: "legacy@example.com", Items: "not json", Total: 5, CreatedAt: models.OrderTimestamp(time.Now())})

	w = s.do(http.MethodGet, "/orders", nil, asAdmin)
	if w.Code != http.StatusOK {
		t.Fatalf("list orders: %d", w.Code)
	}
	var orders []models.OrderView
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders", len(orders))
	}
	if orders[0].Email != "legacy@example.com" || string(orders[0].Items) != "[]" {
		t.Fatalf("legacy order = %+v", orders[0])
	}
	if orders[1].Total != 78 {
		t.Fatalf("total = %v", orders[1].Total)
	}
	var stored []map[string]interface{}
	if err := json.Unmarshal(orders[1].Items, &stored); err != nil || len(stored) != 1 || stored[0]["qty"].(float64) != 2 {
		t.Fatalf("items = %s", orders[1].Items)
	}
}

func TestTokenAdminMarker(t *testing.T) {
	secret := []byte("test-secret")
	s := newTestServer(t, &config.Config{AdminMarker: config.AdminMarkerToken, JWTSecret: secret})

	if w := s.do(http.MethodGet, "/orders", nil, asAdmin); w.Code != http.StatusForbidden {
		t.Fatalf("header alone in token mode: %d", w.Code)
	}

	w := s.do(http.MethodPost, "/users/login", gin.H{"email": adminEmail, "password": adminPassword}, nil)
	var user models.PublicUser
	_ = json.Unmarshal(w.Body.Bytes(), &user)
	if user.Token == "" {
		t.Fatalf("no token issued: %s", w.Body.String())
	}
	bearer := http.Header{"Authorization": []string{"Bearer " + user.Token}}
	if w := s.do(http.MethodGet, "/orders", nil, bearer); w.Code != http.StatusOK {
		t.Fatalf("admin token: %d", w.Code)
	}

	s.do(http.MethodPost, "/users/register", gin.H{"name": "Ann", "email": "ann@example.com", "password": "secret1"}, nil)
	w = s.do(http.MethodPost, "/users/login", gin.H{"email": "ann@example.com", "password": "secret1"}, nil)
	_ = json.Unmarshal(w.Body.Bytes(), &user)
	bearer = http.Header{"Authorization": []string{"Bearer " + user.Token}}
	if w := s.do(http.MethodGet, "/orders", nil, bearer); w.Code != http.StatusForbidden {
		t.Fatalf("customer token: %d", w.Code)
	}
}

func TestExportAndImportProducts(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/products/export", nil, asAdmin)
	if w.Code != http.StatusOK || !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Fatalf("export: status %d, %d bytes", w.Code, w.Body.Len())
	}

	file := xlsx.NewFile()
	sheet, _ := file.AddSheet("Products")
	header := sheet.AddRow()
	for _, h := range []string{"ID", "Name", "Price", "Img", "Tag"} {
		header.AddCell().SetString(h)
	}
	update := sheet.AddRow()
	for _, v := range []string{"1", "Renamed Wallet", "$41.00", "", "accessories"} {
		update.AddCell().SetString(v)
	}
	create := sheet.AddRow()
	for _, v := range []string{"", "Desk Lamp", "$45.00", "", "home"} {
		create.AddCell().SetString(v)
	}
	skip := sheet.AddRow()
	for _, v := range []string{"", "No Price", "", "", ""} {
		skip.AddCell().SetString(v)
	}
	var xlsxBuf bytes.Buffer
	if err := file.Write(&xlsxBuf); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "products.xlsx")
	part.Write(xlsxBuf.Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/products/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Admin", "true")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var summary struct {
		Created int `json:"created_count"`
		Updated int `json:"updated_count"`
		Skipped int `json:"skipped_count"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &summary)
	if rec.Code != http.StatusOK || summary.Created != 1 || summary.Updated != 1 || summary.Skipped != 1 {
		t.Fatalf("import: %d %s", rec.Code, rec.Body.String())
	}

	var wallet models.Product
	s.db.First(&wallet, 1)
	if wallet.Name != "Renamed Wallet" {
		t.Fatalf("wallet = %+v", wallet)
	}
}

func TestOrderFeed(t *testing.T) {
	s := newTestServer(t, nil)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/orders/ws"
	if _, resp, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil || resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("feed without marker should be refused, got %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, asAdmin)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.hub.Clients() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("listener never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	order := `{"email":"ann@example.com","items":[{"id":2,"qty":1}],"total":129}`
	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(order))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got models.OrderView
	if err := json.Unmarshal(msg, &got); err != nil || got.Email != "ann@example.com" || got.Total != 129 {
		t.Fatalf("broadcast = %s (%v)", msg, err)
	}
}

func TestCORSAllowsAdminHeader(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://shop.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "X-Admin, Content-Type")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", w.Code)
	}
	if !strings.Contains(strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "x-admin") {
		t.Fatalf("allow headers = %q", w.Header().Get("Access-Control-Allow-Headers"))
	}
}
