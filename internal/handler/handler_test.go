package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartwarranty/warranty-go/internal/middleware"
	"github.com/smartwarranty/warranty-go/internal/model"
	"github.com/smartwarranty/warranty-go/internal/qrcode"
	"github.com/smartwarranty/warranty-go/internal/repository"
	"github.com/smartwarranty/warranty-go/internal/service"
)

// In-memory stores backing the services under test.

type memUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func (s *memUserStore) Create(_ context.Context, u *model.User) error {
	s.nextID++
	u.ID = s.nextID
	clone := *u
	s.users[u.ID] = &clone
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

type memProductStore struct {
	products map[int64]*model.Product
	nextID   int64
}

func (s *memProductStore) Create(_ context.Context, p *model.Product) error {
	s.nextID++
	p.ID = s.nextID
	clone := *p
	s.products[p.ID] = &clone
	return nil
}

func (s *memProductStore) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *memProductStore) ListByUser(_ context.Context, userID int64) ([]model.Product, error) {
	var out []model.Product
	for id := int64(1); id <= s.nextID; id++ {
		if p, ok := s.products[id]; ok && p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memProductStore) UpdateName(_ context.Context, id int64, name string) error {
	p, ok := s.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Name = name
	return nil
}

func (s *memProductStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	qr, err := qrcode.NewGenerator(t.TempDir())
	if err != nil {
		t.Fatalf("NewGenerator() unexpected error: %v", err)
	}

	users := &memUserStore{users: make(map[int64]*model.User)}
	products := &memProductStore{products: make(map[int64]*model.Product)}

	authHandler := NewAuthHandler(service.NewAuthService(users, testSecret, time.Hour, true))
	productHandler := NewProductHandler(service.NewProductService(products, users, qr, true))

	r := chi.NewRouter()
	r.Post("/api/v1/auth/register", authHandler.HandleRegister)
	r.Post("/api/v1/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(testSecret))
		r.Get("/api/v1/auth/me", authHandler.HandleMe)
		r.Get("/api/v1/dashboard", productHandler.HandleDashboard)
		r.Post("/api/v1/products", productHandler.HandleCreate)
		r.Get("/api/v1/products/{product_id}", productHandler.HandleGet)
		r.Put("/api/v1/products/{product_id}", productHandler.HandleUpdate)
		r.Delete("/api/v1/products/{product_id}", productHandler.HandleDelete)
		r.Get("/api/v1/products/{product_id}/qrcode", productHandler.HandleQRCode)
	})

	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, h http.Handler, email string) model.AuthResponse {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", model.RegisterRequest{
		Name: "Ana", Email: email, Password: "secret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var resp model.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding register response: %v", err)
	}
	return resp
}

func TestRegisterLoginFlow(t *testing.T) {
	h := newTestRouter(t)
	register(t, h, "ana@example.com")

	// Duplicate email is a conflict.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", model.RegisterRequest{
		Name: "Ana Again", Email: "ana@example.com", Password: "other",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want %d", rec.Code, http.StatusConflict)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{
		Email: "ana@example.com", Password: "secret",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{
		Email: "ana@example.com", Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRegisterInvalidBody(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestProductLifecycle(t *testing.T) {
	h := newTestRouter(t)
	auth := register(t, h, "ana@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/products", auth.Token, model.CreateProductRequest{
		Name: "TV", PurchaseDate: "2024-01-01", WarrantyDays: 365,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var created model.ProductResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	if created.ExpiryDate != "2024-12-31" {
		t.Errorf("expiry_date = %s, want 2024-12-31", created.ExpiryDate)
	}

	// Dashboard lists the product.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/dashboard", auth.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, want %d", rec.Code, http.StatusOK)
	}
	var dashboard []model.ProductResponse
	if err := json.NewDecoder(rec.Body).Decode(&dashboard); err != nil {
		t.Fatalf("decoding dashboard: %v", err)
	}
	if len(dashboard) != 1 || dashboard[0].ProductID != created.ProductID {
		t.Errorf("dashboard = %+v, want the created product", dashboard)
	}

	// QR image endpoint serves PNG.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/products/1/qrcode", auth.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("qrcode status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("qrcode Content-Type = %s, want image/png", ct)
	}

	// A stranger sees 404, same as a missing product.
	other := register(t, h, "bob@example.com")
	rec = doJSON(t, h, http.MethodGet, "/api/v1/products/1", other.Token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("stranger get status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/products/1", auth.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/products/1", auth.Token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestProductValidationErrors(t *testing.T) {
	h := newTestRouter(t)
	auth := register(t, h, "ana@example.com")

	tests := []struct {
		name string
		req  model.CreateProductRequest
	}{
		{"missing name", model.CreateProductRequest{PurchaseDate: "2024-01-01", WarrantyDays: 30}},
		{"bad date", model.CreateProductRequest{Name: "TV", PurchaseDate: "soon", WarrantyDays: 30}},
		{"negative warranty", model.CreateProductRequest{Name: "TV", PurchaseDate: "2024-01-01", WarrantyDays: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/v1/products", auth.Token, tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestProductRequiresAuth(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/dashboard", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestInvalidProductIDParam(t *testing.T) {
	h := newTestRouter(t)
	auth := register(t, h, "ana@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/v1/products/abc", auth.Token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
