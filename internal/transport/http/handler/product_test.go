package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mfiguera/product-api/internal/domain"
	"github.com/mfiguera/product-api/internal/transport/http/handler"
	"github.com/mfiguera/product-api/internal/transport/http/middleware"
	"github.com/mfiguera/product-api/internal/usecase"
)

type fakeProductUsecase struct {
	create  func(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error)
	list    func(ctx context.Context) ([]*domain.Product, error)
	getByID func(ctx context.Context, id string) (*domain.Product, error)
	update  func(ctx context.Context, input usecase.UpdateProductInput) (*domain.Product, error)
	delete  func(ctx context.Context, id, userID string) error
}

func (f *fakeProductUsecase) Create(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error) {
	return f.create(ctx, input)
}

func (f *fakeProductUsecase) List(ctx context.Context) ([]*domain.Product, error) {
	return f.list(ctx)
}

func (f *fakeProductUsecase) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return f.getByID(ctx, id)
}

func (f *fakeProductUsecase) Update(ctx context.Context, input usecase.UpdateProductInput) (*domain.Product, error) {
	return f.update(ctx, input)
}

func (f *fakeProductUsecase) Delete(ctx context.Context, id, userID string) error {
	return f.delete(ctx, id, userID)
}

// newProductEngine wires the handler behind a stub that plays the role of
// the auth middleware for the protected routes.
func newProductEngine(uc *fakeProductUsecase, userID string) *gin.Engine {
	h := handler.NewProductHandler(uc, testLogger())

	asUser := func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxUserEmail, userID+"@x.com")
	}

	r := gin.New()
	r.POST("/api/product/create", asUser, h.Create)
	r.GET("/api/product/readall", h.List)
	r.GET("/api/product/readone/:id", h.GetByID)
	r.PUT("/api/product/update/:id", asUser, h.Update)
	r.DELETE("/api/product/delete/:id", asUser, h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

// ---- Create ----

func TestCreateProduct_InvalidBodies_Return400(t *testing.T) {
	uc := &fakeProductUsecase{
		create: func(_ context.Context, _ usecase.CreateProductInput) (*domain.Product, error) {
			t.Fatal("usecase must not be called on invalid input")
			return nil, nil
		},
	}

	tests := []struct {
		name string
		body string
	}{
		{"empty", `{}`},
		{"missing price", `{"name":"Laptop","description":"Gaming"}`},
		{"zero price", `{"name":"Laptop","description":"Gaming","price":0}`},
		{"negative price", `{"name":"Laptop","description":"Gaming","price":-5}`},
		{"string price", `{"name":"Laptop","description":"Gaming","price":"free"}`},
		{"empty name", `{"name":"","description":"Gaming","price":10}`},
		{"missing description", `{"name":"Laptop","price":10}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, newProductEngine(uc, "owner-1"), http.MethodPost, "/api/product/create", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestCreateProduct_Valid_Returns201WithOwnerFromToken(t *testing.T) {
	var captured usecase.CreateProductInput
	uc := &fakeProductUsecase{
		create: func(_ context.Context, input usecase.CreateProductInput) (*domain.Product, error) {
			captured = input
			return &domain.Product{
				ID:          "prod-1",
				Name:        input.Name,
				Description: input.Description,
				Price:       input.Price,
				OwnerID:     input.OwnerID,
			}, nil
		},
	}

	w := doJSON(t, newProductEngine(uc, "owner-1"), http.MethodPost, "/api/product/create",
		`{"name":"Laptop","description":"Gaming","price":19.99}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if captured.OwnerID != "owner-1" {
		t.Errorf("owner id = %q, want owner-1 (from auth context)", captured.OwnerID)
	}
	if captured.Price != 19.99 {
		t.Errorf("price = %v, want 19.99", captured.Price)
	}
}

// ---- Read ----

func TestListProducts_ReturnsArrayWithOwnerProjection(t *testing.T) {
	uc := &fakeProductUsecase{
		list: func(_ context.Context) ([]*domain.Product, error) {
			return []*domain.Product{
				{
					ID: "prod-1", Name: "Keyboard", Description: "TKL", Price: 89.90,
					OwnerID: "owner-1",
					Owner:   &domain.Owner{Name: "Ana", Email: "a@x.com"},
				},
			}, nil
		},
	}

	w := doJSON(t, newProductEngine(uc, ""), http.MethodGet, "/api/product/readall", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body []struct {
		ID    string `json:"id"`
		Owner *struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"owner"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(body) != 1 || body[0].Owner == nil || body[0].Owner.Email != "a@x.com" {
		t.Errorf("body = %s, want one product with joined owner", w.Body.String())
	}
}

func TestListProducts_Empty_ReturnsEmptyArrayNotNull(t *testing.T) {
	uc := &fakeProductUsecase{
		list: func(_ context.Context) ([]*domain.Product, error) {
			return nil, nil
		},
	}

	w := doJSON(t, newProductEngine(uc, ""), http.MethodGet, "/api/product/readall", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestGetProduct_Missing_Returns404(t *testing.T) {
	uc := &fakeProductUsecase{
		getByID: func(_ context.Context, _ string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}

	w := doJSON(t, newProductEngine(uc, ""), http.MethodGet, "/api/product/readone/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

// ---- Update / Delete ----

const validProductBody = `{"name":"Laptop","description":"Gaming","price":19.99}`

func TestUpdateProduct_NotFound_Returns404(t *testing.T) {
	uc := &fakeProductUsecase{
		update: func(_ context.Context, _ usecase.UpdateProductInput) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}

	w := doJSON(t, newProductEngine(uc, "owner-1"), http.MethodPut, "/api/product/update/nope", validProductBody)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateProduct_NonOwner_Returns403(t *testing.T) {
	uc := &fakeProductUsecase{
		update: func(_ context.Context, _ usecase.UpdateProductInput) (*domain.Product, error) {
			return nil, domain.ErrNotOwner
		},
	}

	w := doJSON(t, newProductEngine(uc, "intruder"), http.MethodPut, "/api/product/update/prod-1", validProductBody)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestUpdateProduct_Owner_Returns200(t *testing.T) {
	uc := &fakeProductUsecase{
		update: func(_ context.Context, input usecase.UpdateProductInput) (*domain.Product, error) {
			return &domain.Product{ID: input.ID, Name: input.Name, Price: input.Price, OwnerID: input.UserID}, nil
		},
	}

	w := doJSON(t, newProductEngine(uc, "owner-1"), http.MethodPut, "/api/product/update/prod-1", validProductBody)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestDeleteProduct_NotFound_Returns404(t *testing.T) {
	uc := &fakeProductUsecase{
		delete: func(_ context.Context, _, _ string) error {
			return domain.ErrProductNotFound
		},
	}

	w := doJSON(t, newProductEngine(uc, "owner-1"), http.MethodDelete, "/api/product/delete/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteProduct_NonOwner_Returns403(t *testing.T) {
	uc := &fakeProductUsecase{
		delete: func(_ context.Context, _, _ string) error {
			return domain.ErrNotOwner
		},
	}

	w := doJSON(t, newProductEngine(uc, "intruder"), http.MethodDelete, "/api/product/delete/prod-1", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestDeleteProduct_Owner_Returns200(t *testing.T) {
	var gotID, gotUser string
	uc := &fakeProductUsecase{
		delete: func(_ context.Context, id, userID string) error {
			gotID, gotUser = id, userID
			return nil
		},
	}

	w := doJSON(t, newProductEngine(uc, "owner-1"), http.MethodDelete, "/api/product/delete/prod-1", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if gotID != "prod-1" || gotUser != "owner-1" {
		t.Errorf("delete called with (%q, %q), want (prod-1, owner-1)", gotID, gotUser)
	}
}
