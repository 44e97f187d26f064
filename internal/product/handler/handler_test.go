package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carhub/catalog-service/internal/auth"
	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/product"
	"github.com/carhub/catalog-service/internal/product/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUseCase struct {
	product.UseCase

	products []model.Product
	getErr   error
	gotOwner string
	gotLimit int
}

func (s *stubUseCase) ListProducts(_ context.Context, limit int) ([]model.Product, error) {
	s.gotLimit = limit
	return s.products, nil
}

func (s *stubUseCase) GetProduct(_ context.Context, _ string) (*model.Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &s.products[0], nil
}

func (s *stubUseCase) CreateProduct(_ context.Context, owner string, input *dto.CreateProductInput) (*model.Product, error) {
	s.gotOwner = owner
	return &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String()},
		Name:      input.Name,
		CreatedBy: &owner,
	}, nil
}

func (s *stubUseCase) DeleteProduct(_ context.Context, _, owner string) error {
	s.gotOwner = owner
	return s.getErr
}

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	if token != "valid-token" {
		return nil, auth.ErrUnauthorized
	}
	return &auth.Identity{Email: "seller@example.com", Subject: "user-2"}, nil
}

func newTestRouter(uc *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProductHandler(uc, zap.NewNop())
	requireAuth := auth.RequireAuth(stubVerifier{})

	router := gin.New()
	router.GET("/products", h.ListProducts)
	router.GET("/products/:id", h.GetProduct)
	router.POST("/products", requireAuth, h.CreateProduct)
	router.DELETE("/products/:id", requireAuth, h.DeleteProduct)
	return router
}

func TestListProductsParsesLimit(t *testing.T) {
	uc := &stubUseCase{products: []model.Product{{Name: "Honda Civic"}}}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/products?limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, uc.gotLimit)
}

func TestListProductsRejectsBadLimit(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/products?limit=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"malformed id", model.ErrInvalidID, http.StatusBadRequest, "Invalid ID format"},
		{"missing product", model.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubUseCase{getErr: tc.err})

			req := httptest.NewRequest(http.MethodGet, "/products/whatever", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tc.message, resp["message"])
		})
	}
}

func TestCreateProductStampsVerifiedOwner(t *testing.T) {
	uc := &stubUseCase{}
	router := newTestRouter(uc)

	body := `{"name":"Mazda MX-5","price":31000,"rating":4.5,"availableQuantity":4}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "seller@example.com", uc.gotOwner)
}

func TestCreateProductRequiresAuthAndValidBody(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(`{"name":"Car","price":1}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(`{"price":-5}`))
	req.Header.Set("Authorization", "Bearer valid-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProductNotOwned(t *testing.T) {
	router := newTestRouter(&stubUseCase{getErr: model.ErrProductNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/products/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
