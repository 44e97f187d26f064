package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carhub/catalog-service/internal/auth"
	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/reservation/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUseCase struct {
	importErr   error
	withdrawErr error
	record      *model.ImportRecord
	remaining   int
	rows        []dto.UserImport
	gotEmail    string
	gotQty      int
}

func (s *stubUseCase) Import(_ context.Context, userEmail, productID string, qty int) (*model.ImportRecord, error) {
	s.gotEmail = userEmail
	s.gotQty = qty
	if s.importErr != nil {
		return nil, s.importErr
	}
	if s.record == nil {
		s.record = &model.ImportRecord{
			ID:               uuid.New().String(),
			UserEmail:        userEmail,
			ProductID:        productID,
			ImportedQuantity: qty,
			Status:           model.ImportStatusPending,
		}
	}
	return s.record, nil
}

func (s *stubUseCase) Withdraw(_ context.Context, userEmail, _ string) (int, error) {
	s.gotEmail = userEmail
	return s.remaining, s.withdrawErr
}

func (s *stubUseCase) ListMine(_ context.Context, userEmail string) ([]dto.UserImport, error) {
	s.gotEmail = userEmail
	return s.rows, nil
}

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	if token != "valid-token" {
		return nil, auth.ErrUnauthorized
	}
	return &auth.Identity{Email: "buyer@example.com", Subject: "user-1"}, nil
}

func newTestRouter(uc *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReservationHandler(uc, zap.NewNop())
	requireAuth := auth.RequireAuth(stubVerifier{})

	router := gin.New()
	router.POST("/import-product", requireAuth, h.ImportProduct)
	router.GET("/my-imports", requireAuth, h.ListMyImports)
	router.DELETE("/my-imports/product/:productId", requireAuth, h.WithdrawProduct)
	return router
}

func doRequest(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImportProductRequiresAuth(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	w := doRequest(router, http.MethodPost, "/import-product", "",
		`{"productId":"x","importQuantity":1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodPost, "/import-product", "wrong-token",
		`{"productId":"x","importQuantity":1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImportProductSuccess(t *testing.T) {
	uc := &stubUseCase{}
	router := newTestRouter(uc)
	productID := uuid.New().String()

	w := doRequest(router, http.MethodPost, "/import-product", "valid-token",
		`{"productId":"`+productID+`","importQuantity":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buyer@example.com", uc.gotEmail, "identity must come from the verified token")
	assert.Equal(t, 3, uc.gotQty)

	var resp struct {
		Success bool               `json:"success"`
		Data    model.ImportRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Data.ImportedQuantity)
}

func TestImportProductRejectsMissingQuantity(t *testing.T) {
	uc := &stubUseCase{}
	router := newTestRouter(uc)

	w := doRequest(router, http.MethodPost, "/import-product", "valid-token",
		`{"productId":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, uc.gotEmail, "invalid bodies must not reach the service")
}

func TestImportProductErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid id", model.ErrInvalidID, http.StatusBadRequest},
		{"insufficient stock", model.ErrInsufficientStock, http.StatusBadRequest},
		{"product missing", model.ErrProductNotFound, http.StatusNotFound},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubUseCase{importErr: tc.err})
			w := doRequest(router, http.MethodPost, "/import-product", "valid-token",
				`{"productId":"`+uuid.New().String()+`","importQuantity":1}`)
			assert.Equal(t, tc.status, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
		})
	}
}

func TestImportProductHidesInternalErrorDetail(t *testing.T) {
	router := newTestRouter(&stubUseCase{importErr: errors.New("pq: password authentication failed")})
	w := doRequest(router, http.MethodPost, "/import-product", "valid-token",
		`{"productId":"`+uuid.New().String()+`","importQuantity":1}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestWithdrawProduct(t *testing.T) {
	uc := &stubUseCase{remaining: 2}
	router := newTestRouter(uc)

	w := doRequest(router, http.MethodDelete,
		"/my-imports/product/"+uuid.New().String(), "valid-token", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			RemainingQuantity int `json:"remainingQuantity"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.RemainingQuantity)
}

func TestWithdrawProductNotFound(t *testing.T) {
	router := newTestRouter(&stubUseCase{withdrawErr: model.ErrImportNotFound})
	w := doRequest(router, http.MethodDelete,
		"/my-imports/product/"+uuid.New().String(), "valid-token", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyImports(t *testing.T) {
	uc := &stubUseCase{rows: []dto.UserImport{
		{ProductID: uuid.New().String(), TotalQuantity: 4, Name: "Honda Civic"},
	}}
	router := newTestRouter(uc)

	w := doRequest(router, http.MethodGet, "/my-imports", "valid-token", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buyer@example.com", uc.gotEmail)
	assert.Contains(t, w.Body.String(), "Honda Civic")
}
