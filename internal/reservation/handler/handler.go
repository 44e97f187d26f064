package handler

import (
	"errors"
	"net/http"

	"github.com/carhub/catalog-service/internal/auth"
	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/reservation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	uc     reservation.UseCase
	logger *zap.Logger
}

func NewReservationHandler(uc reservation.UseCase, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		uc:     uc,
		logger: log,
	}
}

type importProductRequest struct {
	ProductID      string `json:"productId" binding:"required"`
	ImportQuantity int    `json:"importQuantity" binding:"required,min=1"`
}

// ImportProduct handles POST /import-product.
func (h *ReservationHandler) ImportProduct(c *gin.Context) {
	var req importProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	identity := auth.GetIdentity(c)
	record, err := h.uc.Import(c.Request.Context(), identity.Email, req.ProductID, req.ImportQuantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// ListMyImports handles GET /my-imports.
func (h *ReservationHandler) ListMyImports(c *gin.Context) {
	identity := auth.GetIdentity(c)
	imports, err := h.uc.ListMine(c.Request.Context(), identity.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": imports})
}

// WithdrawProduct handles DELETE /my-imports/product/:productId. One unit is
// returned to stock per call.
func (h *ReservationHandler) WithdrawProduct(c *gin.Context) {
	identity := auth.GetIdentity(c)
	remaining, err := h.uc.Withdraw(c.Request.Context(), identity.Email, c.Param("productId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"remainingQuantity": remaining},
	})
}

func (h *ReservationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ID format"})
	case errors.Is(err, model.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, model.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, model.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
	case errors.Is(err, model.ErrImportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Import record not found"})
	default:
		h.logger.Error("reservation handler failure", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}
