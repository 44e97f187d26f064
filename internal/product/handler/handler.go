package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/carhub/catalog-service/internal/auth"
	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/product"
	"github.com/carhub/catalog-service/internal/product/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewProductHandler(uc product.UseCase, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type createProductRequest struct {
	Name              string  `json:"name" binding:"required"`
	Price             float64 `json:"price" binding:"required,gt=0"`
	OriginCountry     string  `json:"originCountry"`
	Rating            float64 `json:"rating" binding:"gte=0,lte=5"`
	ProductImage      string  `json:"productImage"`
	AvailableQuantity int     `json:"availableQuantity" binding:"gte=0"`
}

type updateProductRequest struct {
	Name              *string  `json:"name"`
	Price             *float64 `json:"price" binding:"omitempty,gt=0"`
	OriginCountry     *string  `json:"originCountry"`
	Rating            *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	ProductImage      *string  `json:"productImage"`
	AvailableQuantity *int     `json:"availableQuantity" binding:"omitempty,gte=0"`
}

// ListProducts handles GET /products.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	products, err := h.uc.ListProducts(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, products)
}

// LatestProducts handles GET /latest-products.
func (h *ProductHandler) LatestProducts(c *gin.Context) {
	products, err := h.uc.LatestProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, products)
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, p)
}

// SearchProducts handles GET /search?search=<text>.
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.uc.SearchProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, products)
}

// ListOwnProducts handles GET /my-exports.
func (h *ProductHandler) ListOwnProducts(c *gin.Context) {
	identity := auth.GetIdentity(c)
	products, err := h.uc.ListOwnProducts(c.Request.Context(), identity.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, products)
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	identity := auth.GetIdentity(c)
	p, err := h.uc.CreateProduct(c.Request.Context(), identity.Email, &dto.CreateProductInput{
		Name:              req.Name,
		Price:             req.Price,
		OriginCountry:     req.OriginCountry,
		Rating:            req.Rating,
		ProductImage:      req.ProductImage,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": p})
}

// UpdateProduct handles PATCH /products/:id.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	identity := auth.GetIdentity(c)
	p, err := h.uc.UpdateProduct(c.Request.Context(), c.Param("id"), identity.Email, &dto.UpdateProductInput{
		Name:              req.Name,
		Price:             req.Price,
		OriginCountry:     req.OriginCountry,
		Rating:            req.Rating,
		ProductImage:      req.ProductImage,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	ok(c, p)
}

// DeleteProduct handles DELETE /products/:id.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	identity := auth.GetIdentity(c)
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id"), identity.Email); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "product deleted"})
}

func (h *ProductHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidID):
		badRequest(c, "Invalid ID format")
	case errors.Is(err, model.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
	default:
		h.logger.Error("product handler failure", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}
