package product

import (
	"context"

	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)

	// Owner-scoped mutations: the bool reports whether a row matched, so the
	// caller can distinguish "not found or not yours" from success.
	UpdateOwned(ctx context.Context, id, owner string, patch *dto.UpdateProductInput) (bool, error)
	DeleteOwned(ctx context.Context, id, owner string) (bool, error)
}
