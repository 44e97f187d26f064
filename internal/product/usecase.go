package product

import (
	"context"

	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/product/dto"
)

type UseCase interface {
	ListProducts(ctx context.Context, limit int) ([]model.Product, error)
	LatestProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	ListOwnProducts(ctx context.Context, owner string) ([]model.Product, error)

	CreateProduct(ctx context.Context, owner string, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id, owner string, patch *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id, owner string) error
}
