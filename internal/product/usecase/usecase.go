package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/product"
	"github.com/carhub/catalog-service/internal/product/dto"
	"github.com/carhub/catalog-service/pkg/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	latestProductsCap = 6
	searchResultsCap  = 20

	listCacheTTL = 5 * time.Minute
)

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, limit int) ([]model.Product, error) {
	return uc.findAllCached(ctx, &dto.ProductFilters{Limit: limit})
}

func (uc *productUseCase) LatestProducts(ctx context.Context) ([]model.Product, error) {
	return uc.findAllCached(ctx, &dto.ProductFilters{Latest: true, Limit: latestProductsCap})
}

func (uc *productUseCase) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	if query == "" {
		return []model.Product{}, nil
	}
	return uc.findAllCached(ctx, &dto.ProductFilters{SearchQuery: query, Limit: searchResultsCap})
}

func (uc *productUseCase) ListOwnProducts(ctx context.Context, owner string) ([]model.Product, error) {
	// Owner views bypass the shared cache.
	return uc.repo.FindAll(ctx, &dto.ProductFilters{CreatedBy: owner})
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrInvalidID
	}

	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, owner string, input *dto.CreateProductInput) (*model.Product, error) {
	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:              input.Name,
		Price:             input.Price,
		OriginCountry:     input.OriginCountry,
		Rating:            input.Rating,
		ProductImage:      input.ProductImage,
		AvailableQuantity: input.AvailableQuantity,
		CreatedBy:         &owner,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())

	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id, owner string, patch *dto.UpdateProductInput) (*model.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrInvalidID
	}

	matched, err := uc.repo.UpdateOwned(ctx, id, owner, patch)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Either the product does not exist or the caller does not own it;
		// owner-scoped queries do not distinguish the two.
		return nil, model.ErrProductNotFound
	}

	go uc.invalidateListCache(context.Background())

	return uc.repo.FindByID(ctx, id)
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id, owner string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrInvalidID
	}

	matched, err := uc.repo.DeleteOwned(ctx, id, owner)
	if err != nil {
		return err
	}
	if !matched {
		return model.ErrProductNotFound
	}

	go uc.invalidateListCache(context.Background())

	return nil
}

// findAllCached is a read-through cache over repo.FindAll. Cache failures
// degrade silently to the database.
func (uc *productUseCase) findAllCached(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	cacheKey := ""
	if uc.cache != nil {
		if key, err := generateCacheKey(filters); err == nil {
			cacheKey = key
			if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
				var products []model.Product
				if err := json.Unmarshal([]byte(val), &products); err == nil {
					return products, nil
				}
			}
		}
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if data, err := json.Marshal(products); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	return products, nil
}

func generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err != nil {
		uc.logger.Warn("failed to scan product cache keys", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}
