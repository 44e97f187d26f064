package reservation

import (
	"context"

	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/reservation/dto"
)

type Repository interface {
	// ImportStock reserves qty units of a product for a user in a single
	// transaction: a conditional stock decrement (fails on missing product or
	// insufficient stock, leaving both tables untouched) followed by an
	// upsert-or-increment of the user's import record.
	ImportStock(ctx context.Context, input *dto.ImportInput) (*model.ImportRecord, error)

	// WithdrawOne returns exactly one reserved unit to stock. The import
	// record is deleted when its quantity reaches zero, decremented
	// otherwise. Reports the remaining reserved quantity.
	WithdrawOne(ctx context.Context, userEmail, productID string) (int, error)

	// ListGroupedByProduct aggregates a user's import records by product,
	// summing quantities and collecting record ids, joined to the products
	// table for display fields.
	ListGroupedByProduct(ctx context.Context, userEmail string) ([]dto.UserImport, error)
}
