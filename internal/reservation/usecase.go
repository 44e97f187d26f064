package reservation

import (
	"context"

	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/reservation/dto"
)

type UseCase interface {
	// Import reserves qty units of the product for the user. Repeat imports
	// merge into the existing record.
	Import(ctx context.Context, userEmail, productID string, qty int) (*model.ImportRecord, error)

	// Withdraw returns exactly one unit per call, regardless of how many were
	// imported at once.
	Withdraw(ctx context.Context, userEmail, productID string) (int, error)

	ListMine(ctx context.Context, userEmail string) ([]dto.UserImport, error)
}
