package usecase

import (
	"context"
	"time"

	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/reservation"
	"github.com/carhub/catalog-service/internal/reservation/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reservationUseCase struct {
	repo   reservation.Repository
	events reservation.EventPublisher
	logger *zap.Logger
}

func NewReservationUseCase(repo reservation.Repository, events reservation.EventPublisher, log *zap.Logger) reservation.UseCase {
	return &reservationUseCase{
		repo:   repo,
		events: events,
		logger: log,
	}
}

func (uc *reservationUseCase) Import(ctx context.Context, userEmail, productID string, qty int) (*model.ImportRecord, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, model.ErrInvalidID
	}
	if qty < 1 {
		return nil, model.ErrInvalidQuantity
	}

	record, err := uc.repo.ImportStock(ctx, &dto.ImportInput{
		UserEmail: userEmail,
		ProductID: productID,
		Quantity:  qty,
	})
	if err != nil {
		return nil, err
	}

	uc.publish(reservation.EventProductImported, userEmail, productID, qty)

	return record, nil
}

func (uc *reservationUseCase) Withdraw(ctx context.Context, userEmail, productID string) (int, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return 0, model.ErrInvalidID
	}

	remaining, err := uc.repo.WithdrawOne(ctx, userEmail, productID)
	if err != nil {
		return 0, err
	}

	uc.publish(reservation.EventProductWithdrawn, userEmail, productID, 1)

	return remaining, nil
}

func (uc *reservationUseCase) ListMine(ctx context.Context, userEmail string) ([]dto.UserImport, error) {
	return uc.repo.ListGroupedByProduct(ctx, userEmail)
}

// publish emits a reservation event off the request path. Failures are logged
// and dropped; the reservation itself has already committed.
func (uc *reservationUseCase) publish(eventType, userEmail, productID string, qty int) {
	if uc.events == nil {
		return
	}

	event := reservation.ReservationEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		UserEmail: userEmail,
		ProductID: productID,
		Quantity:  qty,
		Timestamp: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.events.Publish(ctx, productID, event); err != nil {
			uc.logger.Error("failed to publish reservation event",
				zap.String("event_type", eventType),
				zap.String("product_id", productID),
				zap.Error(err),
			)
		}
	}()
}
