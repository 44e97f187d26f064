package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/reservation/dto"
	"github.com/carhub/catalog-service/pkg/db"
	"github.com/google/uuid"
)

type PGRepository struct {
	conn *db.Postgres
}

func NewPGRepository(conn *db.Postgres) *PGRepository {
	return &PGRepository{conn: conn}
}

func (r *PGRepository) ImportStock(ctx context.Context, input *dto.ImportInput) (*model.ImportRecord, error) {
	dbx, err := r.conn.Get(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := dbx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Conditional decrement closes the check-then-act race: the guard and the
	// write are one statement.
	res, err := tx.ExecContext(ctx, `
        UPDATE products
        SET available_quantity = available_quantity - $1, updated_at = now()
        WHERE id = $2 AND available_quantity >= $1
    `, input.Quantity, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			"SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)", input.ProductID); err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.ErrProductNotFound
		}
		return nil, model.ErrInsufficientStock
	}

	var record model.ImportRecord
	err = tx.GetContext(ctx, &record, `
        INSERT INTO imports (id, user_email, product_id, imported_quantity, status, imported_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_email, product_id)
        DO UPDATE SET imported_quantity = imports.imported_quantity + EXCLUDED.imported_quantity
        RETURNING *
    `, uuid.New().String(), input.UserEmail, input.ProductID, input.Quantity,
		model.ImportStatusPending, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert import record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PGRepository) WithdrawOne(ctx context.Context, userEmail, productID string) (int, error) {
	dbx, err := r.conn.Get(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := dbx.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Lock order must match ImportStock: products row first, imports row
	// second, or concurrent import/withdraw for the same pair deadlocks.
	// A missing record rolls the increment back.
	res, err := tx.ExecContext(ctx, `
        UPDATE products
        SET available_quantity = available_quantity + 1, updated_at = now()
        WHERE id = $1
    `, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to restore stock: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		// No product row means no import row either (FK with cascade).
		return 0, model.ErrImportNotFound
	}

	var record model.ImportRecord
	err = tx.GetContext(ctx, &record, `
        SELECT * FROM imports
        WHERE user_email = $1 AND product_id = $2
        FOR UPDATE
    `, userEmail, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, model.ErrImportNotFound
		}
		return 0, err
	}

	if record.ImportedQuantity == 1 {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM imports WHERE id = $1", record.ID); err != nil {
			return 0, fmt.Errorf("failed to delete import record: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx,
			"UPDATE imports SET imported_quantity = imported_quantity - 1 WHERE id = $1",
			record.ID); err != nil {
			return 0, fmt.Errorf("failed to decrement import record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return record.ImportedQuantity - 1, nil
}

func (r *PGRepository) ListGroupedByProduct(ctx context.Context, userEmail string) ([]dto.UserImport, error) {
	dbx, err := r.conn.Get(ctx)
	if err != nil {
		return nil, err
	}

	// The unique (user_email, product_id) index makes duplicates impossible
	// in steady state; the GROUP BY keeps the view correct regardless.
	imports := []dto.UserImport{}
	err = dbx.SelectContext(ctx, &imports, `
        SELECT
            i.product_id,
            array_agg(i.id ORDER BY i.imported_at) AS record_ids,
            sum(i.imported_quantity)::int AS total_quantity,
            p.name,
            p.price,
            p.origin_country,
            p.rating,
            p.product_image
        FROM imports i
        JOIN products p ON p.id = i.product_id
        WHERE i.user_email = $1
        GROUP BY i.product_id, p.name, p.price, p.origin_country, p.rating, p.product_image
        ORDER BY min(i.imported_at) DESC
    `, userEmail)
	if err != nil {
		return nil, err
	}
	return imports, nil
}
