package model

import "time"

const ImportStatusPending = "pending"

// ImportRecord is a user's standing reservation against a product's stock.
// At most one record exists per (user_email, product_id) pair; repeat imports
// merge into it instead of creating duplicates.
type ImportRecord struct {
	ID               string    `db:"id" json:"id"`
	UserEmail        string    `db:"user_email" json:"userEmail"`
	ProductID        string    `db:"product_id" json:"productId"`
	ImportedQuantity int       `db:"imported_quantity" json:"importedQuantity"`
	Status           string    `db:"status" json:"status"`
	ImportedAt       time.Time `db:"imported_at" json:"importedAt"`
}
