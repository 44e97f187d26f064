package dto

import "github.com/lib/pq"

// UserImport is one row of the grouped my-imports view: all of a user's
// import records for a single product, merged, with the product's display
// fields attached.
type UserImport struct {
	ProductID     string         `db:"product_id" json:"productId"`
	RecordIDs     pq.StringArray `db:"record_ids" json:"recordIds"`
	TotalQuantity int            `db:"total_quantity" json:"totalQuantity"`
	Name          string         `db:"name" json:"name"`
	Price         float64        `db:"price" json:"price"`
	OriginCountry string         `db:"origin_country" json:"originCountry"`
	Rating        float64        `db:"rating" json:"rating"`
	ProductImage  string         `db:"product_image" json:"productImage"`
}
