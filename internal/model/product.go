package model

type Product struct {
	BaseModel
	Name              string  `db:"name" json:"name"`
	Price             float64 `db:"price" json:"price"`
	OriginCountry     string  `db:"origin_country" json:"originCountry"`
	Rating            float64 `db:"rating" json:"rating"`
	ProductImage      string  `db:"product_image" json:"productImage"`
	AvailableQuantity int     `db:"available_quantity" json:"availableQuantity"`
	CreatedBy         *string `db:"created_by" json:"createdBy"` // Nullable, seed data has no owner
}
