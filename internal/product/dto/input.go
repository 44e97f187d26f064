package dto

type CreateProductInput struct {
	Name              string
	Price             float64
	OriginCountry     string
	Rating            float64
	ProductImage      string
	AvailableQuantity int
}

// UpdateProductInput is a partial patch: nil fields are left untouched.
type UpdateProductInput struct {
	Name              *string
	Price             *float64
	OriginCountry     *string
	Rating            *float64
	ProductImage      *string
	AvailableQuantity *int
}
