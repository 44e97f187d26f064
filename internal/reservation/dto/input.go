package dto

type ImportInput struct {
	UserEmail string
	ProductID string
	Quantity  int
}
