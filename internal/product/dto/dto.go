package dto

type ProductFilters struct {
	SearchQuery string // Case-insensitive substring match on name
	CreatedBy   string // Owner email, for the my-exports view
	Latest      bool   // Sort by created_at DESC
	Limit       int    // 0 means no cap
}
