package postgres

// Pagination bounds for catalog listings
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
