package repository

// Page is a limit/offset window for the non-paginated listing mode,
// where the API returns a capped bare array instead of an envelope.
type Page struct {
	Limit  int
	Offset int
}

// PageResult carries a window of items and the total count matching the query.
// I return the total so callers never need a second COUNT round trip.
type PageResult[T any] struct {
	Items []T
	Total int
}
