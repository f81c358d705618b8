// Package pagination cuts ordered result sets into fixed-size pages and wraps a page
// into the response envelope the API returns for every listing endpoint.
// Everything here is pure: no I/O, no shared state, safe to call from any goroutine.
package pagination

// TotalPages returns how many pages of pageSize are needed to hold n items.
// A non-positive pageSize yields zero pages.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the pageNumber-th (1-based) slice of items, pageSize items at most.
//
// A page number past the last page is clamped to the last page, so asking for page 9999
// of a 3-page list returns page 3. An empty input, or a non-positive pageSize, yields an
// empty slice. Page numbers below 1 are served as page 1.
//
// The result is a fresh slice; items is never modified.
func Paginate[T any](items []T, pageNumber, pageSize int) []T {
	total := TotalPages(len(items), pageSize)
	if total == 0 {
		return []T{}
	}
	pageNumber = max(1, min(pageNumber, total))

	start := (pageNumber - 1) * pageSize
	end := min(start+pageSize, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
