package pagination

import (
	"errors"
	"strconv"
)

// ErrInvalidPageSize is returned when a Builder is configured with a non-positive page size.
var ErrInvalidPageSize = errors.New("pagination: page size must be > 0")

// Envelope is one page of a larger result set plus navigation links.
// Its JSON shape is part of the public API and is consumed by the reader client as-is.
type Envelope[T any] struct {
	Items    int     `json:"items"`
	Pages    int     `json:"pages"`
	Current  int     `json:"current"`
	Previous *string `json:"previous"`
	Next     *string `json:"next"`
	Data     []T     `json:"data"`
}

// Builder assembles envelopes with a fixed page size and link root.
// Build it once at startup from configuration and share it; it is immutable.
type Builder struct {
	perPage int
	rootURL string
}

// NewBuilder validates perPage and returns a Builder. rootURL is prefixed verbatim to
// every link; an empty rootURL produces links relative to the API host.
func NewBuilder(perPage int, rootURL string) (*Builder, error) {
	if perPage <= 0 {
		return nil, ErrInvalidPageSize
	}
	return &Builder{perPage: perPage, rootURL: rootURL}, nil
}

// PerPage reports the configured page size.
func (b *Builder) PerPage() int { return b.perPage }

// RootURL reports the configured link root.
func (b *Builder) RootURL() string { return b.rootURL }

// Build wraps the requested page of items into an Envelope.
//
// count is echoed in the Items field untouched; callers may pass a total that differs from
// len(items). A zero count short-circuits to the empty envelope. The page count itself is
// derived from len(items). A requestedPage below 1 is read as 1, and one past the last page
// is clamped to the last page.
func Build[T any](b *Builder, count int, basePath string, requestedPage int, items []T) Envelope[T] {
	if count == 0 {
		return Envelope[T]{Data: []T{}}
	}

	baseURL := b.rootURL + basePath
	total := TotalPages(len(items), b.perPage)

	current := max(requestedPage, 1)
	var next *string
	if current > total {
		current = total
	} else {
		next = nextLink(baseURL, total, current)
	}

	return Envelope[T]{
		Items:    count,
		Pages:    total,
		Current:  current,
		Previous: previousLink(baseURL, current),
		Next:     next,
		Data:     Paginate(items, current, b.perPage),
	}
}

// nextLink always carries the page parameter.
func nextLink(baseURL string, total, current int) *string {
	if current == total {
		return nil
	}
	s := baseURL + "?page=" + strconv.Itoa(current+1)
	return &s
}

// previousLink addresses page 1 by the bare base URL.
func previousLink(baseURL string, current int) *string {
	if current <= 1 {
		return nil
	}
	target := current - 1
	s := baseURL
	if target != 1 {
		s += "?page=" + strconv.Itoa(target)
	}
	return &s
}
