// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// RawListLimit caps the bare-array listings served when pagination is switched off.
const RawListLimit = 1000

// SearchQuery is a catalogue search. Sort and Order fall back to title/asc when unrecognised.
type SearchQuery struct {
	Q     string
	Sort  string
	Order string
	Page  int
}

// BookService defines book-oriented use cases.
type BookService interface {
	List(ctx context.Context, page int) (pagination.Envelope[model.Book], error)
	Search(ctx context.Context, q SearchQuery) (pagination.Envelope[model.Book], error)
	Get(ctx context.Context, id string) (model.Book, error)
	ListRaw(ctx context.Context) ([]model.Book, error)
}

// PageService defines page-oriented use cases.
type PageService interface {
	List(ctx context.Context, page int) (pagination.Envelope[model.Page], error)
	ListRaw(ctx context.Context) ([]model.Page, error)
	Get(ctx context.Context, id string) (model.Page, error)
	GetByParams(ctx context.Context, bookID, pageNumber string) (model.Page, error)
}
