package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maxviazov/library-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager runs fn inside a transaction; stores called with the ctx it receives join it.
// I prefer a single entry point so the seeding transaction boundary stays explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// BookRepository declares persistence operations for books.
// Listing returns books ordered by title so envelopes slice a stable sequence.
type BookRepository interface {
	ListAll(ctx context.Context) ([]model.Book, error)
	List(ctx context.Context, p Page) (PageResult[model.Book], error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Book, error)
	// InsertBatch inserts books, skipping ids that already exist. It returns the number of rows written.
	InsertBatch(ctx context.Context, books []model.Book) (int64, error)
}

// PageRepository declares persistence operations for book pages.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type PageRepository interface {
	ListAll(ctx context.Context) ([]model.Page, error)
	List(ctx context.Context, p Page) (PageResult[model.Page], error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Page, error)
	GetByBookAndNumber(ctx context.Context, bookID uuid.UUID, pageNumber int) (model.Page, error)
	InsertBatch(ctx context.Context, pages []model.Page) (int64, error)
}
