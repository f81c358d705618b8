// Package contract holds behavior suites every repository implementation must pass.
// Storage-specific tests supply factories; the suites own the assertions.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/repository"
)

type BookFactory func(t *testing.T) (repository.BookRepository, func())

type PageFactory func(t *testing.T) (repo repository.PageRepository, books repository.BookRepository, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, books repository.BookRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// NewBook returns a book with a fresh id.
func NewBook(title string) model.Book {
	author := "Jane Austen"
	year := 1816
	return model.Book{
		ID:        uuid.New(),
		Title:     title,
		Slug:      title,
		Author:    &author,
		PubYear:   &year,
		PageCount: 3,
		File:      title + ".txt",
	}
}

func RunBookRepositoryContract(t *testing.T, makeRepo BookFactory) {
	t.Helper()

	t.Run("insert_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		b := NewBook("emma")
		b.Author, b.PubYear = nil, nil
		n, err := repo.InsertBatch(ctx, []model.Book{b})
		if err != nil || n != 1 {
			t.Fatalf("insert: n=%d err=%v", n, err)
		}
		got, err := repo.GetByID(ctx, b.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != b.ID || got.Title != "emma" || got.Author != nil || got.PubYear != nil {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), uuid.New())
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("insert_skips_existing_ids", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		b := NewBook("persuasion")
		if _, err := repo.InsertBatch(ctx, []model.Book{b}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		n, err := repo.InsertBatch(ctx, []model.Book{b, NewBook("sense")})
		if err != nil || n != 1 {
			t.Fatalf("expected one new row, n=%d err=%v", n, err)
		}
	})

	t.Run("list_all_ordered_by_title", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.InsertBatch(ctx, []model.Book{NewBook("c"), NewBook("a"), NewBook("b")}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		all, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 3 || all[0].Title != "a" || all[2].Title != "c" {
			t.Fatalf("unexpected order: %+v", all)
		}
	})

	t.Run("list_window_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		books := make([]model.Book, 0, 7)
		for i := 0; i < 7; i++ {
			books = append(books, NewBook(fmt.Sprintf("book-%d", i)))
		}
		if _, err := repo.InsertBatch(ctx, books); err != nil {
			t.Fatalf("seed: %v", err)
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 3})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 || res.Items[0].Title != "book-3" {
			t.Fatalf("unexpected window: len=%d total=%d", len(res.Items), res.Total)
		}
	})
}

func RunPageRepositoryContract(t *testing.T, makeRepo PageFactory) {
	t.Helper()

	seedBook := func(t *testing.T, books repository.BookRepository) model.Book {
		t.Helper()
		b := NewBook("mansfield-park")
		if _, err := books.InsertBatch(context.Background(), []model.Book{b}); err != nil {
			t.Fatalf("seed book: %v", err)
		}
		return b
	}

	t.Run("insert_and_lookup", func(t *testing.T) {
		repo, books, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		b := seedBook(t, books)
		pages := []model.Page{
			{ID: uuid.New(), PageNumber: 1, Body: "first", BookID: b.ID},
			{ID: uuid.New(), PageNumber: 2, Body: "second", BookID: b.ID},
		}
		if n, err := repo.InsertBatch(ctx, pages); err != nil || n != 2 {
			t.Fatalf("insert: n=%d err=%v", n, err)
		}
		got, err := repo.GetByBookAndNumber(ctx, b.ID, 2)
		if err != nil || got.Body != "second" {
			t.Fatalf("by params: %+v err=%v", got, err)
		}
		byID, err := repo.GetByID(ctx, pages[0].ID)
		if err != nil || byID.PageNumber != 1 {
			t.Fatalf("by id: %+v err=%v", byID, err)
		}
		all, err := repo.ListAll(ctx)
		if err != nil || len(all) != 2 || all[0].PageNumber != 1 {
			t.Fatalf("list all: %+v err=%v", all, err)
		}
	})

	t.Run("lookup_not_found", func(t *testing.T) {
		repo, books, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		b := seedBook(t, books)
		if _, err := repo.GetByBookAndNumber(context.Background(), b.ID, 99); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("orphan_page_conflicts", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.InsertBatch(context.Background(), []model.Page{{ID: uuid.New(), PageNumber: 1, Body: "x", BookID: uuid.New()}})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, books, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		b := NewBook("tx-commit")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := books.InsertBatch(ctx, []model.Book{b})
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := books.GetByID(ctx, b.ID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, books, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		b := NewBook("tx-rollback")
		marker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := books.InsertBatch(ctx, []model.Book{b}); err != nil {
				return err
			}
			return marker
		})
		if !errors.Is(err, marker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := books.GetByID(ctx, b.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
