package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/library-service/internal/cache"
	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/pagination"
	"github.com/maxviazov/library-service/internal/repository"
)

const (
	booksFile = "books.json"
	pagesFile = "pages.json"
)

// MaxBatchSize keeps a multi-row book insert (seven parameters per row) under
// Postgres's 65535 bind parameter limit.
const MaxBatchSize = 5000

// Options locate the inputs and size the work.
type Options struct {
	CorporaDir        string
	SeedDir           string
	ParagraphsPerPage int
	BatchSize         int
}

// Seeder loads corpora into the book and page stores.
type Seeder struct {
	books repository.BookRepository
	pages repository.PageRepository
	tx    repository.TxManager
	cache cache.Cache
	log   zerolog.Logger
}

func NewSeeder(books repository.BookRepository, pages repository.PageRepository, tx repository.TxManager, c cache.Cache, logger zerolog.Logger) *Seeder {
	if c == nil {
		c = cache.Noop{}
	}
	l := logger.With().Str("module", "seed").Logger()
	return &Seeder{books: books, pages: pages, tx: tx, cache: c, log: l}
}

// Result summarises one seeding run.
type Result struct {
	Books        int
	Pages        int
	BooksWritten int64
	PagesWritten int64
}

// Run loads (or generates) the seed files and inserts them in batches within one transaction.
// Rows whose id already exists are skipped, so Run can be repeated safely.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.BatchSize <= 0 {
		return Result{}, fmt.Errorf("seed batch size: %w", pagination.ErrInvalidPageSize)
	}
	if opts.BatchSize > MaxBatchSize {
		return Result{}, fmt.Errorf("seed batch size %d exceeds %d", opts.BatchSize, MaxBatchSize)
	}
	start := time.Now()

	books, pages, err := LoadOrGenerate(opts, s.log)
	if err != nil {
		return Result{}, err
	}

	res := Result{Books: len(books), Pages: len(pages)}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if res.BooksWritten, err = insertBatches(ctx, books, opts.BatchSize, s.books.InsertBatch); err != nil {
			return fmt.Errorf("insert books: %w", err)
		}
		if res.PagesWritten, err = insertBatches(ctx, pages, opts.BatchSize, s.pages.InsertBatch); err != nil {
			return fmt.Errorf("insert pages: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("seeding database failed")
		return Result{}, err
	}

	if err := s.cache.Delete(ctx, cache.KeyAllBooks, cache.KeyAllPages); err != nil {
		// stale cache only costs freshness until TTL
		s.log.Warn().Err(err).Msg("cache invalidation after seed failed")
	}

	s.log.Info().
		Int("books", res.Books).
		Int("pages", res.Pages).
		Int64("books_written", res.BooksWritten).
		Int64("pages_written", res.PagesWritten).
		Dur("took", time.Since(start)).
		Msg("database seeded")
	return res, nil
}

// insertBatches feeds items to insert batchSize at a time.
func insertBatches[T any](ctx context.Context, items []T, batchSize int, insert func(context.Context, []T) (int64, error)) (int64, error) {
	var written int64
	for p := 1; p <= pagination.TotalPages(len(items), batchSize); p++ {
		n, err := insert(ctx, pagination.Paginate(items, p, batchSize))
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// LoadOrGenerate returns the books and pages stored in the seed dir, generating and
// writing whichever file is missing from the corpora. Ids are stable once written.
func LoadOrGenerate(opts Options, logger zerolog.Logger) ([]model.Book, []model.Page, error) {
	booksPath := filepath.Join(opts.SeedDir, booksFile)
	pagesPath := filepath.Join(opts.SeedDir, pagesFile)

	var books []model.Book
	found, err := readJSON(booksPath, &books)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		if books, err = BuildBooks(opts.CorporaDir); err != nil {
			return nil, nil, fmt.Errorf("generate %s: %w", booksPath, err)
		}
	}

	var pages []model.Page
	if found {
		pagesFound, err := readJSON(pagesPath, &pages)
		if err != nil {
			return nil, nil, err
		}
		if pagesFound {
			logger.Debug().Str("dir", opts.SeedDir).Msg("using existing seed files")
			return books, pages, nil
		}
	}

	// freshly generated books have new ids, so any old pages file is stale too
	if pages, err = BuildPages(opts.CorporaDir, books, opts.ParagraphsPerPage); err != nil {
		return nil, nil, fmt.Errorf("generate %s: %w", pagesPath, err)
	}
	if err := writeJSON(pagesPath, pages); err != nil {
		return nil, nil, err
	}
	logger.Info().Str("path", pagesPath).Int("pages", len(pages)).Msg("seed file written")

	// page counts are only known after paginating, so books are always rewritten here
	if err := writeJSON(booksPath, books); err != nil {
		return nil, nil, err
	}
	logger.Info().Str("path", booksPath).Int("books", len(books)).Msg("seed file written")
	return books, pages, nil
}

func readJSON(path string, dst any) (bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create seed dir: %w", err)
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
