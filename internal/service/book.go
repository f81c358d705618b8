package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/maxviazov/library-service/internal/cache"
	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/pagination"
	"github.com/maxviazov/library-service/internal/repository"
)

const (
	booksPath      = "/books"
	bookSearchPath = "/books/search"
)

// bookService serves the catalogue. Listings and search work on the full book set,
// which is small enough to keep in the cache as one entry.
type bookService struct {
	repo    repository.BookRepository
	builder *pagination.Builder
	cache   cache.Cache
	log     zerolog.Logger
}

func NewBookService(repo repository.BookRepository, builder *pagination.Builder, c cache.Cache, logger zerolog.Logger) BookService {
	if c == nil {
		c = cache.Noop{}
	}
	l := logger.With().Str("module", "service").Str("component", "book").Logger()
	return &bookService{repo: repo, builder: builder, cache: c, log: l}
}

func (s *bookService) List(ctx context.Context, page int) (pagination.Envelope[model.Book], error) {
	books, err := cachedList(ctx, s.cache, cache.KeyAllBooks, s.repo.ListAll, s.log)
	if err != nil {
		s.log.Error().Err(err).Msg("list books failed")
		return pagination.Envelope[model.Book]{}, err
	}
	return pagination.Build(s.builder, len(books), booksPath, normalizePage(page), books), nil
}

// Search matches q case-insensitively against title and author. An empty q matches nothing;
// whitespace is a literal substring like any other.
func (s *bookService) Search(ctx context.Context, q SearchQuery) (pagination.Envelope[model.Book], error) {
	start := time.Now()
	needle := strings.ToLower(q.Q)
	if needle == "" {
		return pagination.Build(s.builder, 0, bookSearchPath, 1, []model.Book{}), nil
	}

	books, err := cachedList(ctx, s.cache, cache.KeyAllBooks, s.repo.ListAll, s.log)
	if err != nil {
		s.log.Error().Err(err).Str("q", q.Q).Msg("search books failed")
		return pagination.Envelope[model.Book]{}, err
	}

	matched := lo.Filter(books, func(b model.Book, _ int) bool {
		return strings.Contains(strings.ToLower(b.Title), needle) ||
			(b.Author != nil && strings.Contains(strings.ToLower(*b.Author), needle))
	})
	sortBooks(matched, validateOrderBy(q.Sort), validateOrder(q.Order))

	s.log.Debug().
		Str("q", q.Q).
		Str("sort", validateOrderBy(q.Sort)).
		Int("matched", len(matched)).
		Dur("took", time.Since(start)).
		Msg("books searched")
	return pagination.Build(s.builder, len(matched), bookSearchPath, normalizePage(q.Page), matched), nil
}

func (s *bookService) Get(ctx context.Context, id string) (model.Book, error) {
	var ferrs []FieldError
	bookID := parseID("id", id, &ferrs)
	if err := newInvalidInput(ferrs); err != nil {
		return model.Book{}, err
	}
	return s.repo.GetByID(ctx, bookID)
}

func (s *bookService) ListRaw(ctx context.Context) ([]model.Book, error) {
	res, err := s.repo.List(ctx, repository.Page{Limit: RawListLimit})
	if err != nil {
		s.log.Error().Err(err).Int("limit", RawListLimit).Msg("list books failed")
		return nil, err
	}
	return res.Items, nil
}

// sortBooks orders books in place by column. Missing authors and years sort after
// present ones ascending and before them descending. Ties keep their stored order.
func sortBooks(books []model.Book, column, order string) {
	cmpFn := bookComparator(column)
	if order == "desc" {
		asc := cmpFn
		cmpFn = func(a, b model.Book) int { return -asc(a, b) }
	}
	slices.SortStableFunc(books, cmpFn)
}

func bookComparator(column string) func(a, b model.Book) int {
	switch column {
	case "slug":
		return func(a, b model.Book) int { return cmp.Compare(a.Slug, b.Slug) }
	case "author":
		return func(a, b model.Book) int { return compareOptional(a.Author, b.Author) }
	case "pub_year":
		return func(a, b model.Book) int { return compareOptional(a.PubYear, b.PubYear) }
	case "id":
		return func(a, b model.Book) int { return cmp.Compare(a.ID.String(), b.ID.String()) }
	case "page_count":
		return func(a, b model.Book) int { return cmp.Compare(a.PageCount, b.PageCount) }
	case "file":
		return func(a, b model.Book) int { return cmp.Compare(a.File, b.File) }
	default:
		return func(a, b model.Book) int { return cmp.Compare(a.Title, b.Title) }
	}
}

func compareOptional[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}

// cachedList reads key from c, falling back to load and storing its result.
// Cache failures are logged and never fail the request.
func cachedList[T any](ctx context.Context, c cache.Cache, key string, load func(context.Context) ([]T, error), log zerolog.Logger) ([]T, error) {
	var items []T
	found, err := c.Get(ctx, key, &items)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if found && err == nil {
		return items, nil
	}

	items, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return items, nil
}
