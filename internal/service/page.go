package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maxviazov/library-service/internal/cache"
	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/pagination"
	"github.com/maxviazov/library-service/internal/repository"
)

const pagesPath = "/pages"

type pageService struct {
	repo    repository.PageRepository
	builder *pagination.Builder
	cache   cache.Cache
	log     zerolog.Logger
}

func NewPageService(repo repository.PageRepository, builder *pagination.Builder, c cache.Cache, logger zerolog.Logger) PageService {
	if c == nil {
		c = cache.Noop{}
	}
	l := logger.With().Str("module", "service").Str("component", "page").Logger()
	return &pageService{repo: repo, builder: builder, cache: c, log: l}
}

func (s *pageService) List(ctx context.Context, page int) (pagination.Envelope[model.Page], error) {
	pages, err := cachedList(ctx, s.cache, cache.KeyAllPages, s.repo.ListAll, s.log)
	if err != nil {
		s.log.Error().Err(err).Msg("list pages failed")
		return pagination.Envelope[model.Page]{}, err
	}
	return pagination.Build(s.builder, len(pages), pagesPath, normalizePage(page), pages), nil
}

func (s *pageService) ListRaw(ctx context.Context) ([]model.Page, error) {
	res, err := s.repo.List(ctx, repository.Page{Limit: RawListLimit})
	if err != nil {
		s.log.Error().Err(err).Int("limit", RawListLimit).Msg("list pages failed")
		return nil, err
	}
	return res.Items, nil
}

func (s *pageService) Get(ctx context.Context, id string) (model.Page, error) {
	var ferrs []FieldError
	pageID := parseID("id", id, &ferrs)
	if err := newInvalidInput(ferrs); err != nil {
		return model.Page{}, err
	}
	return s.repo.GetByID(ctx, pageID)
}

// GetByParams looks a page up by its book and its 1-based number within that book.
func (s *pageService) GetByParams(ctx context.Context, bookID, pageNumber string) (model.Page, error) {
	var ferrs []FieldError
	id := parseID("book-id", bookID, &ferrs)
	n := parsePageNumber("page-number", pageNumber, &ferrs)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("book_id_raw", bookID).Str("page_number_raw", pageNumber).Interface("field_errors", ferrs).Msg("page lookup validation failed")
		return model.Page{}, err
	}
	return s.repo.GetByBookAndNumber(ctx, id, n)
}
