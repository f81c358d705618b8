package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/repository"
	"github.com/maxviazov/library-service/internal/service"
)

type fakePageRepo struct {
	items    []model.Page
	lastPage repository.Page
	lookups  int
}

func (f *fakePageRepo) ListAll(context.Context) ([]model.Page, error) { return f.items, nil }

func (f *fakePageRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.Page], error) {
	f.lastPage = p
	return repository.PageResult[model.Page]{Items: f.items, Total: len(f.items)}, nil
}

func (f *fakePageRepo) GetByID(_ context.Context, id uuid.UUID) (model.Page, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Page{}, repository.ErrNotFound
}

func (f *fakePageRepo) GetByBookAndNumber(_ context.Context, bookID uuid.UUID, n int) (model.Page, error) {
	f.lookups++
	for _, p := range f.items {
		if p.BookID == bookID && p.PageNumber == n {
			return p, nil
		}
	}
	return model.Page{}, repository.ErrNotFound
}

func (f *fakePageRepo) InsertBatch(_ context.Context, pages []model.Page) (int64, error) {
	f.items = append(f.items, pages...)
	return int64(len(pages)), nil
}

var _ repository.PageRepository = (*fakePageRepo)(nil)

func bookPages(bookID uuid.UUID, n int) []model.Page {
	out := make([]model.Page, n)
	for i := range out {
		out[i] = model.Page{ID: uuid.New(), PageNumber: i + 1, Body: "body", BookID: bookID}
	}
	return out
}

func TestPageService_List(t *testing.T) {
	repo := &fakePageRepo{items: bookPages(uuid.New(), 7)}
	svc := service.NewPageService(repo, newBuilder(t, 3), nil, zerolog.New(io.Discard))

	env, err := svc.List(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, 7, env.Items)
	assert.Equal(t, 3, env.Pages)
	assert.Equal(t, 3, env.Current)
	assert.Nil(t, env.Next)
	require.NotNil(t, env.Previous)
	assert.Equal(t, "http://api.test/pages?page=2", *env.Previous)
	require.Len(t, env.Data, 1)
	assert.Equal(t, 7, env.Data[0].PageNumber)
}

func TestPageService_ListRaw(t *testing.T) {
	repo := &fakePageRepo{items: bookPages(uuid.New(), 2)}
	svc := service.NewPageService(repo, newBuilder(t, 3), nil, zerolog.New(io.Discard))

	out, err := svc.ListRaw(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, service.RawListLimit, repo.lastPage.Limit)
}

func TestPageService_Get(t *testing.T) {
	pages := bookPages(uuid.New(), 2)
	svc := service.NewPageService(&fakePageRepo{items: pages}, newBuilder(t, 3), nil, zerolog.New(io.Discard))

	got, err := svc.Get(context.Background(), pages[1].ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, got.PageNumber)

	_, err = svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestPageService_GetByParams(t *testing.T) {
	bookID := uuid.New()
	repo := &fakePageRepo{items: bookPages(bookID, 10)}
	svc := service.NewPageService(repo, newBuilder(t, 3), nil, zerolog.New(io.Discard))
	ctx := context.Background()

	got, err := svc.GetByParams(ctx, bookID.String(), "3")
	require.NoError(t, err)
	assert.Equal(t, 3, got.PageNumber)
	assert.Equal(t, bookID, got.BookID)

	// leading zeros are decimal, not octal
	got, err = svc.GetByParams(ctx, bookID.String(), "010")
	require.NoError(t, err)
	assert.Equal(t, 10, got.PageNumber)

	_, err = svc.GetByParams(ctx, bookID.String(), "11")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	cases := []struct {
		name       string
		bookID     string
		pageNumber string
		wantFields []string
	}{
		{"missing both", "", "", []string{"book-id", "page-number"}},
		{"bad uuid", "abc", "1", []string{"book-id"}},
		{"zero page", bookID.String(), "0", []string{"page-number"}},
		{"negative page", bookID.String(), "-2", []string{"page-number"}},
		{"non numeric page", bookID.String(), "three", []string{"page-number"}},
		{"hex page", bookID.String(), "0x2", []string{"page-number"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := repo.lookups
			_, err := svc.GetByParams(ctx, tc.bookID, tc.pageNumber)
			require.ErrorIs(t, err, service.ErrInvalidInput)
			var fields []string
			for _, fe := range service.FieldErrors(err) {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tc.wantFields, fields)
			assert.Equal(t, before, repo.lookups, "invalid input must not reach the store")
		})
	}
}
