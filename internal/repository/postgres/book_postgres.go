package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/library-service/internal/model"
	"github.com/maxviazov/library-service/internal/repository"
)

const bookColumns = `id, title, slug, author, pub_year, page_count, file`

var bookInsertColumns = []string{"id", "title", "slug", "author", "pub_year", "page_count", "file"}

type bookRepository struct{ pool *pgxpool.Pool }

func NewBookRepository(pool *pgxpool.Pool) repository.BookRepository {
	return &bookRepository{pool: pool}
}

func scanBook(row pgx.Row, extra ...any) (model.Book, error) {
	var b model.Book
	dest := append([]any{&b.ID, &b.Title, &b.Slug, &b.Author, &b.PubYear, &b.PageCount, &b.File}, extra...)
	err := row.Scan(dest...)
	return b, err
}

func (r *bookRepository) ListAll(ctx context.Context) ([]model.Book, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title, id`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *bookRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Book], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Book]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+bookColumns+`, COUNT(*) OVER() AS total
		 FROM books
		 ORDER BY title, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Book]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Book]{Items: make([]model.Book, 0, limit)}
	for rows.Next() {
		var total int
		b, err := scanBook(rows, &total)
		if err != nil {
			return repository.PageResult[model.Book]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, b)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Book]{}, repository.MapPgError(err)
	}
	return res, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Book, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Book{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id,
	)
	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, repository.ErrNotFound
		}
		return model.Book{}, repository.MapPgError(err)
	}
	return b, nil
}

func (r *bookRepository) InsertBatch(ctx context.Context, books []model.Book) (int64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	if len(books) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(books)*len(bookInsertColumns))
	for _, b := range books {
		args = append(args, b.ID, b.Title, b.Slug, b.Author, b.PubYear, b.PageCount, b.File)
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, insertManySQL("books", bookInsertColumns, len(books)), args...)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return tag.RowsAffected(), nil
}

var _ repository.BookRepository = (*bookRepository)(nil)
