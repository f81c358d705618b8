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

const pageColumns = `id, page_number, body, book_id`

var pageInsertColumns = []string{"id", "page_number", "body", "book_id"}

type pageRepository struct{ pool *pgxpool.Pool }

func NewPageRepository(pool *pgxpool.Pool) repository.PageRepository {
	return &pageRepository{pool: pool}
}

func scanPage(row pgx.Row, extra ...any) (model.Page, error) {
	var p model.Page
	dest := append([]any{&p.ID, &p.PageNumber, &p.Body, &p.BookID}, extra...)
	err := row.Scan(dest...)
	return p, err
}

func (r *pageRepository) ListAll(ctx context.Context) ([]model.Page, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY book_id, page_number`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Page, 0)
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *pageRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Page], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Page]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+pageColumns+`, COUNT(*) OVER() AS total
		 FROM pages
		 ORDER BY book_id, page_number
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Page]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Page]{Items: make([]model.Page, 0, limit)}
	for rows.Next() {
		var total int
		it, err := scanPage(rows, &total)
		if err != nil {
			return repository.PageResult[model.Page]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Page]{}, repository.MapPgError(err)
	}
	return res, nil
}

func (r *pageRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Page, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Page{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE id = $1`, id,
	)
	return notFoundOnNoRows(scanPage(row))
}

func (r *pageRepository) GetByBookAndNumber(ctx context.Context, bookID uuid.UUID, pageNumber int) (model.Page, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Page{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE book_id = $1 AND page_number = $2 LIMIT 1`,
		bookID, pageNumber,
	)
	return notFoundOnNoRows(scanPage(row))
}

func (r *pageRepository) InsertBatch(ctx context.Context, pages []model.Page) (int64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	if len(pages) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(pages)*len(pageInsertColumns))
	for _, p := range pages {
		args = append(args, p.ID, p.PageNumber, p.Body, p.BookID)
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, insertManySQL("pages", pageInsertColumns, len(pages)), args...)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return tag.RowsAffected(), nil
}

func notFoundOnNoRows(p model.Page, err error) (model.Page, error) {
	if err == nil {
		return p, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Page{}, repository.ErrNotFound
	}
	return model.Page{}, repository.MapPgError(err)
}

var _ repository.PageRepository = (*pageRepository)(nil)
