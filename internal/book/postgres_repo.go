package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tableName = "finished_books"

// PostgresRepo keeps the collection in the finished_books table.
// Save replaces the whole table inside one transaction.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	logger  *slog.Logger
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration, logger *slog.Logger) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, logger: logger}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Load(ctx context.Context) ([]Book, error) {
	const query = `
		SELECT title, author
		FROM finished_books
		ORDER BY position ASC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, &StorageError{Op: "load", Path: tableName, Err: err}
	}
	books, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Book])
	if err != nil {
		return nil, &StorageError{Op: "load", Path: tableName, Err: err}
	}

	r.logger.DebugContext(ctx, "collection loaded", "path", tableName, "count", len(books))
	return books, nil
}

func (r *PostgresRepo) Save(ctx context.Context, books []Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return &StorageError{Op: "save", Path: tableName, Err: err}
	}
	defer tx.Rollback(timeoutCtx)

	if _, err := tx.Exec(timeoutCtx, `DELETE FROM finished_books`); err != nil {
		return &StorageError{Op: "save", Path: tableName, Err: err}
	}

	_, err = tx.CopyFrom(
		timeoutCtx,
		pgx.Identifier{tableName},
		[]string{"position", "title", "author"},
		pgx.CopyFromSlice(len(books), func(i int) ([]any, error) {
			return []any{i, books[i].Title, books[i].Author}, nil
		}),
	)
	if err != nil {
		return &StorageError{Op: "save", Path: tableName, Err: err}
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return &StorageError{Op: "save", Path: tableName, Err: err}
	}

	r.logger.DebugContext(ctx, "collection saved", "path", tableName, "count", len(books))
	return nil
}
