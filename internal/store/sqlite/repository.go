// Package sqlite is the RecordStore backed by a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"saledash/internal/core"
	applog "saledash/internal/log"
	"saledash/internal/query"
	"saledash/internal/store"

	_ "modernc.org/sqlite"
)

const selectColumns = "id, title, description, price, category, sold, date_of_sale, image"

type Repository struct {
	db *sql.DB
}

var _ store.RecordStore = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// DeleteAll implements store.RecordWriter
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions")
	if err != nil {
		return 0, core.NewStoreError("delete all", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, core.NewStoreError("delete all", err)
	}
	slog.InfoContext(ctx, "Transactions deleted from SQLite",
		applog.FieldComponent, applog.ComponentStorage, "count", n)
	return n, nil
}

// InsertMany implements store.RecordWriter. The batch is written in one
// SQL transaction.
func (r *Repository) InsertMany(ctx context.Context, records []core.Transaction) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, core.NewStoreError("insert many", fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transactions
		(title, description, price, category, sold, date_of_sale, image)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, core.NewStoreError("insert many", fmt.Errorf("prepare: %w", err))
	}
	defer stmt.Close()

	for _, t := range records {
		if _, err := stmt.ExecContext(ctx, t.Title, t.Description, t.Price, t.Category, t.Sold, t.DateOfSale, t.Image); err != nil {
			return 0, core.NewStoreError("insert many", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, core.NewStoreError("insert many", fmt.Errorf("commit: %w", err))
	}

	slog.InfoContext(ctx, "Transactions saved to SQLite",
		applog.FieldComponent, applog.ComponentStorage, "count", len(records))
	return len(records), nil
}

// Find implements store.RecordReader
func (r *Repository) Find(ctx context.Context, f query.Filter, opts store.FindOptions) ([]core.Transaction, error) {
	where, args := whereClause(f)
	limit := -1
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	q := "SELECT " + selectColumns + " FROM transactions" + where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, opts.Skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, core.NewStoreError("find", err)
	}
	defer rows.Close()

	out := make([]core.Transaction, 0)
	for rows.Next() {
		var (
			t  core.Transaction
			id int64
		)
		if err := rows.Scan(&id, &t.Title, &t.Description, &t.Price, &t.Category, &t.Sold, &t.DateOfSale, &t.Image); err != nil {
			return nil, core.NewStoreError("find", fmt.Errorf("scan: %w", err))
		}
		t.ID = strconv.FormatInt(id, 10)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("find", err)
	}
	return out, nil
}

// Count implements store.RecordReader
func (r *Repository) Count(ctx context.Context, f query.Filter) (int64, error) {
	where, args := whereClause(f)
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&n); err != nil {
		return 0, core.NewStoreError("count", err)
	}
	return n, nil
}

// whereClause translates the filter. instr() keeps the matches literal, so
// search text needs no LIKE escaping. SQLite lower() only folds ASCII.
func whereClause(f query.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if p := f.MonthPattern(); p != "" {
		conds = append(conds, "instr(date_of_sale, ?) > 0")
		args = append(args, p)
	}
	if f.HasSearch() {
		or := "instr(lower(title), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0"
		args = append(args, f.Search, f.Search)
		if f.Price != nil {
			or += " OR price = ?"
			args = append(args, *f.Price)
		}
		conds = append(conds, "("+or+")")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
