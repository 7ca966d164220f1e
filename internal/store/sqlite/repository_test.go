package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saledash/internal/core"
	"saledash/internal/query"
	"saledash/internal/store"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryInsertFindCount(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	recs := make([]core.Transaction, 25)
	for i := range recs {
		recs[i] = core.Transaction{
			Title:       fmt.Sprintf("item %02d", i+1),
			Description: "desc",
			Price:       float64(i + 1),
			Category:    "A",
			Sold:        i%2 == 0,
			DateOfSale:  "2021-08-15T10:00:00+05:30",
		}
	}
	n, err := repo.InsertMany(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	page, err := repo.Find(ctx, query.MonthFilter("8"), store.PageOptions(query.Page{Number: 2, PerPage: 10}))
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, "item 11", page[0].Title)
	assert.Equal(t, "item 20", page[9].Title)
	assert.True(t, page[0].Sold)
	assert.NotEmpty(t, page[0].ID)

	total, err := repo.Count(ctx, query.MonthFilter("8"))
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)

	none, err := repo.Count(ctx, query.MonthFilter("9"))
	require.NoError(t, err)
	assert.Zero(t, none)
}

func TestRepositorySearch(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.InsertMany(ctx, []core.Transaction{
		{Title: "Mens Cotton Jacket", Description: "warm", Price: 55.99, DateOfSale: "2022-03-01"},
		{Title: "Backpack", Description: "fits LAPTOPS", Price: 450, DateOfSale: "2022-03-02"},
		{Title: "Ring", Description: "100% silver", Price: 10, DateOfSale: "2022-04-02"},
	})
	require.NoError(t, err)

	titles := func(f query.Filter) []string {
		got, err := repo.Find(ctx, f, store.FindOptions{})
		require.NoError(t, err)
		out := []string{}
		for _, r := range got {
			out = append(out, r.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Mens Cotton Jacket"}, titles(query.BuildFilter("", "jACKET")))
	assert.Equal(t, []string{"Backpack"}, titles(query.BuildFilter("", "laptop")))
	assert.Equal(t, []string{"Backpack"}, titles(query.BuildFilter("", "450")))
	assert.Equal(t, []string{"Mens Cotton Jacket"}, titles(query.BuildFilter("", "55.99")))
	assert.Equal(t, []string{"Ring"}, titles(query.BuildFilter("", "%")))
	assert.Empty(t, titles(query.BuildFilter("03", "ring")))
}

func TestRepositoryDeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.InsertMany(ctx, []core.Transaction{{Title: "a"}, {Title: "b"}})
	require.NoError(t, err)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	n, err := repo.Count(ctx, query.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepositoryMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	repo, err := NewRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	require.NoError(t, RunMigrations(path))
}

func TestWhereClause(t *testing.T) {
	where, args := whereClause(query.Filter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = whereClause(query.BuildFilter("08", "abc"))
	assert.Equal(t, " WHERE instr(date_of_sale, ?) > 0 AND (instr(lower(title), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0)", where)
	assert.Equal(t, []any{"-08-", "abc", "abc"}, args)

	where, args = whereClause(query.BuildFilter("", "12.5"))
	assert.Contains(t, where, "OR price = ?")
	assert.Equal(t, []any{"12.5", "12.5", 12.5}, args)
}
