package memory

import (
	"context"
	"fmt"
	"testing"

	"saledash/internal/core"
	"saledash/internal/query"
	"saledash/internal/store"
)

func seed(t *testing.T, s *Store, n int) {
	t.Helper()
	recs := make([]core.Transaction, n)
	for i := range recs {
		recs[i] = core.Transaction{
			Title:      fmt.Sprintf("item %d", i+1),
			Price:      float64(i + 1),
			DateOfSale: "2021-08-15",
		}
	}
	if _, err := s.InsertMany(context.Background(), recs); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestMemoryStoreFindPaginates(t *testing.T) {
	s := New()
	seed(t, s, 25)

	got, err := s.Find(context.Background(), query.MonthFilter("08"), store.FindOptions{Skip: 10, Limit: 10})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 10 || got[0].Title != "item 11" || got[9].Title != "item 20" {
		t.Fatalf("unexpected page: %+v", got)
	}

	n, err := s.Count(context.Background(), query.MonthFilter("08"))
	if err != nil || n != 25 {
		t.Fatalf("count = %d, err=%v", n, err)
	}
}

func TestMemoryStoreDeleteAllThenInsert(t *testing.T) {
	s := New()
	seed(t, s, 3)
	deleted, err := s.DeleteAll(context.Background())
	if err != nil || deleted != 3 {
		t.Fatalf("delete = %d, err=%v", deleted, err)
	}
	seed(t, s, 2)
	all, _ := s.Find(context.Background(), query.Filter{}, store.FindOptions{})
	if len(all) != 2 {
		t.Fatalf("expected 2 records after reseed, got %d", len(all))
	}
	if all[0].ID == "" || all[0].ID == all[1].ID {
		t.Fatalf("expected distinct ids, got %q and %q", all[0].ID, all[1].ID)
	}
}

func TestMemoryStoreFindEmptyIsNotNil(t *testing.T) {
	got, err := New().Find(context.Background(), query.MonthFilter("01"), store.FindOptions{})
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("unexpected result: %v err=%v", got, err)
	}
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Count(ctx, query.Filter{}); err == nil {
		t.Fatalf("expected context error")
	}
}
