package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"saledash/internal/core"
	"saledash/internal/query"
	"saledash/internal/store"
)

// ListResult is one page of matching transactions plus the match total.
type ListResult struct {
	Transactions []core.Transaction `json:"transactions"`
	Total        int64              `json:"total"`
}

// ReportService answers the read endpoints from a record store.
type ReportService struct {
	reader store.RecordReader
}

func NewReportService(reader store.RecordReader) *ReportService {
	return &ReportService{reader: reader}
}

// List returns one page of transactions matching f and the total match count.
func (s *ReportService) List(ctx context.Context, f query.Filter, p query.Page) (ListResult, error) {
	items, err := s.reader.Find(ctx, f, store.PageOptions(p))
	if err != nil {
		return ListResult{}, core.NewStoreError("find", err)
	}
	total, err := s.reader.Count(ctx, f)
	if err != nil {
		return ListResult{}, core.NewStoreError("count", err)
	}
	return ListResult{Transactions: items, Total: total}, nil
}

// monthRecords loads every record sold in month ("" for all months).
func (s *ReportService) monthRecords(ctx context.Context, month string) ([]core.Transaction, error) {
	recs, err := s.reader.Find(ctx, query.MonthFilter(month), store.FindOptions{})
	if err != nil {
		return nil, core.NewStoreError("find", err)
	}
	return recs, nil
}

func (s *ReportService) Statistics(ctx context.Context, month string) (core.Statistics, error) {
	recs, err := s.monthRecords(ctx, month)
	if err != nil {
		return core.Statistics{}, err
	}
	return core.ComputeStatistics(recs), nil
}

func (s *ReportService) BarChart(ctx context.Context, month string) ([]core.PriceBucket, error) {
	recs, err := s.monthRecords(ctx, month)
	if err != nil {
		return nil, err
	}
	return core.ComputeBarChart(recs), nil
}

func (s *ReportService) PieChart(ctx context.Context, month string) ([]core.CategoryCount, error) {
	recs, err := s.monthRecords(ctx, month)
	if err != nil {
		return nil, err
	}
	return core.ComputePieChart(recs), nil
}

// Combined runs the three month reports concurrently. The first failure
// cancels the others and no partial report is returned.
func (s *ReportService) Combined(ctx context.Context, month string) (core.CombinedReport, error) {
	var report core.CombinedReport
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.Statistics(gctx, month)
		if err != nil {
			return fmt.Errorf("statistics: %w", err)
		}
		report.Statistics = stats
		return nil
	})
	g.Go(func() error {
		bars, err := s.BarChart(gctx, month)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		report.BarChart = bars
		return nil
	})
	g.Go(func() error {
		pie, err := s.PieChart(gctx, month)
		if err != nil {
			return fmt.Errorf("pie chart: %w", err)
		}
		report.PieChart = pie
		return nil
	})

	if err := g.Wait(); err != nil {
		return core.CombinedReport{}, err
	}
	return report, nil
}
