package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saledash/internal/core"
	"saledash/internal/query"
	"saledash/internal/store/memory"
)

func seededReports(t *testing.T, recs []core.Transaction) *ReportService {
	t.Helper()
	st := memory.New()
	_, err := st.InsertMany(context.Background(), recs)
	require.NoError(t, err)
	return NewReportService(st)
}

func TestReportScenario(t *testing.T) {
	ctx := context.Background()
	svc := seededReports(t, scenario)

	stats, err := svc.Statistics(ctx, "08")
	require.NoError(t, err)
	assert.Equal(t, core.Statistics{TotalSaleAmount: 1200, SoldItems: 2, NotSoldItems: 1}, stats)

	bars, err := svc.BarChart(ctx, "8")
	require.NoError(t, err)
	require.Len(t, bars, 10)
	for _, b := range bars {
		switch b.Range {
		case "0-100", "101-200", "901-above":
			assert.Equal(t, 1, b.Count, b.Range)
		default:
			assert.Zero(t, b.Count, b.Range)
		}
	}

	pie, err := svc.PieChart(ctx, "08")
	require.NoError(t, err)
	assert.Equal(t, []core.CategoryCount{{Category: "A", Count: 2}, {Category: "B", Count: 1}}, pie)
}

func TestListPagination(t *testing.T) {
	recs := make([]core.Transaction, 25)
	for i := range recs {
		recs[i] = core.Transaction{Title: fmt.Sprintf("item %d", i+1), DateOfSale: "2021-03-10"}
	}
	// a record from another month must not be counted
	recs = append(recs, core.Transaction{Title: "other", DateOfSale: "2021-04-10"})
	svc := seededReports(t, recs)

	res, err := svc.List(context.Background(), query.BuildFilter("03", ""), query.Page{Number: 2, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, res.Total)
	require.Len(t, res.Transactions, 10)
	assert.Equal(t, "item 11", res.Transactions[0].Title)
	assert.Equal(t, "item 20", res.Transactions[9].Title)
}

func TestListSearchByPrice(t *testing.T) {
	svc := seededReports(t, []core.Transaction{
		{Title: "Lamp", Price: 450, DateOfSale: "2021-03-10"},
		{Title: "Chair", Description: "model 4501", Price: 90, DateOfSale: "2021-03-10"},
		{Title: "Desk", Price: 45, DateOfSale: "2021-03-10"},
	})
	res, err := svc.List(context.Background(), query.BuildFilter("", "450"), query.DefaultPageWindow())
	require.NoError(t, err)
	// "Chair" matches only because its description contains the text
	require.Len(t, res.Transactions, 2)
	assert.Equal(t, "Lamp", res.Transactions[0].Title)
	assert.Equal(t, "Chair", res.Transactions[1].Title)
}

func TestCombinedEmptyMonth(t *testing.T) {
	svc := seededReports(t, scenario)
	report, err := svc.Combined(context.Background(), "01")
	require.NoError(t, err)

	assert.Equal(t, core.Statistics{}, report.Statistics)
	require.Len(t, report.BarChart, 10)
	for _, b := range report.BarChart {
		assert.Zero(t, b.Count)
	}
	require.NotNil(t, report.PieChart)
	assert.Empty(t, report.PieChart)
}

func TestCombinedMatchesIndividualReports(t *testing.T) {
	ctx := context.Background()
	svc := seededReports(t, scenario)

	report, err := svc.Combined(ctx, "08")
	require.NoError(t, err)

	stats, _ := svc.Statistics(ctx, "08")
	bars, _ := svc.BarChart(ctx, "08")
	pie, _ := svc.PieChart(ctx, "08")
	assert.Equal(t, core.CombinedReport{Statistics: stats, BarChart: bars, PieChart: pie}, report)
}

func TestCombinedFailsFast(t *testing.T) {
	st := &flakyStore{Store: memory.New(), failFind: true}
	report, err := NewReportService(st).Combined(context.Background(), "08")

	require.Error(t, err)
	var se *core.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, core.CombinedReport{}, report, "no partial result")
}

func TestListStoreErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewReportService(&flakyStore{Store: memory.New(), failFind: true}).
		List(ctx, query.Filter{}, query.DefaultPageWindow())
	var se *core.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "find", se.Op)

	_, err = NewReportService(&flakyStore{Store: memory.New(), failCount: true}).
		List(ctx, query.Filter{}, query.DefaultPageWindow())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "count", se.Op)
}
