// Package core holds the transaction domain types and the aggregations
// computed over them.
//
// The aggregation functions are pure: they never touch the store, and the
// result depends only on the multiset of records passed in.
package core

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// bucketWidth is the span of every closed histogram bucket.
const bucketWidth = 100

// bucketCount is the number of histogram buckets, the last one open ended.
const bucketCount = 10

// ComputeStatistics sums the price of every record, sold or not, and counts
// sold and unsold items.
func ComputeStatistics(records []Transaction) Statistics {
	total := decimal.Zero
	var stats Statistics
	for _, t := range records {
		total = total.Add(decimal.NewFromFloat(t.Price))
		if t.Sold {
			stats.SoldItems++
		} else {
			stats.NotSoldItems++
		}
	}
	stats.TotalSaleAmount = total.InexactFloat64()
	return stats
}

// PriceRanges returns the histogram labels in display order.
func PriceRanges() []string {
	labels := make([]string, bucketCount)
	for i := 0; i < bucketCount-1; i++ {
		lo := i * bucketWidth
		if i > 0 {
			lo++
		}
		labels[i] = strconv.Itoa(lo) + "-" + strconv.Itoa((i+1)*bucketWidth)
	}
	labels[bucketCount-1] = strconv.Itoa((bucketCount-1)*bucketWidth+1) + "-above"
	return labels
}

// BucketIndex returns the histogram bucket a price falls into: the first
// bucket whose upper bound is >= price.
func BucketIndex(price float64) int {
	for i := 0; i < bucketCount-1; i++ {
		if price <= float64((i+1)*bucketWidth) {
			return i
		}
	}
	return bucketCount - 1
}

// ComputeBarChart counts records per fixed price range. All ten buckets are
// returned, in order, even when empty.
func ComputeBarChart(records []Transaction) []PriceBucket {
	labels := PriceRanges()
	buckets := make([]PriceBucket, len(labels))
	for i, l := range labels {
		buckets[i] = PriceBucket{Range: l}
	}
	for _, t := range records {
		buckets[BucketIndex(t.Price)].Count++
	}
	return buckets
}

// ComputePieChart counts records per category in first-seen order.
func ComputePieChart(records []Transaction) []CategoryCount {
	out := make([]CategoryCount, 0)
	index := make(map[string]int)
	for _, t := range records {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryCount{Category: t.Category})
		}
		out[i].Count++
	}
	return out
}
