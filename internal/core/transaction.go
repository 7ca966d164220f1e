package core

type (
	// Transaction is a single product sale record as loaded from the seed dataset.
	Transaction struct {
		ID          string  `json:"id,omitempty"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Sold        bool    `json:"sold"`
		DateOfSale  string  `json:"dateOfSale"`
		Image       string  `json:"image,omitempty"`
	}

	// Statistics summarises a filtered set of transactions.
	Statistics struct {
		TotalSaleAmount float64 `json:"totalSaleAmount"`
		SoldItems       int     `json:"soldItems"`
		NotSoldItems    int     `json:"notSoldItems"`
	}

	// PriceBucket is one bar of the price-range histogram.
	PriceBucket struct {
		Range string `json:"range"`
		Count int    `json:"count"`
	}

	// CategoryCount is one slice of the category pie chart.
	CategoryCount struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}

	// CombinedReport bundles the three month aggregations.
	CombinedReport struct {
		Statistics Statistics      `json:"statistics"`
		BarChart   []PriceBucket   `json:"barChart"`
		PieChart   []CategoryCount `json:"pieChart"`
	}
)
