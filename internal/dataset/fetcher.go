// Package dataset fetches the product-transaction seed snapshot.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"saledash/internal/core"
)

// DefaultURL is the published product-transaction snapshot.
const DefaultURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

// maxBodyBytes caps how much of the response is read.
const maxBodyBytes = 64 << 20

// item is the wire shape of one dataset entry. The upstream numeric id is
// ignored; the store assigns its own.
type item struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Sold        bool    `json:"sold"`
	DateOfSale  string  `json:"dateOfSale"`
	Image       string  `json:"image"`
}

// Fetcher downloads the dataset over HTTP.
type Fetcher struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithTimeout bounds a single fetch. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

func NewFetcher(url string, opts ...Option) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	f := &Fetcher{url: url, client: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the source the fetcher reads from.
func (f *Fetcher) URL() string { return f.url }

// Fetch downloads and decodes the dataset. Every failure is a *core.FetchError.
func (f *Fetcher) Fetch(ctx context.Context) ([]core.Transaction, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, f.fail(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, f.fail(fmt.Errorf("unexpected status %s", resp.Status))
	}

	var items []item
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&items); err != nil {
		return nil, f.fail(fmt.Errorf("decode body: %w", err))
	}
	if items == nil {
		return nil, f.fail(core.ErrDatasetNotArray)
	}

	out := make([]core.Transaction, len(items))
	for i, it := range items {
		out[i] = core.Transaction{
			Title:       it.Title,
			Description: it.Description,
			Price:       it.Price,
			Category:    it.Category,
			Sold:        it.Sold,
			DateOfSale:  it.DateOfSale,
			Image:       it.Image,
		}
	}

	slog.DebugContext(ctx, "Dataset fetched",
		"url", f.url,
		"records", len(out),
		"duration_ms", time.Since(start).Milliseconds())
	return out, nil
}

func (f *Fetcher) fail(err error) error {
	return &core.FetchError{URL: f.url, Err: err}
}
