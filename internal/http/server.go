// Package http exposes the transaction dashboard over HTTP.
package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"saledash/internal/core"
	"saledash/internal/log"
	"saledash/internal/middleware/ratelimit"
	"saledash/internal/middleware/security"
	"saledash/internal/middleware/trace"
	"saledash/internal/query"
	"saledash/internal/services"
)

// Reporter answers the read endpoints.
type Reporter interface {
	List(ctx context.Context, f query.Filter, p query.Page) (services.ListResult, error)
	Statistics(ctx context.Context, month string) (core.Statistics, error)
	BarChart(ctx context.Context, month string) ([]core.PriceBucket, error)
	PieChart(ctx context.Context, month string) ([]core.CategoryCount, error)
	Combined(ctx context.Context, month string) (core.CombinedReport, error)
}

// Seeder replaces the stored dataset.
type Seeder interface {
	Seed(ctx context.Context) (int, error)
}

// ReadinessProbe is asked for a record count to prove the store answers.
type ReadinessProbe interface {
	Count(ctx context.Context, f query.Filter) (int64, error)
}

// readyTimeout bounds the store round trip made by /readyz.
const readyTimeout = 2 * time.Second

type appMetrics struct {
	uptime       time.Time
	seedRuns     atomic.Int64
	seedFailures atomic.Int64
	failures     atomic.Int64
}

type Server struct {
	http.Server
	reports Reporter
	seeder  Seeder
	probe   ReadinessProbe
	logger  *log.Logger

	traceMiddleware *trace.Middleware
	seedLimiter     *ratelimit.Limiter
	appMetrics      *appMetrics

	shutdownOnce sync.Once
}

// Option customises a Server.
type Option func(*Server)

// WithSeedRateLimit caps reseeds per client and minute. Zero or less leaves
// the reseed endpoint unlimited.
func WithSeedRateLimit(perMinute int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.seedLimiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: perMinute})
		}
	}
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. probe may be nil, in which case /readyz only reports liveness.
func NewServer(addr string, reports Reporter, seeder Seeder, probe ReadinessProbe, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	mux := http.NewServeMux()

	s := &Server{
		reports:         reports,
		seeder:          seeder,
		probe:           probe,
		logger:          logger,
		traceMiddleware: trace.NewMiddleware(nil, logger.Logger),
		appMetrics:      &appMetrics{uptime: time.Now()},
	}
	for _, opt := range opts {
		opt(s)
	}

	var seed http.Handler = http.HandlerFunc(s.handleSeed)
	if s.seedLimiter != nil {
		seed = s.seedLimiter.Middleware(trace.RemoteIP)(seed)
	}

	mux.Handle("GET /{$}", seed)
	mux.HandleFunc("GET /api/transactions", s.handleTransactions)
	mux.HandleFunc("GET /api/statistics", s.handleStatistics)
	mux.HandleFunc("GET /api/bar-chart", s.handleBarChart)
	mux.HandleFunc("GET /api/pie-chart", s.handlePieChart)
	mux.HandleFunc("GET /api/combined-data", s.handleCombined)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	var handler http.Handler = mux
	handler = log.RequestIDMiddleware(func(r *http.Request) string { return trace.GetRequestID(r.Context()) })(handler)
	handler = log.Middleware(logger)(handler)
	handler = s.traceMiddleware.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.seedLimiter != nil {
			s.seedLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
