package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"saledash/internal/log"
	"saledash/internal/query"
)

// seedSuccessBody is the plain text answer of a successful reseed.
const seedSuccessBody = "Database initialized with seed data"

// seededRecordsHeader reports how many records the reseed inserted.
const seededRecordsHeader = "X-Seeded-Records"

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	s.appMetrics.seedRuns.Add(1)

	n, err := s.seeder.Seed(r.Context())
	if err != nil {
		s.appMetrics.seedFailures.Add(1)
		s.writeFailure(w, r, log.OpSeed, err)
		return
	}

	w.Header().Set(seededRecordsHeader, strconv.Itoa(n))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, seedSuccessBody)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	params := s.parseListParams(r)

	log.FromContext(r.Context()).DebugContext(r.Context(), "Listing transactions",
		log.NewFields().
			WithOperation(log.OpList).
			WithQuery(params.Month, params.Search, params.Page.Number, params.Page.PerPage).
			ToSlice()...)

	result, err := s.reports.List(r.Context(), params.Filter, params.Page)
	if err != nil {
		s.writeFailure(w, r, log.OpList, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.reports.Statistics(r.Context(), parseMonth(r))
	if err != nil {
		s.writeFailure(w, r, log.OpStatistics, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleBarChart(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.reports.BarChart(r.Context(), parseMonth(r))
	if err != nil {
		s.writeFailure(w, r, log.OpBarChart, err)
		return
	}
	writeJSON(w, r, http.StatusOK, buckets)
}

func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	slices, err := s.reports.PieChart(r.Context(), parseMonth(r))
	if err != nil {
		s.writeFailure(w, r, log.OpPieChart, err)
		return
	}
	writeJSON(w, r, http.StatusOK, slices)
}

func (s *Server) handleCombined(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Combined(r.Context(), parseMonth(r))
	if err != nil {
		s.writeFailure(w, r, log.OpCombined, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	})
}

// handleReady checks that the record store answers a count within readyTimeout.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.probe == nil {
		checks["store"] = "skipped"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if n, err := s.probe.Count(ctx, query.Filter{}); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed",
				log.FieldOperation, log.OpReady, log.FieldError, err.Error())
			checks["store"] = "failed: " + err.Error()
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
			checks["records"] = n
		}
	}

	writeJSON(w, r, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics provides request and seed counters in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", s.traceMiddleware.TotalRequests())

	fmt.Fprintf(w, "# HELP http_failures_total Requests answered with 500\n")
	fmt.Fprintf(w, "# TYPE http_failures_total counter\n")
	fmt.Fprintf(w, "http_failures_total %d\n\n", s.appMetrics.failures.Load())

	fmt.Fprintf(w, "# HELP seed_runs_total Reseed requests received\n")
	fmt.Fprintf(w, "# TYPE seed_runs_total counter\n")
	fmt.Fprintf(w, "seed_runs_total %d\n\n", s.appMetrics.seedRuns.Load())

	fmt.Fprintf(w, "# HELP seed_failures_total Reseed requests that failed\n")
	fmt.Fprintf(w, "# TYPE seed_failures_total counter\n")
	fmt.Fprintf(w, "seed_failures_total %d\n\n", s.appMetrics.seedFailures.Load())

	if s.seedLimiter != nil {
		fmt.Fprintf(w, "# HELP seed_rate_limit_hits_total Reseeds rejected by the rate limiter\n")
		fmt.Fprintf(w, "# TYPE seed_rate_limit_hits_total counter\n")
		fmt.Fprintf(w, "seed_rate_limit_hits_total %d\n\n", s.seedLimiter.Hits())
	}

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", time.Since(s.appMetrics.uptime).Seconds())
}
