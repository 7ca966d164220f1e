package security

import (
	"net/http"
	"strconv"
	"strings"
)

// HeadersConfig holds the response headers applied to every API reply.
type HeadersConfig struct {
	// CORS
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       int

	// Additional security headers
	XContentTypeOptions string
	XFrameOptions       string
	ReferrerPolicy      string
}

// DefaultHeadersConfig returns defaults for a public read-only JSON API.
func DefaultHeadersConfig() HeadersConfig {
	return HeadersConfig{
		AllowOrigin:  "*",
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:       600,

		XContentTypeOptions: "nosniff",
		XFrameOptions:       "DENY",
		ReferrerPolicy:      "no-referrer",
	}
}

// HeadersMiddleware applies CORS and security headers to responses
type HeadersMiddleware struct {
	config HeadersConfig
}

// NewHeadersMiddleware creates a new headers middleware
func NewHeadersMiddleware(config HeadersConfig) *HeadersMiddleware {
	return &HeadersMiddleware{
		config: config,
	}
}

// Middleware returns the HTTP middleware function. Preflight requests are
// answered with 204 and never reach next.
func (h *HeadersMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.applyHeaders(w)

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *HeadersMiddleware) applyHeaders(w http.ResponseWriter) {
	headers := w.Header()

	if h.config.AllowOrigin != "" {
		headers.Set("Access-Control-Allow-Origin", h.config.AllowOrigin)
		headers.Set("Access-Control-Allow-Methods", strings.Join(h.config.AllowMethods, ", "))
		headers.Set("Access-Control-Allow-Headers", strings.Join(h.config.AllowHeaders, ", "))
		headers.Set("Access-Control-Expose-Headers", "X-Request-ID, X-Seeded-Records")
		if h.config.MaxAge > 0 {
			headers.Set("Access-Control-Max-Age", strconv.Itoa(h.config.MaxAge))
		}
	}

	if h.config.XContentTypeOptions != "" {
		headers.Set("X-Content-Type-Options", h.config.XContentTypeOptions)
	}
	if h.config.XFrameOptions != "" {
		headers.Set("X-Frame-Options", h.config.XFrameOptions)
	}
	if h.config.ReferrerPolicy != "" {
		headers.Set("Referrer-Policy", h.config.ReferrerPolicy)
	}
}
