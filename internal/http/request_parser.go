package http

import (
	"errors"
	"net/http"

	"saledash/internal/core"
	"saledash/internal/log"
	"saledash/internal/query"
)

// listParams is the parsed query of GET /api/transactions.
type listParams struct {
	Month  string
	Search string
	Filter query.Filter
	Page   query.Page
}

// parseListParams reads month, search, page and perPage. Unusable paging
// values fall back to their defaults; the problems are logged, not returned.
func (s *Server) parseListParams(r *http.Request) listParams {
	q := r.URL.Query()
	month := q.Get("month")
	search := q.Get("search")

	page, err := query.ParsePage(q.Get("page"), q.Get("perPage"))
	if err != nil {
		s.logValidation(r, err)
	}

	return listParams{
		Month:  month,
		Search: search,
		Filter: query.BuildFilter(month, search),
		Page:   page,
	}
}

// parseMonth reads the month parameter used by the aggregation endpoints.
func parseMonth(r *http.Request) string {
	return r.URL.Query().Get("month")
}

func (s *Server) logValidation(r *http.Request, err error) {
	logger := log.FromContext(r.Context())
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		logger.WarnContext(r.Context(), "Ignoring invalid request parameter, using default",
			"field", ve.Field, "value", ve.Value, log.FieldError, err.Error())
		return
	}
	logger.WarnContext(r.Context(), "Ignoring invalid request parameters", log.FieldError, err.Error())
}
