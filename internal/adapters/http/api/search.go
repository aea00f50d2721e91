package api

import (
	"net/http"

	"github.com/okian/dataatlas/internal/domain/search"
	"github.com/okian/dataatlas/pkg/logger"
)

// SearchResponse acknowledges a search request and echoes what was parsed.
type SearchResponse struct {
	Message string         `json:"message"`
	Status  string         `json:"status"`
	Search  search.Request `json:"search"`
}

// SearchHandler handles dataset search intake.
type SearchHandler struct {
	searcher     search.Searcher
	maxBodyBytes int64
	logger       logger.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searcher search.Searcher, maxBodyBytes int64, l logger.Logger) *SearchHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &SearchHandler{searcher: searcher, maxBodyBytes: maxBodyBytes, logger: orNop(l)}
}

// HandleSearch handles POST /users/search requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search"
	body, err := ParseBody(w, r, h.maxBodyBytes)
	if err != nil {
		writeBodyError(w, r, h.logger, err)
		return
	}

	req := search.FromBody(body)
	if err := h.searcher.Submit(r.Context(), req); err != nil {
		h.logger.Error(r.Context(), "search intake failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusBadGateway, "Search unavailable")
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Message: "Search request received",
		Status:  statusSuccessful,
		Search:  req,
	})
}
