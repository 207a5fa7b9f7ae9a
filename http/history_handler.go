package http

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"dealdesk/repository"
)

const defaultHistoryPage = 50

// HistoryHandler lists recorded calculations, newest first.
type HistoryHandler struct {
	history repository.CalculationHistory
	log     zerolog.Logger
}

func NewHistoryHandler(history repository.CalculationHistory, log zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, log: log}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.log, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := defaultHistoryPage
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, h.log, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	calcs, err := h.history.Recent(r.Context(), limit, r.URL.Query().Get("kind"))
	if err != nil {
		h.log.Error().Err(err).Msg("reading calculation history")
		writeError(w, h.log, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, h.log, http.StatusOK, calcs)
}
