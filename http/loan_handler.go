package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"dealdesk/domain"
	"dealdesk/service"
)

type LoanHandler struct {
	service *service.LoanService
	log     zerolog.Logger
}

func NewLoanHandler(service *service.LoanService, log zerolog.Logger) *LoanHandler {
	return &LoanHandler{service: service, log: log}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodePost(w, r, h.log, &input) {
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input domain.ScheduleInput
	if !decodePost(w, r, h.log, &input) {
		return
	}

	result, err := h.service.Schedule(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

func (h *LoanHandler) RemainingBalance(w http.ResponseWriter, r *http.Request) {
	var input domain.RemainingBalanceInput
	if !decodePost(w, r, h.log, &input) {
		return
	}

	result, err := h.service.RemainingBalance(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}
