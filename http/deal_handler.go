package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"dealdesk/service"
)

type DealHandler struct {
	service *service.DealService
	log     zerolog.Logger
}

func NewDealHandler(service *service.DealService, log zerolog.Logger) *DealHandler {
	return &DealHandler{service: service, log: log}
}

// handle decodes In, runs calc and writes its result.
func handle[In, Out any](
	w http.ResponseWriter,
	r *http.Request,
	log zerolog.Logger,
	calc func(context.Context, In) (Out, error),
) {
	var input In
	if !decodePost(w, r, log, &input) {
		return
	}

	result, err := calc(r.Context(), input)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, result)
}

func (h *DealHandler) AnalyzeDeal(w http.ResponseWriter, r *http.Request) {
	handle(w, r, h.log, h.service.AnalyzeDeal)
}

func (h *DealHandler) RentalCashFlow(w http.ResponseWriter, r *http.Request) {
	handle(w, r, h.log, h.service.RentalCashFlow)
}

func (h *DealHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	handle(w, r, h.log, h.service.Metrics)
}

func (h *DealHandler) SellerFinance(w http.ResponseWriter, r *http.Request) {
	handle(w, r, h.log, h.service.SellerFinance)
}

func (h *DealHandler) SubjectTo(w http.ResponseWriter, r *http.Request) {
	handle(w, r, h.log, h.service.SubjectTo)
}

func (h *DealHandler) CompareOffers(w http.ResponseWriter, r *http.Request) {
	handle(w, r, h.log, h.service.CompareOffers)
}

func (h *DealHandler) MAO(w http.ResponseWriter, r *http.Request) {
	handle(w, r, h.log, h.service.MAO)
}
