package zone

import (
	"errors"
	"log/slog"
	"net/http"

	"Atex/internal/gas"
	"Atex/internal/httpx"
	"Atex/internal/observability"
)

type Handler struct {
	Gases   Resolver
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

type CalcResponse struct {
	Scenario Scenario `json:"scenario"`
	Result   Result   `json:"result"`
}

// Calc runs a one-off calculation without storing the scenario.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	sc, err := NewScenario(input, h.Gases)
	if err != nil {
		httpx.Error(w, StatusCode(err), err.Error())
		return
	}
	res, err := Calculate(sc)
	h.Metrics.Calculations.WithLabelValues(observability.Outcome(err)).Inc()
	if err != nil {
		h.Logger.Error("zone calculation failed", "scenario", sc.Name, "error", err)
		httpx.Error(w, StatusCode(err), "Calculation error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, CalcResponse{Scenario: sc, Result: res})
}

// StatusCode maps scenario and calculation errors to HTTP status codes.
// Anything unexpected, including ErrDivideByZero, is a server-side fault.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, gas.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
