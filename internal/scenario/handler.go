package scenario

import (
	"errors"
	"log/slog"
	"net/http"

	"Atex/internal/calc/batch"
	"Atex/internal/calc/zone"
	"Atex/internal/gas"
	"Atex/internal/httpx"
	"Atex/internal/observability"
)

type Handler struct {
	Gases      *gas.Table
	Workspaces *Workspaces
	Logger     *slog.Logger
	Metrics    *observability.Metrics
}

type ListResponse struct {
	Count int         `json:"count"`
	Rows  []batch.Row `json:"rows"`
}

func (h *Handler) GasList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Gases.All())
}

// Add validates the submitted form, computes the result and appends the
// scenario. Unknown gases and invalid input never reach the list.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	list, ok := h.Workspaces.ForRequest(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var input zone.Input
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	sc, err := zone.NewScenario(input, h.Gases)
	if err != nil {
		h.Metrics.ScenariosRejected.WithLabelValues(rejectReason(err)).Inc()
		httpx.Error(w, zone.StatusCode(err), err.Error())
		return
	}
	res, err := zone.Calculate(sc)
	h.Metrics.Calculations.WithLabelValues(observability.Outcome(err)).Inc()
	if err != nil {
		h.Logger.Error("zone calculation failed", "gas", sc.Gas.Name, "error", err)
		httpx.Error(w, zone.StatusCode(err), "Calculation error")
		return
	}

	sc = list.Append(sc)
	h.Metrics.ScenariosAdded.Inc()
	h.Logger.Info("scenario added", "name", sc.Name, "gas", sc.Gas.Name, "count", list.Len())
	httpx.WriteJSON(w, http.StatusCreated, batch.Row{Scenario: sc, Result: res})
}

// List returns every scenario with a freshly computed result.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, ok := h.Workspaces.ForRequest(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	rows, err := batch.Calculate(list.Snapshot())
	if err != nil {
		h.Metrics.Calculations.WithLabelValues("error").Inc()
		h.Logger.Error("zone calculation failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "Calculation error")
		return
	}
	h.Metrics.Calculations.WithLabelValues("success").Add(float64(len(rows)))
	httpx.WriteJSON(w, http.StatusOK, ListResponse{Count: len(rows), Rows: rows})
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	list, ok := h.Workspaces.ForRequest(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	list.Clear()
	h.Metrics.ScenariosCleared.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func rejectReason(err error) string {
	if errors.Is(err, gas.ErrNotFound) {
		return "gas_not_found"
	}
	return "invalid_input"
}
