package importer

import (
	"log/slog"
	"net/http"

	"Atex/internal/calc/batch"
	"Atex/internal/calc/zone"
	"Atex/internal/httpx"
	"Atex/internal/observability"
	"Atex/internal/scenario"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Gases      zone.Resolver
	Workspaces *scenario.Workspaces
	Logger     *slog.Logger
	Metrics    *observability.Metrics
}

type ImportResult struct {
	Count   int         `json:"count"`
	Added   []batch.Row `json:"added"`
	Skipped []RowError  `json:"skipped"`
}

// Import appends the valid rows of an uploaded workbook to the caller's
// scenario list, in sheet order.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	list, ok := h.Workspaces.ForRequest(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "File required")
		return
	}
	defer file.Close()

	scenarios, skipped, err := Parse(file, h.Gases)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid file")
		return
	}

	rows, err := batch.Calculate(scenarios)
	if err != nil {
		h.Metrics.Calculations.WithLabelValues("error").Inc()
		h.Logger.Error("zone calculation failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "Calculation error")
		return
	}
	h.Metrics.Calculations.WithLabelValues("success").Add(float64(len(rows)))

	for i := range rows {
		rows[i].Scenario = list.Append(rows[i].Scenario)
	}
	h.Metrics.ScenariosAdded.Add(float64(len(rows)))
	h.Metrics.ScenariosRejected.WithLabelValues("import_row").Add(float64(len(skipped)))
	h.Logger.Info("scenarios imported", "added", len(rows), "skipped", len(skipped))

	if skipped == nil {
		skipped = []RowError{}
	}
	httpx.WriteJSON(w, http.StatusOK, ImportResult{Count: len(rows), Added: rows, Skipped: skipped})
}
