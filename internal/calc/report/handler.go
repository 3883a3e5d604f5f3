package report

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"Atex/internal/calc/batch"
	"Atex/internal/httpx"
	"Atex/internal/observability"
	"Atex/internal/scenario"
)

type Handler struct {
	Workspaces *scenario.Workspaces
	Exporter   *Exporter
	TempDir    string
	Logger     *slog.Logger
	Metrics    *observability.Metrics
}

// PDF downloads the report of the caller's scenarios. Query parameters
// title, project and author fill the header; diagram=false leaves out the
// zone diagram of the first scenario.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.rows(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	meta := Meta{Title: q.Get("title"), Project: q.Get("project"), Author: q.Get("author")}
	withDiagram := q.Get("diagram") != "false"

	h.serveTemp(w, r, "pdf", "atex_report.pdf", "application/pdf", func(out io.Writer) error {
		return h.Exporter.WritePDF(out, meta, rows, withDiagram)
	})
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.rows(w, r)
	if !ok {
		return
	}
	h.serveTemp(w, r, "xlsx", "atex_scenarios.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		func(out io.Writer) error { return h.Exporter.WriteXLSX(out, rows) })
}

// Diagram downloads the zone diagram of one scenario, selected by the
// zero-based index query parameter (first scenario by default).
func (h *Handler) Diagram(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.rows(w, r)
	if !ok {
		return
	}
	idx := 0
	if s := r.URL.Query().Get("index"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "index must be an integer")
			return
		}
		idx = n
	}
	if idx < 0 || idx >= len(rows) {
		httpx.Error(w, http.StatusNotFound, "No such scenario")
		return
	}
	row := rows[idx]
	h.serveTemp(w, r, "diagram", "atex_zone_diagram.pdf", "application/pdf", func(out io.Writer) error {
		return WriteDiagramPDF(out, row.Scenario.Name, row.Result)
	})
}

func (h *Handler) rows(w http.ResponseWriter, r *http.Request) ([]batch.Row, bool) {
	list, ok := h.Workspaces.ForRequest(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	rows, err := batch.Calculate(list.Snapshot())
	if err != nil {
		h.Logger.Error("zone calculation failed", "error", err)
		httpx.Error(w, http.StatusInternalServerError, "Calculation error")
		return nil, false
	}
	if len(rows) == 0 {
		httpx.Error(w, http.StatusNotFound, "No scenarios")
		return nil, false
	}
	return rows, true
}

// serveTemp writes the document to a temporary file, streams it as a
// download and removes the file whatever happens.
func (h *Handler) serveTemp(w http.ResponseWriter, r *http.Request, format, filename, contentType string, write func(io.Writer) error) {
	tmp, err := os.CreateTemp(h.TempDir, "atex-*-"+filename)
	if err != nil {
		h.fail(w, format, err)
		return
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			h.Logger.Warn("remove temp export", "path", tmp.Name(), "error", err)
		}
	}()

	if err := write(tmp); err != nil {
		h.fail(w, format, err)
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		h.fail(w, format, err)
		return
	}

	h.Metrics.Exports.WithLabelValues(format, "success").Inc()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeContent(w, r, filename, h.Exporter.Clock.Now(), tmp)
}

func (h *Handler) fail(w http.ResponseWriter, format string, err error) {
	h.Metrics.Exports.WithLabelValues(format, "error").Inc()
	h.Logger.Error("export failed", "format", format, "error", err)
	httpx.Error(w, http.StatusInternalServerError, "Report generation error")
}
