package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/revdash/internal/dashboard"
	"github.com/MrJamesThe3rd/revdash/internal/http/upload"
	"github.com/MrJamesThe3rd/revdash/internal/report"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

type Handler struct {
	reports   *report.Service
	maxUpload int64
}

func NewHandler(reports *report.Service, maxUpload int64) *Handler {
	return &Handler{
		reports:   reports,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importTable)
}

type reportResponse struct {
	ID      uuid.UUID        `json:"id"`
	Source  string           `json:"source"`
	Columns []string         `json:"columns"`
	Records []revenue.Record `json:"records"`
	Summary *revenue.Summary `json:"summary"`
	KPIs    []dashboard.KPI  `json:"kpis"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Samples []string `json:"samples,omitempty"`
}

func (h *Handler) importTable(w http.ResponseWriter, r *http.Request) {
	src, err := upload.Source(w, r, h.maxUpload)
	if err != nil {
		status := http.StatusBadRequest

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}

		render.Status(r, status)
		render.JSON(w, r, errorResponse{Error: err.Error()})

		return
	}

	rep, err := h.reports.Build(src)
	if err != nil {
		status, resp := toErrorResponse(err)
		render.Status(r, status)
		render.JSON(w, r, resp)

		return
	}

	render.JSON(w, r, toReportResponse(rep))
}

func toReportResponse(rep *report.Report) reportResponse {
	return reportResponse{
		ID:      rep.ID,
		Source:  rep.Source,
		Columns: revenue.CleanColumns,
		Records: rep.Table.Records,
		Summary: rep.Summary,
		KPIs:    dashboard.KPIs(rep.Table, rep.Summary),
	}
}

func toErrorResponse(err error) (int, errorResponse) {
	var verr *revenue.ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   verr.Error(),
			Missing: verr.Missing,
			Samples: verr.Malformed,
		}
	case errors.Is(err, revenue.ErrEmptyDataset):
		return http.StatusUnprocessableEntity, errorResponse{Error: dashboard.ErrorMessage(err)}
	}

	return http.StatusBadRequest, errorResponse{Error: err.Error()}
}
