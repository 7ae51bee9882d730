package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/revdash/internal/export"
	"github.com/MrJamesThe3rd/revdash/internal/http/upload"
	"github.com/MrJamesThe3rd/revdash/internal/report"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

type Handler struct {
	svc       *export.Service
	reports   *report.Service
	maxUpload int64
}

func NewHandler(svc *export.Service, reports *report.Service, maxUpload int64) *Handler {
	return &Handler{
		svc:       svc,
		reports:   reports,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/{artifact}", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	artifact, err := export.ParseArtifact(chi.URLParam(r, "artifact"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	src, err := upload.Source(w, r, h.maxUpload)
	if err != nil {
		status := http.StatusBadRequest

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}

		http.Error(w, err.Error(), status)

		return
	}

	rep, err := h.reports.Build(src)
	if err != nil {
		status := http.StatusBadRequest

		var verr *revenue.ValidationError
		if errors.As(err, &verr) || errors.Is(err, revenue.ErrEmptyDataset) {
			status = http.StatusUnprocessableEntity
		}

		http.Error(w, err.Error(), status)

		return
	}

	var buf bytes.Buffer
	if err := h.svc.Write(&buf, artifact, rep); err != nil {
		slog.Error("failed to export", "artifact", artifact, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", artifact.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(artifact)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
