package dashboard

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/revdash/internal/dashboard"
	"github.com/MrJamesThe3rd/revdash/internal/http/upload"
	"github.com/MrJamesThe3rd/revdash/internal/report"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

type Handler struct {
	reports   *report.Service
	renderer  *dashboard.Renderer
	maxUpload int64
}

func NewHandler(reports *report.Service, renderer *dashboard.Renderer, maxUpload int64) *Handler {
	return &Handler{
		reports:   reports,
		renderer:  renderer,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.show)
	r.Post("/", h.upload)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Build(report.Source{UseSample: true})
	h.respond(w, r, rep, err)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	src, err := upload.Source(w, r, h.maxUpload)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	rep, err := h.reports.Build(src)
	h.respond(w, r, rep, err)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, rep *report.Report, buildErr error) {
	var (
		buf    bytes.Buffer
		status = http.StatusOK
		err    error
	)

	if buildErr != nil {
		status = statusFor(buildErr)
		err = h.renderer.RenderError(&buf, buildErr)
	} else {
		err = h.renderer.Render(&buf, rep)
	}

	if err != nil {
		slog.Error("failed to render dashboard", "error", err, "request_id", middleware.GetReqID(r.Context()))
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	var verr *revenue.ValidationError
	if errors.As(err, &verr) || errors.Is(err, revenue.ErrEmptyDataset) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadRequest
}
