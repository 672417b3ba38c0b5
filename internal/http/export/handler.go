package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oizumi98/kaimono-api/internal/export"
	"github.com/oizumi98/kaimono-api/internal/http/auth"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := purchase.ListFilter{}

	if s := r.URL.Query().Get("start"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = &s
	}

	// Buffer the export so a listing failure still yields a clean 500
	// instead of a truncated download.
	var buf bytes.Buffer

	if _, err := h.svc.WriteCSV(r.Context(), &buf, userID, filter); err != nil {
		slog.Error("failed to export purchases", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
