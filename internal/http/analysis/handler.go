package analysis

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oizumi98/kaimono-api/internal/analysis"
	"github.com/oizumi98/kaimono-api/internal/http/auth"
)

type Handler struct {
	svc *analysis.Service
}

func NewHandler(svc *analysis.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/basic", h.basic)
	r.Get("/pattern", h.pattern)
}

func (h *Handler) basic(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PERIOD", err.Error(), "low", false)
		return
	}

	report, info, err := h.svc.Summarize(r.Context(), userID, period)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBasicResponse(report, info))
}

func (h *Handler) pattern(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PERIOD", err.Error(), "low", false)
		return
	}

	report, info, err := h.svc.Patterns(r.Context(), userID, period)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPatternResponse(report, info))
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("analysis failed", "path", r.URL.Path, "error", err)

	message := "Analysis failed, please retry later"
	if errors.Is(err, analysis.ErrDataUnavailable) {
		message = "Purchase records are temporarily unavailable"
	}

	writeError(w, http.StatusInternalServerError, "SERVER_ERROR", message, "high", true)
}

func periodFromQuery(r *http.Request) (analysis.Period, error) {
	q := r.URL.Query()

	return analysis.ResolvePeriod(q.Get("period"), q.Get("start"), q.Get("end"), time.Now())
}
