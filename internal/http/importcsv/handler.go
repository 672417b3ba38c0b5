package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/oizumi98/kaimono-api/internal/categorize"
	"github.com/oizumi98/kaimono-api/internal/http/auth"
	"github.com/oizumi98/kaimono-api/internal/importer"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

type Handler struct {
	importSvc   *importer.Service
	purchaseSvc *purchase.Service
	categorySvc *categorize.Service
}

func NewHandler(importSvc *importer.Service, purchaseSvc *purchase.Service, categorySvc *categorize.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		purchaseSvc: purchaseSvc,
		categorySvc: categorySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type purchaseResponse struct {
	ID                  uuid.UUID             `json:"id"`
	Name                string                `json:"name"`
	Amount              int64                 `json:"amount"`
	Category            string                `json:"category"`
	Date                time.Time             `json:"date"`
	Decision            purchase.DecisionType `json:"decision"`
	SatisfactionInitial int                   `json:"satisfaction_initial"`
	CreatedAt           time.Time             `json:"created_at"`
}

type importSuccessResponse struct {
	Imported  int                `json:"imported"`
	Purchases []purchaseResponse `json:"purchases"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceKakeibo
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Fill in categories the export left blank from learned mappings.
	for i, p := range params {
		if p.Category != "" {
			continue
		}

		suggested, err := h.categorySvc.Suggest(r.Context(), p.Name)
		if err != nil || suggested == "" {
			continue
		}

		params[i].Category = suggested
	}

	purchases, err := h.purchaseSvc.CreateBatch(r.Context(), userID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(purchases)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(ps []*purchase.Purchase) importSuccessResponse {
	responses := make([]purchaseResponse, 0, len(ps))
	for _, p := range ps {
		responses = append(responses, purchaseResponse{
			ID:                  p.ID,
			Name:                p.Name,
			Amount:              p.Amount,
			Category:            p.Category,
			Date:                p.Date,
			Decision:            p.Decision,
			SatisfactionInitial: p.SatisfactionInitial,
			CreatedAt:           p.CreatedAt,
		})
	}

	return importSuccessResponse{
		Imported:  len(ps),
		Purchases: responses,
	}
}
