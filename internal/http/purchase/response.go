package purchase

import (
	"time"

	"github.com/google/uuid"

	"github.com/oizumi98/kaimono-api/internal/purchase"
)

type purchaseResponse struct {
	ID                   uuid.UUID             `json:"id"`
	Name                 string                `json:"name"`
	Amount               int64                 `json:"amount"`
	Category             string                `json:"category"`
	Date                 time.Time             `json:"date"`
	Decision             purchase.DecisionType `json:"decision"`
	SatisfactionInitial  int                   `json:"satisfaction_initial"`
	SatisfactionFollowup *int                  `json:"satisfaction_followup,omitempty"`
	PlanningLeadDays     *int                  `json:"planning_lead_days,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            *time.Time            `json:"updated_at,omitempty"`
}

func toResponse(p *purchase.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Amount:               p.Amount,
		Category:             p.Category,
		Date:                 p.Date,
		Decision:             p.Decision,
		SatisfactionInitial:  p.SatisfactionInitial,
		SatisfactionFollowup: p.SatisfactionFollowup,
		PlanningLeadDays:     p.PlanningLeadDays,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func toResponseList(ps []*purchase.Purchase) []purchaseResponse {
	resp := make([]purchaseResponse, len(ps))
	for i, p := range ps {
		resp[i] = toResponse(p)
	}

	return resp
}
