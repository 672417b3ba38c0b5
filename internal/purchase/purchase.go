package purchase

import (
	"time"

	"github.com/google/uuid"
)

// DecisionType represents how a purchase decision was made.
type DecisionType string

const (
	DecisionPlanned DecisionType = "planned"
	DecisionImpulse DecisionType = "impulse"
)

// Satisfaction scores are recorded on a 0-5 scale.
const (
	SatisfactionMin = 0
	SatisfactionMax = 5
)

// Purchase represents one recorded purchase.
type Purchase struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	Amount              int64 // Amount in yen
	Category            string
	Date                time.Time
	Decision            DecisionType
	SatisfactionInitial int
	// SatisfactionFollowup is recorded roughly one month after the
	// purchase; nil until collected.
	SatisfactionFollowup *int
	// PlanningLeadDays is the number of days between deciding on the
	// purchase and making it; nil for impulse purchases.
	PlanningLeadDays *int
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Valid reports whether the record satisfies the invariants the analysis
// engine relies on. Records failing this check are skipped, not fatal.
func (p *Purchase) Valid() bool {
	if p.Amount < 0 {
		return false
	}

	if p.SatisfactionInitial < SatisfactionMin || p.SatisfactionInitial > SatisfactionMax {
		return false
	}

	if p.SatisfactionFollowup != nil {
		if *p.SatisfactionFollowup < SatisfactionMin || *p.SatisfactionFollowup > SatisfactionMax {
			return false
		}
	}

	return true
}

// EffectiveSatisfaction returns the follow-up score when collected, falling
// back to the initial score otherwise.
func (p *Purchase) EffectiveSatisfaction() int {
	if p.SatisfactionFollowup != nil {
		return *p.SatisfactionFollowup
	}

	return p.SatisfactionInitial
}

// SatisfactionDelta is follow-up minus initial; zero when the follow-up
// score has not been collected yet.
func (p *Purchase) SatisfactionDelta() int {
	if p.SatisfactionFollowup == nil {
		return 0
	}

	return *p.SatisfactionFollowup - p.SatisfactionInitial
}
