package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("purchase not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchase
type Repository interface {
	CreatePurchase(ctx context.Context, p *Purchase) error
	CreatePurchases(ctx context.Context, ps []*Purchase) error
	GetPurchase(ctx context.Context, userID, id uuid.UUID) (*Purchase, error)
	UpdateFollowup(ctx context.Context, userID, id uuid.UUID, score int) error
	ListPurchases(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Purchase, error)
	DeletePurchase(ctx context.Context, userID, id uuid.UUID) error
}

// Invalidator is notified whenever a user's recorded purchases change, so
// that derived state (cached reports) can be dropped.
type Invalidator interface {
	InvalidateUser(userID uuid.UUID)
}

type Service struct {
	repo        Repository
	invalidator Invalidator
}

func NewService(repo Repository, invalidator Invalidator) *Service {
	return &Service{repo: repo, invalidator: invalidator}
}

type CreateParams struct {
	Name                 string
	Amount               int64
	Category             string
	Date                 time.Time
	Decision             DecisionType
	SatisfactionInitial  int
	SatisfactionFollowup *int
	PlanningLeadDays     *int
}

type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  *string
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Purchase, error) {
	p := paramsToPurchase(userID, params)
	if !p.Valid() {
		return nil, fmt.Errorf("invalid purchase: amount=%d satisfaction=%d", p.Amount, p.SatisfactionInitial)
	}

	if err := s.repo.CreatePurchase(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(userID)

	return p, nil
}

// CreateBatch inserts imported purchases in one transaction.
func (s *Service) CreateBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) ([]*Purchase, error) {
	if len(params) == 0 {
		return nil, nil
	}

	ps := make([]*Purchase, 0, len(params))

	for _, p := range params {
		rec := paramsToPurchase(userID, p)
		if !rec.Valid() {
			return nil, fmt.Errorf("invalid purchase %q: amount=%d", p.Name, p.Amount)
		}

		ps = append(ps, rec)
	}

	if err := s.repo.CreatePurchases(ctx, ps); err != nil {
		return nil, fmt.Errorf("create purchases: %w", err)
	}

	s.invalidate(userID)

	return ps, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Purchase, error) {
	return s.repo.GetPurchase(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Purchase, error) {
	return s.repo.ListPurchases(ctx, userID, filter)
}

// RecordFollowup stores the one-month satisfaction score for a purchase.
func (s *Service) RecordFollowup(ctx context.Context, userID, id uuid.UUID, score int) error {
	if score < SatisfactionMin || score > SatisfactionMax {
		return fmt.Errorf("followup score %d out of range", score)
	}

	if err := s.repo.UpdateFollowup(ctx, userID, id, score); err != nil {
		return err
	}

	s.invalidate(userID)

	return nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeletePurchase(ctx, userID, id); err != nil {
		return err
	}

	s.invalidate(userID)

	return nil
}

func (s *Service) invalidate(userID uuid.UUID) {
	if s.invalidator != nil {
		s.invalidator.InvalidateUser(userID)
	}
}

func paramsToPurchase(userID uuid.UUID, params CreateParams) *Purchase {
	return &Purchase{
		UserID:               userID,
		Name:                 params.Name,
		Amount:               params.Amount,
		Category:             params.Category,
		Date:                 params.Date,
		Decision:             params.Decision,
		SatisfactionInitial:  params.SatisfactionInitial,
		SatisfactionFollowup: params.SatisfactionFollowup,
		PlanningLeadDays:     params.PlanningLeadDays,
	}
}
