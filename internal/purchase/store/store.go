package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/oizumi98/kaimono-api/internal/purchase"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPurchase reads a purchase row from the scanner.
// Expected column order: id, user_id, name, amount, category, date,
// decision, satisfaction_initial, satisfaction_followup, planning_lead_days,
// created_at, updated_at
func scanPurchase(s scanner) (*purchase.Purchase, error) {
	var p purchase.Purchase

	var decision string

	var followup, leadDays sql.NullInt64

	if err := s.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Amount, &p.Category, &p.Date,
		&decision, &p.SatisfactionInitial, &followup, &leadDays,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Decision = purchase.DecisionType(decision)

	if followup.Valid {
		v := int(followup.Int64)
		p.SatisfactionFollowup = &v
	}

	if leadDays.Valid {
		v := int(leadDays.Int64)
		p.PlanningLeadDays = &v
	}

	return &p, nil
}

const selectPurchaseColumns = `
	id, user_id, name, amount, category, date,
	decision, satisfaction_initial, satisfaction_followup, planning_lead_days,
	created_at, updated_at
`

func (s *Store) CreatePurchase(ctx context.Context, p *purchase.Purchase) error {
	query := `
		INSERT INTO purchases (user_id, name, amount, category, date, decision, satisfaction_initial, satisfaction_followup, planning_lead_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.UserID,
		p.Name,
		p.Amount,
		p.Category,
		p.Date,
		p.Decision,
		p.SatisfactionInitial,
		p.SatisfactionFollowup,
		p.PlanningLeadDays,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating purchase: %w", err)
	}

	return nil
}

func (s *Store) CreatePurchases(ctx context.Context, ps []*purchase.Purchase) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO purchases (user_id, name, amount, category, date, decision, satisfaction_initial, satisfaction_followup, planning_lead_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, p := range ps {
		err := tx.QueryRowContext(ctx, query,
			p.UserID, p.Name, p.Amount, p.Category, p.Date,
			p.Decision, p.SatisfactionInitial, p.SatisfactionFollowup, p.PlanningLeadDays,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating purchase %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *Store) GetPurchase(ctx context.Context, userID, id uuid.UUID) (*purchase.Purchase, error) {
	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, selectPurchaseColumns)

	p, err := scanPurchase(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, purchase.ErrNotFound
		}

		return nil, fmt.Errorf("getting purchase: %w", err)
	}

	return p, nil
}

func (s *Store) UpdateFollowup(ctx context.Context, userID, id uuid.UUID, score int) error {
	query := `
		UPDATE purchases
		SET satisfaction_followup = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, score, id, userID)
	if err != nil {
		return fmt.Errorf("updating followup: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return purchase.ErrNotFound
	}

	return nil
}

func (s *Store) ListPurchases(ctx context.Context, userID uuid.UUID, filter purchase.ListFilter) ([]*purchase.Purchase, error) {
	var (
		conditions = []string{"user_id = $1", "deleted_at IS NULL"}
		args       = []any{userID}
	)

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM purchases WHERE %s ORDER BY date ASC, id ASC`,
		selectPurchaseColumns, strings.Join(conditions, " AND "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var ps []*purchase.Purchase

	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}

		ps = append(ps, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchases: %w", err)
	}

	return ps, nil
}

func (s *Store) DeletePurchase(ctx context.Context, userID, id uuid.UUID) error {
	query := `UPDATE purchases SET deleted_at = NOW() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return purchase.ErrNotFound
	}

	return nil
}
