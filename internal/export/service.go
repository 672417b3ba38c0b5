// Package export renders a user's purchase history as a ledger CSV, using
// the same column layout the kakeibo importer reads, so exported data can
// be re-imported into another account or kept as a backup.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/oizumi98/kaimono-api/internal/purchase"
)

var header = []string{"日付", "品名", "カテゴリ", "金額", "購入タイプ", "満足度"}

// Lister provides the purchases to export. Satisfied by *purchase.Service.
type Lister interface {
	List(ctx context.Context, userID uuid.UUID, filter purchase.ListFilter) ([]*purchase.Purchase, error)
}

type Service struct {
	purchases Lister
}

func NewService(purchases Lister) *Service {
	return &Service{purchases: purchases}
}

// WriteCSV streams the user's purchases matching the filter to w as CSV.
// It returns the number of exported rows, excluding the header.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, userID uuid.UUID, filter purchase.ListFilter) (int, error) {
	records, err := s.purchases.List(ctx, userID, filter)
	if err != nil {
		return 0, fmt.Errorf("listing purchases: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, p := range records {
		if err := cw.Write(row(p)); err != nil {
			return 0, fmt.Errorf("writing row for %s: %w", p.ID, err)
		}
	}

	cw.Flush()

	return len(records), cw.Error()
}

func row(p *purchase.Purchase) []string {
	decision := "衝動"
	if p.Decision == purchase.DecisionPlanned {
		decision = "計画"
	}

	return []string{
		p.Date.Format("2006/01/02"),
		p.Name,
		p.Category,
		strconv.FormatInt(p.Amount, 10),
		decision,
		strconv.Itoa(p.SatisfactionInitial),
	}
}

// Filename names the download after the export date.
func Filename(now time.Time) string {
	return fmt.Sprintf("purchases_%s.csv", now.Format("20060102"))
}
