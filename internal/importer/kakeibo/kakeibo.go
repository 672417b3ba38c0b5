// Package kakeibo parses household-ledger CSV exports into purchase create
// params. Exports come from spreadsheet tools, so the parser tolerates
// title rows before the header, footer rows after the data, and CP932
// input (decoded upstream).
package kakeibo

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/oizumi98/kaimono-api/internal/encoding"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

const (
	colDate         = "日付"
	colName         = "品名"
	colCategory     = "カテゴリ"
	colAmount       = "金額"
	colDecision     = "購入タイプ"
	colSatisfaction = "満足度"
)

// decisionPlanned is how ledger exports label a planned purchase; anything
// else is treated as impulse.
const decisionPlanned = "計画"

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]purchase.CreateParams, error) {
	utf8Reader, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	reader := csv.NewReader(utf8Reader)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	var params []purchase.CreateParams

	headerFound := false

	// Column indices
	idxDate := -1
	idxName := -1
	idxCategory := -1
	idxAmount := -1
	idxDecision := -1
	idxSatisfaction := -1

	for _, row := range rows {
		// 1. Search for header landmark
		if !headerFound {
			matches := 0

			for i, col := range row {
				switch strings.TrimSpace(col) {
				case colDate:
					idxDate = i
					matches++
				case colName:
					idxName = i
					matches++
				case colCategory:
					idxCategory = i
					matches++
				case colAmount:
					idxAmount = i
					matches++
				case colDecision:
					idxDecision = i
					matches++
				case colSatisfaction:
					idxSatisfaction = i
					matches++
				}
			}

			// Date and Amount are the minimum for a usable export.
			if matches >= 2 && idxDate != -1 && idxAmount != -1 {
				headerFound = true
			}

			continue
		}

		// 2. Parse data rows
		maxIdx := max(idxDate, idxName, idxCategory, idxAmount, idxDecision, idxSatisfaction)
		if len(row) <= maxIdx {
			continue
		}

		date, ok := parseDate(strings.TrimSpace(row[idxDate]))
		if !ok {
			// Probably a footer or summary row.
			continue
		}

		amount, err := parseAmount(strings.TrimSpace(row[idxAmount]))
		if err != nil || amount < 0 {
			continue
		}

		p := purchase.CreateParams{
			Amount:              amount,
			Date:                date,
			Decision:            purchase.DecisionImpulse,
			SatisfactionInitial: 3, // Neutral default when the export has no score
		}

		if idxName != -1 {
			p.Name = strings.TrimSpace(row[idxName])
		}

		if idxCategory != -1 {
			p.Category = strings.TrimSpace(row[idxCategory])
		}

		if idxDecision != -1 && strings.Contains(row[idxDecision], decisionPlanned) {
			p.Decision = purchase.DecisionPlanned
		}

		if idxSatisfaction != -1 {
			if score, err := strconv.Atoi(strings.TrimSpace(row[idxSatisfaction])); err == nil &&
				score >= purchase.SatisfactionMin && score <= purchase.SatisfactionMax {
				p.SatisfactionInitial = score
			}
		}

		params = append(params, p)
	}

	return params, nil
}

var dateLayouts = []string{"2006/01/02", "2006-01-02", "2006/1/2"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount handles "1,234", "¥1,234" and plain integers. Ledger amounts
// are whole yen.
func parseAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(s, ",", "")
	clean = strings.TrimPrefix(clean, "¥")
	clean = strings.TrimSpace(clean)

	return strconv.ParseInt(clean, 10, 64)
}
