package export_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oizumi98/kaimono-api/internal/export"
	"github.com/oizumi98/kaimono-api/internal/importer/kakeibo"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

type stubLister struct {
	records []*purchase.Purchase
	err     error
}

func (s *stubLister) List(_ context.Context, _ uuid.UUID, _ purchase.ListFilter) ([]*purchase.Purchase, error) {
	return s.records, s.err
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	records := []*purchase.Purchase{
		{
			ID:                  uuid.New(),
			Name:                "ワイヤレスイヤホン",
			Amount:              12800,
			Category:            "electronics",
			Date:                time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			Decision:            purchase.DecisionPlanned,
			SatisfactionInitial: 4,
		},
		{
			ID:                  uuid.New(),
			Name:                "コンビニスイーツ",
			Amount:              380,
			Category:            "food",
			Date:                time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			Decision:            purchase.DecisionImpulse,
			SatisfactionInitial: 2,
		},
	}

	svc := export.NewService(&stubLister{records: records})

	var buf bytes.Buffer

	n, err := svc.WriteCSV(context.Background(), &buf, uuid.New(), purchase.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// The export must survive a pass through the kakeibo importer.
	params, err := kakeibo.New().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "ワイヤレスイヤホン", params[0].Name)
	assert.Equal(t, int64(12800), params[0].Amount)
	assert.Equal(t, "electronics", params[0].Category)
	assert.Equal(t, purchase.DecisionPlanned, params[0].Decision)
	assert.Equal(t, 4, params[0].SatisfactionInitial)
	assert.Equal(t, records[0].Date, params[0].Date)

	assert.Equal(t, purchase.DecisionImpulse, params[1].Decision)
	assert.Equal(t, 2, params[1].SatisfactionInitial)
}

func TestWriteCSV_Empty(t *testing.T) {
	svc := export.NewService(&stubLister{})

	var buf bytes.Buffer

	n, err := svc.WriteCSV(context.Background(), &buf, uuid.New(), purchase.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "日付,品名,カテゴリ,金額,購入タイプ,満足度\n", buf.String())
}

func TestWriteCSV_ListerError(t *testing.T) {
	svc := export.NewService(&stubLister{err: errors.New("boom")})

	var buf bytes.Buffer

	_, err := svc.WriteCSV(context.Background(), &buf, uuid.New(), purchase.ListFilter{})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 8, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "purchases_20250802.csv", export.Filename(now))
}
