package kakeibo_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/oizumi98/kaimono-api/internal/importer/kakeibo"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

const sampleCSV = `家計簿エクスポート,,,,,
日付,品名,カテゴリ,金額,購入タイプ,満足度
2025/07/02,コーヒーミル,キッチン,"8,000",計画,4
2025/07/10,ゲームソフト,趣味,"5,000",衝動,5
2025/07/20,食パン,,200,計画,
合計,,,13200,,
`

func TestParse(t *testing.T) {
	imp := kakeibo.New()

	params, err := imp.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, params, 3)

	first := params[0]
	assert.Equal(t, "コーヒーミル", first.Name)
	assert.Equal(t, "キッチン", first.Category)
	assert.Equal(t, int64(8000), first.Amount)
	assert.Equal(t, purchase.DecisionPlanned, first.Decision)
	assert.Equal(t, 4, first.SatisfactionInitial)
	assert.Equal(t, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), first.Date)

	second := params[1]
	assert.Equal(t, int64(5000), second.Amount)
	assert.Equal(t, purchase.DecisionImpulse, second.Decision)

	// Missing satisfaction falls back to the neutral default; missing
	// category stays empty for downstream suggestion.
	third := params[2]
	assert.Equal(t, 3, third.SatisfactionInitial)
	assert.Empty(t, third.Category)
}

func TestParse_ShiftJIS(t *testing.T) {
	encoded, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(sampleCSV))
	require.NoError(t, err)

	imp := kakeibo.New()

	params, err := imp.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, params, 3)
	assert.Equal(t, "コーヒーミル", params[0].Name)
	assert.Equal(t, "キッチン", params[0].Category)
}

func TestParse_YenPrefix(t *testing.T) {
	csv := "日付,金額\n2025/07/02,¥1200\n"

	imp := kakeibo.New()

	params, err := imp.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, int64(1200), params[0].Amount)
}

func TestParse_NoHeader(t *testing.T) {
	imp := kakeibo.New()

	params, err := imp.Parse(strings.NewReader("foo,bar\n1,2\n"))
	require.NoError(t, err)
	assert.Empty(t, params)
}
