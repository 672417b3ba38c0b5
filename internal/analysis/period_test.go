package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oizumi98/kaimono-api/internal/analysis"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)

	type args struct {
		preset string
		start  string
		end    string
	}

	type testCase struct {
		name      string
		args      args
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
		wantErr   bool
	}

	tests := []testCase{
		{
			name:      "DefaultPreset",
			args:      args{},
			wantStart: date(2025, 6, 15),
			wantEnd:   date(2025, 7, 15),
			wantLabel: "1month",
		},
		{
			name:      "ThreeMonths",
			args:      args{preset: "3months"},
			wantStart: date(2025, 4, 15),
			wantEnd:   date(2025, 7, 15),
			wantLabel: "3months",
		},
		{
			name:      "OneYear",
			args:      args{preset: "1year"},
			wantStart: date(2024, 7, 15),
			wantEnd:   date(2025, 7, 15),
			wantLabel: "1year",
		},
		{
			name:      "ExplicitDates",
			args:      args{start: "2025-01-01", end: "2025-02-01"},
			wantStart: date(2025, 1, 1),
			wantEnd:   date(2025, 2, 1),
			wantLabel: "custom",
		},
		{
			name:    "StartAfterEnd",
			args:    args{start: "2025-03-01", end: "2025-02-01"},
			wantErr: true,
		},
		{
			name:    "MalformedDate",
			args:    args{start: "01/02/2025", end: "2025-03-01"},
			wantErr: true,
		},
		{
			name:    "UnknownPreset",
			args:    args{preset: "2weeks"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := analysis.ResolvePeriod(tt.args.preset, tt.args.start, tt.args.end, now)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, analysis.ErrInvalidPeriod)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, period.Start)
			assert.Equal(t, tt.wantEnd, period.End)
			assert.Equal(t, tt.wantLabel, period.Label)
		})
	}
}

func TestPeriod_Days(t *testing.T) {
	p := analysis.Period{Start: date(2025, 7, 1), End: date(2025, 7, 28)}
	assert.Equal(t, 28, p.Days())

	single := analysis.Period{Start: date(2025, 7, 1), End: date(2025, 7, 1)}
	assert.Equal(t, 1, single.Days())
}
