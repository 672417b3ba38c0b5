// Package analysis computes summary and behavioral pattern reports over a
// user's recorded purchases. The computations are pure functions over an
// in-memory record slice; the only shared state is the report cache.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/oizumi98/kaimono-api/internal/cache"
	"github.com/oizumi98/kaimono-api/internal/purchase"
)

// ErrDataUnavailable marks a Record Source failure. Retryable.
var ErrDataUnavailable = errors.New("purchase records unavailable")

// RecordSource supplies purchase records for a user and date range. The
// engine treats it as an external collaborator.
type RecordSource interface {
	ListPurchases(ctx context.Context, userID uuid.UUID, filter purchase.ListFilter) ([]*purchase.Purchase, error)
}

type Options struct {
	Cache        cache.Options
	FetchTimeout time.Duration
}

type Service struct {
	source       RecordSource
	summaries    *cache.Cache[SummaryReport]
	patterns     *cache.Cache[PatternReport]
	fetchTimeout time.Duration
}

func NewService(source RecordSource, opts Options) *Service {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 5 * time.Second
	}

	return &Service{
		source:       source,
		summaries:    cache.New[SummaryReport](opts.Cache),
		patterns:     cache.New[PatternReport](opts.Cache),
		fetchTimeout: opts.FetchTimeout,
	}
}

// Summarize returns the summary report for the user and period, computing
// it on a cache miss. Identical concurrent requests share one computation.
func (s *Service) Summarize(ctx context.Context, userID uuid.UUID, period Period) (SummaryReport, cache.Info, error) {
	key := reportKey(userID, "summary", period)

	return s.summaries.GetOrCompute(ctx, key, userID.String(), func(ctx context.Context) (SummaryReport, error) {
		records, err := s.fetch(ctx, userID, period)
		if err != nil {
			return SummaryReport{}, err
		}

		return Aggregate(records, period), nil
	})
}

// Patterns returns the behavioral pattern report for the user and period.
func (s *Service) Patterns(ctx context.Context, userID uuid.UUID, period Period) (PatternReport, cache.Info, error) {
	key := reportKey(userID, "pattern", period)

	return s.patterns.GetOrCompute(ctx, key, userID.String(), func(ctx context.Context) (PatternReport, error) {
		records, err := s.fetch(ctx, userID, period)
		if err != nil {
			return PatternReport{}, err
		}

		summary := Aggregate(records, period)
		clusters := Cluster(records)
		correlations := Correlate(records)

		return PatternReport{
			Clusters:     clusters,
			Insights:     GenerateInsights(summary, clusters, correlations),
			Correlations: correlations,
		}, nil
	})
}

// InvalidateUser drops the user's cached reports. Called whenever their
// recorded purchases change.
func (s *Service) InvalidateUser(userID uuid.UUID) {
	s.summaries.InvalidateOwner(userID.String())
	s.patterns.InvalidateOwner(userID.String())
}

// fetch loads the user's records for the period with a bounded timeout and
// drops records violating the engine's invariants. A corrupt record is
// skipped and logged, never fatal to the whole report.
func (s *Service) fetch(ctx context.Context, userID uuid.UUID, period Period) ([]*purchase.Purchase, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	records, err := s.source.ListPurchases(fetchCtx, userID, purchase.ListFilter{
		StartDate: &period.Start,
		EndDate:   &period.End,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	valid := records[:0:0]

	for _, p := range records {
		if !p.Valid() {
			slog.Warn("skipping malformed purchase record", "id", p.ID, "amount", p.Amount)
			continue
		}

		valid = append(valid, p)
	}

	return valid, nil
}

func reportKey(userID uuid.UUID, kind string, period Period) string {
	return cache.Key(
		userID.String(),
		kind,
		period.Start.Format(time.DateOnly),
		period.End.Format(time.DateOnly),
	)
}
