// Package spider orchestrates one discovery run: fan out to every provider
// extractor concurrently, merge and deduplicate the candidates, and
// reconcile the survivors against the store.
package spider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/luvbee/event-spider/internal/event"
	"github.com/luvbee/event-spider/internal/metrics"
	"github.com/luvbee/event-spider/internal/source"
	"github.com/luvbee/event-spider/internal/store"
)

// Result summarizes one discovery run. Errors holds one human-readable
// string per failed provider; a run where every provider failed is still a
// valid result with zero counts.
type Result struct {
	TotalFound int      `json:"total_found"`
	Saved      int      `json:"saved"`
	Updated    int      `json:"updated"`
	Errors     []string `json:"errors,omitempty"`
}

// Spider runs the multi-source discovery pipeline.
type Spider struct {
	Extractors []source.Extractor
	Store      store.Store
	Logger     *zap.Logger

	// WindowDays is the forward date window; defaults to 30.
	WindowDays int
	// RunTimeout caps the wall-clock time of a whole run, so one very slow
	// provider cannot stall it indefinitely. Zero disables the cap.
	RunTimeout time.Duration
}

// Run sweeps all providers for a city and reconciles the results.
// Source-level and record-level failures are absorbed into the result;
// the returned error is reserved for run-level problems.
func (s *Spider) Run(ctx context.Context, city, state string) (*Result, error) {
	if s.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RunTimeout)
		defer cancel()
	}

	days := s.WindowDays
	if days <= 0 {
		days = 30
	}
	now := time.Now().UTC()
	target := source.Target{
		City:  city,
		State: state,
		From:  now,
		To:    now.AddDate(0, 0, days),
	}

	metrics.DiscoveryRuns.Inc()
	s.Logger.Info("discovery run started",
		zap.String("city", city),
		zap.String("state", state),
		zap.Time("window_end", target.To),
	)

	outcomes := s.settleAll(ctx, target)

	result := &Result{}
	var merged []event.Candidate
	for i, out := range outcomes {
		name := s.Extractors[i].Name()
		if out.err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, out.err))
			metrics.SourceFailures.WithLabelValues(name).Inc()
			s.Logger.Warn("source failed", zap.String("provider", name), zap.Error(out.err))
			continue
		}
		merged = append(merged, out.candidates...)
		metrics.CandidatesFound.WithLabelValues(name).Add(float64(len(out.candidates)))
		s.Logger.Info("source done", zap.String("provider", name), zap.Int("candidates", len(out.candidates)))
	}

	unique := dedupe(merged)
	result.TotalFound = len(unique)

	// Sequential writes: no correctness requirement, just avoids hammering
	// the store from one run.
	for _, c := range unique {
		action, err := s.Store.Upsert(ctx, c)
		if err != nil {
			metrics.PersistFailures.Inc()
			s.Logger.Warn("persist failed, skipping candidate",
				zap.String("source_key", c.SourceKey), zap.Error(err))
			continue
		}
		switch action {
		case store.ActionInserted:
			result.Saved++
			metrics.EventsSaved.Inc()
		case store.ActionUpdated:
			result.Updated++
			metrics.EventsUpdated.Inc()
		}
	}

	s.Logger.Info("discovery run finished",
		zap.Int("found", result.TotalFound),
		zap.Int("saved", result.Saved),
		zap.Int("updated", result.Updated),
		zap.Int("source_errors", len(result.Errors)),
	)
	return result, nil
}

type outcome struct {
	candidates []event.Candidate
	err        error
}

// settleAll launches every extractor concurrently and waits for all of them
// to finish, success or failure. One extractor's failure (including a panic
// on malformed input) never cancels its siblings.
func (s *Spider) settleAll(ctx context.Context, target source.Target) []outcome {
	outcomes := make([]outcome, len(s.Extractors))

	var wg sync.WaitGroup
	for i, ex := range s.Extractors {
		wg.Add(1)
		go func(i int, ex source.Extractor) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = outcome{err: fmt.Errorf("panic: %v", r)}
				}
			}()
			candidates, err := ex.Extract(ctx, target)
			outcomes[i] = outcome{candidates: candidates, err: err}
		}(i, ex)
	}
	wg.Wait()

	return outcomes
}

// dedupe drops candidates whose source key was already seen, keeping the
// first occurrence in extractor-iteration order.
func dedupe(candidates []event.Candidate) []event.Candidate {
	seen := make(map[string]bool, len(candidates))
	unique := make([]event.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.SourceKey] {
			continue
		}
		seen[c.SourceKey] = true
		unique = append(unique, c)
	}
	return unique
}
