package spider

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/luvbee/event-spider/internal/event"
	"github.com/luvbee/event-spider/internal/source"
	"github.com/luvbee/event-spider/internal/store"
)

// fakeExtractor returns scripted candidates or an error.
type fakeExtractor struct {
	name       string
	candidates []event.Candidate
	err        error
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) Extract(_ context.Context, _ source.Target) ([]event.Candidate, error) {
	return f.candidates, f.err
}

// fakeStore records upserts in memory, keyed by source key.
type fakeStore struct {
	records map[string]event.Candidate
	failKey string
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]event.Candidate)}
}

func (f *fakeStore) Upsert(_ context.Context, c event.Candidate) (store.Action, error) {
	if c.SourceKey == f.failKey {
		return "", errors.New("constraint violation")
	}
	if _, exists := f.records[c.SourceKey]; exists {
		f.records[c.SourceKey] = c
		return store.ActionUpdated, nil
	}
	f.records[c.SourceKey] = c
	return store.ActionInserted, nil
}

func candidate(key, name string) event.Candidate {
	return event.Candidate{
		Name:      name,
		TicketURL: "https://provider.example/evt/" + key,
		StartTime: time.Now().UTC().Add(48 * time.Hour),
		City:      "Curitiba",
		State:     "PR",
		SourceKey: key,
	}
}

func newSpider(st store.Store, extractors ...source.Extractor) *Spider {
	return &Spider{
		Extractors: extractors,
		Store:      st,
		Logger:     zap.NewNop(),
	}
}

func TestRunHappyPath(t *testing.T) {
	st := newFakeStore()
	s := newSpider(st,
		&fakeExtractor{name: "Sympla", candidates: []event.Candidate{
			candidate("sympla_a", "Show A"),
			candidate("sympla_b", "Show B"),
		}},
		&fakeExtractor{name: "Eventbrite", candidates: []event.Candidate{
			candidate("eventbrite_c", "Show C"),
		}},
	)

	result, err := s.Run(context.Background(), "Curitiba", "PR")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.TotalFound != 3 || result.Saved != 3 || result.Updated != 0 {
		t.Errorf("result = %+v, expected 3 found / 3 saved / 0 updated", result)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if len(st.records) != 3 {
		t.Errorf("store holds %d records, expected 3", len(st.records))
	}
}

func TestRunIsIdempotent(t *testing.T) {
	st := newFakeStore()
	ex := &fakeExtractor{name: "Sympla", candidates: []event.Candidate{
		candidate("sympla_a", "Show A"),
		candidate("sympla_b", "Show B"),
	}}
	s := newSpider(st, ex)

	first, err := s.Run(context.Background(), "Curitiba", "PR")
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := s.Run(context.Background(), "Curitiba", "PR")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if first.Saved != 2 || first.Updated != 0 {
		t.Errorf("first run = %+v", first)
	}
	if second.Saved != 0 || second.Updated != 2 {
		t.Errorf("second run should only update, got %+v", second)
	}
	if len(st.records) != 2 {
		t.Errorf("re-run grew the store to %d records", len(st.records))
	}
}

func TestRunPartialFailure(t *testing.T) {
	st := newFakeStore()
	s := newSpider(st,
		&fakeExtractor{name: "Sympla", candidates: []event.Candidate{candidate("sympla_a", "Show A")}},
		&fakeExtractor{name: "Eventbrite", err: errors.New("status 403")},
		&fakeExtractor{name: "Ingresse", candidates: []event.Candidate{candidate("ingresse_b", "Show B")}},
		&fakeExtractor{name: "Shotgun", candidates: []event.Candidate{candidate("shotgun_c", "Show C")}},
	)

	result, err := s.Run(context.Background(), "Curitiba", "PR")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Saved+result.Updated == 0 {
		t.Error("expected count > 0 despite one failed source")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one error string, got %v", result.Errors)
	}
	if result.Errors[0] != "Eventbrite: status 403" {
		t.Errorf("error string = %q", result.Errors[0])
	}
}

func TestRunCompleteWipeoutIsNotAnError(t *testing.T) {
	st := newFakeStore()
	s := newSpider(st,
		&fakeExtractor{name: "Sympla", err: errors.New("timeout")},
		&fakeExtractor{name: "Eventbrite", err: errors.New("status 500")},
		&fakeExtractor{name: "Ingresse", err: errors.New("status 403")},
		&fakeExtractor{name: "Shotgun", err: errors.New("connection refused")},
	)

	result, err := s.Run(context.Background(), "Curitiba", "PR")
	if err != nil {
		t.Fatalf("all-sources-failed must not be a run error, got %v", err)
	}
	if result.TotalFound != 0 || result.Saved != 0 || result.Updated != 0 {
		t.Errorf("result = %+v, expected zero counts", result)
	}
	if len(result.Errors) != 4 {
		t.Errorf("expected 4 error strings, got %d", len(result.Errors))
	}
}

func TestRunDeduplicatesFirstWins(t *testing.T) {
	st := newFakeStore()
	s := newSpider(st,
		&fakeExtractor{name: "Sympla", candidates: []event.Candidate{
			candidate("sympla_a", "First Occurrence"),
		}},
		&fakeExtractor{name: "Eventbrite", candidates: []event.Candidate{
			candidate("sympla_a", "Second Occurrence"),
			candidate("eventbrite_b", "Show B"),
		}},
	)

	result, err := s.Run(context.Background(), "Curitiba", "PR")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.TotalFound != 2 {
		t.Errorf("TotalFound = %d, expected 2 after dedup", result.TotalFound)
	}
	if got := st.records["sympla_a"].Name; got != "First Occurrence" {
		t.Errorf("dedup kept %q, expected the first occurrence", got)
	}
}

func TestRunSkipsFailingRecord(t *testing.T) {
	st := newFakeStore()
	st.failKey = "sympla_bad"
	s := newSpider(st,
		&fakeExtractor{name: "Sympla", candidates: []event.Candidate{
			candidate("sympla_good", "Show Good"),
			candidate("sympla_bad", "Show Bad"),
			candidate("sympla_also_good", "Show Also Good"),
		}},
	)

	result, err := s.Run(context.Background(), "Curitiba", "PR")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Saved != 2 {
		t.Errorf("Saved = %d, expected 2 (failing record skipped)", result.Saved)
	}
	if result.TotalFound != 3 {
		t.Errorf("TotalFound = %d, expected 3", result.TotalFound)
	}
}

func TestDedupeStability(t *testing.T) {
	in := []event.Candidate{
		{SourceKey: "a", Name: "first-a"},
		{SourceKey: "b", Name: "first-b"},
		{SourceKey: "a", Name: "second-a"},
		{SourceKey: "c", Name: "first-c"},
		{SourceKey: "b", Name: "second-b"},
	}

	out := dedupe(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 unique candidates, got %d", len(out))
	}
	for i, want := range []string{"first-a", "first-b", "first-c"} {
		if out[i].Name != want {
			t.Errorf("out[%d].Name = %q, expected %q", i, out[i].Name, want)
		}
	}
}
