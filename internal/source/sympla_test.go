package source

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/luvbee/event-spider/internal/fetch"
)

func TestSymplaExtractCards(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/sympla_cards.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := &Sympla{Client: getFunc(func(url string, _ map[string]string) (*fetch.Response, error) {
		return htmlResponse(string(data)), nil
	})}

	candidates, err := s.Extract(context.Background(), testTarget())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// Third card has neither name nor link and must be discarded.
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	showX := candidates[0]
	if showX.Name != "Show X" {
		t.Errorf("name = %q, expected Show X", showX.Name)
	}
	if showX.SourceKey != "sympla_abc123" {
		t.Errorf("source key = %q, expected sympla_abc123", showX.SourceKey)
	}
	if !strings.HasPrefix(showX.TicketURL, "https://www.sympla.com.br/") {
		t.Errorf("relative link not resolved: %q", showX.TicketURL)
	}
	if showX.StartTime.Month() != time.October || showX.StartTime.Day() != 22 {
		t.Errorf("start time = %v, expected October 22", showX.StartTime)
	}
	if showX.StartTime.Hour() != 21 {
		t.Errorf("start hour = %d, expected 21", showX.StartTime.Hour())
	}
	if showX.ImageURL == "" {
		t.Error("expected image URL to be set")
	}
	if showX.Metadata["price"] != "R$ 80,00" {
		t.Errorf("price metadata = %v", showX.Metadata["price"])
	}
	if showX.Metadata["source"] != "sympla" {
		t.Errorf("source metadata = %v", showX.Metadata["source"])
	}
	if showX.City != "Curitiba" || showX.State != "PR" {
		t.Errorf("city/state not carried from request: %q/%q", showX.City, showX.State)
	}

	// Second card's date text matches no pattern: kept with the tomorrow
	// placeholder, and its relative image URL is dropped.
	festivalY := candidates[1]
	if festivalY.SourceKey != "sympla_def456" {
		t.Errorf("source key = %q, expected sympla_def456", festivalY.SourceKey)
	}
	until := time.Until(festivalY.StartTime)
	if until < 23*time.Hour || until > 25*time.Hour {
		t.Errorf("placeholder start should be ~24h out, got %v", until)
	}
	if festivalY.ImageURL != "" {
		t.Errorf("non-absolute image should be dropped, got %q", festivalY.ImageURL)
	}
}

func TestSymplaFallsBackToSimpleURL(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/sympla_cards.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	var calls []string
	s := &Sympla{Client: getFunc(func(url string, _ map[string]string) (*fetch.Response, error) {
		calls = append(calls, url)
		if strings.Contains(url, "?data=") {
			return nil, notFound(url)
		}
		return htmlResponse(string(data)), nil
	})}

	candidates, err := s.Extract(context.Background(), testTarget())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatal("expected candidates from fallback URL")
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 fetches (primary + fallback), got %d: %v", len(calls), calls)
	}
	if !strings.HasSuffix(calls[1], "/eventos/curitiba-pr") {
		t.Errorf("fallback URL should drop date params, got %q", calls[1])
	}
}

func TestSymplaBothURLsFailing(t *testing.T) {
	s := &Sympla{Client: getFunc(func(url string, _ map[string]string) (*fetch.Response, error) {
		return nil, notFound(url)
	})}

	_, err := s.Extract(context.Background(), testTarget())
	if err == nil {
		t.Fatal("expected error when primary and fallback URLs both fail")
	}
}

func TestSymplaJSONLDFallback(t *testing.T) {
	page := `<html><body>
		<div class="unrelated">no cards here</div>
		<script type="application/ld+json">
		[{"@type":"Event","name":"Show LD","url":"https://www.sympla.com.br/evento/show-ld/xyz789","startDate":"2026-10-22T21:00:00Z","description":"Um show"}]
		</script>
	</body></html>`

	s := &Sympla{Client: getFunc(func(url string, _ map[string]string) (*fetch.Response, error) {
		return htmlResponse(page), nil
	})}

	candidates, err := s.Extract(context.Background(), testTarget())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 JSON-LD candidate, got %d", len(candidates))
	}

	c := candidates[0]
	if c.Name != "Show LD" {
		t.Errorf("name = %q", c.Name)
	}
	if c.SourceKey != "sympla_ld_xyz789" {
		t.Errorf("source key = %q, expected sympla_ld_xyz789", c.SourceKey)
	}
	if c.StartTime.Year() != 2026 || c.StartTime.Month() != time.October {
		t.Errorf("start time = %v", c.StartTime)
	}
}
