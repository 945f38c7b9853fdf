package source

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/luvbee/event-spider/internal/fetch"
)

func TestIngresseHydrationPayload(t *testing.T) {
	target := testTarget()
	inWindow := target.From.Add(72 * time.Hour).Format(time.RFC3339)
	outOfWindow := target.From.Add(-72 * time.Hour).Format(time.RFC3339)

	page := fmt.Sprintf(`<html><body>
		<script id="__NEXT_DATA__" type="application/json">
		{
			"props": {
				"pageProps": {
					"city": {"name": "Curitiba"},
					"sections": [
						{"title": "Destaques", "events": [
							{"id": 4211, "title": "Balada Z", "startDate": %q, "url": "https://ingresse.com/balada-z",
							 "banner": "https://img.ingresse.example/z.jpg",
							 "venue": {"address": "Av. Sete de Setembro, 100", "name": "Club Z"}},
							{"id": 4212, "title": "Evento Passado", "startDate": %q, "url": "https://ingresse.com/passado"}
						]}
					]
				}
			}
		}
		</script>
	</body></html>`, inWindow, outOfWindow)

	i := &Ingresse{Client: getFunc(func(url string, _ map[string]string) (*fetch.Response, error) {
		return htmlResponse(page), nil
	})}

	candidates, err := i.Extract(context.Background(), target)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 in-window candidate, got %d", len(candidates))
	}

	c := candidates[0]
	if c.Name != "Balada Z" {
		t.Errorf("name = %q", c.Name)
	}
	if c.SourceKey != "ingresse_4211" {
		t.Errorf("source key = %q, expected ingresse_4211", c.SourceKey)
	}
	if c.Address != "Av. Sete de Setembro, 100" {
		t.Errorf("address = %q", c.Address)
	}
	if c.ImageURL != "https://img.ingresse.example/z.jpg" {
		t.Errorf("image = %q", c.ImageURL)
	}
	if c.Metadata["venue"] == nil {
		t.Error("venue metadata should be carried through")
	}
}

func TestIngresseCardFallback(t *testing.T) {
	page := `<html><body>
		<div data-testid="event-row">
			<a href="/show-fallback"><h2>Show Fallback</h2></a>
			<span class="date">22 de outubro</span>
		</div>
	</body></html>`

	i := &Ingresse{Client: getFunc(func(url string, _ map[string]string) (*fetch.Response, error) {
		return htmlResponse(page), nil
	})}

	candidates, err := i.Extract(context.Background(), testTarget())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 card candidate, got %d", len(candidates))
	}

	c := candidates[0]
	if c.SourceKey != "ingresse_card_show-fallback" {
		t.Errorf("source key = %q", c.SourceKey)
	}
	if c.StartTime.Month() != time.October || c.StartTime.Day() != 22 {
		t.Errorf("start time = %v, expected October 22", c.StartTime)
	}
}

func TestLooksLikeEvent(t *testing.T) {
	tests := []struct {
		name     string
		node     map[string]any
		expected bool
	}{
		{"title and date", map[string]any{"title": "Show", "date": "22/10/2026"}, true},
		{"name and startDate", map[string]any{"name": "Show", "startDate": "2026-10-22"}, true},
		{"numeric date field", map[string]any{"title": "Show", "date": 1766361600.0}, true},
		{"title only", map[string]any{"title": "Show"}, false},
		{"date only", map[string]any{"startDate": "2026-10-22"}, false},
		{"empty node", map[string]any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeEvent(tt.node); got != tt.expected {
				t.Errorf("looksLikeEvent = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestWalkHydrationVisitsNestedNodes(t *testing.T) {
	tree := map[string]any{
		"a": []any{
			map[string]any{"title": "One", "date": "x"},
			map[string]any{"deeper": map[string]any{"name": "Two", "startDate": "y"}},
		},
		"b": "noise",
	}

	var seen []string
	walkHydration(tree, func(node map[string]any) {
		seen = append(seen, stringField(node, "title", "name"))
	})

	if len(seen) != 2 {
		t.Fatalf("expected 2 event-like nodes, got %d: %v", len(seen), seen)
	}
}

func TestIngresseUnreachable(t *testing.T) {
	i := &Ingresse{Client: getFunc(func(url string, _ map[string]string) (*fetch.Response, error) {
		return nil, notFound(url)
	})}

	if _, err := i.Extract(context.Background(), testTarget()); err == nil {
		t.Fatal("expected error when provider is unreachable")
	}
}
