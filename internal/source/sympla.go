package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/luvbee/event-spider/internal/event"
	"github.com/luvbee/event-spider/internal/fetch"
)

const symplaBaseURL = "https://www.sympla.com.br"

// Sympla extracts events from sympla.com.br city listing pages.
//
// Strategy order: date-filtered listing URL, simplified URL on non-2xx,
// structured cards, then JSON-LD blocks when no card selector matched.
type Sympla struct {
	Client  fetch.Getter
	BaseURL string // defaults to the public site; overridden in tests
}

func (s *Sympla) Name() string { return "Sympla" }

func (s *Sympla) base() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return symplaBaseURL
}

func (s *Sympla) Extract(ctx context.Context, target Target) ([]event.Candidate, error) {
	citySlug := event.Slugify(target.City)
	stateSlug := event.Slugify(target.State)

	url := fmt.Sprintf("%s/eventos/%s-%s?data=%s-%s",
		s.base(), citySlug, stateSlug,
		target.From.Format("2006-01-02"), target.To.Format("2006-01-02"))

	resp, err := s.Client.Get(ctx, url, nil)
	if err != nil {
		// One retry against the simpler URL variant without date params.
		simple := fmt.Sprintf("%s/eventos/%s-%s", s.base(), citySlug, stateSlug)
		resp, err = s.Client.Get(ctx, simple, nil)
		if err != nil {
			return nil, fmt.Errorf("sympla: %w", err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("sympla: parsing page: %w", err)
	}

	candidates := scanCards(doc, cardRules{
		source:    "sympla",
		keyPrefix: "sympla",
		baseURL:   s.base(),
		selectors: []string{
			`[data-testid="event-card"]`,
			`.EventCard_event-card__`,
			`.event-card`,
			`[class*="EventCard"]`,
			`[class*="event-card"]`,
		},
	}, target)

	if len(candidates) == 0 {
		candidates = scanJSONLD(doc, jsonLDRules{
			source:    "sympla-jsonld",
			keyPrefix: "sympla_ld",
			types:     []string{"Event"},
		}, target)
	}

	return candidates, nil
}
