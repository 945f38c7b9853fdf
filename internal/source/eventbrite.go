package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/luvbee/event-spider/internal/event"
	"github.com/luvbee/event-spider/internal/fetch"
)

const eventbriteBaseURL = "https://www.eventbrite.com.br"

// Eventbrite extracts events from eventbrite.com.br destination pages.
//
// Eventbrite embeds well-formed JSON-LD, so structured data is the primary
// strategy (filtered to the requested date window); visual cards are the
// backup when no JSON-LD event survives the filter.
type Eventbrite struct {
	Client  fetch.Getter
	BaseURL string
}

func (e *Eventbrite) Name() string { return "Eventbrite" }

func (e *Eventbrite) base() string {
	if e.BaseURL != "" {
		return e.BaseURL
	}
	return eventbriteBaseURL
}

func (e *Eventbrite) Extract(ctx context.Context, target Target) ([]event.Candidate, error) {
	citySlug := event.Slugify(target.City)
	stateSlug := event.Slugify(target.State)

	url := fmt.Sprintf("%s/d/%s--%s/all-events/?start_date=%s&end_date=%s",
		e.base(), stateSlug, citySlug,
		target.From.Format("2006-01-02"), target.To.Format("2006-01-02"))

	resp, err := e.Client.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("eventbrite: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("eventbrite: parsing page: %w", err)
	}

	candidates := scanJSONLD(doc, jsonLDRules{
		source:      "eventbrite",
		keyPrefix:   "eventbrite",
		types:       []string{"Event", "MusicEvent", "Festival"},
		filterRange: true,
	}, target)

	if len(candidates) == 0 {
		candidates = scanCards(doc, cardRules{
			source:    "eventbrite-card",
			keyPrefix: "eventbrite_card",
			baseURL:   e.base(),
			selectors: []string{
				`[data-testid="event-card"]`,
				`[class*="event-card"]`,
				`.eds-event-card`,
			},
		}, target)
	}

	return candidates, nil
}
