package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/luvbee/event-spider/internal/event"
	"github.com/luvbee/event-spider/internal/fetch"
)

const shotgunBaseURL = "https://shotgun.com.br"

// Shotgun extracts events from shotgun.com.br. The provider's API shape is
// unknown, so a sequence of candidate URLs is probed (including a JSON-API
// looking one) and the response is branched on content type: JSON payloads
// are parsed directly, HTML responses fall through to JSON-LD and then
// visual cards. The first URL yielding candidates wins.
type Shotgun struct {
	Client  fetch.Getter
	BaseURL string
}

func (s *Shotgun) Name() string { return "Shotgun" }

func (s *Shotgun) base() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return shotgunBaseURL
}

func (s *Shotgun) Extract(ctx context.Context, target Target) ([]event.Candidate, error) {
	citySlug := event.Slugify(target.City)
	urls := []string{
		fmt.Sprintf("%s/%s", s.base(), citySlug),
		fmt.Sprintf("%s/events/%s", s.base(), citySlug),
		fmt.Sprintf("%s/cidade/%s", s.base(), citySlug),
		fmt.Sprintf("%s/api/events?city=%s", s.base(), citySlug),
	}

	jsonHeaders := map[string]string{
		"Accept":           "application/json, text/plain, */*",
		"X-Requested-With": "XMLHttpRequest",
	}

	var lastErr error
	for _, url := range urls {
		resp, err := s.Client.Get(ctx, url, jsonHeaders)
		if err != nil {
			lastErr = err
			continue
		}

		var candidates []event.Candidate
		if strings.Contains(resp.ContentType, "application/json") {
			candidates = s.parseAPIPayload(resp.Body, target)
		} else {
			candidates, err = s.parseHTML(resp.Body, target)
			if err != nil {
				lastErr = err
				continue
			}
		}

		if len(candidates) > 0 {
			return candidates, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("shotgun: %w", lastErr)
	}
	return nil, nil
}

// parseAPIPayload handles a JSON response: either a bare array of events or
// an object wrapping one under "events" or "data".
func (s *Shotgun) parseAPIPayload(body []byte, target Target) []event.Candidate {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil
	}

	items, ok := decoded.([]any)
	if !ok {
		obj, ok := decoded.(map[string]any)
		if !ok {
			return nil
		}
		if list, ok := obj["events"].([]any); ok {
			items = list
		} else if list, ok := obj["data"].([]any); ok {
			items = list
		}
	}

	var candidates []event.Candidate
	for _, raw := range items {
		node, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		start := event.ParseDate(stringField(node, "date", "start_date", "startDate"))
		if start.IsZero() || !target.inRange(start) {
			continue
		}

		ticketURL := stringField(node, "url")
		id := stringField(node, "id", "slug")
		if ticketURL == "" && id != "" {
			ticketURL = fmt.Sprintf("%s/events/%s", s.base(), id)
		}

		key := event.RandomSourceKey("shotgun")
		if id != "" {
			key = event.SourceKey("shotgun", id)
		}

		c := event.Candidate{
			Name:        stringField(node, "title", "name"),
			TicketURL:   ticketURL,
			StartTime:   start,
			ImageURL:    stringField(node, "image", "banner", "cover"),
			Description: stringField(node, "description"),
			City:        target.City,
			State:       target.State,
			SourceKey:   key,
			Metadata:    map[string]any{"source": "shotgun"},
		}
		if end := event.ParseDate(stringField(node, "end_date", "endDate")); !end.IsZero() {
			c.EndTime = &end
		}
		if venue := mapField(node, "venue"); venue != nil {
			c.Address = stringField(venue, "address")
			c.Metadata["venue"] = venue
		}
		if c.Address == "" {
			c.Address = stringField(node, "address")
		}
		if genre := stringField(node, "genre"); genre != "" {
			c.Metadata["genre"] = genre
		}
		if lineup, ok := node["lineup"]; ok {
			c.Metadata["lineup"] = lineup
		}

		if !c.Valid() {
			continue
		}
		candidates = append(candidates, c)
	}

	return candidates
}

// parseHTML handles an HTML response with the miniature strategy chain:
// JSON-LD first, then visual cards.
func (s *Shotgun) parseHTML(body []byte, target Target) ([]event.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	candidates := scanJSONLD(doc, jsonLDRules{
		source:      "shotgun-jsonld",
		keyPrefix:   "shotgun_ld",
		types:       []string{"Event"},
		filterRange: true,
	}, target)

	if len(candidates) == 0 {
		candidates = scanCards(doc, cardRules{
			source:    "shotgun-card",
			keyPrefix: "shotgun_card",
			baseURL:   s.base(),
			selectors: []string{
				`[data-testid*="event"]`,
				`[class*="event"]`,
				`[class*="card"]`,
			},
		}, target)
	}

	return candidates, nil
}
