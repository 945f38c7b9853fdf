package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/luvbee/event-spider/internal/event"
	"github.com/luvbee/event-spider/internal/fetch"
)

const ingresseBaseURL = "https://ingresse.com"

// Ingresse extracts events from ingresse.com city pages. The site is
// client-rendered, so the primary strategy is a recursive walk of the
// __NEXT_DATA__ hydration payload; visual cards are the fallback.
type Ingresse struct {
	Client  fetch.Getter
	BaseURL string
}

func (i *Ingresse) Name() string { return "Ingresse" }

func (i *Ingresse) base() string {
	if i.BaseURL != "" {
		return i.BaseURL
	}
	return ingresseBaseURL
}

func (i *Ingresse) Extract(ctx context.Context, target Target) ([]event.Candidate, error) {
	url := fmt.Sprintf("%s/br/%s", i.base(), event.Slugify(target.City))

	resp, err := i.Client.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ingresse: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("ingresse: parsing page: %w", err)
	}

	candidates := i.scanHydration(doc, target)

	if len(candidates) == 0 {
		candidates = scanCards(doc, cardRules{
			source:    "ingresse-card",
			keyPrefix: "ingresse_card",
			baseURL:   i.base(),
			selectors: []string{
				`[data-testid*="event"]`,
				`[class*="event"]`,
				`[class*="card"]`,
			},
		}, target)
	}

	return candidates, nil
}

// scanHydration decodes the Next.js hydration blob and collects event-like
// nodes inside the requested date window.
func (i *Ingresse) scanHydration(doc *goquery.Document, target Target) []event.Candidate {
	var candidates []event.Candidate

	doc.Find(`script#__NEXT_DATA__`).Each(func(_ int, block *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(block.Text()), &payload); err != nil {
			return
		}

		walkHydration(payload, func(node map[string]any) {
			start := event.ParseDate(stringField(node, "startDate", "date"))
			if start.IsZero() || !target.inRange(start) {
				return
			}

			ticketURL := stringField(node, "url")
			if ticketURL == "" {
				if slug := stringField(node, "slug"); slug != "" {
					ticketURL = absoluteURL(i.base(), slug)
				}
			}

			id := stringField(node, "id", "slug")
			key := event.RandomSourceKey("ingresse")
			if id != "" {
				key = event.SourceKey("ingresse", id)
			}

			c := event.Candidate{
				Name:        stringField(node, "title", "name"),
				TicketURL:   ticketURL,
				StartTime:   start,
				ImageURL:    stringField(node, "image", "banner"),
				Description: stringField(node, "description"),
				City:        target.City,
				State:       target.State,
				SourceKey:   key,
				Metadata:    map[string]any{"source": "ingresse"},
			}
			if end := event.ParseDate(stringField(node, "endDate")); !end.IsZero() {
				c.EndTime = &end
			}
			if venue := mapField(node, "venue"); venue != nil {
				c.Address = stringField(venue, "address")
				c.Metadata["venue"] = venue
			}
			if c.Address == "" {
				c.Address = stringField(node, "address")
			}
			if category := stringField(node, "category"); category != "" {
				c.Metadata["category"] = category
			}

			if !c.Valid() {
				return
			}
			candidates = append(candidates, c)
		})
	})

	return candidates
}
