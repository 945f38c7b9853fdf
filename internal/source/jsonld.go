package source

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"

	"github.com/luvbee/event-spider/internal/event"
)

// jsonLDRules configures schema.org structured-data extraction for one
// provider.
type jsonLDRules struct {
	source      string   // metadata source tag, e.g. "sympla-jsonld"
	keyPrefix   string   // source key prefix, e.g. "sympla_ld"
	types       []string // accepted @type values
	filterRange bool     // drop events outside the target date window
}

// scanJSONLD extracts candidates from embedded application/ld+json blocks.
// Blocks that fail to decode are skipped silently; providers routinely embed
// unrelated or malformed structured data alongside the event lists.
func scanJSONLD(doc *goquery.Document, rules jsonLDRules, target Target) []event.Candidate {
	var candidates []event.Candidate

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, block *goquery.Selection) {
		var decoded any
		if err := json.Unmarshal([]byte(block.Text()), &decoded); err != nil {
			return
		}

		items, ok := decoded.([]any)
		if !ok {
			items = []any{decoded}
		}

		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok || !acceptsType(rules.types, stringField(item, "@type")) {
				continue
			}

			start := event.ParseDate(stringField(item, "startDate"))
			if rules.filterRange && (start.IsZero() || !target.inRange(start)) {
				continue
			}
			if start.IsZero() {
				start = placeholderStart()
			}

			c := event.Candidate{
				Name:        stringField(item, "name"),
				TicketURL:   stringField(item, "url"),
				StartTime:   start,
				ImageURL:    stringField(item, "image"),
				Description: stringField(item, "description"),
				City:        target.City,
				State:       target.State,
				SourceKey:   keyFor(rules.keyPrefix, stringField(item, "url")),
				Metadata:    map[string]any{"source": rules.source},
			}
			if end := event.ParseDate(stringField(item, "endDate")); !end.IsZero() {
				c.EndTime = &end
			}
			if location := mapField(item, "location"); location != nil {
				if address := mapField(location, "address"); address != nil {
					c.Address = stringField(address, "streetAddress")
				}
				if c.Address == "" {
					c.Address = stringField(location, "name")
				}
				c.Metadata["location"] = location
			}
			if organizer := mapField(item, "organizer"); organizer != nil {
				c.Metadata["organizer"] = organizer
			}

			if c.Name == "" && c.TicketURL == "" {
				continue
			}
			candidates = append(candidates, c)
		}
	})

	return candidates
}

func acceptsType(accepted []string, itemType string) bool {
	for _, t := range accepted {
		if t == itemType {
			return true
		}
	}
	return false
}
