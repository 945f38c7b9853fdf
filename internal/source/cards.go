package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/luvbee/event-spider/internal/event"
)

// Selector chains shared by the card scanners. Ordered most specific first;
// the first selector matching at least one element wins and the rest are
// never consulted.
const (
	titleSelectors = `h3, h2, [class*="title"], [class*="name"]`
	dateSelectors  = `[class*="date"], [class*="Date"], [data-testid*="date"]`
	priceSelectors = `[class*="price"], [class*="Price"]`
)

// cardRules configures structured-card scraping for one provider.
type cardRules struct {
	source    string   // metadata source tag, e.g. "sympla" or "eventbrite-card"
	keyPrefix string   // source key prefix, e.g. "sympla" or "eventbrite_card"
	baseURL   string   // base for resolving relative links
	selectors []string // card block selectors, most specific first
}

// scanCards extracts candidates from repeated card blocks. For each matched
// block it pulls title, link, date text, image, and price text. Cards missing
// a name or a link are discarded; unparseable dates get the placeholder
// rather than dropping the card.
func scanCards(doc *goquery.Document, rules cardRules, target Target) []event.Candidate {
	var candidates []event.Candidate

	for _, selector := range rules.selectors {
		cards := doc.Find(selector)
		if cards.Length() == 0 {
			continue
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			name := strings.TrimSpace(card.Find(titleSelectors).First().Text())
			link, _ := card.Find("a").First().Attr("href")
			dateText := strings.TrimSpace(card.Find(dateSelectors).Text())
			image, _ := card.Find("img").First().Attr("src")
			price := strings.TrimSpace(card.Find(priceSelectors).Text())

			if name == "" || link == "" {
				return
			}

			c := event.Candidate{
				Name:      name,
				TicketURL: absoluteURL(rules.baseURL, link),
				StartTime: startOrPlaceholder(dateText),
				City:      target.City,
				State:     target.State,
				SourceKey: keyFor(rules.keyPrefix, link),
				Metadata: map[string]any{
					"source":   rules.source,
					"dateText": dateText,
				},
			}
			if strings.HasPrefix(image, "http") {
				c.ImageURL = image
			}
			if price != "" {
				c.Description = "Preço: " + price
				c.Metadata["price"] = price
			}

			candidates = append(candidates, c)
		})
		break
	}

	return candidates
}
