package event

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Candidate represents an event extracted from one provider before
// deduplication and persistence.
type Candidate struct {
	Name        string         `json:"name"`
	StartTime   time.Time      `json:"event_start_date"`
	EndTime     *time.Time     `json:"event_end_date,omitempty"`
	ImageURL    string         `json:"image_url,omitempty"`
	TicketURL   string         `json:"ticket_url"`
	Address     string         `json:"address,omitempty"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	SourceKey   string         `json:"source_id"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Lat         *float64       `json:"lat,omitempty"`
	Lng         *float64       `json:"lng,omitempty"`
}

// Valid reports whether the candidate carries the minimum fields required for
// persistence. Extractors discard candidates missing both a name and a link
// before they ever reach the orchestrator.
func (c *Candidate) Valid() bool {
	return c.Name != "" && c.TicketURL != ""
}

// StripAccents removes combining diacritical marks, so "São Paulo" becomes
// "Sao Paulo". Input is decomposed with NFD and marks are dropped.
func StripAccents(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Slugify normalizes a city or state name into the URL slug form the
// providers use: lowercased, accents stripped, spaces replaced with dashes.
func Slugify(s string) string {
	s = StripAccents(strings.ToLower(strings.TrimSpace(s)))
	return strings.ReplaceAll(s, " ", "-")
}

// SourceKey builds the stable identifier used for deduplication and upsert
// matching: provider prefix plus a provider-native id or slug.
func SourceKey(provider, id string) string {
	return provider + "_" + id
}

// RandomSourceKey is the last-resort key for items with no extractable stable
// id. Keys produced here differ on every run, so such records are never
// matched by a later upsert. Extractors only reach this path when a provider
// omits both id and slug.
func RandomSourceKey(provider string) string {
	return provider + "_" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}
