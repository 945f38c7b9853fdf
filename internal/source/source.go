package source

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/luvbee/event-spider/internal/event"
)

// Target identifies one discovery request: which city to sweep and the date
// window candidates must fall in.
type Target struct {
	City  string
	State string
	From  time.Time
	To    time.Time
}

// Extractor is the per-provider contract. Extract returns the candidates it
// could find (possibly none) or an error describing why the provider was
// unreachable; it must not panic on malformed markup.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, target Target) ([]event.Candidate, error)
}

var (
	_ Extractor = (*Sympla)(nil)
	_ Extractor = (*Eventbrite)(nil)
	_ Extractor = (*Ingresse)(nil)
	_ Extractor = (*Shotgun)(nil)
)

// placeholderStart is the substitute start time for candidates whose date
// text matched no known pattern: they are kept with a "tomorrow" date rather
// than discarded. This fabricates near-future dates for junk input, but
// matches the established behavior downstream consumers rely on.
func placeholderStart() time.Time {
	return time.Now().UTC().Add(24 * time.Hour)
}

// startOrPlaceholder applies the placeholder policy to raw date text.
func startOrPlaceholder(dateText string) time.Time {
	if t := event.ParseDate(dateText); !t.IsZero() {
		return t
	}
	return placeholderStart()
}

// inRange reports whether t falls inside the target's date window.
func (t Target) inRange(at time.Time) bool {
	return !at.Before(t.From) && !at.After(t.To)
}

// absoluteURL resolves provider-relative links against the provider base.
func absoluteURL(base, link string) string {
	if strings.HasPrefix(link, "http") {
		return link
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return strings.TrimSuffix(base, "/") + link
}

// slugFromLink extracts the last non-empty path segment of a link, the
// provider-native slug used in source keys.
func slugFromLink(link string) string {
	link = strings.TrimSuffix(link, "/")
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	if i := strings.LastIndex(link, "/"); i >= 0 {
		link = link[i+1:]
	}
	return link
}

// keyFor builds a deterministic source key from a link slug, falling back to
// a random suffix only when no slug is extractable.
func keyFor(prefix, link string) string {
	if slug := slugFromLink(link); slug != "" {
		return event.SourceKey(prefix, slug)
	}
	return event.RandomSourceKey(prefix)
}

// stringField returns the first non-empty string value among keys. Numeric
// ids are rendered without a decimal part.
func stringField(node map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := node[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// mapField returns a nested object value, if present.
func mapField(node map[string]any, key string) map[string]any {
	if m, ok := node[key].(map[string]any); ok {
		return m
	}
	return nil
}
