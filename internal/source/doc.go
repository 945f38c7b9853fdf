// Package source implements one extractor per ticketing provider (Sympla,
// Eventbrite, Ingresse, Shotgun). Each extractor turns a raw provider page
// into candidate events by trying extraction strategies in a fixed priority
// order and stopping at the first strategy that yields results: structured
// card scraping, a simplified fallback URL, embedded JSON-LD blocks, and a
// recursive walk of client-side hydration payloads.
//
// Extractors return errors as values; a failed or unreachable provider never
// aborts the other three. Network access goes through fetch.Getter, so tests
// drive extractors against local httptest servers.
package source
