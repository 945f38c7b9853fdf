// Package event provides the canonical candidate event record produced by the
// provider extractors, plus the shared helpers they depend on: Brazilian date
// text parsing, city/state slugification, and stable source key generation.
//
// A Candidate is ephemeral: it exists for the duration of one discovery run
// and is discarded after being merged into a stored location record. Source
// keys (provider prefix + provider-native id) are the deduplication and
// upsert identity across runs.
package event
