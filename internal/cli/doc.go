// Package cli implements the command-line interface for event-spider.
//
// The cli package provides the Cobra-based CLI with two commands: serve, which
// runs the HTTP service with scheduled sweeps, and discover, which performs a
// single sweep for one city and prints the result as text or JSON. It wires
// the config, fetch, source, store and spider packages together.
package cli
