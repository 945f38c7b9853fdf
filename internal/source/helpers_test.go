package source

import (
	"context"
	"net/http"
	"time"

	"github.com/luvbee/event-spider/internal/fetch"
)

// getFunc adapts a function to the fetch.Getter contract so tests can script
// per-URL responses without a live server.
type getFunc func(url string, extra map[string]string) (*fetch.Response, error)

func (f getFunc) Get(_ context.Context, url string, extra map[string]string) (*fetch.Response, error) {
	return f(url, extra)
}

func htmlResponse(body string) *fetch.Response {
	return &fetch.Response{
		StatusCode:  http.StatusOK,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(body),
	}
}

func jsonResponse(body string) *fetch.Response {
	return &fetch.Response{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        []byte(body),
	}
}

func notFound(url string) error {
	return &fetch.StatusError{URL: url, StatusCode: http.StatusNotFound}
}

// testTarget is the standard 30-day window request used across the extractor
// tests.
func testTarget() Target {
	now := time.Now().UTC()
	return Target{
		City:  "Curitiba",
		State: "PR",
		From:  now,
		To:    now.Add(30 * 24 * time.Hour),
	}
}
