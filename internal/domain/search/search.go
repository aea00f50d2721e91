// Package search parses dataset search requests and hands them to an
// external search collaborator.
package search

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the search collaborator could not take the request.
var ErrUnavailable = errors.New("search unavailable")

// Request holds the search fields read from a request body. Every field is
// optional. Age and PreferredSources keep the raw JSON value.
type Request struct {
	Category         string `json:"category,omitempty"`
	Query            string `json:"query,omitempty"`
	Task             string `json:"task,omitempty"`
	Age              any    `json:"age,omitempty"`
	Description      string `json:"description,omitempty"`
	PreferredSources any    `json:"preferred_sources,omitempty"`
}

// FromBody extracts the search fields from a decoded JSON body without
// validating them. Non-string values for string fields are dropped.
func FromBody(body map[string]any) Request {
	return Request{
		Category:         str(body, "category"),
		Query:            str(body, "query"),
		Task:             str(body, "task"),
		Age:              body["age"],
		Description:      str(body, "description"),
		PreferredSources: body["preferred_sources"],
	}
}

// Empty reports whether no field was supplied.
func (r Request) Empty() bool {
	return r.Category == "" && r.Query == "" && r.Task == "" &&
		r.Age == nil && r.Description == "" && r.PreferredSources == nil
}

// Searcher accepts parsed search requests for downstream processing.
type Searcher interface {
	Submit(ctx context.Context, r Request) error
}

type noopSearcher struct{}

// NewNoop returns a Searcher that accepts and discards every request.
func NewNoop() Searcher {
	return noopSearcher{}
}

func (noopSearcher) Submit(ctx context.Context, _ Request) error {
	return ctx.Err()
}

func str(body map[string]any, key string) string {
	v, _ := body[key].(string)
	return v
}
