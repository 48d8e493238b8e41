// Package discovery turns a fetched landing page into a ranked set of
// candidate article URLs.
package discovery

import (
	"context"
	"fmt"

	"GovNewsCrawler/internal/urlrank"
)

// Page is a fetched document: its final URL and rendered markup.
type Page struct {
	URL  string
	Body string
}

// Strategy extracts candidate article links from one landing page.
// Different site families can register their own extraction strategies.
type Strategy interface {
	Name() string
	Discover(ctx context.Context, page Page) ([]urlrank.Scored, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[string]Strategy{}}
}

// Register adds or replaces a strategy implementation.
func (r *Registry) Register(s Strategy) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	r.strategies[s.Name()] = s
}

// Resolve returns a strategy by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Strategy, error) {
	if s, ok := r.strategies[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("discovery strategy %s is not registered", name)
}
