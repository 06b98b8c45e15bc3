// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

// Package media implements the client for the external movie/TV metadata
// provider. Outbound calls are throttled with a token bucket and guarded by a
// circuit breaker so a slow or failing provider cannot drag the API down.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/reelgraph/reelgraph/internal/config"
	"github.com/reelgraph/reelgraph/internal/logging"
	"github.com/reelgraph/reelgraph/internal/metrics"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("media provider temporarily unavailable")

// Result is one title returned by the metadata provider.
type Result struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"` // movie or tv
	Year      int    `json:"year,omitempty"`
	Overview  string `json:"overview,omitempty"`
	PosterURL string `json:"poster_url,omitempty"`
}

// Searcher is the lookup interface consumed by the API layer.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Client queries the metadata provider over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]Result]
}

// NewClient creates a metadata client from configuration.
func NewClient(cfg config.MediaConfig) *Client {
	settings := gobreaker.Settings{
		Name:        "media-provider",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger().Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		breaker: gobreaker.NewCircuitBreaker[[]Result](settings),
	}
}

// Search queries the provider for titles matching the query string.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	results, err := c.breaker.Execute(func() ([]Result, error) {
		return c.doSearch(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordMediaLookup("breaker_open")
			return nil, ErrUnavailable
		}
		metrics.RecordMediaLookup("error")
		return nil, err
	}

	metrics.RecordMediaLookup("ok")
	logging.Ctx(ctx).Debug().
		Str("query", query).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("media search")

	return results, nil
}

// doSearch performs one HTTP round trip to the provider.
func (c *Client) doSearch(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, url.Values{"q": {query}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []Result `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode media response: %w", err)
	}
	return payload.Results, nil
}
