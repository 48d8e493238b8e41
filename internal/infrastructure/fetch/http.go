// Package fetch implements the page-fetching collaborator over plain
// HTTP, with optional delegation to a rendering proxy for pages that
// need JavaScript execution.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"GovNewsCrawler/internal/ports"
)

const defaultMaxBody = 4 << 20 // 4 MiB

// HTTPFetcher fetches pages with a shared HTTP client. When a render
// endpoint is configured, requests carrying render hints are routed
// through it (the proxy receives the target URL as a query parameter).
type HTTPFetcher struct {
	client         *http.Client
	userAgent      string
	renderEndpoint string
	maxBody        int64
}

var _ ports.Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher wires an HTTP client; a nil client gets a 20s timeout.
func NewHTTPFetcher(client *http.Client, userAgent, renderEndpoint string) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if userAgent == "" {
		userAgent = "GovNewsCrawler/1.0"
	}
	return &HTTPFetcher{
		client:         client,
		userAgent:      userAgent,
		renderEndpoint: renderEndpoint,
		maxBody:        defaultMaxBody,
	}
}

// Fetch retrieves the page and returns its markup plus the final URL
// after redirects.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string, opts ports.FetchOptions) (ports.Page, error) {
	target := rawURL
	if opts.RenderJS && f.renderEndpoint != "" {
		rendered, err := f.renderURL(rawURL, opts)
		if err != nil {
			return ports.Page{}, err
		}
		target = rendered
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ports.Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return ports.Page{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Page{}, fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return ports.Page{}, fmt.Errorf("read %s: %w", rawURL, err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil && !opts.RenderJS {
		finalURL = resp.Request.URL.String()
	}

	return ports.Page{URL: finalURL, Body: string(body)}, nil
}

func (f *HTTPFetcher) renderURL(rawURL string, opts ports.FetchOptions) (string, error) {
	endpoint, err := url.Parse(f.renderEndpoint)
	if err != nil {
		return "", fmt.Errorf("invalid render endpoint: %w", err)
	}

	query := endpoint.Query()
	query.Set("url", rawURL)
	query.Set("screenshot", strconv.FormatBool(opts.Screenshot))
	endpoint.RawQuery = query.Encode()
	return endpoint.String(), nil
}
