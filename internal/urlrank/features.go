package urlrank

import (
	"net/url"
	"strings"
)

// Candidate holds the surface features derived from a single URL. It is
// produced fresh per scoring call and never persisted.
type Candidate struct {
	URL          string
	Scheme       string
	Host         string
	Segments     []string
	SegmentCount int
	LastSegment  string
}

// Features decomposes a URL into its scoring features. It never fails:
// components that cannot be parsed degrade to empty strings, which the
// scorer then penalizes naturally.
func Features(rawURL string) Candidate {
	c := Candidate{URL: rawURL}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return c
	}

	c.Scheme = parsed.Scheme
	c.Host = strings.ToLower(parsed.Host)

	// Strip exactly one leading and one trailing slash so that URLs
	// differing only in a trailing slash segment identically.
	path := strings.TrimPrefix(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/")

	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			if seg == "" {
				continue
			}
			c.Segments = append(c.Segments, seg)
		}
	}

	c.SegmentCount = len(c.Segments)
	if c.SegmentCount > 0 {
		c.LastSegment = c.Segments[c.SegmentCount-1]
	}

	return c
}

// HasSegment reports whether token equals one of the path segments,
// case-insensitively. Substring matches inside a larger segment do not
// count: /newsletter/ does not contain the segment "news".
func (c Candidate) HasSegment(token string) bool {
	for _, seg := range c.Segments {
		if strings.EqualFold(seg, token) {
			return true
		}
	}
	return false
}

// IsRelative reports whether a URL has neither a scheme nor a host.
func IsRelative(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == ""
}
