package urlrank

import (
	"reflect"
	"testing"
)

func TestFeatures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		scheme   string
		host     string
		segments []string
		last     string
	}{
		{
			name:     "plain article url",
			url:      "https://Agency.GOV/news/2024/03/15/some-story",
			scheme:   "https",
			host:     "agency.gov",
			segments: []string{"news", "2024", "03", "15", "some-story"},
			last:     "some-story",
		},
		{
			name:     "trailing slash stripped",
			url:      "https://agency.gov/news/some-story/",
			scheme:   "https",
			host:     "agency.gov",
			segments: []string{"news", "some-story"},
			last:     "some-story",
		},
		{
			name:   "empty path",
			url:    "https://agency.gov",
			scheme: "https",
			host:   "agency.gov",
		},
		{
			name:   "root path only",
			url:    "https://agency.gov/",
			scheme: "https",
			host:   "agency.gov",
		},
		{
			name:     "relative url",
			url:      "news/latest",
			segments: []string{"news", "latest"},
			last:     "latest",
		},
		{
			name: "unparseable url degrades to empty features",
			url:  "http://agency.gov/%zz",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := Features(tc.url)
			if c.Scheme != tc.scheme {
				t.Fatalf("scheme = %q, want %q", c.Scheme, tc.scheme)
			}
			if c.Host != tc.host {
				t.Fatalf("host = %q, want %q", c.Host, tc.host)
			}
			if !reflect.DeepEqual(c.Segments, tc.segments) {
				t.Fatalf("segments = %v, want %v", c.Segments, tc.segments)
			}
			if c.SegmentCount != len(tc.segments) {
				t.Fatalf("segment count = %d, want %d", c.SegmentCount, len(tc.segments))
			}
			if c.LastSegment != tc.last {
				t.Fatalf("last segment = %q, want %q", c.LastSegment, tc.last)
			}
		})
	}
}

func TestHasSegment(t *testing.T) {
	t.Parallel()

	c := Features("https://agency.gov/News/newsletter/item")

	if !c.HasSegment("news") {
		t.Fatal("expected case-insensitive whole-segment match for news")
	}
	if c.HasSegment("letter") {
		t.Fatal("substring of a segment must not match")
	}
	if c.HasSegment("missing") {
		t.Fatal("absent token must not match")
	}
}

func TestIsRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"/about", true},
		{"page.html", true},
		{"https://example.com", false},
		{"//example.com/path", false},
	}

	for _, tc := range tests {
		if got := IsRelative(tc.url); got != tc.want {
			t.Errorf("IsRelative(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}
