package domain

import "time"

// Feed describes one landing page to crawl plus the routing metadata
// attached to every article harvested from it.
type Feed struct {
	SourceURL      string `json:"source_url"`
	Topic          string `json:"topic"`
	Branch         string `json:"branch"`
	Country        string `json:"country"`
	ImageURL       string `json:"image_url"`
	CollectionName string `json:"collection_name"`
	Strategy       string `json:"strategy,omitempty"`
	Notification   bool   `json:"notification,omitempty"`
}

// RawArticle is the unnormalized output of content extraction. CreatedAt
// is kept as the source's own date string until the normalization
// pipeline parses it.
type RawArticle struct {
	Title          string
	URL            string
	ImageURL       string
	DocumentURL    string
	CreatedAt      string
	Description    string
	Markup         string
	CollectionName string
	Topic          string
	Branch         string
	Country        string
	Notification   bool
}

// Article is a normalized record ready for the persistence sink.
type Article struct {
	Title          string
	URL            string
	ImageURL       string
	DocumentURL    string
	CreatedAt      time.Time
	Description    string
	Markup         string
	CollectionName string
	Topic          string
	Branch         string
	Country        string
	Notification   bool
}

// Notification signals that a freshly stored article warrants alerting.
// It is derived from a successful insert whose input carried the
// notification flag; the flag itself is never persisted.
type Notification struct {
	TableID        int64
	Schema         string
	TableName      string
	Title          string
	ImageURL       string
	Description    string
	Topic          string
	CollectionName string
}
