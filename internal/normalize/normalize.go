// Package normalize post-processes raw article records field by field.
// Each field has an independent transform; transforms read sibling
// fields but never write them, and every transform is idempotent.
package normalize

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"

	"GovNewsCrawler/internal/domain"
)

// fieldFunc transforms one field of the record being normalized.
type fieldFunc func(p *Pipeline, raw *domain.RawArticle, out *domain.Article) error

// registry maps field identifiers to their transforms. Fields without an
// entry are copied verbatim; adding a field is a data-only change here.
var registry = map[string]fieldFunc{
	"title":       normalizeTitle,
	"created_at":  normalizeCreatedAt,
	"description": normalizeDescription,
	"md":          normalizeMarkup,
}

// fieldOrder keeps normalization deterministic across runs.
var fieldOrder = []string{"title", "created_at", "description", "md"}

// Pipeline normalizes raw article records. The default zone applies to
// date strings that carry no offset of their own; origin sites are not
// all in one timezone, so it is configuration, not a constant.
type Pipeline struct {
	zone      *time.Location
	converter *md.Converter
}

// NewPipeline builds a normalization pipeline; a nil zone means UTC.
func NewPipeline(zone *time.Location) *Pipeline {
	if zone == nil {
		zone = time.UTC
	}
	return &Pipeline{
		zone:      zone,
		converter: md.NewConverter("", true, nil),
	}
}

// Normalize applies every registered field transform to a raw record and
// returns the normalized article. A transform failure drops the record:
// partially-normalized articles are never emitted.
func (p *Pipeline) Normalize(raw domain.RawArticle) (domain.Article, error) {
	out := domain.Article{
		URL:            raw.URL,
		ImageURL:       raw.ImageURL,
		DocumentURL:    raw.DocumentURL,
		CollectionName: raw.CollectionName,
		Topic:          raw.Topic,
		Branch:         raw.Branch,
		Country:        raw.Country,
		Notification:   raw.Notification,
	}

	for _, name := range fieldOrder {
		if err := registry[name](p, &raw, &out); err != nil {
			return domain.Article{}, fmt.Errorf("normalize %s: %w", name, err)
		}
	}

	return out, nil
}

func normalizeTitle(_ *Pipeline, raw *domain.RawArticle, out *domain.Article) error {
	out.Title = strings.TrimSpace(raw.Title)
	return nil
}

func normalizeCreatedAt(p *Pipeline, raw *domain.RawArticle, out *domain.Article) error {
	if raw.CreatedAt == "" {
		return nil
	}

	t, err := ParseDate(raw.CreatedAt, p.zone)
	if err != nil {
		return err
	}
	out.CreatedAt = t
	return nil
}

func normalizeDescription(_ *Pipeline, raw *domain.RawArticle, out *domain.Article) error {
	out.Description = Text(raw.Description)
	return nil
}

// normalizeMarkup reduces the captured page to its readable core and
// renders it as Markdown. Left unset when the source field is empty.
func normalizeMarkup(p *Pipeline, raw *domain.RawArticle, out *domain.Article) error {
	if strings.TrimSpace(raw.Markup) == "" {
		return nil
	}

	// Without a parseable article URL relative URIs stay unresolved.
	pageURL, err := url.Parse(raw.URL)
	if err != nil {
		pageURL = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(raw.Markup), pageURL)
	if err != nil {
		return fmt.Errorf("readability: %w", err)
	}

	markdown, err := p.converter.ConvertString(article.Content)
	if err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	out.Markup = markdown
	return nil
}
