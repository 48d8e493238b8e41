// Package feeds loads the feed source list consumed at startup.
package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"GovNewsCrawler/internal/domain"
	"GovNewsCrawler/internal/ports"
)

// FileSource reads feeds from a JSON file: an ordered array of
// {source_url, topic, branch, country, image_url, collection_name}.
type FileSource struct {
	path  string
	limit int
}

var _ ports.FeedSource = (*FileSource)(nil)

// NewFileSource wires a feed file path; limit > 0 caps the feeds taken
// per run, in file order.
func NewFileSource(path string, limit int) *FileSource {
	return &FileSource{path: path, limit: limit}
}

// Feeds reads and decodes the feed list.
func (f *FileSource) Feeds(ctx context.Context) ([]domain.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}

	var feeds []domain.Feed
	if err := json.Unmarshal(raw, &feeds); err != nil {
		return nil, fmt.Errorf("parse feed file %s: %w", f.path, err)
	}

	for i := range feeds {
		if feeds[i].SourceURL == "" {
			return nil, fmt.Errorf("feed %d in %s has no source_url", i, f.path)
		}
	}

	if f.limit > 0 && len(feeds) > f.limit {
		feeds = feeds[:f.limit]
	}

	return feeds, nil
}
