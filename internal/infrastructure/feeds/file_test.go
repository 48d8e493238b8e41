package feeds

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const feedFixture = `[
  {
    "source_url": "https://agency.gov/newsroom",
    "topic": "Consumer Safety",
    "branch": "federal",
    "country": "united states",
    "image_url": "https://cdn.example.org/agency.png",
    "collection_name": "us_gov_news",
    "notification": true
  },
  {
    "source_url": "https://treasury.gov.au/media",
    "topic": "Economy",
    "branch": "federal",
    "country": "australia",
    "image_url": "",
    "collection_name": "au_gov_news"
  },
  {
    "source_url": "https://health.gov/news",
    "topic": "Health",
    "branch": "federal",
    "country": "united states",
    "image_url": "",
    "collection_name": "us_gov_news"
  }
]`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestFeeds(t *testing.T) {
	t.Parallel()

	src := NewFileSource(writeFixture(t, feedFixture), 0)

	got, err := src.Feeds(context.Background())
	if err != nil {
		t.Fatalf("Feeds error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 feeds, got %d", len(got))
	}
	if got[0].Topic != "Consumer Safety" || !got[0].Notification {
		t.Fatalf("first feed = %+v", got[0])
	}
	if got[1].Notification {
		t.Fatal("notification should default to false")
	}
}

func TestFeedsLimit(t *testing.T) {
	t.Parallel()

	src := NewFileSource(writeFixture(t, feedFixture), 2)

	got, err := src.Feeds(context.Background())
	if err != nil {
		t.Fatalf("Feeds error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 feeds after limit, got %d", len(got))
	}
}

func TestFeedsErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewFileSource("/nonexistent/feeds.json", 0).Feeds(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}

	if _, err := NewFileSource(writeFixture(t, "{not json"), 0).Feeds(context.Background()); err == nil {
		t.Fatal("expected error for malformed json")
	}

	if _, err := NewFileSource(writeFixture(t, `[{"topic":"x"}]`), 0).Feeds(context.Background()); err == nil {
		t.Fatal("expected error for feed without source_url")
	}
}
