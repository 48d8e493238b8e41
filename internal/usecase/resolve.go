package usecase

import (
	"net/url"
)

// resolveImage picks the article image: the extracted one resolved
// against the page URL when present, otherwise the fallback carried from
// the feed.
func resolveImage(extracted, pageURL, fallback string) string {
	if extracted == "" {
		return fallback
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return extracted
	}
	ref, err := url.Parse(extracted)
	if err != nil {
		return fallback
	}
	return base.ResolveReference(ref).String()
}

// resolveDescription prefers the excerpt; the raw text is the fallback
// only when the excerpt is absent, not merely empty.
func resolveDescription(excerpt *string, rawText string) string {
	if excerpt == nil {
		return rawText
	}
	return *excerpt
}
