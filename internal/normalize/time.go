package normalize

import (
	"time"

	"github.com/araddon/dateparse"

	"GovNewsCrawler/internal/domain"
)

// ParseDate parses a flexible natural date string. Strings without zone
// information are interpreted in defaultZone. Unparseable input yields a
// DateParseError, never a defaulted timestamp.
func ParseDate(value string, defaultZone *time.Location) (time.Time, error) {
	if defaultZone == nil {
		defaultZone = time.UTC
	}

	t, err := dateparse.ParseIn(value, defaultZone)
	if err != nil {
		return time.Time{}, &domain.DateParseError{Value: value, Err: err}
	}
	return t, nil
}

// ConvertToUTC parses a date string and returns the instant in UTC.
// Zone-less strings are assumed to be in defaultZone before conversion;
// zoned strings convert directly. Feeding the function its own
// UTC-formatted output returns the same instant.
func ConvertToUTC(value string, defaultZone *time.Location) (time.Time, error) {
	t, err := ParseDate(value, defaultZone)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
