package season

import (
	"fmt"
	"time"

	"f1countdown/model"

	"github.com/tidwall/gjson"
)

// localLayout is used for "gp" values carrying no zone designator; those are UTC.
const localLayout = "2006-01-02T15:04:05"

// Normalize maps raw schedule entries to races, preserving input order.
// Entries without a "gp" session are skipped. A "gp" value that cannot be
// parsed fails the whole batch.
func Normalize(entries []gjson.Result) ([]model.Race, error) {
	races := make([]model.Race, 0, len(entries))
	for i, entry := range entries {
		gp := entry.Get("sessions.gp")
		if !gp.Exists() || gp.String() == "" {
			continue
		}

		start, err := ParseSessionTime(gp.String())
		if err != nil {
			return nil, &UpstreamError{
				Op:  "normalize",
				Err: fmt.Errorf("race %d (%q): %w", i, entry.Get("name").String(), err),
			}
		}

		race := model.Race{
			Name:     entry.Get("name").String(),
			Location: entry.Get("location.locality").String(),
			StartUTC: start,
			Round:    int(entry.Get("round").Int()),
		}
		if country := entry.Get("location.country"); country.Exists() {
			race.Country = country.String()
		}
		if url := entry.Get("url"); url.Exists() {
			race.URL = url.String()
		}
		races = append(races, race)
	}
	return races, nil
}

// ParseSessionTime parses an ISO 8601 session timestamp into a UTC instant.
// A trailing "Z" and explicit offsets are accepted; no designator means UTC.
func ParseSessionTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(localLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session time %q", value)
	}
	return t, nil
}
