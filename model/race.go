package model

import (
	"encoding/json"
	"time"
)

// ISOLayout renders UTC instants with an explicit "+00:00" offset rather than "Z".
const ISOLayout = "2006-01-02T15:04:05-07:00"

// Race is a single Grand Prix from the season schedule, reduced to what the
// countdown needs.
type Race struct {
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Country  string    `json:"country,omitempty"`
	StartUTC time.Time `json:"startUtc"`
	Round    int       `json:"round"`
	URL      string    `json:"url,omitempty"`
}

func (r Race) MarshalJSON() ([]byte, error) {
	type race Race
	return json.Marshal(struct {
		race
		StartUTC string `json:"startUtc"`
	}{
		race:     race(r),
		StartUTC: r.StartUTC.UTC().Format(ISOLayout),
	})
}

// SeasonSchedule holds all the normalized races for a season.
type SeasonSchedule struct {
	Races     []Race    `json:"races"`
	FetchedAt time.Time `json:"fetchedAt"`
}
