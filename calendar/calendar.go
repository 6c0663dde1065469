// Package calendar renders a season's races as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"f1countdown/model"

	ics "github.com/arran4/golang-ical"
)

// RaceDuration is the nominal block booked for a Grand Prix in the feed.
const RaceDuration = 2 * time.Hour

const productID = "-//whattimeisthef1//F1 Countdown//EN"

// Build returns an iCalendar document with one event per race. host is used
// to qualify event UIDs so that subscribers keep a stable identity per round.
func Build(races []model.Race, host string, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Formula 1 Grands Prix")
	cal.SetXWRCalDesc("Race start times for the current Formula 1 season")

	for _, race := range races {
		event := cal.AddEvent(EventUID(race, host))
		event.SetDtStampTime(stamp.UTC())
		event.SetStartAt(race.StartUTC.UTC())
		event.SetEndAt(race.StartUTC.UTC().Add(RaceDuration))
		event.SetSummary(race.Name)
		if location := Location(race); location != "" {
			event.SetLocation(location)
		}
		if race.URL != "" {
			event.SetURL(race.URL)
		}
		event.SetDescription(fmt.Sprintf("Round %d", race.Round))
	}

	return cal.Serialize()
}

// EventUID identifies a race by season and round.
func EventUID(race model.Race, host string) string {
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%d-r%02d@%s", race.StartUTC.UTC().Year(), race.Round, host)
}

// Location joins locality and country, skipping whichever is missing.
func Location(race model.Race) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{race.Location, race.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
