package season

import (
	"time"

	"f1countdown/model"
)

// SelectNext returns the first race starting strictly after now. Races are
// scanned in the given order, which is assumed to be chronological as the
// upstream feed publishes it; the slice is not re-sorted.
func SelectNext(races []model.Race, now time.Time) (model.Race, bool) {
	for _, race := range races {
		if race.StartUTC.After(now) {
			return race, true
		}
	}
	return model.Race{}, false
}
