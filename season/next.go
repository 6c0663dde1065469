package season

import (
	"context"
	"time"

	"f1countdown/model"
)

// Next resolves the /api/next payload at now. Upstream failures with nothing
// cached collapse into the season-over payload; the returned Availability tells
// the caller which case applied.
func Next(ctx context.Context, cache *Cache, now time.Time) (model.NextResponse, Availability) {
	snap, err := cache.Get(ctx, now)
	if err != nil {
		return model.NewNextResponse(model.Race{}, false), Unavailable
	}
	race, ok := SelectNext(snap.Races, now)
	availability := Available
	if snap.Freshness == Stale {
		availability = Degraded
	}
	return model.NewNextResponse(race, ok), availability
}

// Availability is the upstream state behind a Next result.
type Availability string

const (
	Available   Availability = "fresh"
	Degraded    Availability = "stale"
	Unavailable Availability = "unavailable"
)
