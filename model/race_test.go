package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRaceMarshalUsesExplicitOffset(t *testing.T) {
	race := Race{
		Name:     "Bahrain Grand Prix",
		Location: "Sakhir",
		Country:  "Bahrain",
		StartUTC: time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC),
		Round:    1,
		URL:      "https://www.formula1.com/en/racing/2025/Bahrain.html",
	}

	out, err := json.Marshal(NewNextResponse(race, true))
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"ok","next":{"name":"Bahrain Grand Prix","location":"Sakhir","country":"Bahrain","startUtc":"2025-03-02T15:00:00+00:00","round":1,"url":"https://www.formula1.com/en/racing/2025/Bahrain.html"}}`, string(out))
}

func TestRaceMarshalConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("AEDT", 11*60*60)
	race := Race{Name: "Australian Grand Prix", StartUTC: time.Date(2025, 3, 16, 15, 0, 0, 0, loc), Round: 1}

	out, err := json.Marshal(race)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Australian Grand Prix","location":"","startUtc":"2025-03-16T04:00:00+00:00","round":1}`, string(out))
}

func TestRaceRoundTrip(t *testing.T) {
	race := Race{Name: "Monaco Grand Prix", Location: "Monte Carlo", StartUTC: time.Date(2025, 5, 25, 13, 0, 0, 0, time.UTC), Round: 8}

	out, err := json.Marshal(race)
	require.NoError(t, err)

	var decoded Race
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.True(t, race.StartUTC.Equal(decoded.StartUTC))
	require.Equal(t, race.Name, decoded.Name)
	require.Equal(t, race.Round, decoded.Round)
}

func TestSeasonOverHasNoNext(t *testing.T) {
	out, err := json.Marshal(NewNextResponse(Race{}, false))
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"season_over"}`, string(out))
}
