package model

const (
	StatusOK         = "ok"
	StatusSeasonOver = "season_over"
)

// NextResponse is the payload served by /api/next and pushed over /ws.
type NextResponse struct {
	Status string `json:"status"`
	Next   *Race  `json:"next,omitempty"`
}

func NewNextResponse(race Race, found bool) NextResponse {
	if !found {
		return NextResponse{Status: StatusSeasonOver}
	}
	return NextResponse{Status: StatusOK, Next: &race}
}
