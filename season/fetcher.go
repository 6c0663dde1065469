package season

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	DefaultScheduleURL  = "https://raw.githubusercontent.com/sportstimes/f1/main/_db/f1/2025.json"
	DefaultFetchTimeout = 30 * time.Second

	// schedules are a few tens of KB; anything past this is not the feed.
	maxScheduleBytes = 4 << 20
)

// Source yields raw schedule entries. *Fetcher is the production Source.
type Source interface {
	Fetch(ctx context.Context) ([]gjson.Result, error)
}

// Fetcher retrieves a season schedule from a fixed URL. It makes exactly one
// request per call and never retries.
type Fetcher struct {
	url        string
	httpClient *http.Client
}

func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if url == "" {
		url = DefaultScheduleURL
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (f *Fetcher) URL() string {
	return f.url
}

// Fetch returns the elements of the schedule's "races" array in upstream order.
func (f *Fetcher) Fetch(ctx context.Context) ([]gjson.Result, error) {
	log.Debug().Str("url", f.url).Msg("fetching F1 season data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &UpstreamError{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Op: "fetch", Err: fmt.Errorf("status code %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxScheduleBytes))
	if err != nil {
		return nil, &UpstreamError{Op: "read", Err: err}
	}

	if !gjson.ValidBytes(body) {
		return nil, &UpstreamError{Op: "decode", Err: fmt.Errorf("%w: invalid JSON", ErrMalformedSchedule)}
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, &UpstreamError{Op: "decode", Err: fmt.Errorf("%w: top level is not an object", ErrMalformedSchedule)}
	}
	races := doc.Get("races")
	if !races.IsArray() {
		return nil, &UpstreamError{Op: "decode", Err: fmt.Errorf("%w: missing races array", ErrMalformedSchedule)}
	}

	return races.Array(), nil
}
