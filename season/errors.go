package season

import (
	"errors"
	"fmt"
)

// ErrMalformedSchedule is wrapped when the upstream body is not an object
// with a "races" array.
var ErrMalformedSchedule = errors.New("malformed schedule")

// UpstreamError reports a failure to obtain usable schedule data: network
// errors, non-200 statuses, malformed JSON and unparsable timestamps.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err is, or wraps, an *UpstreamError.
func IsUpstream(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}
