// Package timeutil provides a JSON time wrapper with fixed output precision.
package timeutil

import (
	"strconv"
	"time"
)

// RFC3339Millis is RFC 3339 UTC at millisecond precision, the wire format for
// every timestamp this API emits.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC at microsecond precision, used for log
// timestamps.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Time renders as RFC 3339 UTC with exactly three fractional digits
// regardless of the wrapped value's precision. Unmarshaling accepts any
// RFC 3339 input; JSON null leaves the value untouched, matching time.Time.
type Time struct {
	time.Time
}

// NewTime wraps a standard time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// Now returns the wrapped current time.
func Now() Time {
	return Time{Time: time.Now()}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, t.UTC().Format(RFC3339Millis)), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	s, err := strconv.Unquote(raw)
	if err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
