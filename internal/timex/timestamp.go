package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// isoMillis matches the remote's ISO-8601 timestamps ("2017-11-09T18:38:39.409Z").
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a remote timestamp kept exactly as received. Time holds the
// parsed value when Raw is RFC 3339 and is zero otherwise; an unparseable
// value never fails decoding.
type Timestamp struct {
	Raw  string
	Time time.Time
}

// NewTimestamp formats t the way the remote does.
func NewTimestamp(t time.Time) Timestamp {
	t = t.UTC()
	return Timestamp{Raw: t.Format(isoMillis), Time: t}
}

// ParseTimestamp keeps raw and parses it if it is RFC 3339.
func ParseTimestamp(raw string) Timestamp {
	ts := Timestamp{Raw: raw}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		ts.Time = t
	}
	return ts
}

func (ts Timestamp) IsZero() bool {
	return ts.Raw == "" && ts.Time.IsZero()
}

func (ts Timestamp) String() string {
	if ts.Raw == "" && !ts.Time.IsZero() {
		return ts.Time.UTC().Format(isoMillis)
	}
	return ts.Raw
}

// Format formats the parsed time, falling back to the raw text.
func (ts Timestamp) Format(layout string) string {
	if ts.Time.IsZero() {
		return ts.Raw
	}
	return ts.Time.Format(layout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*ts = Timestamp{}
	case string:
		*ts = ParseTimestamp(value)
	default:
		return fmt.Errorf("invalid timestamp: %v", v)
	}
	return nil
}
