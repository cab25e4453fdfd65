package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp accepts both timestamp encodings the web client historically
// produced: an RFC 3339 string, or a {"seconds": ..., "nanos": ...} object.
// It always marshals back to RFC 3339 UTC.
type Timestamp struct {
	time.Time
}

type secondsNanos struct {
	Seconds int64 `json:"seconds"`
	Nanos   int64 `json:"nanos"`
}

// UnmarshalJSON decodes either supported encoding. null leaves the zero value.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
		}
		ts.Time = parsed.UTC()
		return nil
	}
	var sn secondsNanos
	if err := json.Unmarshal(data, &sn); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	ts.Time = time.Unix(sn.Seconds, sn.Nanos).UTC()
	return nil
}

// MarshalJSON encodes as an RFC 3339 UTC string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.UTC().Format(time.RFC3339))
}
