package domain

import (
	"time"

	"github.com/araddon/dateparse"
)

// Timestamp decodes the backend's loosely formatted time strings
// (RFC3339 with or without fractional seconds, depending on the
// backend version) into a time.Time.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := dateparse.ParseAny(s)
	if err != nil {
		// an unparseable timestamp is rendered as zero, never fatal
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}
