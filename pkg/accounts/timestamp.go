package accounts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
)

// Timestamp is a second-resolution UTC instant rendered as "YYYY-MM-DD HH:MM:SS".
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to seconds and converts it to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses s using constants.TimestampLayout.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(constants.TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return Timestamp{}, errors.NewParseError("timestamp", "", fmt.Sprintf("invalid created_at %q", s), err)
	}
	return Timestamp{Time: t}, nil
}

// MustParseTimestamp is like ParseTimestamp but panics on error. Intended for tests and fixtures.
func MustParseTimestamp(s string) Timestamp {
	ts, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// String renders the timestamp with constants.TimestampLayout.
func (t Timestamp) String() string {
	return t.Format(constants.TimestampLayout)
}

// Before reports whether t is strictly earlier than u.
func (t Timestamp) Before(u Timestamp) bool {
	return t.Time.Before(u.Time)
}

// Equal reports whether t and u are the same instant.
func (t Timestamp) Equal(u Timestamp) bool {
	return t.Time.Equal(u.Time)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.NewParseError("timestamp", "", "created_at must be a string", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (t Timestamp) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (t *Timestamp) UnmarshalYAML(data []byte) error {
	var s string
	if err := yaml.Unmarshal(data, &s); err != nil {
		return errors.NewParseError("timestamp", "", "created_at must be a string", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
