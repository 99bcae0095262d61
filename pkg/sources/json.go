package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/errors"
)

// JSONParser reads a top-level array of user objects.
type JSONParser struct{}

// NewJSONParser creates a JSON parser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Format implements Parser.
func (p *JSONParser) Format() Format { return FormatJSON }

// Extensions implements Parser.
func (p *JSONParser) Extensions() []string { return []string{".json"} }

// Parse implements Parser.
//
// Child ages are coerced for every object before the email/phone gate, so a
// malformed age aborts the file even for an object that would be dropped.
// The other parsers drop first; this ordering is kept for compatibility with
// existing data sets.
func (p *JSONParser) Parse(ctx context.Context, r io.Reader, source string) (Batch, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var objects []map[string]json.RawMessage
	if err := dec.Decode(&objects); err != nil {
		return Batch{}, errors.WrapParse(FormatJSON.String(), source, err)
	}

	var batch Batch
	for i, obj := range objects {
		fail := func(format string, args ...any) error {
			return errors.NewParseError(FormatJSON.String(), source,
				fmt.Sprintf("object #%d: ", i+1)+fmt.Sprintf(format, args...), nil)
		}

		email, err := jsonText(obj, "email")
		if err != nil {
			return Batch{}, fail("%s", err)
		}
		rawPhone, err := jsonText(obj, "telephone_number")
		if err != nil {
			return Batch{}, fail("%s", err)
		}

		children, err := jsonChildren(obj["children"])
		if err != nil {
			return Batch{}, fail("%s", err)
		}

		phone, ok := gate(ctx, &batch, email, rawPhone, fmt.Sprintf("%s: object #%d", source, i+1))
		if !ok {
			continue
		}

		record := accounts.Record{
			Phone:    accounts.StringPtr(phone),
			Email:    email,
			Children: children,
			Source:   source,
		}
		for _, f := range []struct {
			key string
			dst *string
		}{
			{"firstname", &record.FirstName},
			{"password", &record.Password},
			{"role", &record.Role},
		} {
			if *f.dst, err = jsonText(obj, f.key); err != nil {
				return Batch{}, fail("%s", err)
			}
		}

		created, err := jsonText(obj, "created_at")
		if err != nil {
			return Batch{}, fail("%s", err)
		}
		if record.CreatedAt, err = accounts.ParseTimestamp(created); err != nil {
			return Batch{}, errors.NewParseError(FormatJSON.String(), source,
				fmt.Sprintf("object #%d: invalid created_at %q", i+1, created), err)
		}

		batch.admit(record)
	}
	return batch, nil
}

// jsonText returns the value under key as text. The key must be present;
// null reads as "" and numbers keep their literal form.
func jsonText(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("missing key %q", key)
	}
	return rawText(raw, key)
}

func rawText(raw json.RawMessage, key string) (string, error) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("key %q: %w", key, err)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("key %q: expected a string, got %s", key, raw)
	}
}

type jsonChild struct {
	Name *string         `json:"name"`
	Age  json.RawMessage `json:"age"`
}

// jsonChildren decodes the children array and coerces each age to an int.
// A missing or null array yields an empty list; a missing or null age stays nil.
func jsonChildren(raw json.RawMessage) ([]accounts.Child, error) {
	children := []accounts.Child{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return children, nil
	}

	var items []jsonChild
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("key \"children\": %w", err)
	}
	for j, item := range items {
		child := accounts.Child{}
		if item.Name != nil {
			child.Name = *item.Name
		}
		age, err := coerceAge(item.Age)
		if err != nil {
			return nil, fmt.Errorf("child #%d: %w", j+1, err)
		}
		child.Age = age
		children = append(children, child)
	}
	return children, nil
}

// coerceAge accepts an integer, a float (truncated) or a numeric string.
func coerceAge(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid age %s", raw)
	}

	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return accounts.IntPtr(int(n)), nil
		}
		f, err := t.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("invalid age %s", raw)
		}
		return accounts.IntPtr(int(f)), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, fmt.Errorf("invalid age %q", t)
		}
		return accounts.IntPtr(n), nil
	default:
		return nil, fmt.Errorf("invalid age %s", raw)
	}
}
