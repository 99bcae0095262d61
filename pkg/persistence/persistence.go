// Package persistence writes the merged dataset to disk and reads it back.
//
// JSON is the default encoding; a .yaml or .yml path selects YAML. Both use
// two-space indentation and the canonical field order of accounts.Record.
// Writes truncate and overwrite the target; they are not atomic.
package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
)

// Save writes records to path, replacing any existing file.
func Save(path string, records []accounts.Record, opts ...Option) error {
	options := Defaults().Apply(opts...)

	format, ok := options.Format()
	if !ok {
		format = FormatFromPath(path)
	}

	data, err := Marshal(records, format)
	if err != nil {
		return errors.WrapResource("save", "dataset", path, err)
	}

	if options.mkdirs {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return errors.WrapIO("create", dir, err)
			}
		}
	}

	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Write encodes records to w.
func Write(w io.Writer, records []accounts.Record, format Format) error {
	data, err := Marshal(records, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.WrapIO("write", "", err)
	}
	return nil
}

// Marshal encodes records. Nil children are written as empty lists.
func Marshal(records []accounts.Record, format Format) ([]byte, error) {
	records = normalize(records)

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", constants.OutputIndent)
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return buf.Bytes(), nil

	case FormatYAML:
		data, err := yaml.MarshalWithOptions(records,
			yaml.Indent(len(constants.OutputIndent)),
			yaml.IndentSequence(false),
		)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil

	default:
		return nil, &errors.ValidationError{
			Field:   "format",
			Value:   format,
			Message: fmt.Sprintf("unsupported format %s", format),
		}
	}
}

// Load reads a dataset written by Save. The format follows the extension.
func Load(path string) ([]accounts.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	format := FormatFromPath(path)
	records, err := Unmarshal(data, format)
	if err != nil {
		return nil, errors.WrapParse(format.String(), path, err)
	}
	for i := range records {
		records[i].Source = path
	}
	return records, nil
}

// Unmarshal decodes a dataset.
func Unmarshal(data []byte, format Format) ([]accounts.Record, error) {
	var records []accounts.Record

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}

	return normalize(records), nil
}

func normalize(records []accounts.Record) []accounts.Record {
	if records == nil {
		return []accounts.Record{}
	}
	out := records
	copied := false
	for i, r := range records {
		if r.Children != nil {
			continue
		}
		if !copied {
			out = make([]accounts.Record, len(records))
			copy(out, records)
			copied = true
		}
		out[i].Children = []accounts.Child{}
	}
	return out
}
