package sources

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/fields"
)

// CSV column names. Headers are matched after trimming and lowercasing.
const (
	colFirstName = "firstname"
	colPhone     = "telephone_number"
	colEmail     = "email"
	colPassword  = "password"
	colRole      = "role"
	colCreatedAt = "created_at"
	colChildren  = "children"
)

var csvRequiredColumns = []string{colFirstName, colPhone, colEmail, colPassword, colRole, colCreatedAt}

// CSVParser reads semicolon-delimited files with a header row.
// The optional children column holds "Name (Age)" tokens separated by commas.
type CSVParser struct{}

// NewCSVParser creates a CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Format implements Parser.
func (p *CSVParser) Format() Format { return FormatCSV }

// Extensions implements Parser.
func (p *CSVParser) Extensions() []string { return []string{".csv"} }

// Parse implements Parser.
func (p *CSVParser) Parse(ctx context.Context, r io.Reader, source string) (Batch, error) {
	reader := csv.NewReader(r)
	reader.Comma = constants.CSVDelimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return Batch{}, nil
	}
	if err != nil {
		return Batch{}, csvError(source, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = fields.ApplyChain(name, "trim", "lowercase")
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, col := range csvRequiredColumns {
		if _, ok := columns[col]; !ok {
			return Batch{}, &errors.ParseError{
				Format:  FormatCSV.String(),
				File:    source,
				Line:    1,
				Message: fmt.Sprintf("missing column %q", col),
			}
		}
	}

	var batch Batch
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Batch{}, csvError(source, err)
		}
		line, _ := reader.FieldPos(0)

		cell := func(col string) string {
			i, ok := columns[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		phone, ok := gate(ctx, &batch, cell(colEmail), cell(colPhone), fmt.Sprintf("%s:%d", source, line))
		if !ok {
			continue
		}

		createdAt, err := accounts.ParseTimestamp(cell(colCreatedAt))
		if err != nil {
			return Batch{}, &errors.ParseError{
				Format:  FormatCSV.String(),
				File:    source,
				Line:    line,
				Message: fmt.Sprintf("invalid created_at %q", cell(colCreatedAt)),
				Err:     err,
			}
		}

		batch.admit(accounts.Record{
			FirstName: cell(colFirstName),
			Phone:     accounts.StringPtr(phone),
			Email:     cell(colEmail),
			Password:  cell(colPassword),
			Role:      cell(colRole),
			CreatedAt: createdAt,
			Children:  parseChildList(cell(colChildren)),
			Source:    source,
		})
	}
	return batch, nil
}

// parseChildList splits "Anna (7), Tom (3)" into children. Empty tokens are skipped.
func parseChildList(s string) []accounts.Child {
	children := []accounts.Child{}
	if strings.TrimSpace(s) == "" {
		return children
	}
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		name, age := fields.ExtractNameAge(token)
		children = append(children, accounts.Child{Name: name, Age: age})
	}
	return children
}

func csvError(source string, err error) error {
	pe := &errors.ParseError{Format: FormatCSV.String(), File: source, Message: err.Error(), Err: err}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		pe.Line = csvErr.Line
	}
	return pe
}
