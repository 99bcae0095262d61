// Package sources parses user records out of the supported file formats.
// Every Parser emits accounts.Record values that already passed the
// email/phone gate; rows that fail the gate vanish silently and are only
// counted. Structural problems (bad syntax, missing fields, malformed
// timestamps) are returned as *errors.ParseError and abort the import.
//
// Example usage:
//
//	registry := sources.Default()
//	parser, ok := registry.Lookup("data/users.CSV")
//	if !ok {
//	    return nil // not a source file
//	}
//	var acc []accounts.Record
//	batch, err := sources.ParseFile(ctx, os.DirFS("."), "data/users.CSV", parser, &acc)
package sources

import (
	"context"
	"io"

	"github.com/agentstation/roster/pkg/accounts"
)

// Format identifies a source file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// String returns the string representation of a format.
func (f Format) String() string {
	return string(f)
}

// Parser reads one file format.
type Parser interface {
	// Format returns the format handled by the parser.
	Format() Format

	// Extensions returns the lowercase file extensions, with leading dot, the parser accepts.
	Extensions() []string

	// Parse reads every record in r. source names the file in errors and on the records.
	Parse(ctx context.Context, r io.Reader, source string) (Batch, error)
}

// Reason explains why a row was dropped.
type Reason string

// Rejection reasons.
const (
	ReasonInvalidEmail Reason = "invalid_email"
	ReasonInvalidPhone Reason = "invalid_phone"
)

// Batch is the outcome of parsing one file.
type Batch struct {
	Records  []accounts.Record
	Rejected map[Reason]int
}

// RejectedTotal returns the number of dropped rows.
func (b Batch) RejectedTotal() int {
	total := 0
	for _, n := range b.Rejected {
		total += n
	}
	return total
}

func (b *Batch) admit(r accounts.Record) {
	b.Records = append(b.Records, r)
}

func (b *Batch) reject(reason Reason) {
	if b.Rejected == nil {
		b.Rejected = make(map[Reason]int)
	}
	b.Rejected[reason]++
}
