// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/importer"
	"github.com/agentstation/roster/pkg/session"
	"github.com/agentstation/roster/pkg/sources"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// FromValue converts the known query answers and import results to table
// data. It reports false for anything else.
func FromValue(v any, wide bool) (Data, bool) {
	switch t := v.(type) {
	case session.AccountCount:
		return Data{
			Headers:         []string{"Accounts"},
			Rows:            [][]string{{strconv.Itoa(t.Count)}},
			ColumnAlignment: []Align{AlignRight},
		}, true
	case session.OldestAccount:
		return Data{
			Headers: []string{"Name", "Email", "Created At"},
			Rows:    [][]string{{t.FirstName, t.Email, t.CreatedAt.String()}},
		}, true
	case session.AgeGroups:
		return AgeGroupsToTableData(t), true
	case session.ChildList:
		return ChildrenToTableData(t), true
	case session.Matches:
		return MatchesToTableData(t), true
	case []importer.FileStat:
		return FilesToTableData(t, wide), true
	case []accounts.Record:
		return RecordsToTableData(t, wide), true
	default:
		return Data{}, false
	}
}

// AgeGroupsToTableData converts age groups to table format.
func AgeGroupsToTableData(groups session.AgeGroups) Data {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			strconv.Itoa(g.Age),
			strconv.Itoa(g.Count),
			strings.Join(g.Names, ", "),
		})
	}
	return Data{
		Headers:         []string{"Age", "Count", "Names"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignLeft},
	}
}

// ChildrenToTableData converts children to table format.
func ChildrenToTableData(children []accounts.Child) Data {
	rows := make([][]string, 0, len(children))
	for _, c := range children {
		rows = append(rows, []string{c.Name, FormatAge(c)})
	}
	return Data{
		Headers:         []string{"Name", "Age"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// MatchesToTableData converts similar-children matches to table format.
func MatchesToTableData(matches session.Matches) Data {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{m.FirstName, m.Phone, FormatChildren(m.Children)})
	}
	return Data{
		Headers: []string{"Name", "Phone", "Children"},
		Rows:    rows,
	}
}

// FilesToTableData converts per-file import statistics to table format.
// Wide output splits rejections by reason.
func FilesToTableData(files []importer.FileStat, wide bool) Data {
	headers := []string{"File", "Format", "Admitted", "Rejected"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Invalid Email", "Invalid Phone")
		align = append(align, AlignRight, AlignRight)
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		row := []string{
			f.Path,
			f.Format.String(),
			strconv.Itoa(f.Admitted),
			strconv.Itoa(f.RejectedTotal()),
		}
		if wide {
			row = append(row,
				strconv.Itoa(f.Rejected[sources.ReasonInvalidEmail]),
				strconv.Itoa(f.Rejected[sources.ReasonInvalidPhone]),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// RecordsToTableData converts records to table format. Passwords are never shown.
func RecordsToTableData(records []accounts.Record, wide bool) Data {
	headers := []string{"Name", "Phone", "Email", "Role", "Created At"}
	if wide {
		headers = append(headers, "Children", "Source")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			r.FirstName,
			FormatPhone(r),
			r.Email,
			r.Role,
			r.CreatedAt.String(),
		}
		if wide {
			row = append(row, FormatChildren(r.Children), r.Source)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// FormatAge formats a child's age for display.
func FormatAge(c accounts.Child) string {
	if !c.HasAge() {
		return "-"
	}
	return strconv.Itoa(*c.Age)
}

// FormatPhone formats a record's phone for display.
func FormatPhone(r accounts.Record) string {
	if !r.HasPhone() {
		return "-"
	}
	return r.PhoneNumber()
}

// FormatChildren formats children as "Name (Age)" tokens.
func FormatChildren(children []accounts.Child) string {
	if len(children) == 0 {
		return "-"
	}
	parts := make([]string, len(children))
	for i, c := range children {
		if c.HasAge() {
			parts[i] = fmt.Sprintf("%s (%d)", c.Name, *c.Age)
		} else {
			parts[i] = c.Name
		}
	}
	return strings.Join(parts, ", ")
}
