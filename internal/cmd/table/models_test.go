package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/importer"
	"github.com/agentstation/roster/pkg/session"
	"github.com/agentstation/roster/pkg/sources"
)

func TestFromValue(t *testing.T) {
	created, err := accounts.ParseTimestamp("2022-01-01 10:00:00")
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   any
		headers []string
		rows    [][]string
	}{
		{
			name:    "account count",
			value:   session.AccountCount{Count: 3},
			headers: []string{"Accounts"},
			rows:    [][]string{{"3"}},
		},
		{
			name:    "oldest account",
			value:   session.OldestAccount{FirstName: "Cara", Email: "cara@example.com", CreatedAt: created},
			headers: []string{"Name", "Email", "Created At"},
			rows:    [][]string{{"Cara", "cara@example.com", "2022-01-01 10:00:00"}},
		},
		{
			name:    "age groups",
			value:   session.AgeGroups{{Age: 7, Count: 2, Names: []string{"Tom", "Zoe"}}},
			headers: []string{"Age", "Count", "Names"},
			rows:    [][]string{{"7", "2", "Tom, Zoe"}},
		},
		{
			name:    "children with unknown age",
			value:   session.ChildList{{Name: "Ela"}, {Name: "Tom", Age: accounts.IntPtr(7)}},
			headers: []string{"Name", "Age"},
			rows:    [][]string{{"Ela", "-"}, {"Tom", "7"}},
		},
		{
			name: "matches",
			value: session.Matches{{
				FirstName: "Anna",
				Phone:     "600700800",
				Children:  []accounts.Child{{Name: "Tom", Age: accounts.IntPtr(7)}},
			}},
			headers: []string{"Name", "Phone", "Children"},
			rows:    [][]string{{"Anna", "600700800", "Tom (7)"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ok := FromValue(tt.value, false)
			require.True(t, ok)
			assert.Equal(t, tt.headers, data.Headers)
			assert.Equal(t, tt.rows, data.Rows)
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, ok := FromValue(struct{ X int }{1}, false)
		assert.False(t, ok)
	})
}

func TestFilesToTableData(t *testing.T) {
	files := []importer.FileStat{{
		Path:     "data/a.csv",
		Format:   sources.FormatCSV,
		Admitted: 4,
		Rejected: map[sources.Reason]int{sources.ReasonInvalidEmail: 1, sources.ReasonInvalidPhone: 2},
	}}

	narrow := FilesToTableData(files, false)
	assert.Equal(t, []string{"File", "Format", "Admitted", "Rejected"}, narrow.Headers)
	assert.Equal(t, [][]string{{"data/a.csv", "csv", "4", "3"}}, narrow.Rows)

	wide := FilesToTableData(files, true)
	assert.Len(t, wide.Headers, 6)
	assert.Equal(t, [][]string{{"data/a.csv", "csv", "4", "3", "1", "2"}}, wide.Rows)
	assert.Len(t, wide.ColumnAlignment, 6)
}

func TestRecordsToTableData(t *testing.T) {
	phone := "600700800"
	records := []accounts.Record{
		{FirstName: "Anna", Phone: &phone, Email: "anna@example.com", Password: "secret", Role: "admin", Source: "a.csv"},
		{FirstName: "Bob", Email: "bob@example.com", Role: "user"},
	}

	data := RecordsToTableData(records, true)
	require.Len(t, data.Rows, 2)
	for _, row := range data.Rows {
		assert.NotContains(t, row, "secret")
	}
	assert.Equal(t, "600700800", data.Rows[0][1])
	assert.Equal(t, "-", data.Rows[1][1])
	assert.Equal(t, "a.csv", data.Rows[0][6])
}
