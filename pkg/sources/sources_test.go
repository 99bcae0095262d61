package sources_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/sources"
)

const csvHeader = "firstname;telephone_number;email;password;role;created_at;children\n"

func parse(t *testing.T, p sources.Parser, input string) (sources.Batch, error) {
	t.Helper()
	return p.Parse(context.Background(), strings.NewReader(input), "test."+p.Format().String())
}

func TestCSVParser(t *testing.T) {
	t.Run("admits valid rows", func(t *testing.T) {
		input := csvHeader +
			"Anna;+48600700800;anna@example.com;secret;admin;2023-01-02 03:04:05;Tom (7), Ewa (3)\n" +
			"Bob;600700801;bob@example.com;pw;user;2023-02-02 10:00:00;\n"

		batch, err := parse(t, sources.NewCSVParser(), input)
		require.NoError(t, err)
		require.Len(t, batch.Records, 2)

		anna := batch.Records[0]
		assert.Equal(t, "Anna", anna.FirstName)
		assert.Equal(t, "600700800", anna.PhoneNumber())
		assert.Equal(t, "2023-01-02 03:04:05", anna.CreatedAt.String())
		require.Len(t, anna.Children, 2)
		assert.Equal(t, "Tom", anna.Children[0].Name)
		assert.Equal(t, 7, *anna.Children[0].Age)
		assert.Equal(t, "test.csv", anna.Source)

		assert.NotNil(t, batch.Records[1].Children)
		assert.Empty(t, batch.Records[1].Children)
		assert.Zero(t, batch.RejectedTotal())
	})

	t.Run("drops rows failing the gate", func(t *testing.T) {
		input := csvHeader +
			"Bad;600700800;bad@@x.com;pw;user;2023-01-01 00:00:00;\n" +
			"Short;12345;ok@example.com;pw;user;2023-01-01 00:00:00;\n" +
			"Zero;012345678;ok@example.com;pw;user;2023-01-01 00:00:00;\n"

		batch, err := parse(t, sources.NewCSVParser(), input)
		require.NoError(t, err)
		assert.Empty(t, batch.Records)
		assert.Equal(t, 1, batch.Rejected[sources.ReasonInvalidEmail])
		assert.Equal(t, 2, batch.Rejected[sources.ReasonInvalidPhone])
	})

	t.Run("dropped row with bad timestamp is not fatal", func(t *testing.T) {
		input := csvHeader + "Bad;600700800;bad@@x.com;pw;user;yesterday;\n"
		batch, err := parse(t, sources.NewCSVParser(), input)
		require.NoError(t, err)
		assert.Empty(t, batch.Records)
	})

	t.Run("bad timestamp on admitted row is fatal", func(t *testing.T) {
		input := csvHeader +
			"Anna;600700800;anna@example.com;pw;user;2023-01-01 00:00:00;\n" +
			"Bob;600700801;bob@example.com;pw;user;01/02/2023;\n"

		_, err := parse(t, sources.NewCSVParser(), input)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))

		var pe *errors.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 3, pe.Line)
		assert.Equal(t, "test.csv", pe.File)
	})

	t.Run("headers are trimmed and case-insensitive", func(t *testing.T) {
		input := "FirstName; Telephone_Number ;EMAIL;password;role;created_at\n" +
			"Anna;600700800;anna@example.com;pw;user;2023-01-01 00:00:00\n"

		batch, err := parse(t, sources.NewCSVParser(), input)
		require.NoError(t, err)
		require.Len(t, batch.Records, 1)
		assert.Equal(t, "anna@example.com", batch.Records[0].Email)
		assert.Empty(t, batch.Records[0].Children)
	})

	t.Run("missing column is fatal", func(t *testing.T) {
		input := "firstname;email;password;role;created_at\nAnna;a@b.com;pw;user;2023-01-01 00:00:00\n"
		_, err := parse(t, sources.NewCSVParser(), input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing column "telephone_number"`)
	})

	t.Run("empty file", func(t *testing.T) {
		batch, err := parse(t, sources.NewCSVParser(), "")
		require.NoError(t, err)
		assert.Empty(t, batch.Records)
	})

	t.Run("child without age", func(t *testing.T) {
		input := csvHeader + "Anna;600700800;anna@example.com;pw;user;2023-01-01 00:00:00;Tom\n"
		batch, err := parse(t, sources.NewCSVParser(), input)
		require.NoError(t, err)
		require.Len(t, batch.Records[0].Children, 1)
		assert.Nil(t, batch.Records[0].Children[0].Age)
	})
}

const xmlUsers = `<?xml version="1.0" encoding="UTF-8"?>
<users>
  <user>
    <firstname>Anna</firstname>
    <telephone_number>+48600700800</telephone_number>
    <email>anna@example.com</email>
    <password>secret</password>
    <role>admin</role>
    <created_at>2023-01-02 03:04:05</created_at>
    <children>
      <child><name>Tom</name><age>7</age></child>
    </children>
  </user>
  <user>
    <firstname>Bad</firstname>
    <telephone_number>600700801</telephone_number>
    <email>bad@@x.com</email>
    <password>pw</password>
    <role>user</role>
    <created_at>2023-01-02 03:04:05</created_at>
  </user>
</users>`

func TestXMLParser(t *testing.T) {
	t.Run("admits valid users", func(t *testing.T) {
		batch, err := parse(t, sources.NewXMLParser(), xmlUsers)
		require.NoError(t, err)
		require.Len(t, batch.Records, 1)

		anna := batch.Records[0]
		assert.Equal(t, "600700800", anna.PhoneNumber())
		assert.Equal(t, "admin", anna.Role)
		require.Len(t, anna.Children, 1)
		assert.Equal(t, accounts.Child{Name: "Tom", Age: accounts.IntPtr(7)}, anna.Children[0])
		assert.Equal(t, 1, batch.Rejected[sources.ReasonInvalidEmail])
	})

	t.Run("user without children", func(t *testing.T) {
		input := strings.Replace(xmlUsers, "bad@@x.com", "bob@example.com", 1)
		batch, err := parse(t, sources.NewXMLParser(), input)
		require.NoError(t, err)
		require.Len(t, batch.Records, 2)
		assert.NotNil(t, batch.Records[1].Children)
		assert.Empty(t, batch.Records[1].Children)
	})

	t.Run("missing element is fatal", func(t *testing.T) {
		input := strings.Replace(xmlUsers, "<role>admin</role>", "", 1)
		_, err := parse(t, sources.NewXMLParser(), input)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
		assert.Contains(t, err.Error(), "missing element <role>")
	})

	t.Run("bad child age is fatal", func(t *testing.T) {
		input := strings.Replace(xmlUsers, "<age>7</age>", "<age>seven</age>", 1)
		_, err := parse(t, sources.NewXMLParser(), input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid age "seven"`)
	})

	t.Run("bad timestamp on dropped user is fatal", func(t *testing.T) {
		input := strings.Replace(xmlUsers,
			"<created_at>2023-01-02 03:04:05</created_at>\n  </user>\n</users>",
			"<created_at>never</created_at>\n  </user>\n</users>", 1)
		_, err := parse(t, sources.NewXMLParser(), input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "user #2")
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := parse(t, sources.NewXMLParser(), "<users><user>")
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
	})
}

func TestJSONParser(t *testing.T) {
	t.Run("admits valid objects", func(t *testing.T) {
		input := `[
		  {"firstname": "Anna", "telephone_number": "+48600700800", "email": "anna@example.com",
		   "password": "secret", "role": "admin", "created_at": "2023-01-02 03:04:05",
		   "children": [{"name": "Tom", "age": 7}, {"name": "Ewa", "age": "3"}, {"name": "Ola", "age": null}]},
		  {"firstname": "Bob", "telephone_number": 600700801, "email": "bob@example.com",
		   "password": "pw", "role": "user", "created_at": "2023-02-02 10:00:00"}
		]`

		batch, err := parse(t, sources.NewJSONParser(), input)
		require.NoError(t, err)
		require.Len(t, batch.Records, 2)

		anna := batch.Records[0]
		assert.Equal(t, "600700800", anna.PhoneNumber())
		require.Len(t, anna.Children, 3)
		assert.Equal(t, 7, *anna.Children[0].Age)
		assert.Equal(t, 3, *anna.Children[1].Age)
		assert.Nil(t, anna.Children[2].Age)

		bob := batch.Records[1]
		assert.Equal(t, "600700801", bob.PhoneNumber())
		assert.NotNil(t, bob.Children)
		assert.Empty(t, bob.Children)
	})

	t.Run("malformed age is fatal even for dropped objects", func(t *testing.T) {
		input := `[{"firstname": "Bad", "telephone_number": "600700800", "email": "bad@@x.com",
		  "password": "pw", "role": "user", "created_at": "2023-01-01 00:00:00",
		  "children": [{"name": "Tom", "age": "seven"}]}]`

		_, err := parse(t, sources.NewJSONParser(), input)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
		assert.Contains(t, err.Error(), "invalid age")
	})

	t.Run("null age stays absent", func(t *testing.T) {
		input := `[{"firstname": "Anna", "telephone_number": "600700800", "email": "anna@example.com",
		  "password": "pw", "role": "user", "created_at": "2023-01-01 00:00:00",
		  "children": [{"name": "Tom", "age": null}, {"name": "Ola"}]}]`

		batch, err := parse(t, sources.NewJSONParser(), input)
		require.NoError(t, err)
		require.Len(t, batch.Records, 1)
		require.Len(t, batch.Records[0].Children, 2)
		assert.Nil(t, batch.Records[0].Children[0].Age)
		assert.Nil(t, batch.Records[0].Children[1].Age)
	})

	t.Run("dropped object skips remaining fields", func(t *testing.T) {
		input := `[{"telephone_number": "600700800", "email": "bad@@x.com", "created_at": "never"}]`
		batch, err := parse(t, sources.NewJSONParser(), input)
		require.NoError(t, err)
		assert.Empty(t, batch.Records)
		assert.Equal(t, 1, batch.RejectedTotal())
	})

	t.Run("missing key is fatal", func(t *testing.T) {
		input := `[{"telephone_number": "600700800", "email": "a@b.com", "created_at": "2023-01-01 00:00:00"}]`
		_, err := parse(t, sources.NewJSONParser(), input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing key "firstname"`)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := parse(t, sources.NewJSONParser(), `{"email": "a@b.com"}`)
		require.Error(t, err)
		assert.True(t, errors.IsParseError(err))
	})
}

func TestRegistry(t *testing.T) {
	r := sources.Default()

	tests := []struct {
		path   string
		format sources.Format
		ok     bool
	}{
		{"data/users.csv", sources.FormatCSV, true},
		{"data/USERS.CSV", sources.FormatCSV, true},
		{"a/b/users.Xml", sources.FormatXML, true},
		{"users.json", sources.FormatJSON, true},
		{"notes.txt", "", false},
		{"README", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, ok := r.Lookup(tt.path)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.format, p.Format())
			}
		})
	}

	assert.Equal(t, []string{".csv", ".json", ".xml"}, r.Extensions())
}

func TestParseFile(t *testing.T) {
	fsys := fstest.MapFS{
		"data/a.csv": {Data: []byte(csvHeader + "Anna;600700800;anna@example.com;pw;user;2023-01-01 00:00:00;\n")},
		"data/b.csv": {Data: []byte(csvHeader + "Anna;600700800;anna@example.com;pw;user;bad;\n")},
	}

	acc := []accounts.Record{{Email: "existing@example.com"}}

	batch, err := sources.ParseFile(context.Background(), fsys, "data/a.csv", sources.NewCSVParser(), &acc)
	require.NoError(t, err)
	assert.Len(t, batch.Records, 1)
	require.Len(t, acc, 2)
	assert.Equal(t, "existing@example.com", acc[0].Email)
	assert.Equal(t, "data/a.csv", acc[1].Source)

	_, err = sources.ParseFile(context.Background(), fsys, "data/b.csv", sources.NewCSVParser(), &acc)
	require.Error(t, err)
	assert.Len(t, acc, 2)

	_, err = sources.ParseFile(context.Background(), fsys, "data/missing.csv", sources.NewCSVParser(), &acc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IO error during open of data/missing.csv")
}
