package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jan.kowalski@example.com", true},
		{"a@b.c", true},
		{"a@b.info", true},
		{"user@mail.example.pl", true},
		{"user@host", true},
		{"user@example.c0m", true},
		{"bad@@x.com", false},
		{"no-at-sign.com", false},
		{"@example.com", false},
		{"user@.com", false},
		{"user@example.", false},
		{"user@example.museum", false},
		{"user@example.c-m", false},
		{"first.last@host", false},
		{"a@b@c.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain nine digits", "600700800", "600700800", true},
		{"country prefix", "+48600700800", "600700800", true},
		{"prefix with spaces", "(48) 600700800", "600700800", true},
		{"grouped digits fail", "600 700 800", "", false},
		{"leading zero", "048600700", "", false},
		{"leading zero after prefix", "+48 012345678", "", false},
		{"too short", "60070080", "", false},
		{"empty", "", "", false},
		{"letters", "60070080x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePhone(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhoneProperty(t *testing.T) {
	// succeeds iff the last nine characters are digits not starting with 0
	for _, prefix := range []string{"", "+", "00", "abc "} {
		for first := '0'; first <= '9'; first++ {
			input := prefix + string(first) + "12345678"
			got, ok := NormalizePhone(input)
			if first == '0' {
				assert.False(t, ok, input)
				continue
			}
			require.True(t, ok, input)
			assert.Len(t, got, 9)
		}
	}
}

func TestExtractNameAge(t *testing.T) {
	name, age := ExtractNameAge("Alice (7)")
	assert.Equal(t, "Alice", name)
	require.NotNil(t, age)
	assert.Equal(t, 7, *age)

	name, age = ExtractNameAge("Bob")
	assert.Equal(t, "Bob", name)
	assert.Nil(t, age)

	name, age = ExtractNameAge("  Mary Ann(12)")
	assert.Equal(t, "Mary Ann", name)
	require.NotNil(t, age)
	assert.Equal(t, 12, *age)

	name, age = ExtractNameAge("Tom (seven)")
	assert.Equal(t, "Tom (seven)", name)
	assert.Nil(t, age)

	name, age = ExtractNameAge("Zoe (4) ")
	assert.Equal(t, "Zoe (4)", name)
	assert.Nil(t, age)
}

func TestParseAge(t *testing.T) {
	age, err := ParseAge(" 11 ")
	require.NoError(t, err)
	assert.Equal(t, 11, age)

	_, err = ParseAge("eleven")
	assert.Error(t, err)
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, "email", ApplyChain("\ufeff Email ", "trim", "lowercase"))
	assert.Equal(t, "48600", Apply("+48-600", "digits_only"))
	assert.Equal(t, "Keep", Apply("Keep", "missing"))

	Register("upper_x", func(s string) string { return s + "X" })
	fn, ok := Get("upper_x")
	require.True(t, ok)
	assert.Equal(t, "aX", fn("a"))
}
