// Package fields validates and normalizes single fields of a user record.
// Every function here is pure; callers decide whether a failure drops the
// record or the field.
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/roster/pkg/constants"
)

// nameAgePattern matches "Name (7)" with optional whitespace before the parenthesis.
var nameAgePattern = regexp.MustCompile(`^(.*?)\s*\((\d+)\)$`)

// ValidateEmail reports whether s is an acceptable email address:
//   - exactly one "@"
//   - a non-empty local part
//   - a non-empty domain label before the first "." after "@"
//   - 1-4 ASCII letters or digits after the last "."
func ValidateEmail(s string) bool {
	if strings.Count(s, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(s, "@")
	if local == "" {
		return false
	}
	if label, _, _ := strings.Cut(domain, "."); label == "" {
		return false
	}

	suffix := domain
	if i := strings.LastIndex(s, "."); i >= 0 {
		suffix = s[i+1:]
	}
	if len(suffix) < 1 || len(suffix) > constants.MaxEmailSuffixLength {
		return false
	}
	return isAlphanumeric(suffix)
}

// NormalizePhone keeps the last nine characters of s and accepts them only if
// they are all digits and do not start with 0. Shorter input always fails.
func NormalizePhone(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) < constants.PhoneDigits {
		return "", false
	}
	tail := string(runes[len(runes)-constants.PhoneDigits:])
	if !isDigits(tail) || tail[0] == '0' {
		return "", false
	}
	return tail, true
}

// ExtractNameAge splits "Name (Age)" into a trimmed name and an age.
// When s does not match, the trimmed s is the name and the age is nil.
func ExtractNameAge(s string) (string, *int) {
	m := nameAgePattern.FindStringSubmatch(s)
	if m == nil {
		return strings.TrimSpace(s), nil
	}
	age, err := strconv.Atoi(m[2])
	if err != nil {
		// digits too long for int
		return strings.TrimSpace(m[1]), nil
	}
	return strings.TrimSpace(m[1]), &age
}

// ParseAge converts a textual age to an int, trimming surrounding whitespace.
func ParseAge(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}
