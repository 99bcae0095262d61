package accounts

import "fmt"

// KeyKind identifies which field an IdentityKey was built from.
type KeyKind int

const (
	// KeyPhone marks a key built from the normalized phone number.
	KeyPhone KeyKind = iota
	// KeyEmail marks a key built from the email address.
	KeyEmail
)

// String returns the field name the kind was built from.
func (k KeyKind) String() string {
	switch k {
	case KeyPhone:
		return "phone"
	case KeyEmail:
		return "email"
	default:
		return "unknown"
	}
}

// IdentityKey determines whether two records describe the same person.
// It is comparable and used directly as a map key during deduplication.
type IdentityKey struct {
	Kind  KeyKind
	Value string
}

// String implements fmt.Stringer.
func (k IdentityKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Value)
}
