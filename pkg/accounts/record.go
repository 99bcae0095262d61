// Package accounts defines the canonical user record shared by every source
// format, the persisted dataset and the query service.
package accounts

import "strconv"

// Record is one user entry regardless of the file format it came from.
// Field order is the order used when the dataset is persisted.
type Record struct {
	FirstName string    `json:"firstname" yaml:"firstname"`
	Phone     *string   `json:"telephone_number" yaml:"telephone_number"` // normalized 9 digits, nil when absent
	Email     string    `json:"email" yaml:"email"`
	Password  string    `json:"password" yaml:"password"`
	Role      string    `json:"role" yaml:"role"`
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
	Children  []Child   `json:"children" yaml:"children"`

	// Source is the file the record was read from. Not persisted.
	Source string `json:"-" yaml:"-"`
}

// Child is a child entry nested under a Record.
type Child struct {
	Name string `json:"name" yaml:"name"`
	Age  *int   `json:"age" yaml:"age"` // nil when the source age could not be parsed
}

// HasPhone reports whether the record carries a normalized phone number.
func (r Record) HasPhone() bool {
	return r.Phone != nil && *r.Phone != ""
}

// PhoneNumber returns the phone number or "" when absent.
func (r Record) PhoneNumber() string {
	if r.Phone == nil {
		return ""
	}
	return *r.Phone
}

// Key returns the identity key of the record: phone if present, else email.
func (r Record) Key() IdentityKey {
	if r.HasPhone() {
		return IdentityKey{Kind: KeyPhone, Value: *r.Phone}
	}
	return IdentityKey{Kind: KeyEmail, Value: r.Email}
}

// MatchesLogin reports whether login equals the record's email or phone exactly.
func (r Record) MatchesLogin(login string) bool {
	return r.Email == login || (r.HasPhone() && *r.Phone == login)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Phone != nil {
		out.Phone = StringPtr(*r.Phone)
	}
	if r.Children != nil {
		out.Children = make([]Child, len(r.Children))
		for i, c := range r.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// HasAge reports whether the child's age is known.
func (c Child) HasAge() bool {
	return c.Age != nil
}

// AgeString renders the age, or "None" when unknown.
func (c Child) AgeString() string {
	if c.Age == nil {
		return "None"
	}
	return strconv.Itoa(*c.Age)
}

// Clone returns a deep copy of the child.
func (c Child) Clone() Child {
	out := c
	if c.Age != nil {
		out.Age = IntPtr(*c.Age)
	}
	return out
}

// CloneAll deep-copies a slice of records.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}
