package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/fields"
)

// xmlDocument matches any root element holding <user> children.
type xmlDocument struct {
	Users []xmlUser `xml:"user"`
}

// Pointer fields distinguish a missing element from an empty one.
type xmlUser struct {
	FirstName *string      `xml:"firstname"`
	Phone     *string      `xml:"telephone_number"`
	Email     *string      `xml:"email"`
	Password  *string      `xml:"password"`
	Role      *string      `xml:"role"`
	CreatedAt *string      `xml:"created_at"`
	Children  *xmlChildren `xml:"children"`
}

type xmlChildren struct {
	Child []xmlChild `xml:"child"`
}

type xmlChild struct {
	Name *string `xml:"name"`
	Age  *string `xml:"age"`
}

// XMLParser reads a document of <user> elements.
type XMLParser struct{}

// NewXMLParser creates an XML parser.
func NewXMLParser() *XMLParser {
	return &XMLParser{}
}

// Format implements Parser.
func (p *XMLParser) Format() Format { return FormatXML }

// Extensions implements Parser.
func (p *XMLParser) Extensions() []string { return []string{".xml"} }

// Parse implements Parser. Each user is fully built before the email/phone
// gate, so a malformed timestamp or child age fails the file even when the
// user would have been dropped.
func (p *XMLParser) Parse(ctx context.Context, r io.Reader, source string) (Batch, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Batch{}, errors.WrapParse(FormatXML.String(), source, err)
	}

	var batch Batch
	for i, u := range doc.Users {
		where := fmt.Sprintf("%s: user #%d", source, i+1)

		record, err := u.record(source)
		if err != nil {
			return Batch{}, errors.NewParseError(FormatXML.String(), source,
				fmt.Sprintf("user #%d: %s", i+1, err.Error()), err)
		}

		phone, ok := gate(ctx, &batch, record.Email, record.PhoneNumber(), where)
		if !ok {
			continue
		}
		record.Phone = accounts.StringPtr(phone)
		batch.admit(record)
	}
	return batch, nil
}

func (u xmlUser) record(source string) (accounts.Record, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"firstname", u.FirstName},
		{"telephone_number", u.Phone},
		{"email", u.Email},
		{"password", u.Password},
		{"role", u.Role},
		{"created_at", u.CreatedAt},
	}
	for _, el := range required {
		if el.value == nil {
			return accounts.Record{}, fmt.Errorf("missing element <%s>", el.name)
		}
	}

	createdAt, err := accounts.ParseTimestamp(*u.CreatedAt)
	if err != nil {
		return accounts.Record{}, err
	}

	children := []accounts.Child{}
	if u.Children != nil {
		for j, c := range u.Children.Child {
			if c.Name == nil || c.Age == nil {
				return accounts.Record{}, fmt.Errorf("child #%d: missing <name> or <age>", j+1)
			}
			age, err := fields.ParseAge(*c.Age)
			if err != nil {
				return accounts.Record{}, fmt.Errorf("child #%d: invalid age %q", j+1, *c.Age)
			}
			children = append(children, accounts.Child{Name: *c.Name, Age: accounts.IntPtr(age)})
		}
	}

	return accounts.Record{
		FirstName: *u.FirstName,
		Phone:     u.Phone,
		Email:     *u.Email,
		Password:  *u.Password,
		Role:      *u.Role,
		CreatedAt: createdAt,
		Children:  children,
		Source:    source,
	}, nil
}
