package session

import (
	"fmt"
	"strings"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/constants"
)

// AccountCount is the answer to print-all-accounts.
type AccountCount struct {
	Count int `json:"count" yaml:"count"`
}

// Lines renders the count as plain text.
func (c AccountCount) Lines() []string {
	return []string{fmt.Sprint(c.Count)}
}

// OldestAccount is the answer to print-oldest-account.
type OldestAccount struct {
	FirstName string             `json:"firstname" yaml:"firstname"`
	Email     string             `json:"email" yaml:"email"`
	CreatedAt accounts.Timestamp `json:"created_at" yaml:"created_at"`
}

// Lines renders the account as plain text.
func (o OldestAccount) Lines() []string {
	return []string{
		"Oldest account:",
		"name: " + o.FirstName,
		"email_address: " + o.Email,
		"created_at: " + o.CreatedAt.String(),
	}
}

// AgeGroup counts children of one age across all accounts.
type AgeGroup struct {
	Age   int      `json:"age" yaml:"age"`
	Count int      `json:"count" yaml:"count"`
	Names []string `json:"names" yaml:"names"`
}

// AgeGroups is the answer to group-by-age.
type AgeGroups []AgeGroup

// Lines renders one line per age.
func (g AgeGroups) Lines() []string {
	lines := make([]string, 0, len(g))
	for _, group := range g {
		lines = append(lines, fmt.Sprintf("age: %d, count: %d, names: %s",
			group.Age, group.Count, strings.Join(group.Names, ", ")))
	}
	return lines
}

// ChildList is the answer to print-children.
type ChildList []accounts.Child

// Lines renders one "name, age" line per child.
func (c ChildList) Lines() []string {
	if len(c) == 0 {
		return []string{constants.MsgNoChildren}
	}
	lines := make([]string, 0, len(c))
	for _, child := range c {
		lines = append(lines, childText(child))
	}
	return lines
}

// Match is an account with children sharing an age with the caller's.
// Children holds only the matching children.
type Match struct {
	FirstName string           `json:"firstname" yaml:"firstname"`
	Phone     string           `json:"telephone_number" yaml:"telephone_number"`
	Children  []accounts.Child `json:"children" yaml:"children"`
}

// Matches is the answer to find-similar-children-by-age.
type Matches []Match

// Lines renders one line per matching account.
func (m Matches) Lines() []string {
	lines := make([]string, 0, len(m))
	for _, match := range m {
		children := make([]string, len(match.Children))
		for i, c := range match.Children {
			children[i] = childText(c)
		}
		lines = append(lines, fmt.Sprintf("%s, %s: %s", match.FirstName, match.Phone, strings.Join(children, "; ")))
	}
	return lines
}

func childText(c accounts.Child) string {
	return c.Name + ", " + c.AgeString()
}
