package session

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
)

// Query names.
const (
	QueryAllAccounts   = "print-all-accounts"
	QueryOldestAccount = "print-oldest-account"
	QueryGroupByAge    = "group-by-age"
	QueryChildren      = "print-children"
	QuerySimilarByAge  = "find-similar-children-by-age"
)

// Query describes a named query.
type Query struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Elevated    bool   `json:"elevated" yaml:"elevated"`
	run         func(*Session) (any, error)
}

var queries = []Query{
	{
		Name:        QueryAllAccounts,
		Description: "Print the number of accounts",
		Elevated:    true,
		run:         func(s *Session) (any, error) { return s.AccountCount() },
	},
	{
		Name:        QueryOldestAccount,
		Description: "Print the account with the earliest created_at",
		Elevated:    true,
		run:         func(s *Session) (any, error) { return s.OldestAccount() },
	},
	{
		Name:        QueryGroupByAge,
		Description: "Group all children by age",
		Elevated:    true,
		run:         func(s *Session) (any, error) { return s.ChildrenByAge() },
	},
	{
		Name:        QueryChildren,
		Description: "Print your children sorted by name",
		run:         func(s *Session) (any, error) { return s.OwnChildren(), nil },
	},
	{
		Name:        QuerySimilarByAge,
		Description: "Find accounts with children of the same age as yours",
		run:         func(s *Session) (any, error) { return s.SimilarChildren(), nil },
	},
}

// Queries returns the available queries.
func Queries() []Query {
	return slices.Clone(queries)
}

// LookupQuery returns the query with the given name.
func LookupQuery(name string) (Query, bool) {
	for _, q := range queries {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

// Renderer writes query results. output.Formatter satisfies it.
type Renderer interface {
	Format(w io.Writer, data any) error
}

// Query runs the named query and returns its typed answer.
func (s *Session) Query(ctx context.Context, name string) (any, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	q, ok := LookupQuery(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownQuery, name)
	}
	logging.FromContext(ctx).Debug().
		Str("query", name).
		Str("login", s.login).
		Msg("Running query")
	return q.run(s)
}

// Run executes the named query and writes its answer to w. A nil renderer
// writes the answer as plain text lines.
func (s *Session) Run(ctx context.Context, name string, w io.Writer, r Renderer) error {
	answer, err := s.Query(ctx, name)
	if err != nil {
		return err
	}
	if r != nil {
		return r.Format(w, answer)
	}
	if text, ok := answer.(interface{ Lines() []string }); ok {
		for _, line := range text.Lines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return errors.WrapIO("write", "", err)
			}
		}
		return nil
	}
	_, err = fmt.Fprintln(w, answer)
	return err
}

// AccountCount returns the number of accounts. Requires an elevated role.
func (s *Session) AccountCount() (AccountCount, error) {
	if err := s.requireElevated(QueryAllAccounts); err != nil {
		return AccountCount{}, err
	}
	return AccountCount{Count: len(s.service.records)}, nil
}

// OldestAccount returns the account with the earliest created_at; the first
// one wins on ties. Requires an elevated role.
func (s *Session) OldestAccount() (OldestAccount, error) {
	if err := s.requireElevated(QueryOldestAccount); err != nil {
		return OldestAccount{}, err
	}
	records := s.service.records
	if len(records) == 0 {
		return OldestAccount{}, errors.NewNotFoundError("account", "oldest")
	}
	oldest := records[0]
	for _, r := range records[1:] {
		if r.CreatedAt.Before(oldest.CreatedAt) {
			oldest = r
		}
	}
	return OldestAccount{FirstName: oldest.FirstName, Email: oldest.Email, CreatedAt: oldest.CreatedAt}, nil
}

// ChildrenByAge groups every child with a known age across all accounts.
// Groups are ordered by count, then by age; names are distinct and sorted.
// Requires an elevated role.
func (s *Session) ChildrenByAge() (AgeGroups, error) {
	if err := s.requireElevated(QueryGroupByAge); err != nil {
		return nil, err
	}

	type bucket struct {
		count int
		names map[string]struct{}
	}
	buckets := make(map[int]*bucket)
	for _, r := range s.service.records {
		for _, c := range r.Children {
			if !c.HasAge() {
				continue
			}
			b, ok := buckets[*c.Age]
			if !ok {
				b = &bucket{names: make(map[string]struct{})}
				buckets[*c.Age] = b
			}
			b.count++
			b.names[c.Name] = struct{}{}
		}
	}

	groups := make(AgeGroups, 0, len(buckets))
	for age, b := range buckets {
		names := make([]string, 0, len(b.names))
		for n := range b.names {
			names = append(names, n)
		}
		slices.Sort(names)
		groups = append(groups, AgeGroup{Age: age, Count: b.count, Names: names})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count < groups[j].Count
		}
		return groups[i].Age < groups[j].Age
	})
	return groups, nil
}

// OwnChildren returns the user's children sorted by name.
func (s *Session) OwnChildren() ChildList {
	children := make(ChildList, len(s.user.Children))
	copy(children, s.user.Children)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children
}

// SimilarChildren returns, in dataset order, every other account with at
// least one child whose known age equals a known age of the user's children.
func (s *Session) SimilarChildren() Matches {
	ages := make(map[int]struct{})
	for _, c := range s.user.Children {
		if c.HasAge() {
			ages[*c.Age] = struct{}{}
		}
	}

	matches := Matches{}
	if len(ages) == 0 {
		return matches
	}

	self := s.user.Key()
	for _, r := range s.service.records {
		if r.Key() == self {
			continue
		}
		var matching []accounts.Child
		for _, c := range r.Children {
			if !c.HasAge() {
				continue
			}
			if _, ok := ages[*c.Age]; ok {
				matching = append(matching, c)
			}
		}
		if len(matching) > 0 {
			matches = append(matches, Match{FirstName: r.FirstName, Phone: r.PhoneNumber(), Children: matching})
		}
	}
	return matches
}
