package reconcile

import "github.com/agentstation/roster/pkg/accounts"

// Strategy decides which of two records sharing an identity key survives.
type Strategy interface {
	// Name returns the strategy name
	Name() string

	// Description returns a human-readable description
	Description() string

	// Prefer reports whether candidate should replace kept.
	// kept is always the record seen earlier.
	Prefer(kept, candidate accounts.Record) bool
}

// baseStrategy provides common strategy functionality
type baseStrategy struct {
	name        string
	description string
}

// Name returns the strategy name
func (s *baseStrategy) Name() string {
	return s.name
}

// Description returns a human-readable description
func (s *baseStrategy) Description() string {
	return s.description
}

// MostRecentStrategy keeps the record with the latest created_at.
// On equal timestamps the earlier record stays.
type MostRecentStrategy struct {
	baseStrategy
}

// MostRecent returns the default strategy.
func MostRecent() Strategy {
	return &MostRecentStrategy{
		baseStrategy: baseStrategy{
			name:        "most-recent",
			description: "Keeps the record with the latest created_at; ties keep the first seen",
		},
	}
}

// Prefer implements Strategy.
func (s *MostRecentStrategy) Prefer(kept, candidate accounts.Record) bool {
	return kept.CreatedAt.Before(candidate.CreatedAt)
}

// FirstSeenStrategy never replaces a kept record.
type FirstSeenStrategy struct {
	baseStrategy
}

// FirstSeen returns a strategy that keeps the first record for every key.
func FirstSeen() Strategy {
	return &FirstSeenStrategy{
		baseStrategy: baseStrategy{
			name:        "first-seen",
			description: "Keeps the first record seen for every identity key",
		},
	}
}

// Prefer implements Strategy.
func (s *FirstSeenStrategy) Prefer(_, _ accounts.Record) bool {
	return false
}

// StrategyByName returns the built-in strategy with the given name.
func StrategyByName(name string) (Strategy, bool) {
	switch name {
	case "", "most-recent":
		return MostRecent(), true
	case "first-seen":
		return FirstSeen(), true
	default:
		return nil, false
	}
}
