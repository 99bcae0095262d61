// Package reconcile collapses records that share an identity key into a
// single survivor per key.
//
// Example usage:
//
//	result := reconcile.Deduplicate(records)
//	for _, r := range result.Replaced {
//	    fmt.Printf("%s: replaced record from %s\n", r.Key, r.Old.Source)
//	}
//	dataset := result.Records
package reconcile

import "github.com/agentstation/roster/pkg/accounts"

// Replacement records a survivor being displaced by a later record.
type Replacement struct {
	Key accounts.IdentityKey
	Old accounts.Record
	New accounts.Record
}

// Result is the outcome of a deduplication pass.
type Result struct {
	// Records holds one record per identity key, ordered by first appearance of the key.
	Records []accounts.Record

	// Replaced lists every time a kept record was displaced, in input order.
	Replaced []Replacement

	// Duplicates counts input records that shared a key with an earlier one.
	Duplicates int

	// Strategy is the name of the strategy used.
	Strategy string
}

// Deduplicate keeps one record per identity key in a single pass over
// records. The input slice is not modified. Deduplicating the output again
// returns the same records.
func Deduplicate(records []accounts.Record, opts ...Option) *Result {
	o := newOptions().apply(opts...)

	result := &Result{
		Records:  make([]accounts.Record, 0, len(records)),
		Strategy: o.strategy.Name(),
	}
	index := make(map[accounts.IdentityKey]int, len(records))

	for _, candidate := range records {
		key := candidate.Key()
		pos, seen := index[key]
		if !seen {
			index[key] = len(result.Records)
			result.Records = append(result.Records, candidate)
			continue
		}

		result.Duplicates++
		kept := result.Records[pos]
		if !o.strategy.Prefer(kept, candidate) {
			continue
		}

		result.Records[pos] = candidate
		replacement := Replacement{Key: key, Old: kept, New: candidate}
		result.Replaced = append(result.Replaced, replacement)
		if o.onReplace != nil {
			o.onReplace(replacement)
		}
	}

	return result
}
