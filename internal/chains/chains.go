// Package chains holds the chain-name to chain-id table used for cross-field
// consistency checks and for registry folder discovery. The table is the single
// source of truth for both concerns.
package chains

import (
	"slices"
)

// Table maps a chain folder name to its numeric chain id.
type Table map[string]int64

// Builtin returns the default chain table shipped with the validator.
func Builtin() Table {
	return Table{
		"ethereum":  1,
		"classic":   61,
		"base":      8453,
		"optimism":  10,
		"arbitrum":  42161,
		"polygon":   137,
		"bsc":       56,
		"avalanche": 43114,
	}
}

// ID returns the chain id for name, and whether the chain is known.
func (t Table) ID(name string) (int64, bool) {
	id, ok := t[name]
	return id, ok
}

// Names returns all chain names in the table, sorted for deterministic
// iteration order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Entry is one chain table row, in a shape suitable for rendered output.
type Entry struct {
	Name string `json:"name" yaml:"name"`
	ID   int64  `json:"id"   yaml:"id"`
}

// Entries returns the table rows sorted by chain name.
func (t Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t))
	for _, name := range t.Names() {
		entries = append(entries, Entry{Name: name, ID: t[name]})
	}

	return entries
}
