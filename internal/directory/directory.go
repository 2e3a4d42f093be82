// Package directory serves curated leader lists for well-known companies.
// The data is immutable reference material, injected at construction so tests
// can substitute fixtures.
package directory

import (
	"strings"

	"github.com/leadprep/leadprep/internal/leadprep"
)

// Directory maps canonical domains to curated leader lists.
type Directory struct {
	entries map[string][]leadprep.Leader
}

// New builds a Directory from the given entries. The map is copied so callers
// cannot mutate the directory afterwards.
func New(entries map[string][]leadprep.Leader) *Directory {
	cp := make(map[string][]leadprep.Leader, len(entries))
	for domain, leaders := range entries {
		cp[strings.ToLower(domain)] = append([]leadprep.Leader(nil), leaders...)
	}
	return &Directory{entries: cp}
}

// Lookup returns the curated leaders for a domain, or an empty slice when the
// domain is unknown. It never fails.
func (d *Directory) Lookup(domain string) []leadprep.Leader {
	leaders, ok := d.entries[strings.ToLower(domain)]
	if !ok {
		return nil
	}
	return append([]leadprep.Leader(nil), leaders...)
}

// Seed returns the built-in directory of well-known companies.
func Seed() map[string][]leadprep.Leader {
	return map[string][]leadprep.Leader{
		"apple.com": {
			{Name: "Tim Cook", Title: "CEO"},
			{Name: "Jeff Williams", Title: "COO"},
			{Name: "Luca Maestri", Title: "CFO"},
			{Name: "Craig Federighi", Title: "SVP of Software Engineering"},
			{Name: "Eddy Cue", Title: "SVP of Services"},
		},
		"microsoft.com": {
			{Name: "Satya Nadella", Title: "CEO"},
			{Name: "Brad Smith", Title: "President"},
			{Name: "Amy Hood", Title: "CFO"},
			{Name: "Judson Althoff", Title: "EVP of Worldwide Commercial Business"},
			{Name: "Scott Guthrie", Title: "EVP of Cloud and AI"},
		},
		"google.com": {
			{Name: "Sundar Pichai", Title: "CEO"},
			{Name: "Ruth Porat", Title: "CFO"},
			{Name: "Kent Walker", Title: "President of Global Affairs"},
			{Name: "Philipp Schindler", Title: "SVP and Chief Business Officer"},
			{Name: "Prabhakar Raghavan", Title: "SVP of Search"},
		},
		"amazon.com": {
			{Name: "Andy Jassy", Title: "CEO"},
			{Name: "Brian Olsavsky", Title: "CFO"},
			{Name: "David Zapolsky", Title: "SVP of Global Public Policy"},
			{Name: "Beth Galetti", Title: "SVP of Human Resources"},
		},
		"meta.com": {
			{Name: "Mark Zuckerberg", Title: "CEO"},
			{Name: "Sheryl Sandberg", Title: "COO"},
			{Name: "David Wehner", Title: "CFO"},
			{Name: "Mike Schroepfer", Title: "CTO"},
		},
	}
}
