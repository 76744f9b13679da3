// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"sort"

	"github.com/google/uuid"

	"github.com/morganforge/pillbox/internal/token"
)

// =============================================================================
// CANDIDATES
// =============================================================================

// Candidate is one ranked pick for the mention popup. Token carries
// everything needed to insert it; ID is minted lazily at selection time so
// browsing the popup never burns identifiers.
type Candidate struct {
	Token  token.Token
	Label  string // what the popup row shows
	Detail string // secondary text (path, command context)
	Score  int
}

// Source produces candidates for a query. Candidates may ignore the query
// entirely (the picker fuzzy-filters afterward), but a source can pre-limit
// its output when the full listing is large.
type Source interface {
	// Candidates returns raw candidates for the query.
	Candidates(query string) []Candidate
}

// =============================================================================
// PICKER
// =============================================================================

// Picker aggregates sources, scores candidates against the mention query,
// and returns the top matches.
type Picker struct {
	sources    []Source
	maxResults int
}

// New creates a Picker over the given sources. maxResults caps Query output;
// values below 1 are treated as 1.
func New(maxResults int, sources ...Source) *Picker {
	if maxResults < 1 {
		maxResults = 1
	}
	return &Picker{sources: sources, maxResults: maxResults}
}

// AddSource appends a source.
func (p *Picker) AddSource(s Source) {
	p.sources = append(p.sources, s)
}

// Query returns the ranked candidates for a mention query, highest score
// first, capped at the configured maximum.
func (p *Picker) Query(query string) []Candidate {
	var out []Candidate

	for _, src := range p.sources {
		for _, c := range src.Candidates(query) {
			score, matched := fuzzyMatch(query, c.Label)
			if !matched {
				// Fall back to the detail line; a query like "src/a"
				// should still find a candidate labeled "a.go".
				score, matched = fuzzyMatch(query, c.Detail)
			}
			if !matched {
				continue
			}
			c.Score = score
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > p.maxResults {
		out = out[:p.maxResults]
	}
	return out
}

// Mint finalizes a candidate into an insertable token, assigning a fresh ID.
func Mint(c Candidate) token.Token {
	t := c.Token
	t.ID = uuid.New().String()
	return t
}
