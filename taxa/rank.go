// Package taxa processes taxonomic-profiler output: reading per-sample
// relative-abundance "bugs lists", outer-joining them into one multi-sample
// table, collapsing clade lineages to a single taxonomic rank, and
// summarizing per-sample alpha diversity.
//
// Clade lineages follow the "k__Bacteria|p__Firmicutes|...|s__..." prefix
// convention, one rank per '|'-separated part.
package taxa

import (
	"github.com/grailbio/metagenome/util"
	"github.com/pkg/errors"
)

// Rank is a taxonomic rank within a clade lineage.
type Rank int

const (
	Kingdom Rank = iota
	Phylum
	Class
	Order
	Family
	Genus
	Species
	// All keeps full lineages at every rank.
	All
)

var rankInfo = []struct {
	name   string
	prefix string
}{
	Kingdom: {"kingdom", "k__"},
	Phylum:  {"phylum", "p__"},
	Class:   {"class", "c__"},
	Order:   {"order", "o__"},
	Family:  {"family", "f__"},
	Genus:   {"genus", "g__"},
	Species: {"species", "s__"},
	All:     {"all", ""},
}

// String returns the name accepted by ParseRank.
func (r Rank) String() string {
	if r < 0 || int(r) >= len(rankInfo) {
		return "invalid"
	}
	return rankInfo[r].name
}

// Prefix returns the lineage prefix of the rank ("g__" for Genus). It is
// empty for All.
func (r Rank) Prefix() string {
	if r < 0 || int(r) >= len(rankInfo) {
		return ""
	}
	return rankInfo[r].prefix
}

// RankNames returns the names accepted by ParseRank, in rank order.
func RankNames() []string {
	names := make([]string, len(rankInfo))
	for i, info := range rankInfo {
		names[i] = info.name
	}
	return names
}

// ParseRank parses a rank name. Unknown names produce an error with a
// nearest-match hint.
func ParseRank(s string) (Rank, error) {
	for r, info := range rankInfo {
		if s == info.name {
			return Rank(r), nil
		}
	}
	return All, errors.Errorf("taxa.ParseRank: unknown rank %q (closest match: %q)",
		s, util.Closest(s, RankNames()))
}
