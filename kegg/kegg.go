// Package kegg handles KEGG Orthology (KO) identifiers and KEGG pathway
// metadata: splitting taxon-stratified gene-family IDs, KO-to-pathway lookup
// tables, pathway categories, and pathway naming.
//
// Functional profilers emit gene-family abundance rows keyed either by a
// bare KO ("K00001") or by a taxon-stratified form
// ("K00001|g__Escherichia.s__Escherichia_coli").  KEGG pathway map IDs are
// written "map00624"; prefix variants such as "ko00624" are accepted as
// synonyms everywhere.
package kegg

import (
	"regexp"
)

var geneFamilyRE = regexp.MustCompile(`^(K\d{5})\|(.*)$`)

// SplitGeneFamily splits a taxon-stratified gene-family ID such as
// "K00003|g__Escherichia.s__Escherichia_coli" into its KO and taxon parts.
// ok is false when id is not of that form; note that a bare KO without a
// taxon part does not match.
func SplitGeneFamily(id string) (ko, taxon string, ok bool) {
	groups := geneFamilyRE.FindStringSubmatch(id)
	if groups == nil {
		return "", "", false
	}
	return groups[1], groups[2], true
}
