package taxa

import (
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/metagenome/encoding/abundance"
)

// taxonAtRank extracts the taxon name at the given rank from a clade
// lineage. A '|'-separated lineage matches if any part carries the rank
// prefix; a plain name matches only if the whole clade is at that rank.
func taxonAtRank(clade string, rank Rank) (string, bool) {
	prefix := rank.Prefix()
	if strings.IndexByte(clade, '|') >= 0 {
		for _, part := range strings.Split(clade, "|") {
			if strings.HasPrefix(part, prefix) {
				return part[len(prefix):], true
			}
		}
		return "", false
	}
	if !strings.HasPrefix(clade, prefix) {
		return "", false
	}
	return clade[len(prefix):], true
}

// Collapse sums the rows of a merged bugs table by the taxon at the given
// rank. Clades containing "GGB" (unnamed genome bins) are dropped, as are
// clades with no part at the rank. All keeps every clade unchanged. The
// result is keyed "Key", rows in first-seen order, comments carried over.
func Collapse(t *abundance.Table, rank Rank) (*abundance.Table, error) {
	out := abundance.NewTable("Key", t.Samples())
	out.SetComments(t.Comments())
	nGGB := 0
	for _, id := range t.IDs() {
		if strings.Contains(id, "GGB") {
			nGGB++
			continue
		}
		key := id
		if rank != All {
			taxon, ok := taxonAtRank(id, rank)
			if !ok {
				continue
			}
			key = taxon
		}
		values, _ := t.Values(id)
		if err := out.AppendSum(key, values); err != nil {
			return nil, err
		}
	}
	if nGGB > 0 {
		log.Debug.Printf("collapse: dropped %d GGB clades", nGGB)
	}
	return out, nil
}
