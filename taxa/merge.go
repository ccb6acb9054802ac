package taxa

import (
	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/pkg/errors"
)

// Merge outer-joins per-sample tables on their key column. The result holds
// the union of all sample columns in argument order and the union of all
// features in first-seen order; a feature absent from a table gets 0 in that
// table's columns. The merged key column is named "Key". Sample-column names
// must be distinct across the inputs.
func Merge(tables []*abundance.Table) (*abundance.Table, error) {
	if len(tables) == 0 {
		return nil, errors.New("taxa.Merge: no tables")
	}
	var (
		samples []string
		offsets = make([]int, len(tables))
		seen    = map[string]bool{}
	)
	for ti, t := range tables {
		offsets[ti] = len(samples)
		for _, s := range t.Samples() {
			if seen[s] {
				return nil, errors.Errorf("taxa.Merge: duplicate sample column %q", s)
			}
			seen[s] = true
			samples = append(samples, s)
		}
	}
	merged := abundance.NewTable("Key", samples)
	row := make([]float64, len(samples))
	for ti, t := range tables {
		for _, id := range t.IDs() {
			for i := range row {
				row[i] = 0
			}
			values, _ := t.Values(id)
			copy(row[offsets[ti]:], values)
			if err := merged.AppendSum(id, row); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}
