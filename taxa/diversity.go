package taxa

import (
	"io"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/metagenome/encoding/abundance"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Diversity summarizes the alpha diversity of one sample.
type Diversity struct {
	// Sample is the abundance-column name.
	Sample string
	// Richness is the number of features with non-zero abundance.
	Richness int
	// Shannon is the entropy (natural log) of the sample's relative-abundance
	// distribution. It is 0 when the sample has no non-zero feature.
	Shannon float64
}

// Diversities computes the per-sample diversity summaries of a table, in
// sample-column order.
func Diversities(t *abundance.Table) []Diversity {
	ids := t.IDs()
	divs := make([]Diversity, len(t.Samples()))
	p := make([]float64, len(ids))
	for si, sample := range t.Samples() {
		d := Diversity{Sample: sample}
		for i, id := range ids {
			values, _ := t.Values(id)
			p[i] = values[si]
			if p[i] > 0 {
				d.Richness++
			}
		}
		if total := floats.Sum(p); total > 0 {
			floats.Scale(1/total, p)
			d.Shannon = stat.Entropy(p)
		}
		divs[si] = d
	}
	return divs
}

// WriteDiversity writes the summaries as a three-column TSV.
func WriteDiversity(w io.Writer, divs []Diversity) error {
	out := tsv.NewWriter(w)
	out.WriteString("Sample")
	out.WriteString("Richness")
	out.WriteString("Shannon")
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, d := range divs {
		out.WriteString(d.Sample)
		out.WriteInt64(int64(d.Richness))
		out.WriteFloat64(d.Shannon, 'f', 6)
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}
