package abundance

import (
	"encoding/binary"
	"hash"
	"math"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/unsafe"
)

// Checksum summarizes a table independently of row order. Per-row hashes are
// keyed by the feature ID and summed, so two tables that differ only in row
// order produce equal checksums, while any change to an ID or a value shows
// up in at least one field.
type Checksum struct {
	// NRows is the number of feature rows.
	NRows int
	// NSamples is the number of sample columns.
	NSamples int
	// Header is the hash of the header row, in column order.
	Header uint64
	// SumIDs is the sum of the per-feature ID hashes.
	SumIDs uint64
	// SumRows is the sum of the per-row hashes (ID plus values).
	SumRows uint64
}

func hashRow(h hash.Hash64, id string, values []float64) uint64 {
	h.Reset()
	h.Write(unsafe.StringToBytes(id))
	buf := [8]byte{}
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Checksum computes the table's checksum.
func (t *Table) Checksum() Checksum {
	h := seahash.New()
	c := Checksum{NRows: len(t.ids), NSamples: len(t.samples)}
	h.Reset()
	h.Write(unsafe.StringToBytes(t.keyName))
	for _, s := range t.samples {
		h.Write([]byte{'\t'})
		h.Write(unsafe.StringToBytes(s))
	}
	c.Header = h.Sum64()
	for _, id := range t.ids {
		c.SumIDs += hashRow(h, id, nil)
		c.SumRows += hashRow(h, id, t.rows[id])
	}
	return c
}
