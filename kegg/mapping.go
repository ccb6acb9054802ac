package kegg

import (
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
)

// Mapping maps each KO to the KEGG pathway maps it belongs to. A KO may
// appear with no pathways at all; it is then part of the key set (Contains
// returns true) but contributes nothing to pathway aggregation.
type Mapping struct {
	maps map[string][]string
	kos  []string // keys of maps, in file order.
}

// Contains reports whether ko is in the mapping key set.
func (m *Mapping) Contains(ko string) bool {
	_, found := m.maps[ko]
	return found
}

// MapIDs returns the canonical pathway map IDs for ko, in file order.
func (m *Mapping) MapIDs(ko string) []string { return m.maps[ko] }

// KOs returns all KOs in file order.
func (m *Mapping) KOs() []string { return m.kos }

// Len returns the number of KOs.
func (m *Mapping) Len() int { return len(m.kos) }

func (m *Mapping) add(ko string, mapIDs []string) {
	existing, found := m.maps[ko]
	if !found {
		m.kos = append(m.kos, ko)
	}
addLoop:
	for _, id := range mapIDs {
		for _, have := range existing {
			if have == id {
				continue addLoop
			}
		}
		existing = append(existing, id)
	}
	m.maps[ko] = existing
}

// Restrict returns a mapping whose pathways are limited to the given
// category's built-in set. KOs left with no pathway are removed from the key
// set. CategoryNone returns the receiver unchanged.
func (m *Mapping) Restrict(c Category) *Mapping {
	allowed := c.MapIDs()
	if allowed == nil {
		return m
	}
	out := &Mapping{maps: make(map[string][]string)}
	for _, ko := range m.kos {
		var kept []string
		for _, id := range m.maps[ko] {
			if allowed[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) > 0 {
			out.add(ko, kept)
		}
	}
	return out
}

type mappingRow struct {
	KO  string `tsv:"KO"`
	Map string `tsv:"Map"`
}

// ReadMapping parses a KO-to-pathway table: a TSV with header columns "KO"
// and "Map" (other columns are ignored, '#' lines are comments). The Map
// cell holds zero or more comma-separated pathway map IDs, canonicalized on
// load. Repeated rows for one KO union their pathways.
func ReadMapping(r io.Reader) (*Mapping, error) {
	in := tsv.NewReader(r)
	in.HasHeaderRow = true
	in.UseHeaderNames = true
	in.Comment = '#'
	in.LazyQuotes = true
	m := &Mapping{maps: make(map[string][]string)}
	for {
		var row mappingRow
		if err := in.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "kegg.ReadMapping")
		}
		ko := strings.TrimSpace(row.KO)
		if ko == "" {
			continue
		}
		var ids []string
		for _, id := range strings.Split(row.Map, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, CanonicalMapID(id))
			}
		}
		m.add(ko, ids)
	}
	return m, nil
}

// ReadMappingPath reads the KO-to-pathway table at the given path,
// decompressing by extension.
func ReadMappingPath(path string) (m *Mapping, err error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := io.Reader(in.Reader(ctx))
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	return ReadMapping(r)
}
