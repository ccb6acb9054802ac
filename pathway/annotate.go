// Copyright 2021 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package pathway

import (
	"sort"

	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/metagenome/kegg"
)

// AnnotateOpts controls Annotate.
type AnnotateOpts struct {
	// KeepUnmapped emits features with no pathway mapping as their own
	// single-feature rows after the pathway rows, keyed by the feature ID.
	// By default such features are dropped.
	KeepUnmapped bool
}

// Annotate turns a KO-keyed table into a pathway-keyed one. Each KO
// contributes its full abundance to every pathway it maps to, per-pathway
// contributions are summed, and pathways are emitted in canonical map-ID
// order under their human-readable names. A pathway with no known name
// keeps its canonical map ID as the name. Two pathways resolving to the
// same name are merged into one row.
//
// Annotation never invents abundance: the output row count is at most the
// total pathway fan-out of the input.
func Annotate(t *abundance.Table, m *kegg.Mapping, names *kegg.PathwayNames, opts AnnotateOpts) (*abundance.Table, error) {
	groups := abundance.NewTable("Map", t.Samples())
	var unmapped []string
	for _, id := range t.IDs() {
		values, _ := t.Values(id)
		mapIDs := m.MapIDs(id)
		if len(mapIDs) == 0 {
			if opts.KeepUnmapped {
				unmapped = append(unmapped, id)
			}
			continue
		}
		for _, mapID := range mapIDs {
			if err := groups.AppendSum(mapID, values); err != nil {
				return nil, err
			}
		}
	}

	sorted := append([]string(nil), groups.IDs()...)
	sort.Strings(sorted)

	out := abundance.NewTable("Pathway_Name", t.Samples())
	for _, mapID := range sorted {
		values, _ := groups.Values(mapID)
		name, _ := names.Name(mapID)
		if err := out.AppendSum(name, values); err != nil {
			return nil, err
		}
	}
	for _, id := range unmapped {
		values, _ := t.Values(id)
		if err := out.AppendSum(id, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}
