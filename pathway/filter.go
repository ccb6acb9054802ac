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
	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/metagenome/kegg"
)

// Filter returns the rows of t whose feature ID is in the mapping key set.
// Schema, row order, and values are preserved. Rows absent from the mapping
// are dropped silently, and an empty result is not an error: an empty
// mapping simply yields an empty table.
func Filter(t *abundance.Table, m *kegg.Mapping) (*abundance.Table, error) {
	out := abundance.NewTable(t.KeyName(), t.Samples())
	for _, id := range t.IDs() {
		if !m.Contains(id) {
			continue
		}
		values, _ := t.Values(id)
		if err := out.Append(id, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}
