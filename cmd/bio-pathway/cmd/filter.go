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
package cmd

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/metagenome/kegg"
	"github.com/grailbio/metagenome/pathway"
)

type filterFlags struct {
	abundance string
	mapping   string
	category  string
	output    string
}

func filter(flags filterFlags) error {
	if flags.abundance == "" || flags.mapping == "" || flags.output == "" {
		return fmt.Errorf("filter: --abundance, --mapping, and --output are required")
	}
	mapping, err := kegg.ReadMappingPath(flags.mapping)
	if err != nil {
		return err
	}
	if flags.category != "" {
		c, err := kegg.ParseCategory(flags.category)
		if err != nil {
			return err
		}
		mapping = mapping.Restrict(c)
	}
	t, err := abundance.ReadPath(flags.abundance, abundance.ReadOpts{})
	if err != nil {
		return err
	}
	out, err := pathway.Filter(t, mapping)
	if err != nil {
		return err
	}
	if out.Len() == 0 {
		log.Printf("%s: no overlap between table KOs and the mapping", flags.abundance)
	}
	return out.WritePath(flags.output, abundance.WriteOpts{})
}
