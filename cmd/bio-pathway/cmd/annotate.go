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

	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/metagenome/kegg"
	"github.com/grailbio/metagenome/pathway"
)

type annotateFlags struct {
	abundance    string
	mapping      string
	names        string
	keepUnmapped bool
	output       string
}

func annotate(flags annotateFlags) error {
	if flags.abundance == "" || flags.mapping == "" || flags.output == "" {
		return fmt.Errorf("annotate: --abundance, --mapping, and --output are required")
	}
	mapping, err := kegg.ReadMappingPath(flags.mapping)
	if err != nil {
		return err
	}
	names := kegg.NewPathwayNames()
	if flags.names != "" {
		if err := names.ReadNamesPath(flags.names); err != nil {
			return err
		}
	}
	t, err := abundance.ReadPath(flags.abundance, abundance.ReadOpts{})
	if err != nil {
		return err
	}
	out, err := pathway.Annotate(t, mapping, names, pathway.AnnotateOpts{KeepUnmapped: flags.keepUnmapped})
	if err != nil {
		return err
	}
	return out.WritePath(flags.output, abundance.WriteOpts{})
}
