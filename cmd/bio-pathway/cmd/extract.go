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

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/metagenome/pathway"
)

type extractFlags struct {
	abundance string
	sample    string
	output    string
}

func extract(flags extractFlags) error {
	if flags.abundance == "" || flags.output == "" {
		return fmt.Errorf("extract: --abundance and --output are required")
	}
	t, err := pathway.ExtractPath(vcontext.Background(), flags.abundance, flags.sample)
	if err != nil {
		return err
	}
	return t.WritePath(flags.output, abundance.WriteOpts{})
}
