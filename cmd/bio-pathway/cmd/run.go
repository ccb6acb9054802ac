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
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/metagenome/kegg"
	"github.com/grailbio/metagenome/pathway"
)

type runFlags struct {
	abundance       string
	mapping         string
	names           string
	category        string
	keepUnmapped    bool
	sample          string
	intermediateDir string
	output          string
}

// pipelineOpts builds the pathway.Opts shared by run and batch.
func pipelineOpts(mapping, names, category string, keepUnmapped bool, intermediateDir string) (pathway.Opts, error) {
	opts := pathway.Opts{
		MappingPath:     mapping,
		NamesPath:       names,
		KeepUnmapped:    keepUnmapped,
		IntermediateDir: intermediateDir,
	}
	if category != "" {
		c, err := kegg.ParseCategory(category)
		if err != nil {
			return pathway.Opts{}, err
		}
		opts.Category = c
	}
	return opts, nil
}

func runPipeline(flags runFlags) error {
	if flags.abundance == "" || flags.mapping == "" || flags.output == "" {
		return fmt.Errorf("run: --abundance, --mapping, and --output are required")
	}
	opts, err := pipelineOpts(flags.mapping, flags.names, flags.category, flags.keepUnmapped, flags.intermediateDir)
	if err != nil {
		return err
	}
	opts.Sample = flags.sample
	return pathway.Run(vcontext.Background(), flags.abundance, flags.output, opts)
}

type batchFlags struct {
	inputDir        string
	mapping         string
	names           string
	category        string
	keepUnmapped    bool
	intermediateDir string
	outputDir       string
	parallelism     int
}

func runBatch(flags batchFlags) error {
	if flags.inputDir == "" || flags.mapping == "" || flags.outputDir == "" {
		return fmt.Errorf("batch: --input-dir, --mapping, and --output-dir are required")
	}
	opts, err := pipelineOpts(flags.mapping, flags.names, flags.category, flags.keepUnmapped, flags.intermediateDir)
	if err != nil {
		return err
	}
	opts.Parallelism = flags.parallelism
	infos, err := ioutil.ReadDir(flags.inputDir)
	if err != nil {
		return err
	}
	var inputs []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := info.Name()
		if strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".tsv.gz") {
			inputs = append(inputs, filepath.Join(flags.inputDir, name))
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("batch: no .tsv files found in %s", flags.inputDir)
	}
	results, err := pathway.RunBatch(vcontext.Background(), inputs, flags.outputDir, opts)
	if err != nil {
		return err
	}
	nFail := 0
	for _, r := range results {
		if r.Err != nil {
			nFail++
		}
	}
	if nFail > 0 {
		// Per-input errors were already logged by RunBatch.
		return fmt.Errorf("batch: %d of %d inputs failed", nFail, len(results))
	}
	log.Printf("batch: processed %d inputs", len(results))
	return nil
}
