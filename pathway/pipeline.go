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

// Package pathway post-processes functional-profiler output into
// pathway-level abundance tables. The pipeline has three stages:
//
//   extract:  parse a raw regrouped gene-family table into a clean KO
//             abundance table.
//   filter:   keep the KOs present in a KO-to-pathway mapping, optionally
//             restricted to one pathway category.
//   annotate: aggregate KO abundances per pathway and key the result by
//             human-readable pathway names.
//
// Run executes the stages for one sample; RunBatch fans out over many
// sample files, isolating per-file failures. Upstream normalization and
// gene-family regrouping are external tools; this package only consumes
// their TSV output.
package pathway

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/metagenome/kegg"
	"github.com/pkg/errors"
)

// Opts configures Run and RunBatch.
type Opts struct {
	// MappingPath is the KO-to-pathway TSV, with header columns "KO" and
	// "Map". Required.
	MappingPath string
	// NamesPath optionally merges pathway names over the built-in table,
	// with header columns "Map" and "Pathway_Name".
	NamesPath string
	// Category restricts the mapping to one pathway category before
	// filtering.
	Category kegg.Category
	// KeepUnmapped keeps filtered features with no pathway as their own
	// output rows instead of dropping them.
	KeepUnmapped bool
	// Sample overrides the sample name derived from the input path. Ignored
	// by RunBatch.
	Sample string
	// IntermediateDir, if nonempty, receives the extracted and filtered
	// tables of every run in a fresh per-run subdirectory, for debugging.
	IntermediateDir string
	// Parallelism bounds the number of concurrently processed inputs in
	// RunBatch. <=0 means runtime.NumCPU().
	Parallelism int
}

// SampleName derives a sample name from an input path: the base name with
// everything from the first '.' on removed, so "wtA_kofamilies.tsv.gz"
// becomes "wtA_kofamilies".
func SampleName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

// Run executes extract, filter, and annotate for one input table and writes
// the annotated result to outPath.
func Run(ctx context.Context, inPath, outPath string, opts Opts) error {
	mapping, names, err := loadReference(opts)
	if err != nil {
		return err
	}
	return runOne(ctx, inPath, outPath, mapping, names, opts)
}

// loadReference loads the mapping and name tables shared by every run of an
// invocation.
func loadReference(opts Opts) (*kegg.Mapping, *kegg.PathwayNames, error) {
	if opts.MappingPath == "" {
		return nil, nil, errors.New("pathway: missing mapping path")
	}
	mapping, err := kegg.ReadMappingPath(opts.MappingPath)
	if err != nil {
		return nil, nil, err
	}
	mapping = mapping.Restrict(opts.Category)
	names := kegg.NewPathwayNames()
	if opts.NamesPath != "" {
		if err := names.ReadNamesPath(opts.NamesPath); err != nil {
			return nil, nil, err
		}
	}
	return mapping, names, nil
}

func runOne(ctx context.Context, inPath, outPath string, mapping *kegg.Mapping, names *kegg.PathwayNames, opts Opts) error {
	sample := opts.Sample
	if sample == "" {
		sample = SampleName(inPath)
	}
	extracted, err := ExtractPath(ctx, inPath, sample)
	if err != nil {
		return err
	}
	filtered, err := Filter(extracted, mapping)
	if err != nil {
		return err
	}
	if filtered.Len() == 0 {
		log.Printf("%s: no overlap between sample KOs and the mapping", inPath)
	}
	if opts.IntermediateDir != "" {
		if err := dumpIntermediates(opts.IntermediateDir, sample, extracted, filtered); err != nil {
			return err
		}
	}
	annotated, err := Annotate(filtered, mapping, names, AnnotateOpts{KeepUnmapped: opts.KeepUnmapped})
	if err != nil {
		return err
	}
	return annotated.WritePath(outPath, abundance.WriteOpts{})
}

// dumpIntermediates writes the per-stage tables into a fresh directory under
// dir. The directory name embeds the sample name; a fresh directory per run
// keeps concurrent runs from colliding.
func dumpIntermediates(dir, sample string, extracted, filtered *abundance.Table) error {
	tmpDir, err := ioutil.TempDir(dir, sample+"-")
	if err != nil {
		return err
	}
	if err := extracted.WritePath(filepath.Join(tmpDir, "extracted.tsv"), abundance.WriteOpts{}); err != nil {
		return err
	}
	return filtered.WritePath(filepath.Join(tmpDir, "filtered.tsv"), abundance.WriteOpts{})
}
