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
	"log"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/metagenome/kegg"
	"v.io/x/lib/cmdline"
)

func newCmdExtract() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "extract",
		Short: "Extract a KO abundance table from a regrouped gene-family table",
		Long: `
Extract reads a gene-family abundance table whose identifiers are stratified
KO gene families ("K00001|g__Escherichia.s__Escherichia_coli"), drops
unclassified strata, sums the strata of each KO, and writes a clean KO
abundance table with one column for the sample.`,
	}
	flags := extractFlags{}
	cmd.Flags.StringVar(&flags.abundance, "abundance", "", "Input gene-family abundance TSV. Required.")
	cmd.Flags.StringVar(&flags.abundance, "input", "", "Alias for --abundance.")
	cmd.Flags.StringVar(&flags.sample, "sample", "", "Sample name used for the abundance column. Defaults to the input file stem.")
	cmd.Flags.StringVar(&flags.output, "output", "", "Output KO abundance TSV. Required.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("extract takes no positional arguments, but got %v", argv)
		}
		return extract(flags)
	})
	return cmd
}

func newCmdFilter() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "filter",
		Short: "Keep the KO rows present in a KO-to-pathway mapping",
	}
	flags := filterFlags{}
	cmd.Flags.StringVar(&flags.abundance, "abundance", "", "Input KO abundance TSV. Required.")
	cmd.Flags.StringVar(&flags.abundance, "input", "", "Alias for --abundance.")
	cmd.Flags.StringVar(&flags.mapping, "mapping", "", "KO-to-pathway mapping TSV with header columns KO and Map. Required.")
	cmd.Flags.StringVar(&flags.category, "category", "", fmt.Sprintf("Restrict the mapping to one pathway category before filtering. One of: %s.", strings.Join(kegg.CategoryNames(), ", ")))
	cmd.Flags.StringVar(&flags.output, "output", "", "Output filtered abundance TSV. Required.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("filter takes no positional arguments, but got %v", argv)
		}
		return filter(flags)
	})
	return cmd
}

func newCmdAnnotate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "annotate",
		Short: "Aggregate KO abundances per pathway, keyed by pathway name",
	}
	flags := annotateFlags{}
	cmd.Flags.StringVar(&flags.abundance, "abundance", "", "Input KO abundance TSV. Required.")
	cmd.Flags.StringVar(&flags.abundance, "input", "", "Alias for --abundance.")
	cmd.Flags.StringVar(&flags.mapping, "mapping", "", "KO-to-pathway mapping TSV with header columns KO and Map. Required.")
	cmd.Flags.StringVar(&flags.names, "names", "", "Pathway name TSV with header columns Map and Pathway_Name, merged over the built-in names.")
	cmd.Flags.BoolVar(&flags.keepUnmapped, "keep-unmapped", false, "Keep KOs with no pathway as their own output rows instead of dropping them.")
	cmd.Flags.StringVar(&flags.output, "output", "", "Output pathway abundance TSV. Required.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("annotate takes no positional arguments, but got %v", argv)
		}
		return annotate(flags)
	})
	return cmd
}

func newCmdRun() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "run",
		Short: "Run extract, filter, and annotate for one sample",
	}
	flags := runFlags{}
	cmd.Flags.StringVar(&flags.abundance, "abundance", "", "Input gene-family abundance TSV. Required.")
	cmd.Flags.StringVar(&flags.abundance, "input", "", "Alias for --abundance.")
	cmd.Flags.StringVar(&flags.mapping, "mapping", "", "KO-to-pathway mapping TSV with header columns KO and Map. Required.")
	cmd.Flags.StringVar(&flags.names, "names", "", "Pathway name TSV with header columns Map and Pathway_Name, merged over the built-in names.")
	cmd.Flags.StringVar(&flags.category, "category", "", fmt.Sprintf("Restrict the mapping to one pathway category. One of: %s.", strings.Join(kegg.CategoryNames(), ", ")))
	cmd.Flags.BoolVar(&flags.keepUnmapped, "keep-unmapped", false, "Keep KOs with no pathway as their own output rows.")
	cmd.Flags.StringVar(&flags.sample, "sample", "", "Sample name. Defaults to the input file stem.")
	cmd.Flags.StringVar(&flags.intermediateDir, "intermediate-dir", "", "If set, write the extracted and filtered tables into a fresh subdirectory of this directory.")
	cmd.Flags.StringVar(&flags.output, "output", "", "Output pathway abundance TSV. Required.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("run takes no positional arguments, but got %v", argv)
		}
		return runPipeline(flags)
	})
	return cmd
}

func newCmdBatch() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "batch",
		Short: "Run the pipeline over every table in a directory",
		Long: `
Batch runs the extract/filter/annotate pipeline over every *.tsv and *.tsv.gz
file in --input-dir, writing <sample>_pathways.tsv files into --output-dir.
Inputs are processed concurrently; a malformed input fails only its own
output, and batch exits non-zero if any input failed.`,
	}
	flags := batchFlags{}
	cmd.Flags.StringVar(&flags.inputDir, "input-dir", "", "Directory of gene-family abundance tables. Required.")
	cmd.Flags.StringVar(&flags.mapping, "mapping", "", "KO-to-pathway mapping TSV with header columns KO and Map. Required.")
	cmd.Flags.StringVar(&flags.names, "names", "", "Pathway name TSV with header columns Map and Pathway_Name, merged over the built-in names.")
	cmd.Flags.StringVar(&flags.category, "category", "", fmt.Sprintf("Restrict the mapping to one pathway category. One of: %s.", strings.Join(kegg.CategoryNames(), ", ")))
	cmd.Flags.BoolVar(&flags.keepUnmapped, "keep-unmapped", false, "Keep KOs with no pathway as their own output rows.")
	cmd.Flags.StringVar(&flags.intermediateDir, "intermediate-dir", "", "If set, write per-stage tables into fresh subdirectories of this directory.")
	cmd.Flags.StringVar(&flags.outputDir, "output-dir", "", "Directory for the per-sample pathway tables. Required.")
	cmd.Flags.IntVar(&flags.parallelism, "parallelism", 0, "Number of inputs processed concurrently. <=0 means the number of CPUs.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("batch takes no positional arguments, but got %v", argv)
		}
		return runBatch(flags)
	})
	return cmd
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "checksum",
		Short: `Compute a checksum of an abundance table.
The checksum is a JSON string of row-order-independent hashes of the header, the identifiers, and the full rows`,
		ArgsName: "path",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("checksum takes one pathname argument, but got %v", argv)
		}
		return checksum(argv[0])
	})
	return cmd
}

func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-pathway",
			Short:    "Tools for pathway-level analysis of functional profiler output",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdExtract(),
				newCmdFilter(),
				newCmdAnnotate(),
				newCmdRun(),
				newCmdBatch(),
				newCmdChecksum(),
			},
		})
}
