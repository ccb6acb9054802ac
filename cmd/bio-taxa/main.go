package main

// bio-taxa merges, collapses, and summarizes taxonomic profiler output.
//
// Usage:
//   bio-taxa -merge merged.tsv <input-dir>
//   bio-taxa -collapse genus <merged.tsv> <collapsed.tsv>
//   bio-taxa -diversity <table.tsv> <diversity.tsv>

import (
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/metagenome/taxa"
)

var (
	mergeFlag = flag.String("merge", "",
		"Merge the per-sample bugs lists of a directory into the given table")
	collapseFlag = flag.String("collapse", "",
		"Collapse a merged table to the given taxonomic rank (kingdom, phylum, class, order, family, genus, species, or all)")
	diversityFlag = flag.Bool("diversity", false,
		"Summarize per-sample richness and Shannon entropy of a table")
)

// merge reads every *.tsv bugs list under inputDir, deriving the sample name
// from each file name, and writes their outer join to outPath.
func merge(outPath, inputDir string) {
	ctx := vcontext.Background()
	infos, err := ioutil.ReadDir(inputDir)
	if err != nil {
		log.Panicf("list %v: %v", inputDir, err)
	}
	var tables []*abundance.Table
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".tsv") {
			continue
		}
		path := filepath.Join(inputDir, info.Name())
		t, err := taxa.ReadBugsListPath(ctx, path, "")
		if err != nil {
			log.Panicf("%v: %v", path, err)
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		log.Panicf("no .tsv files found in %v", inputDir)
	}
	log.Printf("merging %d bugs lists", len(tables))
	merged, err := taxa.Merge(tables)
	if err != nil {
		log.Panicf("merge: %v", err)
	}
	if err := merged.WritePath(outPath, abundance.WriteOpts{}); err != nil {
		log.Panicf("write %v: %v", outPath, err)
	}
}

func collapse(rankName, inPath, outPath string) {
	rank, err := taxa.ParseRank(rankName)
	if err != nil {
		log.Panic(err)
	}
	t, err := abundance.ReadPath(inPath, abundance.ReadOpts{KeepComments: true})
	if err != nil {
		log.Panicf("read %v: %v", inPath, err)
	}
	out, err := taxa.Collapse(t, rank)
	if err != nil {
		log.Panicf("collapse %v: %v", inPath, err)
	}
	if out.Len() == 0 {
		log.Printf("%v: no clades at %v rank", inPath, rank)
	}
	if err := out.WritePath(outPath, abundance.WriteOpts{FloatFmt: 'f', FloatPrec: 8}); err != nil {
		log.Panicf("write %v: %v", outPath, err)
	}
	log.Printf("collapsed %d clades to %d taxa at %v rank", t.Len(), out.Len(), rank)
}

func diversity(inPath, outPath string) {
	t, err := abundance.ReadPath(inPath, abundance.ReadOpts{})
	if err != nil {
		log.Panicf("read %v: %v", inPath, err)
	}
	ctx := vcontext.Background()
	out, err := file.Create(ctx, outPath)
	if err != nil {
		log.Panicf("create %v: %v", outPath, err)
	}
	if err := taxa.WriteDiversity(out.Writer(ctx), taxa.Diversities(t)); err != nil {
		log.Panicf("write %v: %v", outPath, err)
	}
	if err := out.Close(ctx); err != nil {
		log.Panicf("close %v: %v", outPath, err)
	}
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage:
This command post-processes taxonomic profiler output tables. It is invoked
one of the following three ways.

1. bio-taxa -merge <merged.tsv> <input-dir>

   The command reads every *.tsv bugs list in input-dir, derives a sample
   name from the first '_'-separated token of each file name, and outer-joins
   the per-sample relative abundances into merged.tsv (missing clades are 0).

2. bio-taxa -collapse <rank> <merged.tsv> <collapsed.tsv>

   The command sums the rows of merged.tsv by the taxon at the given rank,
   dropping unnamed GGB genome bins. Rank 'all' keeps full lineages.

3. bio-taxa -diversity <table.tsv> <diversity.tsv>

   The command writes the per-sample richness and Shannon entropy of the
   table's abundance columns.
`)
		flag.PrintDefaults()
	}
	shutdown := grail.Init()
	defer shutdown()

	args := flag.Args()
	if *mergeFlag != "" {
		if len(args) != 1 {
			flag.Usage()
			os.Exit(1)
		}
		merge(*mergeFlag, args[0])
	} else if *collapseFlag != "" {
		if len(args) != 2 {
			flag.Usage()
			os.Exit(1)
		}
		collapse(*collapseFlag, args[0], args[1])
	} else if *diversityFlag {
		if len(args) != 2 {
			flag.Usage()
			os.Exit(1)
		}
		diversity(args[0], args[1])
	} else {
		flag.Usage()
		os.Exit(1)
	}
}
