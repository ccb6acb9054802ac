package taxa

import (
	"bufio"
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/pkg/errors"
)

const maxLineBytes = 16 * 1024 * 1024

// SampleName derives a sample name from a bugs-list path: the basename up to
// the first '_' or '.', whichever comes first. "wtA_profile.tsv" -> "wtA".
func SampleName(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexAny(name, "_."); i >= 0 {
		name = name[:i]
	}
	return name
}

// ReadBugsList reads a taxonomic profiler "bugs list": '#' comment lines,
// then a header, then one row per clade with the relative abundance in the
// third column. The result is a single-sample table keyed "clade_name" with
// abundance column "<sample>_abundance".
func ReadBugsList(r io.Reader, sample string) (*abundance.Table, error) {
	t := abundance.NewTable("clade_name", []string{sample + "_abundance"})
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineBytes)
	nLine := 0
	sawHeader := false
	for scanner.Scan() {
		nLine++
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		cols := strings.Split(line, "\t")
		if !sawHeader {
			if len(cols) < 3 {
				return nil, errors.Errorf("taxa.ReadBugsList: line %d: header has %d columns, need >= 3", nLine, len(cols))
			}
			sawHeader = true
			continue
		}
		if len(cols) < 3 {
			return nil, errors.Errorf("taxa.ReadBugsList: line %d: %d columns, need >= 3", nLine, len(cols))
		}
		v, err := strconv.ParseFloat(cols[2], 64)
		if err != nil {
			return nil, errors.Errorf("taxa.ReadBugsList: line %d: abundance %q: %v", nLine, cols[2], err)
		}
		if err := t.Append(cols[0], []float64{v}); err != nil {
			return nil, errors.Wrapf(err, "taxa.ReadBugsList: line %d", nLine)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "taxa.ReadBugsList")
	}
	if !sawHeader {
		return nil, errors.New("taxa.ReadBugsList: empty file")
	}
	return t, nil
}

// ReadBugsListPath reads a bugs list from path, transparently decompressing.
// If sample is empty it is derived from the path with SampleName.
func ReadBugsListPath(ctx context.Context, path, sample string) (t *abundance.Table, err error) {
	if sample == "" {
		sample = SampleName(path)
	}
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	return ReadBugsList(r, sample)
}
