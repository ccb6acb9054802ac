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
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/metagenome/kegg"
	"github.com/pkg/errors"
)

const maxLineBytes = 64 * 1024 * 1024 // 64 MB

// ErrNoKORows reports that a raw gene-family table contained no usable
// taxon-stratified KO rows. Use errors.Cause to test for it.
var ErrNoKORows = errors.New("no stratified KO gene-family rows found")

// Extract parses a raw regrouped gene-family table: headerless TSV rows of
// "<gene family>\t<abundance>", where KO rows carry a taxon-stratified ID
// such as "K00003|g__Escherichia.s__Escherichia_coli". Exactly those rows
// are kept; community totals ("K00003" alone), non-KO features such as
// UNMAPPED, rows whose taxon mentions "unclassified", and rows whose value
// does not parse are all dropped. Stratified rows of one KO are summed, so
// the result keeps the one-row-per-feature invariant.
//
// The result is a one-sample table keyed "KO". A table with zero KO rows
// yields ErrNoKORows.
func Extract(r io.Reader, sample string) (*abundance.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineBytes)
	t := abundance.NewTable("KO", []string{sample})
	var nRows, nUnclassified, nBad int
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		nRows++
		cols := strings.SplitN(line, "\t", 3)
		if len(cols) < 2 {
			continue
		}
		ko, taxon, ok := kegg.SplitGeneFamily(cols[0])
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(taxon), "unclassified") {
			nUnclassified++
			continue
		}
		v, err := strconv.ParseFloat(cols[1], 64)
		if err != nil {
			nBad++
			continue
		}
		if err := t.AppendSum(ko, []float64{v}); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "pathway.Extract")
	}
	if t.Len() == 0 {
		return nil, errors.Wrapf(ErrNoKORows, "pathway.Extract: sample %s (%d input rows)", sample, nRows)
	}
	log.Debug.Printf("extract %s: %d input rows, %d KOs kept, %d unclassified dropped, %d unparsable dropped",
		sample, nRows, t.Len(), nUnclassified, nBad)
	return t, nil
}

// ExtractPath reads the raw gene-family table at the given path,
// decompressing by extension. An empty sample name derives one from the
// path.
func ExtractPath(ctx context.Context, path, sample string) (t *abundance.Table, err error) {
	if sample == "" {
		sample = SampleName(path)
	}
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := io.Reader(in.Reader(ctx))
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	return Extract(r, sample)
}
