// Package abundance contains code for reading and writing feature abundance
// tables.  An abundance table is a TSV file with one header row; the first
// column holds a feature identifier (KO ID, pathway name, clade lineage, ...)
// and every remaining column holds one numeric value per sample.  For
// example:
//
// KO	sampleA_abundance	sampleB_abundance
// K00001	10.5	0
// K00929	3	12.25
//
// Lines starting with '#' are comments.  Feature identifiers are unique
// within a table; readers reject duplicates, and aggregating writers must sum
// duplicates before appending.  Row order is preserved through a
// read-transform-write cycle.
package abundance

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const (
	maxLineBytes = 64 * 1024 * 1024 // 64 MB
)

// Table holds one abundance table in memory.
type Table struct {
	keyName  string
	samples  []string
	ids      []string
	rows     map[string][]float64
	comments []string
}

// NewTable creates an empty table with the given key-column name and sample
// names.
func NewTable(keyName string, samples []string) *Table {
	return &Table{
		keyName: keyName,
		samples: samples,
		rows:    make(map[string][]float64),
	}
}

// KeyName returns the name of the key (first) column.
func (t *Table) KeyName() string { return t.keyName }

// SetKeyName renames the key column. The rows are unaffected.
func (t *Table) SetKeyName(name string) { t.keyName = name }

// Samples returns the sample-column names, in file order.
func (t *Table) Samples() []string { return t.samples }

// IDs returns the feature identifiers, in file order.
func (t *Table) IDs() []string { return t.ids }

// Len returns the number of feature rows.
func (t *Table) Len() int { return len(t.ids) }

// Values returns the row for the given feature. The slice is shared with the
// table, not a copy.
func (t *Table) Values(id string) ([]float64, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// Comments returns the leading '#' lines preserved by ReadOpts.KeepComments.
func (t *Table) Comments() []string { return t.comments }

// SetComments replaces the comment lines emitted before the header on write.
func (t *Table) SetComments(lines []string) { t.comments = lines }

// Append adds a new feature row. The feature must not already be present and
// values must have one entry per sample.
func (t *Table) Append(id string, values []float64) error {
	if _, found := t.rows[id]; found {
		return errors.Errorf("abundance: duplicate feature %q", id)
	}
	if len(values) != len(t.samples) {
		return errors.Errorf("abundance: feature %q has %d values, table has %d samples",
			id, len(values), len(t.samples))
	}
	t.ids = append(t.ids, id)
	t.rows[id] = values
	return nil
}

// AppendSum adds values to the feature's row element-wise, creating the row
// if the feature is new. Unlike Append it accepts repeated features, so
// aggregating callers can feed it duplicates directly.
func (t *Table) AppendSum(id string, values []float64) error {
	if len(values) != len(t.samples) {
		return errors.Errorf("abundance: feature %q has %d values, table has %d samples",
			id, len(values), len(t.samples))
	}
	row, found := t.rows[id]
	if !found {
		row = make([]float64, len(t.samples))
		t.ids = append(t.ids, id)
		t.rows[id] = row
	}
	for i, v := range values {
		row[i] += v
	}
	return nil
}

// SampleSums returns the column totals, one per sample.
func (t *Table) SampleSums() []float64 {
	sums := make([]float64, len(t.samples))
	for _, id := range t.ids {
		for i, v := range t.rows[id] {
			sums[i] += v
		}
	}
	return sums
}

// ReadOpts controls table parsing.
type ReadOpts struct {
	// KeepComments preserves leading '#' lines so that Write re-emits them.
	// Comment lines below the header are always dropped.
	KeepComments bool
}

// Read parses a TSV abundance table. The first non-comment line is the
// header; every following line must have the same number of columns, with
// all non-key columns parsing as float64. Blank lines are skipped.
func Read(r io.Reader, opts ReadOpts) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineBytes)
	var (
		t        *Table
		nCol     int
		lineNum  int
		comments []string
	)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '#' {
			if t == nil && opts.KeepComments {
				comments = append(comments, line)
			}
			continue
		}
		cols := strings.Split(line, "\t")
		if t == nil { // Header row.
			if len(cols) < 2 {
				return nil, errors.Errorf("abundance.Read: line %d: header has %d columns, need at least 2",
					lineNum, len(cols))
			}
			t = NewTable(cols[0], cols[1:])
			t.comments = comments
			nCol = len(cols)
			continue
		}
		if len(cols) != nCol {
			return nil, errors.Errorf("abundance.Read: line %d: found %d columns, expected %d",
				lineNum, len(cols), nCol)
		}
		values := make([]float64, nCol-1)
		for i, col := range cols[1:] {
			v, err := strconv.ParseFloat(col, 64)
			if err != nil {
				return nil, errors.Errorf("abundance.Read: line %d, column %s: unparsable value %q",
					lineNum, t.samples[i], col)
			}
			values[i] = v
		}
		if err := t.Append(cols[0], values); err != nil {
			return nil, errors.Wrapf(err, "abundance.Read: line %d", lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "abundance.Read")
	}
	if t == nil {
		return nil, errors.New("abundance.Read: no header row found")
	}
	return t, nil
}

// ReadPath reads the abundance table at the given path. Compressed files are
// transparently decompressed based on the path extension (.gz, .zst, .bz2).
func ReadPath(path string, opts ReadOpts) (t *Table, err error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := io.Reader(in.Reader(ctx))
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	return Read(r, opts)
}

// WriteOpts controls table formatting.
type WriteOpts struct {
	// FloatFmt and FloatPrec are the strconv format and precision for
	// abundance values. If FloatFmt is zero, values are written as 'g' with
	// the smallest round-trippable number of digits.
	FloatFmt  byte
	FloatPrec int
}

// Write emits the table as TSV: comments (if any), header, then one row per
// feature in table order.
func (t *Table) Write(w io.Writer, opts WriteOpts) error {
	format, prec := opts.FloatFmt, opts.FloatPrec
	if format == 0 {
		format, prec = 'g', -1
	}
	out := tsv.NewWriter(w)
	for _, c := range t.comments {
		out.WriteString(c)
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	out.WriteString(t.keyName)
	for _, s := range t.samples {
		out.WriteString(s)
	}
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, id := range t.ids {
		out.WriteString(id)
		for _, v := range t.rows[id] {
			out.WriteFloat64(v, format, prec)
		}
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}

// WritePath writes the table to the given path, gzip-compressing when the
// path ends in .gz.
func (t *Table) WritePath(path string, opts WriteOpts) (err error) {
	ctx := vcontext.Background()
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	if fileio.DetermineType(path) == fileio.Gzip {
		gz := gzip.NewWriter(out.Writer(ctx))
		if err = t.Write(gz, opts); err != nil {
			return err
		}
		return gz.Close()
	}
	return t.Write(out.Writer(ctx), opts)
}
