package abundance_test

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
)

const testTable = `# HUMAnN v3.0.1
KO	wtA_abundance	wtB_abundance
K00001	10.5	0
K00929	3	12.25
K01440	0.125	7
`

func TestRead(t *testing.T) {
	tab, err := abundance.Read(strings.NewReader(testTable), abundance.ReadOpts{})
	assert.NoError(t, err)
	if got, want := tab.KeyName(), "KO"; got != want {
		t.Errorf("key name: got %s, want %s", got, want)
	}
	if got, want := tab.Samples(), []string{"wtA_abundance", "wtB_abundance"}; !reflect.DeepEqual(got, want) {
		t.Errorf("samples: got %v, want %v", got, want)
	}
	if got, want := tab.IDs(), []string{"K00001", "K00929", "K01440"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids: got %v, want %v", got, want)
	}
	values, ok := tab.Values("K00929")
	if !ok {
		t.Fatal("K00929 not found")
	}
	if want := []float64{3, 12.25}; !reflect.DeepEqual(values, want) {
		t.Errorf("values: got %v, want %v", values, want)
	}
	if _, ok := tab.Values("K99999"); ok {
		t.Error("unexpected feature K99999")
	}
	if len(tab.Comments()) != 0 {
		t.Errorf("comments kept without KeepComments: %v", tab.Comments())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		re    string
	}{
		{"empty", "", "no header row"},
		{"commentsOnly", "# a\n# b\n", "no header row"},
		{"narrowHeader", "KO\nK00001\n", "header has 1 columns"},
		{"raggedRow", "KO\ts1\nK00001\t1\t2\n", "line 2: found 3 columns, expected 2"},
		{"badValue", "KO\ts1\nK00001\tabc\n", `column s1: unparsable value "abc"`},
		{"duplicate", "KO\ts1\nK00001\t1\nK00001\t2\n", `duplicate feature "K00001"`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := abundance.Read(strings.NewReader(test.input), abundance.ReadOpts{})
			assert.Regexp(t, err, test.re)
		})
	}
}

func TestReadHeaderOnly(t *testing.T) {
	// A header with no data rows is a valid empty table.
	tab, err := abundance.Read(strings.NewReader("KO\ts1\n"), abundance.ReadOpts{})
	assert.NoError(t, err)
	if tab.Len() != 0 {
		t.Errorf("got %d rows, want 0", tab.Len())
	}
}

func TestComments(t *testing.T) {
	input := "# first\n# second\nKO\ts1\n# below header\nK00001\t1\n"
	tab, err := abundance.Read(strings.NewReader(input), abundance.ReadOpts{KeepComments: true})
	assert.NoError(t, err)
	if got, want := tab.Comments(), []string{"# first", "# second"}; !reflect.DeepEqual(got, want) {
		t.Errorf("comments: got %v, want %v", got, want)
	}
	if got, want := tab.IDs(), []string{"K00001"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids: got %v, want %v", got, want)
	}
	out := bytes.Buffer{}
	assert.NoError(t, tab.Write(&out, abundance.WriteOpts{}))
	assert.EQ(t, out.String(), "# first\n# second\nKO\ts1\nK00001\t1\n")
}

func TestWriteRoundTrip(t *testing.T) {
	tab, err := abundance.Read(strings.NewReader(testTable), abundance.ReadOpts{})
	assert.NoError(t, err)
	out := bytes.Buffer{}
	assert.NoError(t, tab.Write(&out, abundance.WriteOpts{}))
	want := `KO	wtA_abundance	wtB_abundance
K00001	10.5	0
K00929	3	12.25
K01440	0.125	7
`
	assert.EQ(t, out.String(), want)
}

func TestWriteFixedPrecision(t *testing.T) {
	tab := abundance.NewTable("Key", []string{"s1"})
	assert.NoError(t, tab.Append("g__Escherichia", []float64{1.5}))
	out := bytes.Buffer{}
	assert.NoError(t, tab.Write(&out, abundance.WriteOpts{FloatFmt: 'f', FloatPrec: 8}))
	assert.EQ(t, out.String(), "Key\ts1\ng__Escherichia\t1.50000000\n")
}

func TestAppend(t *testing.T) {
	tab := abundance.NewTable("KO", []string{"s1", "s2"})
	assert.NoError(t, tab.Append("K00001", []float64{1, 2}))
	assert.Regexp(t, tab.Append("K00001", []float64{1, 2}), "duplicate feature")
	assert.Regexp(t, tab.Append("K00002", []float64{1}), "has 1 values")
}

func TestAppendSum(t *testing.T) {
	tab := abundance.NewTable("KO", []string{"s1", "s2"})
	assert.NoError(t, tab.AppendSum("K00001", []float64{1, 2}))
	assert.NoError(t, tab.AppendSum("K00002", []float64{5, 0}))
	assert.NoError(t, tab.AppendSum("K00001", []float64{0.5, 3}))
	if got, want := tab.IDs(), []string{"K00001", "K00002"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids: got %v, want %v", got, want)
	}
	values, _ := tab.Values("K00001")
	if want := []float64{1.5, 5}; !reflect.DeepEqual(values, want) {
		t.Errorf("values: got %v, want %v", values, want)
	}
}

func TestSampleSums(t *testing.T) {
	tab, err := abundance.Read(strings.NewReader(testTable), abundance.ReadOpts{})
	assert.NoError(t, err)
	if got, want := tab.SampleSums(), []float64{13.625, 19.25}; !reflect.DeepEqual(got, want) {
		t.Errorf("sums: got %v, want %v", got, want)
	}
}

func TestPathRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	tab, err := abundance.Read(strings.NewReader(testTable), abundance.ReadOpts{})
	assert.NoError(t, err)
	for _, name := range []string{"table.tsv", "table.tsv.gz"} {
		path := filepath.Join(tempDir, name)
		assert.NoError(t, tab.WritePath(path, abundance.WriteOpts{}))
		got, err := abundance.ReadPath(path, abundance.ReadOpts{})
		assert.NoError(t, err)
		if !reflect.DeepEqual(got.IDs(), tab.IDs()) {
			t.Errorf("%s: ids: got %v, want %v", name, got.IDs(), tab.IDs())
		}
		gotValues, _ := got.Values("K01440")
		if want := []float64{0.125, 7}; !reflect.DeepEqual(gotValues, want) {
			t.Errorf("%s: values: got %v, want %v", name, gotValues, want)
		}
	}
}
