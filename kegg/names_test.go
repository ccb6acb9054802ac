package kegg_test

import (
	"strings"
	"testing"

	"github.com/grailbio/metagenome/kegg"
	"github.com/grailbio/testutil/assert"
)

func TestCanonicalMapID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"map00624", "map00624"},
		{"ko00624", "map00624"},
		{"ec00624", "map00624"},
		{"K00001", "K00001"}, // KO, not a pathway map
		{"00624", "00624"},
		{"map624", "map624"}, // five digits required
		{"", ""},
	}
	for _, test := range tests {
		if got := kegg.CanonicalMapID(test.in); got != test.want {
			t.Errorf("CanonicalMapID(%q): got %q, want %q", test.in, got, test.want)
		}
	}
}

func TestPathwayNames(t *testing.T) {
	names := kegg.NewPathwayNames()

	name, known := names.Name("ko00624")
	if !known || name != "Polycyclic aromatic hydrocarbon degradation" {
		t.Errorf("ko00624: got (%q, %v)", name, known)
	}
	name, known = names.Name("map00982")
	if !known || name != "Drug metabolism - cytochrome P450" {
		t.Errorf("map00982: got (%q, %v)", name, known)
	}
	// Unknown IDs fall back to the canonical raw ID.
	name, known = names.Name("ko00498")
	if known || name != "map00498" {
		t.Errorf("ko00498: got (%q, %v), want (\"map00498\", false)", name, known)
	}
}

func TestReadNames(t *testing.T) {
	names := kegg.NewPathwayNames()
	input := `# custom pathway names
Map	Pathway_Name
ko00624	Xenobiotics degradation
map99999	Synthetic pathway
`
	assert.NoError(t, names.ReadNames(strings.NewReader(input)))

	name, known := names.Name("map00624")
	if !known || name != "Xenobiotics degradation" {
		t.Errorf("override: got (%q, %v)", name, known)
	}
	name, known = names.Name("ko99999")
	if !known || name != "Synthetic pathway" {
		t.Errorf("extension: got (%q, %v)", name, known)
	}
	// Untouched built-ins survive a merge.
	name, known = names.Name("map00930")
	if !known || name != "Caprolactam degradation" {
		t.Errorf("builtin: got (%q, %v)", name, known)
	}
}
