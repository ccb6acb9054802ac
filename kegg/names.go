package kegg

import (
	"io"
	"regexp"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
)

var mapIDRE = regexp.MustCompile(`^[a-z]+(\d{5})$`)

// CanonicalMapID normalizes a KEGG pathway map ID: a lowercase prefix
// ("map", "ko", "ec", ...) followed by five digits becomes "map" plus the
// digits, so "ko00624" and "map00624" name the same pathway. IDs not of
// that form are returned unchanged.
func CanonicalMapID(id string) string {
	groups := mapIDRE.FindStringSubmatch(id)
	if groups == nil {
		return id
	}
	return "map" + groups[1]
}

// xenobioticNames names the pathways of the KEGG "Xenobiotics
// biodegradation and metabolism" category.
var xenobioticNames = map[string]string{
	"map00361": "Chlorocyclohexane and chlorobenzene degradation",
	"map00362": "Benzoate degradation",
	"map00363": "Bisphenol degradation",
	"map00364": "Fluorobenzoate degradation",
	"map00365": "Furfural degradation",
	"map00621": "Dioxin degradation",
	"map00622": "Xylene degradation",
	"map00623": "Toluene degradation",
	"map00624": "Polycyclic aromatic hydrocarbon degradation",
	"map00625": "Chloroalkane and chloroalkene degradation",
	"map00626": "Naphthalene degradation",
	"map00627": "Aminobenzoate degradation",
	"map00633": "Nitrotoluene degradation",
	"map00642": "Ethylbenzene degradation",
	"map00643": "Styrene degradation",
	"map00791": "Atrazine degradation",
	"map00930": "Caprolactam degradation",
	"map00980": "Metabolism of xenobiotics by cytochrome P450",
	"map00982": "Drug metabolism - cytochrome P450",
	"map00983": "Drug metabolism - other enzymes",
	"map00984": "Steroid degradation",
}

// PathwayNames resolves KEGG pathway map IDs to human-readable names.
type PathwayNames struct {
	names map[string]string
}

// NewPathwayNames returns the built-in name table, which covers the
// xenobiotics degradation category.
func NewPathwayNames() *PathwayNames {
	n := &PathwayNames{names: make(map[string]string, len(xenobioticNames))}
	for id, name := range xenobioticNames {
		n.names[id] = name
	}
	return n
}

// Name returns the human-readable name of the given pathway map ID. Unknown
// IDs fall back to the canonicalized raw ID, with known=false.
func (n *PathwayNames) Name(id string) (name string, known bool) {
	id = CanonicalMapID(id)
	if name, found := n.names[id]; found {
		return name, true
	}
	return id, false
}

type nameRow struct {
	Map  string `tsv:"Map"`
	Name string `tsv:"Pathway_Name"`
}

// ReadNames merges pathway names from a TSV with header columns "Map" and
// "Pathway_Name" (other columns are ignored, '#' lines are comments).
// Entries override built-ins on conflict.
func (n *PathwayNames) ReadNames(r io.Reader) error {
	in := tsv.NewReader(r)
	in.HasHeaderRow = true
	in.UseHeaderNames = true
	in.Comment = '#'
	in.LazyQuotes = true
	for {
		var row nameRow
		if err := in.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return errors.Wrap(err, "kegg.ReadNames")
		}
		id := CanonicalMapID(strings.TrimSpace(row.Map))
		name := strings.TrimSpace(row.Name)
		if id == "" || name == "" {
			continue
		}
		n.names[id] = name
	}
	return nil
}

// ReadNamesPath merges pathway names from the TSV at the given path,
// decompressing by extension.
func (n *PathwayNames) ReadNamesPath(path string) (err error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := io.Reader(in.Reader(ctx))
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	return n.ReadNames(r)
}
