package kegg

import (
	"github.com/grailbio/metagenome/util"
	"github.com/pkg/errors"
)

// Category identifies a KEGG pathway category with a built-in pathway set.
type Category int

const (
	// CategoryNone applies no category restriction.
	CategoryNone Category = iota
	// CategoryXenobiotics is the KEGG "Xenobiotics biodegradation and
	// metabolism" category.
	CategoryXenobiotics
)

var categoryNames = []string{
	CategoryNone:        "none",
	CategoryXenobiotics: "xenobiotics",
}

// CategoryNames returns the names accepted by ParseCategory.
func CategoryNames() []string {
	names := make([]string, len(categoryNames))
	copy(names, categoryNames)
	return names
}

// String returns the name accepted by ParseCategory.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "invalid"
	}
	return categoryNames[c]
}

// ParseCategory parses a category name. Unknown names produce an error with
// a nearest-match hint.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if s == name {
			return Category(c), nil
		}
	}
	return CategoryNone, errors.Errorf("kegg.ParseCategory: unknown category %q (closest match: %q)",
		s, util.Closest(s, categoryNames))
}

// MapIDs returns the set of pathway map IDs belonging to the category, in
// canonical form. It returns nil for CategoryNone.
func (c Category) MapIDs() map[string]bool {
	if c != CategoryXenobiotics {
		return nil
	}
	ids := make(map[string]bool, len(xenobioticNames))
	for id := range xenobioticNames {
		ids[id] = true
	}
	return ids
}
