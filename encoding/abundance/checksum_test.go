package abundance_test

import (
	"strings"
	"testing"

	"github.com/grailbio/metagenome/encoding/abundance"
	"github.com/grailbio/testutil/assert"
)

func mustRead(t *testing.T, s string) *abundance.Table {
	t.Helper()
	tab, err := abundance.Read(strings.NewReader(s), abundance.ReadOpts{})
	assert.NoError(t, err)
	return tab
}

func TestChecksumRowOrder(t *testing.T) {
	a := mustRead(t, "KO\ts1\ts2\nK00001\t1\t2\nK00929\t3\t4\n")
	b := mustRead(t, "KO\ts1\ts2\nK00929\t3\t4\nK00001\t1\t2\n")
	if a.Checksum() != b.Checksum() {
		t.Errorf("row order changed checksum: %+v vs %+v", a.Checksum(), b.Checksum())
	}
}

func TestChecksumSensitivity(t *testing.T) {
	base := mustRead(t, "KO\ts1\nK00001\t1\nK00929\t3\n")

	changedValue := mustRead(t, "KO\ts1\nK00001\t1\nK00929\t3.5\n")
	if got := changedValue.Checksum(); got.SumRows == base.Checksum().SumRows {
		t.Error("value change not reflected in SumRows")
	} else if got.SumIDs != base.Checksum().SumIDs {
		t.Error("value change leaked into SumIDs")
	}

	changedID := mustRead(t, "KO\ts1\nK00001\t1\nK09290\t3\n")
	if changedID.Checksum().SumIDs == base.Checksum().SumIDs {
		t.Error("ID change not reflected in SumIDs")
	}

	changedHeader := mustRead(t, "KO\tother\nK00001\t1\nK00929\t3\n")
	if changedHeader.Checksum().Header == base.Checksum().Header {
		t.Error("sample rename not reflected in Header")
	}
	if got := base.Checksum(); got.NRows != 2 || got.NSamples != 1 {
		t.Errorf("counts: got %+v", got)
	}
}
