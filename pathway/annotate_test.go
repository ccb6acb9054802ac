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
package pathway_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/grailbio/metagenome/kegg"
	"github.com/grailbio/metagenome/pathway"
	"github.com/grailbio/testutil/assert"
)

func TestAnnotate(t *testing.T) {
	tab := mustTable(t, "KO\twtA\nK00001\t10.5\n")
	m := mustMapping(t, "KO\tMap\nK00001\tko00624\n")

	got, err := pathway.Annotate(tab, m, kegg.NewPathwayNames(), pathway.AnnotateOpts{})
	assert.NoError(t, err)
	if got.KeyName() != "Pathway_Name" {
		t.Errorf("key name: got %s", got.KeyName())
	}
	if want := []string{"Polycyclic aromatic hydrocarbon degradation"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("ids: got %v, want %v", got.IDs(), want)
	}
	values, _ := got.Values("Polycyclic aromatic hydrocarbon degradation")
	if want := []float64{10.5}; !reflect.DeepEqual(values, want) {
		t.Errorf("values: got %v, want %v", values, want)
	}
}

func TestAnnotateCustomNames(t *testing.T) {
	tab := mustTable(t, "KO\twtA\nK00001\t10.5\n")
	m := mustMapping(t, "KO\tMap\nK00001\tko00624\n")
	names := kegg.NewPathwayNames()
	assert.NoError(t, names.ReadNames(strings.NewReader("Map\tPathway_Name\nko00624\tXenobiotics degradation\n")))

	got, err := pathway.Annotate(tab, m, names, pathway.AnnotateOpts{})
	assert.NoError(t, err)
	if want := []string{"Xenobiotics degradation"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("ids: got %v, want %v", got.IDs(), want)
	}
}

func TestAnnotateFanOutAndAggregation(t *testing.T) {
	// K00001 belongs to two pathways and contributes fully to both; K00446
	// shares map00624 with it and is summed in.
	tab := mustTable(t, "KO\twtA\twtB\nK00001\t10\t1\nK00446\t5\t2\n")
	m := mustMapping(t, "KO\tMap\nK00001\tko00624,ko00626\nK00446\tko00624\n")

	got, err := pathway.Annotate(tab, m, kegg.NewPathwayNames(), pathway.AnnotateOpts{})
	assert.NoError(t, err)
	// Canonical map-ID order: map00624 before map00626.
	want := []string{"Polycyclic aromatic hydrocarbon degradation", "Naphthalene degradation"}
	if !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("ids: got %v, want %v", got.IDs(), want)
	}
	values, _ := got.Values("Polycyclic aromatic hydrocarbon degradation")
	if want := []float64{15, 3}; !reflect.DeepEqual(values, want) {
		t.Errorf("map00624: got %v, want %v", values, want)
	}
	values, _ = got.Values("Naphthalene degradation")
	if want := []float64{10, 1}; !reflect.DeepEqual(values, want) {
		t.Errorf("map00626: got %v, want %v", values, want)
	}
	// Row count never exceeds the total pathway fan-out (3 here).
	if got.Len() > 3 {
		t.Errorf("rows: got %d, want <= 3", got.Len())
	}
}

func TestAnnotateUnknownName(t *testing.T) {
	tab := mustTable(t, "KO\twtA\nK02256\t4\n")
	m := mustMapping(t, "KO\tMap\nK02256\tko00190\n")

	got, err := pathway.Annotate(tab, m, kegg.NewPathwayNames(), pathway.AnnotateOpts{})
	assert.NoError(t, err)
	// No name for map00190 in the built-in table: the canonical ID passes
	// through as the name.
	if want := []string{"map00190"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("ids: got %v, want %v", got.IDs(), want)
	}
}

func TestAnnotateUnmapped(t *testing.T) {
	tab := mustTable(t, "KO\twtA\nK18293\t3\nK00001\t10\n")
	// K18293 is in the key set but has no pathway.
	m := mustMapping(t, "KO\tMap\nK18293\t\nK00001\tko00624\n")

	got, err := pathway.Annotate(tab, m, kegg.NewPathwayNames(), pathway.AnnotateOpts{})
	assert.NoError(t, err)
	if want := []string{"Polycyclic aromatic hydrocarbon degradation"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("default drops unmapped: got %v, want %v", got.IDs(), want)
	}

	got, err = pathway.Annotate(tab, m, kegg.NewPathwayNames(), pathway.AnnotateOpts{KeepUnmapped: true})
	assert.NoError(t, err)
	// Unmapped features follow the pathway rows, keyed by their own ID.
	want := []string{"Polycyclic aromatic hydrocarbon degradation", "K18293"}
	if !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("KeepUnmapped: got %v, want %v", got.IDs(), want)
	}
	values, _ := got.Values("K18293")
	if want := []float64{3}; !reflect.DeepEqual(values, want) {
		t.Errorf("K18293: got %v, want %v", values, want)
	}
}

func TestAnnotateNameCollision(t *testing.T) {
	// Two pathways aliased to one name merge into a single row.
	tab := mustTable(t, "KO\twtA\nK00001\t10\nK00929\t2\n")
	m := mustMapping(t, "KO\tMap\nK00001\tko00624\nK00929\tko00626\n")
	names := kegg.NewPathwayNames()
	assert.NoError(t, names.ReadNames(strings.NewReader(
		"Map\tPathway_Name\nko00624\tAromatics\nko00626\tAromatics\n")))

	got, err := pathway.Annotate(tab, m, names, pathway.AnnotateOpts{})
	assert.NoError(t, err)
	if want := []string{"Aromatics"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("ids: got %v, want %v", got.IDs(), want)
	}
	values, _ := got.Values("Aromatics")
	if want := []float64{12}; !reflect.DeepEqual(values, want) {
		t.Errorf("values: got %v, want %v", values, want)
	}
}
