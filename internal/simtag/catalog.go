package simtag

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/musiguello/logixsim/internal/simerr"
)

// catalogDoc mirrors the --tags-file YAML shape:
//
//	tags:
//	  - name: TestDINTArray
//	    type: DINT
//	    dims: [3]
//	    initial: [1, 2, 3]
type catalogDoc struct {
	Tags []catalogTag `yaml:"tags"`
}

type catalogTag struct {
	Name    string    `yaml:"name"`
	Type    string    `yaml:"type"`
	Dims    []int     `yaml:"dims"`
	Initial []float64 `yaml:"initial"`
}

// LoadCatalogFile parses a YAML tag catalog into a Table.
func LoadCatalogFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, simerr.Wrap(simerr.OpenFailed, err, "reading tag catalog "+path)
	}
	return LoadCatalogBytes(data)
}

// LoadCatalogBytes parses a YAML tag catalog document already in memory.
func LoadCatalogBytes(data []byte) (*Table, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, simerr.Wrap(simerr.BadData, err, "parsing tag catalog")
	}

	tb := NewTable()
	for _, ct := range doc.Tags {
		if err := validateName(ct.Name); err != nil {
			return nil, err
		}
		typ, err := ParseType(ct.Type)
		if err != nil {
			return nil, err
		}
		if len(ct.Dims) > 3 {
			return nil, simerr.Newf(simerr.BadParam, "tag %q has more than 3 dimensions", ct.Name)
		}
		for _, d := range ct.Dims {
			if d <= 0 {
				return nil, simerr.Newf(simerr.BadParam, "tag %q has non-positive dimension %d", ct.Name, d)
			}
		}

		tag := New(ct.Name, typ, ct.Dims)
		if len(ct.Initial) > 0 {
			tag.SetInitial(ct.Initial)
		}
		tb.Put(tag)
	}
	return tb, nil
}

// Merge layers src's tags on top of dst (src entries override dst entries
// of the same name), matching the CLI-over-file layering rule.
func Merge(dst, src *Table) *Table {
	out := NewTable()
	for _, name := range dst.Names() {
		t, _ := dst.Lookup(name)
		out.Put(t)
	}
	for _, name := range src.Names() {
		t, _ := src.Lookup(name)
		out.Put(t)
	}
	return out
}
