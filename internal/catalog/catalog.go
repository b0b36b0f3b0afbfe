// Package catalog tracks each column's semantic role (outcome, predictor,
// other) alongside its data kind. A catalog is built once from the training
// schema when a recipe is declared; roles never change afterwards.
package catalog

import (
	"github.com/vk/featurebake/internal/dataset"
)

// Role is a column's semantic role in the modeling problem.
type Role int

const (
	Predictor Role = iota
	Outcome
	Other
)

// String implements fmt.Stringer for report and log output.
func (r Role) String() string {
	switch r {
	case Predictor:
		return "predictor"
	case Outcome:
		return "outcome"
	default:
		return "other"
	}
}

// Entry is one column's catalog record.
type Entry struct {
	Name string
	Kind dataset.Kind
	Role Role
}

// Catalog maps column names to kind and role, preserving the originating
// dataset's column order. Immutable after construction.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// Build derives a catalog from a dataset and the designated outcome column:
// the outcome gets role Outcome, every other column defaults to Predictor.
// It fails with a SchemaError when the outcome column is absent.
func Build(ds *dataset.Dataset, outcome string) (*Catalog, error) {
	if _, ok := ds.Column(outcome); !ok {
		return nil, &dataset.SchemaError{Column: outcome, Msg: "outcome column not present"}
	}
	entries := make([]Entry, 0, ds.NumCols())
	for _, c := range ds.Columns() {
		role := Predictor
		if c.Name == outcome {
			role = Outcome
		}
		entries = append(entries, Entry{Name: c.Name, Kind: c.Kind, Role: role})
	}
	return newCatalog(entries), nil
}

func newCatalog(entries []Entry) *Catalog {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Name] = i
	}
	return &Catalog{entries: entries, index: index}
}

// Entries returns the catalog records in original column order.
func (c *Catalog) Entries() []Entry { return c.entries }

// Lookup returns the record for a column name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.index[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Extend derives a working catalog for a mid-pipeline dataset: columns
// already known keep their role, columns introduced by earlier steps become
// predictors, and kinds are re-read from the data. Column order follows the
// dataset, so steps fitted later still resolve selectors deterministically.
func (c *Catalog) Extend(ds *dataset.Dataset) *Catalog {
	entries := make([]Entry, 0, ds.NumCols())
	for _, col := range ds.Columns() {
		role := Predictor
		if prev, ok := c.Lookup(col.Name); ok {
			role = prev.Role
		}
		entries = append(entries, Entry{Name: col.Name, Kind: col.Kind, Role: role})
	}
	return newCatalog(entries)
}
