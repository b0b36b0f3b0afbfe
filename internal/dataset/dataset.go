// Package dataset defines the in-memory tabular value the engine operates
// on: an ordered list of named, typed, equal-length columns. A Dataset is
// treated as immutable once constructed; every transformation produces a new
// Dataset, sharing unchanged columns structurally.
package dataset

import "fmt"

// Kind is the data kind of a single column.
type Kind int

const (
	// Numeric columns hold float64 values; NaN marks a missing value.
	Numeric Kind = iota
	// Categorical columns hold string labels.
	Categorical
)

// String implements fmt.Stringer for log and error output.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column is one named, typed column. Exactly one of Floats or Strings is
// populated, matching Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// NumericColumn builds a Numeric column over the given values.
func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: Numeric, Floats: values}
}

// CategoricalColumn builds a Categorical column over the given labels.
func CategoricalColumn(name string, values []string) Column {
	return Column{Name: name, Kind: Categorical, Strings: values}
}

// Len returns the column's row count.
func (c Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// SchemaError reports a violation of the Dataset invariants: duplicate
// column names, mismatched column lengths, or a reference to a column that
// the schema does not contain.
type SchemaError struct {
	Column string
	Msg    string
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return "schema: " + e.Msg
	}
	return fmt.Sprintf("schema: column %q: %s", e.Column, e.Msg)
}

// Dataset is an ordered collection of equal-length, uniquely named columns.
type Dataset struct {
	cols  []Column
	index map[string]int
}

// New validates the column set and builds a Dataset. It fails with a
// SchemaError on duplicate names or ragged column lengths. An empty column
// set is valid and yields a zero-row, zero-column Dataset.
func New(cols ...Column) (*Dataset, error) {
	index := make(map[string]int, len(cols))
	rows := -1
	for i, c := range cols {
		if _, dup := index[c.Name]; dup {
			return nil, &SchemaError{Column: c.Name, Msg: "duplicate column name"}
		}
		index[c.Name] = i
		if rows == -1 {
			rows = c.Len()
		} else if c.Len() != rows {
			return nil, &SchemaError{Column: c.Name, Msg: fmt.Sprintf("has %d rows, want %d", c.Len(), rows)}
		}
	}
	return &Dataset{cols: cols, index: index}, nil
}

// Rows returns the row count shared by every column.
func (d *Dataset) Rows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return d.cols[0].Len()
}

// NumCols returns the number of columns.
func (d *Dataset) NumCols() int { return len(d.cols) }

// Names returns the column names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.cols[i], true
}

// Columns returns the columns in dataset order. Callers must not mutate the
// returned slice or the value slices it references.
func (d *Dataset) Columns() []Column { return d.cols }

// ReplaceColumn returns a new Dataset with the named column swapped for col,
// keeping its position. Unchanged columns are shared, not copied.
func (d *Dataset) ReplaceColumn(name string, col Column) (*Dataset, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &SchemaError{Column: name, Msg: "not present"}
	}
	cols := make([]Column, len(d.cols))
	copy(cols, d.cols)
	cols[i] = col
	return New(cols...)
}

// SpliceColumn returns a new Dataset with the named column removed and the
// replacement columns inserted at its position. An empty replacement list
// simply drops the column.
func (d *Dataset) SpliceColumn(name string, repl []Column) (*Dataset, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &SchemaError{Column: name, Msg: "not present"}
	}
	cols := make([]Column, 0, len(d.cols)-1+len(repl))
	cols = append(cols, d.cols[:i]...)
	cols = append(cols, repl...)
	cols = append(cols, d.cols[i+1:]...)
	return New(cols...)
}

// DropColumns returns a new Dataset without the named columns. Names absent
// from the dataset are ignored; order of the survivors is preserved.
func (d *Dataset) DropColumns(names []string) *Dataset {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	cols := make([]Column, 0, len(d.cols))
	for _, c := range d.cols {
		if _, gone := drop[c.Name]; !gone {
			cols = append(cols, c)
		}
	}
	out, err := New(cols...)
	if err != nil {
		// Dropping columns cannot introduce duplicates or ragged lengths.
		panic(err)
	}
	return out
}
