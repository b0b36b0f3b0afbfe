package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesInvariants(t *testing.T) {
	// A well-formed column set builds fine.
	ds, err := New(
		NumericColumn("x", []float64{1, 2, 3}),
		CategoricalColumn("g", []string{"a", "b", "a"}),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"x", "g"}, ds.Names())

	// Duplicate names are a schema error.
	_, err = New(
		NumericColumn("x", []float64{1}),
		NumericColumn("x", []float64{2}),
	)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "x", schemaErr.Column)

	// Ragged column lengths are a schema error.
	_, err = New(
		NumericColumn("x", []float64{1, 2}),
		CategoricalColumn("g", []string{"a"}),
	)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "g", schemaErr.Column)
}

func TestEmptyDataset(t *testing.T) {
	ds, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Rows())
	assert.Equal(t, 0, ds.NumCols())
}

func TestReplaceColumnKeepsPositionAndSharesRest(t *testing.T) {
	ds, err := New(
		NumericColumn("a", []float64{1, 2}),
		NumericColumn("b", []float64{3, 4}),
		NumericColumn("c", []float64{5, 6}),
	)
	require.NoError(t, err)

	out, err := ds.ReplaceColumn("b", NumericColumn("b", []float64{30, 40}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out.Names())

	replaced, _ := out.Column("b")
	assert.Equal(t, []float64{30, 40}, replaced.Floats)

	// The original dataset is untouched and unchanged columns are shared.
	orig, _ := ds.Column("b")
	assert.Equal(t, []float64{3, 4}, orig.Floats)
	sharedBefore, _ := ds.Column("a")
	sharedAfter, _ := out.Column("a")
	assert.Same(t, &sharedBefore.Floats[0], &sharedAfter.Floats[0])

	_, err = ds.ReplaceColumn("missing", NumericColumn("missing", nil))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestSpliceColumn(t *testing.T) {
	ds, err := New(
		NumericColumn("a", []float64{1}),
		CategoricalColumn("g", []string{"x"}),
		NumericColumn("z", []float64{2}),
	)
	require.NoError(t, err)

	out, err := ds.SpliceColumn("g", []Column{
		NumericColumn("g_x", []float64{1}),
		NumericColumn("g_y", []float64{0}),
	})
	require.NoError(t, err)
	// Replacements land at the removed column's position.
	assert.Equal(t, []string{"a", "g_x", "g_y", "z"}, out.Names())

	// An empty replacement list just drops the column.
	out, err = ds.SpliceColumn("g", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "z"}, out.Names())
}

func TestDropColumns(t *testing.T) {
	ds, err := New(
		NumericColumn("a", []float64{1}),
		NumericColumn("b", []float64{2}),
		NumericColumn("c", []float64{3}),
	)
	require.NoError(t, err)

	out := ds.DropColumns([]string{"b", "not-there"})
	assert.Equal(t, []string{"a", "c"}, out.Names())
	// Original unchanged.
	assert.Equal(t, []string{"a", "b", "c"}, ds.Names())
}
