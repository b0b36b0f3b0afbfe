package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/featurebake/internal/dataset"
)

func buildDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NumericColumn("age", []float64{30, 40}),
		dataset.CategoricalColumn("dept", []string{"A", "B"}),
		dataset.NumericColumn("salary", []float64{50000, 60000}),
	)
	require.NoError(t, err)
	return ds
}

func TestBuildAssignsRolesAndKinds(t *testing.T) {
	cat, err := Build(buildDataset(t), "salary")
	require.NoError(t, err)

	entries := cat.Entries()
	require.Len(t, entries, 3)
	// Catalog preserves dataset column order.
	assert.Equal(t, "age", entries[0].Name)
	assert.Equal(t, "dept", entries[1].Name)
	assert.Equal(t, "salary", entries[2].Name)

	age, ok := cat.Lookup("age")
	require.True(t, ok)
	assert.Equal(t, Predictor, age.Role)
	assert.Equal(t, dataset.Numeric, age.Kind)

	dept, ok := cat.Lookup("dept")
	require.True(t, ok)
	assert.Equal(t, Predictor, dept.Role)
	assert.Equal(t, dataset.Categorical, dept.Kind)

	salary, ok := cat.Lookup("salary")
	require.True(t, ok)
	assert.Equal(t, Outcome, salary.Role)
}

func TestBuildRejectsMissingOutcome(t *testing.T) {
	_, err := Build(buildDataset(t), "bonus")
	var schemaErr *dataset.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "bonus", schemaErr.Column)
}

func TestExtendKeepsRolesAndAddsPredictors(t *testing.T) {
	cat, err := Build(buildDataset(t), "salary")
	require.NoError(t, err)

	// A mid-pipeline dataset: dept replaced by an indicator, salary intact.
	mid, err := dataset.New(
		dataset.NumericColumn("age", []float64{30, 40}),
		dataset.NumericColumn("dept_B", []float64{0, 1}),
		dataset.NumericColumn("salary", []float64{50000, 60000}),
	)
	require.NoError(t, err)

	ext := cat.Extend(mid)
	require.Len(t, ext.Entries(), 3)

	// New columns become predictors with their kind read from the data.
	ind, ok := ext.Lookup("dept_B")
	require.True(t, ok)
	assert.Equal(t, Predictor, ind.Role)
	assert.Equal(t, dataset.Numeric, ind.Kind)

	// Known columns keep their role.
	salary, ok := ext.Lookup("salary")
	require.True(t, ok)
	assert.Equal(t, Outcome, salary.Role)

	// Columns gone from the data are gone from the extended catalog.
	_, ok = ext.Lookup("dept")
	assert.False(t, ok)
}
