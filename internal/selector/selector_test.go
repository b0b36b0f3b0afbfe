package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/featurebake/internal/catalog"
	"github.com/vk/featurebake/internal/dataset"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	ds, err := dataset.New(
		dataset.NumericColumn("age", []float64{1, 2}),
		dataset.CategoricalColumn("dept", []string{"A", "B"}),
		dataset.NumericColumn("score", []float64{3, 4}),
		dataset.NumericColumn("churn", []float64{0, 1}),
	)
	require.NoError(t, err)
	cat, err := catalog.Build(ds, "churn")
	require.NoError(t, err)
	return cat
}

func TestPrimitives(t *testing.T) {
	cat := testCatalog(t)

	assert.Equal(t, []string{"age", "dept", "score"}, Resolve(AllPredictors(), cat))
	assert.Equal(t, []string{"churn"}, Resolve(AllOutcomes(), cat))
	assert.Equal(t, []string{"age", "score", "churn"}, Resolve(AllNumeric(), cat))
	assert.Equal(t, []string{"dept"}, Resolve(AllNominal(), cat))
	assert.Equal(t, []string{"age", "score"}, Resolve(ByName("score", "age"), cat))
}

func TestComposition(t *testing.T) {
	cat := testCatalog(t)

	// Numeric predictors: numeric and not the outcome.
	assert.Equal(t, []string{"age", "score"}, Resolve(NumericPredictors(), cat))
	assert.Equal(t, []string{"age", "score"}, Resolve(Minus(AllNumeric(), AllOutcomes()), cat))
	assert.Equal(t, []string{"dept"}, Resolve(NominalPredictors(), cat))
	assert.Equal(t, []string{"age", "dept", "score", "churn"}, Resolve(Union(AllPredictors(), AllOutcomes()), cat))
}

func TestEmptyResolutionIsNotAnError(t *testing.T) {
	cat := testCatalog(t)

	// Nothing matches; resolution yields an empty set, not a failure.
	names := Resolve(ByName("not-a-column"), cat)
	assert.Empty(t, names)

	names = Resolve(And(AllNominal(), AllOutcomes()), cat)
	assert.Empty(t, names)
}

func TestResolutionOrderFollowsCatalog(t *testing.T) {
	cat := testCatalog(t)

	// ByName order is irrelevant; catalog column order decides.
	assert.Equal(t, []string{"age", "score", "churn"}, Resolve(ByName("churn", "score", "age"), cat))
}
