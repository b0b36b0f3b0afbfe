package recipe

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/featurebake/internal/catalog"
	"github.com/vk/featurebake/internal/dataset"
	"github.com/vk/featurebake/internal/selector"
	"github.com/vk/featurebake/internal/step"
)

func mustCatalog(t *testing.T, ds *dataset.Dataset, outcome string) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Build(ds, outcome)
	require.NoError(t, err)
	return cat
}

func TestAddStepLeavesOriginalRecipeUnaffected(t *testing.T) {
	ds, err := dataset.New(
		dataset.NumericColumn("x", []float64{1, 2, 3}),
		dataset.NumericColumn("y", []float64{0, 1, 0}),
	)
	require.NoError(t, err)

	r1 := New(mustCatalog(t, ds, "y"))
	r2 := r1.AddStep(step.Center(selector.NumericPredictors()))
	r3 := r2.AddStep(step.Scale(selector.NumericPredictors()))

	assert.Empty(t, r1.Steps())
	assert.Len(t, r2.Steps(), 1)
	assert.Len(t, r3.Steps(), 2)

	// Branching from the same recipe must not alias step storage.
	r4 := r2.AddStep(step.Normalize(selector.NumericPredictors()))
	assert.Equal(t, step.KindScale, r3.Steps()[1].Kind)
	assert.Equal(t, step.KindNormalize, r4.Steps()[1].Kind)
}

// TestPrepareBakeEndToEnd is the salary/dept scenario: normalize a numeric
// column and dummy-encode a categorical one, then inspect the baked
// training data.
func TestPrepareBakeEndToEnd(t *testing.T) {
	salary := []float64{40000, 52000, 61000, 58000, 75000, 83000, 90000, 99000, 110000, 120000}
	dept := []string{"A", "A", "B", "A", "B", "A", "A", "A", "B", "A"}
	hired := []float64{0, 1, 1, 0, 1, 0, 1, 1, 0, 1}

	train, err := dataset.New(
		dataset.NumericColumn("salary", salary),
		dataset.CategoricalColumn("dept", dept),
		dataset.NumericColumn("hired", hired),
	)
	require.NoError(t, err)

	r := New(mustCatalog(t, train, "hired")).
		AddStep(step.Normalize(selector.ByName("salary"))).
		AddStep(step.Encode(selector.ByName("dept"), false))

	prepared, err := Prepare(context.Background(), r, train)
	require.NoError(t, err)

	baked, err := prepared.Bake(context.Background(), Cached())
	require.NoError(t, err)

	// The encoded column replaces dept in place; the outcome is untouched.
	assert.Equal(t, []string{"salary", "dept_B", "hired"}, baked.Names())

	// Normalized salary has mean 0 and sample stdev 1.
	col, ok := baked.Column("salary")
	require.True(t, ok)
	mean, sumSq := 0.0, 0.0
	for _, v := range col.Floats {
		mean += v
	}
	mean /= float64(len(col.Floats))
	for _, v := range col.Floats {
		sumSq += (v - mean) * (v - mean)
	}
	stdev := math.Sqrt(sumSq / float64(len(col.Floats)-1))
	assert.InDelta(t, 0, mean, 1e-9)
	assert.InDelta(t, 1, stdev, 1e-9)

	// dept_B is 1 exactly where dept was "B".
	ind, ok := baked.Column("dept_B")
	require.True(t, ok)
	for i, v := range ind.Floats {
		want := 0.0
		if dept[i] == "B" {
			want = 1
		}
		assert.Equal(t, want, v, "row %d", i)
	}
}

func TestBakeCachedReturnsTheStoredDatasetWithoutRecompute(t *testing.T) {
	train, err := dataset.New(
		dataset.NumericColumn("x", []float64{1, 2, 3}),
		dataset.NumericColumn("y", []float64{0, 0, 1}),
	)
	require.NoError(t, err)

	r := New(mustCatalog(t, train, "y")).AddStep(step.Normalize(selector.ByName("x")))
	prepared, err := Prepare(context.Background(), r, train)
	require.NoError(t, err)

	first, err := prepared.Bake(context.Background(), Cached())
	require.NoError(t, err)
	second, err := prepared.Bake(context.Background(), Cached())
	require.NoError(t, err)

	// Identical pointer both times: every step apply allocates a fresh
	// dataset, so pointer identity proves nothing was re-run.
	assert.Same(t, first, second)

	// Transforming the training data explicitly takes the slow path and
	// allocates, but yields the same values.
	recomputed, err := prepared.Bake(context.Background(), From(train))
	require.NoError(t, err)
	assert.NotSame(t, first, recomputed)
	a, _ := first.Column("x")
	b, _ := recomputed.Column("x")
	assert.Equal(t, a.Floats, b.Floats)
}

// TestOrderSensitivity pins down that step order is semantically
// significant: encoding after normalizing leaves indicators as 0/1, while
// normalizing after encoding rescales them.
func TestOrderSensitivity(t *testing.T) {
	build := func() *dataset.Dataset {
		ds, err := dataset.New(
			dataset.NumericColumn("x", []float64{10, 20, 30, 40, 50}),
			dataset.CategoricalColumn("g", []string{"A", "A", "B", "A", "B"}),
			dataset.NumericColumn("y", []float64{0, 1, 0, 1, 0}),
		)
		require.NoError(t, err)
		return ds
	}

	normalizeThenEncode := New(mustCatalog(t, build(), "y")).
		AddStep(step.Normalize(selector.NumericPredictors())).
		AddStep(step.Encode(selector.NominalPredictors(), false))
	encodeThenNormalize := New(mustCatalog(t, build(), "y")).
		AddStep(step.Encode(selector.NominalPredictors(), false)).
		AddStep(step.Normalize(selector.NumericPredictors()))

	p1, err := Prepare(context.Background(), normalizeThenEncode, build())
	require.NoError(t, err)
	p2, err := Prepare(context.Background(), encodeThenNormalize, build())
	require.NoError(t, err)

	baked1, err := p1.Bake(context.Background(), Cached())
	require.NoError(t, err)
	baked2, err := p2.Bake(context.Background(), Cached())
	require.NoError(t, err)

	ind1, ok := baked1.Column("g_B")
	require.True(t, ok)
	for _, v := range ind1.Floats {
		assert.True(t, v == 0 || v == 1, "got %v", v)
	}

	// The later normalize step sees the indicator column through the
	// extended catalog and rescales it away from 0/1.
	ind2, ok := baked2.Column("g_B")
	require.True(t, ok)
	for _, v := range ind2.Floats {
		assert.False(t, v == 0 || v == 1, "got %v", v)
	}
}

// TestNoLeakage verifies that baking out-of-range data never feeds back
// into the learned parameters.
func TestNoLeakage(t *testing.T) {
	train, err := dataset.New(
		dataset.NumericColumn("x", []float64{1, 2, 4, 8, 16}),
		dataset.NumericColumn("y", []float64{0, 1, 0, 1, 0}),
	)
	require.NoError(t, err)

	r := New(mustCatalog(t, train, "y")).
		AddStep(step.YeoJohnson(selector.ByName("x"))).
		AddStep(step.Normalize(selector.ByName("x")))
	prepared, err := Prepare(context.Background(), r, train)
	require.NoError(t, err)

	states := prepared.FittedSteps()
	lambdaBefore := states[0].Lambdas["x"]
	meanBefore := states[1].Means["x"]
	stdevBefore := states[1].Stdevs["x"]

	// Bake data entirely outside the training range.
	outside, err := dataset.New(
		dataset.NumericColumn("x", []float64{-1e6, 0, 1e6}),
		dataset.NumericColumn("y", []float64{0, 0, 0}),
	)
	require.NoError(t, err)
	_, err = prepared.Bake(context.Background(), From(outside))
	require.NoError(t, err)

	assert.Equal(t, lambdaBefore, states[0].Lambdas["x"])
	assert.Equal(t, meanBefore, states[1].Means["x"])
	assert.Equal(t, stdevBefore, states[1].Stdevs["x"])
}

func TestPrepareFailsFastWithStepContext(t *testing.T) {
	train, err := dataset.New(
		dataset.NumericColumn("x", []float64{1, 2, 3}),
		dataset.NumericColumn("flat", []float64{5, 5, 5}),
		dataset.NumericColumn("y", []float64{0, 1, 0}),
	)
	require.NoError(t, err)

	r := New(mustCatalog(t, train, "y")).
		AddStep(step.Center(selector.ByName("x"))).
		AddStep(step.Scale(selector.ByName("flat")))

	prepared, err := Prepare(context.Background(), r, train)
	assert.Nil(t, prepared)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 2, stepErr.Ordinal)
	assert.Equal(t, step.KindScale, stepErr.Kind)

	var insufficient *step.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "flat", insufficient.Column)
}

func TestEmptySelectorIsAWarningNotAnError(t *testing.T) {
	train, err := dataset.New(
		dataset.NumericColumn("x", []float64{1, 2, 3}),
		dataset.NumericColumn("y", []float64{0, 1, 0}),
	)
	require.NoError(t, err)

	// No categorical columns exist, so the encode step matches nothing.
	r := New(mustCatalog(t, train, "y")).
		AddStep(step.Encode(selector.NominalPredictors(), false)).
		AddStep(step.Normalize(selector.ByName("x")))

	prepared, err := Prepare(context.Background(), r, train)
	require.NoError(t, err)
	require.Len(t, prepared.Warnings(), 1)
	assert.Contains(t, prepared.Warnings()[0], "step 1 (encode)")

	baked, err := prepared.Bake(context.Background(), Cached())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, baked.Names())
}

func TestBakeFailsOnMissingColumn(t *testing.T) {
	train, err := dataset.New(
		dataset.NumericColumn("x", []float64{1, 2, 3}),
		dataset.NumericColumn("y", []float64{0, 1, 0}),
	)
	require.NoError(t, err)

	r := New(mustCatalog(t, train, "y")).AddStep(step.Normalize(selector.ByName("x")))
	prepared, err := Prepare(context.Background(), r, train)
	require.NoError(t, err)

	other, err := dataset.New(dataset.NumericColumn("z", []float64{1}))
	require.NoError(t, err)
	_, err = prepared.Bake(context.Background(), From(other))

	var missing *step.ColumnMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "x", missing.Column)
}
