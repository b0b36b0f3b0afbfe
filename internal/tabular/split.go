package tabular

import (
	"fmt"
	"math/rand"

	"github.com/vk/featurebake/internal/dataset"
)

// SplitRows partitions a dataset's rows into a training and a test dataset
// by seeded random permutation, preserving the column schema in both. The
// test partition gets floor(rows * testFraction) rows.
func SplitRows(ds *dataset.Dataset, testFraction float64, seed int64) (train, test *dataset.Dataset, err error) {
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in [0, 1), got %v", testFraction)
	}
	n := ds.Rows()
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testFraction)

	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]

	train, err = selectRows(ds, trainIdx)
	if err != nil {
		return nil, nil, err
	}
	test, err = selectRows(ds, testIdx)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// selectRows materializes a new dataset holding the given rows, in index
// order, for every column.
func selectRows(ds *dataset.Dataset, indices []int) (*dataset.Dataset, error) {
	cols := make([]dataset.Column, 0, ds.NumCols())
	for _, c := range ds.Columns() {
		if c.Kind == dataset.Numeric {
			vals := make([]float64, len(indices))
			for i, idx := range indices {
				vals[i] = c.Floats[idx]
			}
			cols = append(cols, dataset.NumericColumn(c.Name, vals))
		} else {
			vals := make([]string, len(indices))
			for i, idx := range indices {
				vals[i] = c.Strings[idx]
			}
			cols = append(cols, dataset.CategoricalColumn(c.Name, vals))
		}
	}
	return dataset.New(cols...)
}
