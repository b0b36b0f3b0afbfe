package step

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/vk/featurebake/internal/dataset"
)

// fitCorrFilter learns the columns to drop from the training correlation
// structure: repeatedly take the highest-magnitude correlated pair above the
// threshold and drop the member with the larger mean absolute correlation
// against the remaining columns. Ties fall back to column order, dropping
// the later column.
func fitCorrFilter(names []string, ds *dataset.Dataset, p Params) (*Fitted, error) {
	threshold := p.Threshold
	if threshold <= 0 {
		threshold = DefaultCorrThreshold
	}
	fs := &Fitted{Kind: KindCorrFilter, Columns: names, Threshold: threshold}

	cols := make([][]float64, len(names))
	for i, name := range names {
		vals, err := trainingValues(ds, name)
		if err != nil {
			return nil, err
		}
		if len(observed(vals)) < 2 {
			return nil, &InsufficientDataError{Column: name, Reason: "fewer than 2 non-missing values"}
		}
		cols[i] = vals
	}

	// Absolute pairwise Pearson correlations, computed once on training data.
	n := len(names)
	corr := make([][]float64, n)
	for i := range corr {
		corr[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := math.Abs(stat.Correlation(cols[i], cols[j], nil))
			corr[i][j] = r
			corr[j][i] = r
		}
	}

	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}
	meanAbs := func(i int) float64 {
		sum, count := 0.0, 0
		for j := 0; j < n; j++ {
			if j == i || !active[j] {
				continue
			}
			sum += corr[i][j]
			count++
		}
		if count == 0 {
			return 0
		}
		return sum / float64(count)
	}

	for {
		best, bi, bj := 0.0, -1, -1
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if corr[i][j] > threshold && corr[i][j] > best {
					best, bi, bj = corr[i][j], i, j
				}
			}
		}
		if bi == -1 {
			break
		}
		// bj is the later column; on a tie it is the one dropped.
		victim := bj
		if meanAbs(bi) > meanAbs(bj) {
			victim = bi
		}
		active[victim] = false
		fs.Drop = append(fs.Drop, names[victim])
	}
	return fs, nil
}

// applyCorrFilter drops the learned columns; it never recomputes
// correlations on apply data.
func applyCorrFilter(fs *Fitted, ds *dataset.Dataset) (*dataset.Dataset, error) {
	return ds.DropColumns(fs.Drop), nil
}
