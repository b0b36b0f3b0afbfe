package step

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/vk/featurebake/internal/dataset"
)

// observed filters missing values out of a numeric column.
func observed(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// columnMoments computes the training mean and sample standard deviation of
// one column, enforcing the minimum-observation and variance requirements.
func columnMoments(ds *dataset.Dataset, name string, needStdev bool) (mean, stdev float64, err error) {
	vals, err := trainingValues(ds, name)
	if err != nil {
		return 0, 0, err
	}
	obs := observed(vals)
	if len(obs) < 2 {
		return 0, 0, &InsufficientDataError{Column: name, Reason: "fewer than 2 non-missing values"}
	}
	mean = stat.Mean(obs, nil)
	stdev = stat.StdDev(obs, nil)
	if needStdev && stdev == 0 {
		return 0, 0, &InsufficientDataError{Column: name, Reason: "zero variance"}
	}
	return mean, stdev, nil
}

func fitCenter(names []string, ds *dataset.Dataset, _ Params) (*Fitted, error) {
	fs := &Fitted{Kind: KindCenter, Columns: names, Means: make(map[string]float64, len(names))}
	for _, name := range names {
		mean, _, err := columnMoments(ds, name, false)
		if err != nil {
			return nil, err
		}
		fs.Means[name] = mean
	}
	return fs, nil
}

func fitScale(names []string, ds *dataset.Dataset, _ Params) (*Fitted, error) {
	fs := &Fitted{Kind: KindScale, Columns: names, Stdevs: make(map[string]float64, len(names))}
	for _, name := range names {
		_, stdev, err := columnMoments(ds, name, true)
		if err != nil {
			return nil, err
		}
		fs.Stdevs[name] = stdev
	}
	return fs, nil
}

func fitNormalize(names []string, ds *dataset.Dataset, _ Params) (*Fitted, error) {
	fs := &Fitted{
		Kind:    KindNormalize,
		Columns: names,
		Means:   make(map[string]float64, len(names)),
		Stdevs:  make(map[string]float64, len(names)),
	}
	for _, name := range names {
		mean, stdev, err := columnMoments(ds, name, true)
		if err != nil {
			return nil, err
		}
		fs.Means[name] = mean
		fs.Stdevs[name] = stdev
	}
	return fs, nil
}

// applyMoments serves center, scale, and normalize: whichever moments were
// learned are applied, missing values pass through untouched.
func applyMoments(fs *Fitted, ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds
	for _, name := range fs.Columns {
		col, _ := out.Column(name)
		if col.Kind != dataset.Numeric {
			return nil, &dataset.SchemaError{Column: name, Msg: "numeric column required"}
		}
		vals := make([]float64, len(col.Floats))
		for i, v := range col.Floats {
			if math.IsNaN(v) {
				vals[i] = v
				continue
			}
			if fs.Means != nil {
				v -= fs.Means[name]
			}
			if fs.Stdevs != nil {
				v /= fs.Stdevs[name]
			}
			vals[i] = v
		}
		next, err := out.ReplaceColumn(name, dataset.NumericColumn(name, vals))
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
