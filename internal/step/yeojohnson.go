package step

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/vk/featurebake/internal/dataset"
)

// Search interval for the transform parameter. Values outside this range
// correspond to transforms too extreme to be useful on real features.
const (
	lambdaMin = -5.0
	lambdaMax = 5.0
)

// yeoJohnson applies the Yeo-Johnson transform with parameter lambda to a
// single value. Defined for all reals, including zero and negatives.
func yeoJohnson(x, lambda float64) float64 {
	switch {
	case x >= 0 && lambda != 0:
		return (math.Pow(x+1, lambda) - 1) / lambda
	case x >= 0:
		return math.Log1p(x)
	case lambda != 2:
		return -(math.Pow(-x+1, 2-lambda) - 1) / (2 - lambda)
	default:
		return -math.Log1p(-x)
	}
}

// logLikelihood is the profile log-likelihood of normality for the
// transformed values; the constant terms that do not depend on lambda are
// omitted since only the argmax matters.
func logLikelihood(vals []float64, lambda float64) float64 {
	n := float64(len(vals))
	transformed := make([]float64, len(vals))
	jacobian := 0.0
	for i, x := range vals {
		transformed[i] = yeoJohnson(x, lambda)
		jacobian += sign(x) * math.Log1p(math.Abs(x))
	}
	variance := stat.PopVariance(transformed, nil)
	if variance <= 0 {
		return math.Inf(-1)
	}
	return -n/2*math.Log(variance) + (lambda-1)*jacobian
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// estimateLambda maximizes the profile log-likelihood over the lambda
// interval by golden-section search. The likelihood is unimodal in lambda
// for non-degenerate data.
func estimateLambda(vals []float64) float64 {
	const invPhi = 0.6180339887498949
	const tol = 1e-8

	a, b := lambdaMin, lambdaMax
	c := b - (b-a)*invPhi
	d := a + (b-a)*invPhi
	fc := logLikelihood(vals, c)
	fd := logLikelihood(vals, d)
	for b-a > tol {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - (b-a)*invPhi
			fc = logLikelihood(vals, c)
		} else {
			a, c, fc = c, d, fd
			d = a + (b-a)*invPhi
			fd = logLikelihood(vals, d)
		}
	}
	return (a + b) / 2
}

func fitYeoJohnson(names []string, ds *dataset.Dataset, _ Params) (*Fitted, error) {
	fs := &Fitted{Kind: KindYeoJohnson, Columns: names, Lambdas: make(map[string]float64, len(names))}
	for _, name := range names {
		vals, err := trainingValues(ds, name)
		if err != nil {
			return nil, err
		}
		obs := observed(vals)
		if len(obs) < 2 {
			return nil, &InsufficientDataError{Column: name, Reason: "fewer than 2 non-missing values"}
		}
		if stat.PopVariance(obs, nil) == 0 {
			return nil, &InsufficientDataError{Column: name, Reason: "zero variance"}
		}
		fs.Lambdas[name] = estimateLambda(obs)
	}
	return fs, nil
}

// applyYeoJohnson replays the learned lambdas on any dataset, including
// values outside the training range.
func applyYeoJohnson(fs *Fitted, ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds
	for _, name := range fs.Columns {
		col, _ := out.Column(name)
		if col.Kind != dataset.Numeric {
			return nil, &dataset.SchemaError{Column: name, Msg: "numeric column required"}
		}
		lambda := fs.Lambdas[name]
		vals := make([]float64, len(col.Floats))
		for i, v := range col.Floats {
			if math.IsNaN(v) {
				vals[i] = v
				continue
			}
			vals[i] = yeoJohnson(v, lambda)
		}
		next, err := out.ReplaceColumn(name, dataset.NumericColumn(name, vals))
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
