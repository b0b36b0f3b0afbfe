// Package step implements the closed set of transformation kinds a recipe
// can contain. Every kind follows the same two-phase contract: Fit learns
// numeric state from training columns only, Apply replays that frozen state
// against any dataset. Adding a kind means adding one constant and one entry
// in the dispatch table.
package step

import (
	"fmt"

	"github.com/vk/featurebake/internal/dataset"
	"github.com/vk/featurebake/internal/selector"
)

// Kind identifies a transformation operation.
type Kind int

const (
	KindCenter Kind = iota
	KindScale
	KindNormalize
	KindYeoJohnson
	KindCorrFilter
	KindEncode
)

// String implements fmt.Stringer; the names double as the step labels in
// recipe files.
func (k Kind) String() string {
	switch k {
	case KindCenter:
		return "center"
	case KindScale:
		return "scale"
	case KindNormalize:
		return "normalize"
	case KindYeoJohnson:
		return "yeo_johnson"
	case KindCorrFilter:
		return "corr_filter"
	case KindEncode:
		return "encode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a recipe-file step label to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindCenter, KindScale, KindNormalize, KindYeoJohnson, KindCorrFilter, KindEncode} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown step kind %q", s)
}

// DefaultCorrThreshold is the correlation cutoff used when a corr_filter
// step does not set one.
const DefaultCorrThreshold = 0.9

// Params carries the operation-specific settings of an unfitted step.
type Params struct {
	// Threshold is the absolute Pearson correlation above which corr_filter
	// drops a column. Zero means DefaultCorrThreshold.
	Threshold float64
	// OneHot makes encode emit one indicator per category instead of the
	// default all-but-first dummy set.
	OneHot bool
}

// Step is a single unfitted, declarative transformation: a kind, a column
// selector, and parameters. Immutable once added to a recipe.
type Step struct {
	Kind   Kind
	Select selector.Selector
	Params Params
}

// Center declares a mean-subtraction step.
func Center(sel selector.Selector) Step { return Step{Kind: KindCenter, Select: sel} }

// Scale declares a divide-by-sample-stdev step.
func Scale(sel selector.Selector) Step { return Step{Kind: KindScale, Select: sel} }

// Normalize declares a fused center+scale step.
func Normalize(sel selector.Selector) Step { return Step{Kind: KindNormalize, Select: sel} }

// YeoJohnson declares a Yeo-Johnson power transform step.
func YeoJohnson(sel selector.Selector) Step { return Step{Kind: KindYeoJohnson, Select: sel} }

// CorrFilter declares a pairwise-correlation column filter. threshold <= 0
// selects the default.
func CorrFilter(sel selector.Selector, threshold float64) Step {
	return Step{Kind: KindCorrFilter, Select: sel, Params: Params{Threshold: threshold}}
}

// Encode declares a categorical indicator-encoding step.
func Encode(sel selector.Selector, oneHot bool) Step {
	return Step{Kind: KindEncode, Select: sel, Params: Params{OneHot: oneHot}}
}

// Fitted is the immutable result of fitting one step: the kind, the column
// names frozen at fit time, and the learned state the kind needs. Only the
// fields relevant to the kind are populated.
type Fitted struct {
	Kind    Kind
	Columns []string

	Means  map[string]float64
	Stdevs map[string]float64

	Lambdas map[string]float64

	Threshold float64
	Drop      []string

	Categories map[string][]string
	OneHot     bool
}

// InsufficientDataError reports that a fit could not compute a required
// statistic from the training data.
type InsufficientDataError struct {
	Column string
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data in column %q: %s", e.Column, e.Reason)
}

// ColumnMissingError reports that an apply-time dataset lacks a column the
// fitted state requires.
type ColumnMissingError struct {
	Column string
}

func (e *ColumnMissingError) Error() string {
	return fmt.Sprintf("column %q required by fitted step is missing", e.Column)
}

type kindFuncs struct {
	fit   func(names []string, ds *dataset.Dataset, p Params) (*Fitted, error)
	apply func(fs *Fitted, ds *dataset.Dataset) (*dataset.Dataset, error)
}

// kinds is the closed dispatch table over the step-kind variants.
var kinds = map[Kind]kindFuncs{
	KindCenter:     {fit: fitCenter, apply: applyMoments},
	KindScale:      {fit: fitScale, apply: applyMoments},
	KindNormalize:  {fit: fitNormalize, apply: applyMoments},
	KindYeoJohnson: {fit: fitYeoJohnson, apply: applyYeoJohnson},
	KindCorrFilter: {fit: fitCorrFilter, apply: applyCorrFilter},
	KindEncode:     {fit: fitEncode, apply: applyEncode},
}

// Fit learns a Fitted state for the kind from exactly the named columns of
// the training dataset. An empty name list yields a no-op Fitted state.
func Fit(k Kind, names []string, ds *dataset.Dataset, p Params) (*Fitted, error) {
	fns, ok := kinds[k]
	if !ok {
		return nil, fmt.Errorf("unknown step kind %v", k)
	}
	return fns.fit(names, ds, p)
}

// Apply replays a fitted state against a dataset, returning a new dataset.
// It never mutates its inputs and reads no state beyond its arguments.
func Apply(fs *Fitted, ds *dataset.Dataset) (*dataset.Dataset, error) {
	if len(fs.Columns) == 0 {
		return ds, nil
	}
	for _, name := range fs.Columns {
		if _, ok := ds.Column(name); !ok {
			return nil, &ColumnMissingError{Column: name}
		}
	}
	return kinds[fs.Kind].apply(fs, ds)
}

// trainingValues extracts a numeric training column for a fit.
func trainingValues(ds *dataset.Dataset, name string) ([]float64, error) {
	col, ok := ds.Column(name)
	if !ok {
		return nil, &ColumnMissingError{Column: name}
	}
	if col.Kind != dataset.Numeric {
		return nil, &dataset.SchemaError{Column: name, Msg: "numeric column required"}
	}
	return col.Floats, nil
}
