package recipe

import (
	"context"

	"github.com/vk/featurebake/internal/ctxlog"
	"github.com/vk/featurebake/internal/dataset"
	"github.com/vk/featurebake/internal/step"
)

// Prepared is the immutable result of fitting a recipe on one training
// dataset: the ordered fitted step states plus the cached transformed
// training data. Safe to share read-only across concurrent bake calls.
type Prepared struct {
	fitted   []*step.Fitted
	baked    *dataset.Dataset
	warnings []string
}

// FittedSteps returns the ordered fitted states, one per recipe step.
// Read-only: callers must not mutate the returned states.
func (p *Prepared) FittedSteps() []*step.Fitted { return p.fitted }

// Warnings returns the non-fatal conditions observed during Prepare, such
// as selectors that matched no columns.
func (p *Prepared) Warnings() []string { return p.warnings }

// Source is the tagged input of Bake: either the cached training result or
// a concrete dataset. The tag keeps the skip-recomputation contract
// explicit instead of hiding it behind a nil parameter.
type Source struct {
	ds *dataset.Dataset
}

// Cached selects the transformed training data stored at Prepare time.
func Cached() Source { return Source{} }

// From selects a concrete dataset to transform.
func From(ds *dataset.Dataset) Source { return Source{ds: ds} }

// Bake resolves a Source against the prepared recipe. The cached source
// returns the stored training result without re-running any step; a
// concrete dataset is run left-to-right through every fitted state. Bake
// never mutates the prepared recipe or its input.
func (p *Prepared) Bake(ctx context.Context, src Source) (*dataset.Dataset, error) {
	if src.ds == nil {
		return p.baked, nil
	}
	logger := ctxlog.FromContext(ctx)

	current := src.ds
	for i, fs := range p.fitted {
		next, err := step.Apply(fs, current)
		if err != nil {
			return nil, &StepError{Ordinal: i + 1, Kind: fs.Kind, Err: err}
		}
		current = next
	}
	logger.Debug("Baked dataset.", "steps", len(p.fitted), "rows", current.Rows(), "columns", current.NumCols())
	return current, nil
}
