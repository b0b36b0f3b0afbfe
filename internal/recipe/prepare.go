package recipe

import (
	"context"
	"fmt"

	"github.com/vk/featurebake/internal/ctxlog"
	"github.com/vk/featurebake/internal/dataset"
	"github.com/vk/featurebake/internal/selector"
	"github.com/vk/featurebake/internal/step"
)

// StepError wraps a step-level failure with enough context to identify the
// offending step: its 1-based position and kind.
type StepError struct {
	Ordinal int
	Kind    step.Kind
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Ordinal, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Prepare fits every step of the recipe, in order, on the training dataset.
// Each step's selector is resolved against the catalog as extended by every
// earlier step's output, the step is fitted on the current dataset, and its
// apply output feeds the next step. The result carries the frozen fitted
// states and the fully transformed training data. Prepare fails fast on the
// first step error and returns no partial result.
func Prepare(ctx context.Context, r *Recipe, train *dataset.Dataset) (*Prepared, error) {
	logger := ctxlog.FromContext(ctx)

	current := train
	cat := r.Catalog()
	prepared := &Prepared{fitted: make([]*step.Fitted, 0, len(r.Steps()))}

	for i, s := range r.Steps() {
		ordinal := i + 1
		names := selector.Resolve(s.Select, cat)
		if len(names) == 0 {
			// Not fatal: the step is a no-op for this fit. Surface it on the
			// warning channel and on the prepared recipe.
			warning := fmt.Sprintf("step %d (%s): selector %s matched no columns", ordinal, s.Kind, s.Select)
			logger.Warn("Selector matched no columns; step is a no-op.", "step", ordinal, "kind", s.Kind.String())
			prepared.warnings = append(prepared.warnings, warning)
		}

		fitted, err := step.Fit(s.Kind, names, current, s.Params)
		if err != nil {
			return nil, &StepError{Ordinal: ordinal, Kind: s.Kind, Err: err}
		}
		next, err := step.Apply(fitted, current)
		if err != nil {
			return nil, &StepError{Ordinal: ordinal, Kind: s.Kind, Err: err}
		}
		logger.Debug("Fitted step.", "step", ordinal, "kind", s.Kind.String(), "columns", len(names))

		prepared.fitted = append(prepared.fitted, fitted)
		current = next
		cat = cat.Extend(current)
	}

	prepared.baked = current
	return prepared, nil
}
