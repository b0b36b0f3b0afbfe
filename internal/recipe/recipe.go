// Package recipe composes unfitted steps into a declarative transformation
// plan, fits the plan once on training data, and replays the frozen result
// against any schema-compatible dataset.
package recipe

import (
	"github.com/vk/featurebake/internal/catalog"
	"github.com/vk/featurebake/internal/step"
)

// Recipe is a column catalog plus an ordered sequence of unfitted steps.
// It is purely declarative: building one touches no data beyond the schema
// inspection done when the catalog was built.
type Recipe struct {
	cat   *catalog.Catalog
	steps []step.Step
}

// New starts an empty recipe over the given catalog.
func New(cat *catalog.Catalog) *Recipe {
	return &Recipe{cat: cat}
}

// AddStep appends a step and returns the extended recipe as a new value;
// the receiver is left unchanged and remains valid.
func (r *Recipe) AddStep(s step.Step) *Recipe {
	steps := make([]step.Step, len(r.steps), len(r.steps)+1)
	copy(steps, r.steps)
	return &Recipe{cat: r.cat, steps: append(steps, s)}
}

// Catalog returns the role/kind schema the recipe is bound to.
func (r *Recipe) Catalog() *catalog.Catalog { return r.cat }

// Steps returns the ordered unfitted steps.
func (r *Recipe) Steps() []step.Step { return r.steps }
