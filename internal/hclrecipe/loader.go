// Package hclrecipe loads declarative recipe definitions from .hcl files
// and translates them into unfitted recipes. A definition is schema-free
// until bound to a concrete training dataset.
package hclrecipe

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/featurebake/internal/catalog"
	"github.com/vk/featurebake/internal/ctxlog"
	"github.com/vk/featurebake/internal/dataset"
	"github.com/vk/featurebake/internal/fsutil"
	"github.com/vk/featurebake/internal/recipe"
	"github.com/vk/featurebake/internal/selector"
	"github.com/vk/featurebake/internal/step"
)

// Definition is the format-agnostic result of loading one `recipe` block:
// a name, the outcome column designation, and the ordered unfitted steps.
type Definition struct {
	Name    string
	Outcome string
	Steps   []step.Step
}

// Bind builds the column catalog from a training dataset's schema and
// attaches the definition's steps, yielding an unfitted recipe.
func (d *Definition) Bind(ds *dataset.Dataset) (*recipe.Recipe, error) {
	cat, err := catalog.Build(ds, d.Outcome)
	if err != nil {
		return nil, err
	}
	r := recipe.New(cat)
	for _, s := range d.Steps {
		r = r.AddStep(s)
	}
	return r, nil
}

// Loader parses recipe .hcl files.
type Loader struct{}

// NewLoader creates a new recipe file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every .hcl file under path (a single file or a directory)
// and decodes all recipe blocks found, in file order.
func (l *Loader) Load(ctx context.Context, path string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("error accessing recipe path %s: %w", path, err)
	}
	logger.Debug("Discovered recipe files.", "count", len(files))

	parser := hclparse.NewParser()
	var defs []*Definition
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse recipe file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode recipe file %s: %w", file, diags)
		}

		for _, block := range root.Recipes {
			def, err := translateRecipe(block)
			if err != nil {
				return nil, fmt.Errorf("recipe %q in %s: %w", block.Name, file, err)
			}
			defs = append(defs, def)
		}
	}
	logger.Debug("Recipe loading complete.", "recipes", len(defs))
	return defs, nil
}

// translateRecipe converts a decoded recipe block into the agnostic model.
func translateRecipe(block *recipeBlock) (*Definition, error) {
	if block.Outcome == "" {
		return nil, fmt.Errorf("outcome column must be set")
	}
	def := &Definition{Name: block.Name, Outcome: block.Outcome}
	for i, sb := range block.Steps {
		s, err := translateStep(sb)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, sb.Kind, err)
		}
		def.Steps = append(def.Steps, s)
	}
	return def, nil
}

func translateStep(sb *stepBlock) (step.Step, error) {
	kind, err := step.ParseKind(sb.Kind)
	if err != nil {
		return step.Step{}, err
	}
	sel, err := translateSelector(sb)
	if err != nil {
		return step.Step{}, err
	}
	params, err := translateParams(sb, kind)
	if err != nil {
		return step.Step{}, err
	}
	return step.Step{Kind: kind, Select: sel, Params: params}, nil
}

// translateSelector maps the `select` shorthand or an explicit `columns`
// list to a selector value.
func translateSelector(sb *stepBlock) (selector.Selector, error) {
	if len(sb.Columns) > 0 {
		if sb.Select != "" {
			return nil, fmt.Errorf("select and columns are mutually exclusive")
		}
		return selector.ByName(sb.Columns...), nil
	}
	switch sb.Select {
	case "all_predictors":
		return selector.AllPredictors(), nil
	case "all_outcomes":
		return selector.AllOutcomes(), nil
	case "all_numeric":
		return selector.AllNumeric(), nil
	case "all_nominal":
		return selector.AllNominal(), nil
	case "numeric_predictors":
		return selector.NumericPredictors(), nil
	case "nominal_predictors":
		return selector.NominalPredictors(), nil
	case "":
		return nil, fmt.Errorf("either select or columns must be set")
	default:
		return nil, fmt.Errorf("unknown selector %q", sb.Select)
	}
}
