package hclrecipe

import "github.com/hashicorp/hcl/v2"

// stepBlock represents a `step` block inside a recipe file. The block label
// is the step kind; operation-specific parameters stay in the remain body
// and are decoded per kind.
type stepBlock struct {
	Kind    string   `hcl:"kind,label"`
	Select  string   `hcl:"select,optional"`
	Columns []string `hcl:"columns,optional"`
	Body    hcl.Body `hcl:",remain"`
}

// recipeBlock represents a top-level `recipe` block: the outcome column
// designation plus the ordered step list.
type recipeBlock struct {
	Name    string       `hcl:"name,label"`
	Outcome string       `hcl:"outcome"`
	Steps   []*stepBlock `hcl:"step,block"`
}

// fileRoot decodes all recipe blocks from one file.
type fileRoot struct {
	Recipes []*recipeBlock `hcl:"recipe,block"`
	Remain  hcl.Body       `hcl:",remain"`
}
