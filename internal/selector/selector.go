// Package selector provides composable predicates over a column catalog.
// A selector is resolved freshly at fit time against the catalog of the
// dataset being fitted, never cached across fits.
package selector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/featurebake/internal/catalog"
	"github.com/vk/featurebake/internal/dataset"
)

// Selector is a pure predicate over catalog entries. Resolution order is
// always the catalog's column order, so a selector yields a deterministic
// name list.
type Selector interface {
	Matches(e catalog.Entry) bool
	fmt.Stringer
}

// Resolve returns the names of all catalog entries the selector matches, in
// catalog column order. An empty result is not an error; the step using the
// selector becomes a no-op for that fit.
func Resolve(sel Selector, cat *catalog.Catalog) []string {
	var names []string
	for _, e := range cat.Entries() {
		if sel.Matches(e) {
			names = append(names, e.Name)
		}
	}
	return names
}

type roleSelector struct{ role catalog.Role }

func (s roleSelector) Matches(e catalog.Entry) bool { return e.Role == s.role }
func (s roleSelector) String() string               { return "all_" + s.role.String() + "s" }

// AllPredictors matches every column with role predictor.
func AllPredictors() Selector { return roleSelector{role: catalog.Predictor} }

// AllOutcomes matches every column with role outcome.
func AllOutcomes() Selector { return roleSelector{role: catalog.Outcome} }

type kindSelector struct{ kind dataset.Kind }

func (s kindSelector) Matches(e catalog.Entry) bool { return e.Kind == s.kind }
func (s kindSelector) String() string               { return "all_" + s.kind.String() }

// AllNumeric matches every numeric column regardless of role.
func AllNumeric() Selector { return kindSelector{kind: dataset.Numeric} }

// AllNominal matches every categorical column regardless of role.
func AllNominal() Selector { return kindSelector{kind: dataset.Categorical} }

type nameSelector struct{ names map[string]struct{} }

func (s nameSelector) Matches(e catalog.Entry) bool {
	_, ok := s.names[e.Name]
	return ok
}

func (s nameSelector) String() string {
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return "by_name(" + strings.Join(names, ",") + ")"
}

// ByName matches exactly the given column names. Names absent from the
// catalog simply never match.
func ByName(names ...string) Selector {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return nameSelector{names: set}
}

type minusSelector struct{ a, b Selector }

func (s minusSelector) Matches(e catalog.Entry) bool { return s.a.Matches(e) && !s.b.Matches(e) }
func (s minusSelector) String() string               { return s.a.String() + " - " + s.b.String() }

// Minus is set difference: columns matched by a but not by b.
func Minus(a, b Selector) Selector { return minusSelector{a: a, b: b} }

type andSelector struct{ a, b Selector }

func (s andSelector) Matches(e catalog.Entry) bool { return s.a.Matches(e) && s.b.Matches(e) }
func (s andSelector) String() string               { return s.a.String() + " & " + s.b.String() }

// And is set intersection.
func And(a, b Selector) Selector { return andSelector{a: a, b: b} }

type unionSelector struct{ a, b Selector }

func (s unionSelector) Matches(e catalog.Entry) bool { return s.a.Matches(e) || s.b.Matches(e) }
func (s unionSelector) String() string               { return s.a.String() + " | " + s.b.String() }

// Union is set union.
func Union(a, b Selector) Selector { return unionSelector{a: a, b: b} }

// NumericPredictors matches numeric columns with role predictor, the most
// common selection in practice.
func NumericPredictors() Selector { return And(AllNumeric(), AllPredictors()) }

// NominalPredictors matches categorical columns with role predictor.
func NominalPredictors() Selector { return And(AllNominal(), AllPredictors()) }
