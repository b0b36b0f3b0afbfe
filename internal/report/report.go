// Package report renders read-only, human-readable summaries of catalogs
// and fitted recipes. It never mutates what it inspects.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/vk/featurebake/internal/catalog"
	"github.com/vk/featurebake/internal/recipe"
	"github.com/vk/featurebake/internal/step"
)

// WriteCatalog prints the role table of a catalog.
func WriteCatalog(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tKIND\tROLE")
	for _, e := range cat.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Kind, e.Role)
	}
	return tw.Flush()
}

// WriteFitted prints each fitted step with its learned parameters.
func WriteFitted(w io.Writer, p *recipe.Prepared) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, fs := range p.FittedSteps() {
		fmt.Fprintf(tw, "step %d (%s)\t%s\n", i+1, fs.Kind, summarize(fs))
	}
	for _, warning := range p.Warnings() {
		fmt.Fprintf(tw, "warning\t%s\n", warning)
	}
	return tw.Flush()
}

// summarize renders one fitted state's learned parameters on a single line.
func summarize(fs *step.Fitted) string {
	switch fs.Kind {
	case step.KindCenter:
		return perColumn(fs.Columns, func(c string) string { return fmt.Sprintf("mean=%.4g", fs.Means[c]) })
	case step.KindScale:
		return perColumn(fs.Columns, func(c string) string { return fmt.Sprintf("sd=%.4g", fs.Stdevs[c]) })
	case step.KindNormalize:
		return perColumn(fs.Columns, func(c string) string {
			return fmt.Sprintf("mean=%.4g sd=%.4g", fs.Means[c], fs.Stdevs[c])
		})
	case step.KindYeoJohnson:
		return perColumn(fs.Columns, func(c string) string { return fmt.Sprintf("lambda=%.4g", fs.Lambdas[c]) })
	case step.KindCorrFilter:
		if len(fs.Drop) == 0 {
			return fmt.Sprintf("threshold=%.3g, nothing dropped", fs.Threshold)
		}
		return fmt.Sprintf("threshold=%.3g, dropping %s", fs.Threshold, strings.Join(fs.Drop, ", "))
	case step.KindEncode:
		mode := "dummy"
		if fs.OneHot {
			mode = "one-hot"
		}
		return mode + " " + perColumn(fs.Columns, func(c string) string {
			return fmt.Sprintf("categories=[%s]", strings.Join(fs.Categories[c], " "))
		})
	default:
		return ""
	}
}

func perColumn(names []string, f func(string) string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	parts := make([]string, len(sorted))
	for i, name := range sorted {
		parts[i] = name + ": " + f(name)
	}
	return strings.Join(parts, "; ")
}
