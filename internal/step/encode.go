package step

import (
	"github.com/vk/featurebake/internal/dataset"
)

// fitEncode records, per selected categorical column, the distinct category
// values observed in training, in first-seen order.
func fitEncode(names []string, ds *dataset.Dataset, p Params) (*Fitted, error) {
	fs := &Fitted{
		Kind:       KindEncode,
		Columns:    names,
		Categories: make(map[string][]string, len(names)),
		OneHot:     p.OneHot,
	}
	for _, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			return nil, &ColumnMissingError{Column: name}
		}
		if col.Kind != dataset.Categorical {
			return nil, &dataset.SchemaError{Column: name, Msg: "categorical column required"}
		}
		seen := make(map[string]struct{}, 4)
		var cats []string
		for _, v := range col.Strings {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				cats = append(cats, v)
			}
		}
		if len(cats) == 0 {
			return nil, &InsufficientDataError{Column: name, Reason: "no category values observed"}
		}
		fs.Categories[name] = cats
	}
	return fs, nil
}

// applyEncode replaces each source column with 0/1 indicator columns named
// <column>_<category>, spliced in at the source column's position. One-hot
// keeps every training category; dummy encoding omits the first. Categories
// unseen in training yield all-zero indicator rows.
func applyEncode(fs *Fitted, ds *dataset.Dataset) (*dataset.Dataset, error) {
	out := ds
	for _, name := range fs.Columns {
		col, _ := out.Column(name)
		if col.Kind != dataset.Categorical {
			return nil, &dataset.SchemaError{Column: name, Msg: "categorical column required"}
		}
		cats := fs.Categories[name]
		if !fs.OneHot {
			cats = cats[1:]
		}
		indicators := make([]dataset.Column, len(cats))
		for ci, cat := range cats {
			vals := make([]float64, len(col.Strings))
			for i, v := range col.Strings {
				if v == cat {
					vals[i] = 1
				}
			}
			indicators[ci] = dataset.NumericColumn(name+"_"+cat, vals)
		}
		next, err := out.SpliceColumn(name, indicators)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
