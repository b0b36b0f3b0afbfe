package hclrecipe

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/featurebake/internal/step"
)

// translateParams decodes the kind-specific attributes left in the step
// block's remain body. Unknown attributes and attributes that do not belong
// to the step's kind are load-time errors.
func translateParams(sb *stepBlock, kind step.Kind) (step.Params, error) {
	var params step.Params

	attrs, diags := sb.Body.JustAttributes()
	if diags.HasErrors() {
		return params, diags
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return params, diags
		}
		switch name {
		case "threshold":
			if kind != step.KindCorrFilter {
				return params, fmt.Errorf("threshold is only valid on corr_filter steps")
			}
			if err := decodeAttr(val, cty.Number, &params.Threshold); err != nil {
				return params, fmt.Errorf("threshold: %w", err)
			}
			if params.Threshold <= 0 || params.Threshold > 1 {
				return params, fmt.Errorf("threshold must be in (0, 1], got %v", params.Threshold)
			}
		case "one_hot":
			if kind != step.KindEncode {
				return params, fmt.Errorf("one_hot is only valid on encode steps")
			}
			if err := decodeAttr(val, cty.Bool, &params.OneHot); err != nil {
				return params, fmt.Errorf("one_hot: %w", err)
			}
		default:
			return params, fmt.Errorf("unsupported argument %q", name)
		}
	}
	return params, nil
}

// decodeAttr converts a cty value to the wanted type and decodes it into a
// Go pointer.
func decodeAttr(val cty.Value, want cty.Type, target any) error {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}
