package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// toFloat coerces an attribute value to a float64, accepting numeric strings.
func toFloat(val cty.Value) (float64, error) {
	if val.IsNull() {
		return 0, fmt.Errorf("value must not be null")
	}
	if !val.IsWhollyKnown() {
		return 0, fmt.Errorf("value must be known")
	}
	converted, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %s to number: %w", val.Type().FriendlyName(), err)
	}
	var f float64
	if err := gocty.FromCtyValue(converted, &f); err != nil {
		return 0, err
	}
	return f, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
