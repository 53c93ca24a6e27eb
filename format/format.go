// Package format renders uncertainty-accompanied values as human-friendly
// text. The display precision follows the smaller of the two uncertainties,
// so the significant digits of the value always cover the uncertain ones.
package format

import (
	"fmt"
	"math"
)

// Value formats a central value with its absolute uncertainties, e.g.
// "(0.004508 +0.000099 -0.000095) pb". Values far from unity switch to
// scientific notation with a "*1eN" suffix. unc_m may be given with either
// sign; its magnitude is displayed. Pass unit == "" for a bare number.
func Value(value, uncP, uncM float64, unit string) string {
	delta := math.Min(math.Abs(uncP), math.Abs(uncM))
	suffix := ""
	if unit != "" {
		suffix = " " + unit
	}

	var body string
	if delta == 0 {
		body = fmt.Sprintf("%.6g +0 -0", value)
	} else {
		// int() truncates toward zero, so e.g. 0.5 and 5 both land in the
		// plain branch while 12345 and 0.00012 go scientific.
		vOrder := int(math.Log10(value))
		divider := 1.0
		var digits int
		if vOrder > 3 || vOrder < -3 {
			suffix = fmt.Sprintf("*1e%d", vOrder) + suffix
			divider = math.Pow(10, float64(vOrder))
			digits = max(int(-math.Log10(delta/value)-0.005)+2, 3)
		} else {
			extra := 2
			if delta > 1 {
				extra = 1
			}
			digits = max(int(-math.Log10(delta)-0.005)+extra, 0)
		}
		body = fmt.Sprintf("%.*f +%.*f -%.*f",
			digits, value/divider,
			digits, uncP/divider,
			digits, math.Abs(uncM/divider))
	}

	if suffix != "" {
		return "(" + body + ")" + suffix
	}
	return body
}

// Relative formats the value with its uncertainties as percentages of the
// central value, e.g. "0.0473 pb +19.14% -19.14%".
func Relative(value, uncP, uncM float64, unit string) string {
	suffix := ""
	if unit != "" {
		suffix = " " + unit
	}
	return fmt.Sprintf("%.6g%s +%.2f%% -%.2f%%",
		value, suffix, uncP/value*100, math.Abs(uncM)/value*100)
}
