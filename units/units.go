/*package units implements the small unit algebra needed to make
heterogeneous table columns commensurable. A Unit is a numeric factor times a
product of named base units with integer exponents. Named units expand through
a fixed alias table (e.g. "pb" is 1000 fb) before any arithmetic, so two units
built from different aliases of the same base compare correctly.
*/
package units

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDimension is returned when a unit that still carries base-unit
// dimensions is asked for its scalar value.
var ErrDimension = errors.New("unit is not dimensionless")

// definition is the expansion of a named unit: a numeric factor times a
// product of further unit names. Names absent from the table are base units.
type definition struct {
	factor float64
	units  []string
}

var definitions = map[string]definition{
	"":   {1, nil},
	"%":  {0.01, nil},
	"pb": {1000, []string{"fb"}},
}

// Unit is an immutable product of a numeric factor and base units raised to
// integer powers. The zero value is not valid; use One, Scale or Of.
type Unit struct {
	factor float64
	exps   map[string]int
}

// One returns the dimensionless unit 1.
func One() Unit {
	return Unit{factor: 1}
}

// Scale returns the dimensionless unit equal to f.
func Scale(f float64) Unit {
	return Unit{factor: f}
}

// Of returns the unit named by s, recursively expanded through the alias
// table. Names which have no definition, like "fb" or "GeV", are base units.
func Of(s string) Unit {
	u := Unit{factor: 1}
	u.mulName(s, +1)
	return u
}

func (u *Unit) mulName(s string, sign int) {
	if def, ok := definitions[s]; ok {
		if sign > 0 {
			u.factor *= def.factor
		} else {
			u.factor /= def.factor
		}
		for _, name := range def.units {
			u.mulName(name, sign)
		}
		return
	}
	if u.exps == nil {
		u.exps = map[string]int{}
	}
	u.exps[s] += sign
}

func (u Unit) clone() Unit {
	out := Unit{factor: u.factor}
	if len(u.exps) > 0 {
		out.exps = make(map[string]int, len(u.exps))
		for k, v := range u.exps {
			out.exps[k] = v
		}
	}
	return out
}

// Mul returns the product of u and v.
func (u Unit) Mul(v Unit) Unit {
	out := u.clone()
	out.factor *= v.factor
	for k, e := range v.exps {
		if out.exps == nil {
			out.exps = map[string]int{}
		}
		out.exps[k] += e
	}
	return out
}

// Inv returns the inverse of u.
func (u Unit) Inv() Unit {
	out := Unit{factor: 1 / u.factor}
	if len(u.exps) > 0 {
		out.exps = make(map[string]int, len(u.exps))
		for k, e := range u.exps {
			out.exps[k] = -e
		}
	}
	return out
}

// Div returns u divided by v.
func (u Unit) Div(v Unit) Unit {
	return u.Mul(v.Inv())
}

// Scalar reduces a dimensionless unit to its numeric factor. Units which
// still carry a nonzero base-unit exponent return ErrDimension: they cannot
// be converted to a bare number.
func (u Unit) Scalar() (float64, error) {
	for _, e := range u.exps {
		if e != 0 {
			return 0, fmt.Errorf("%w: %s", ErrDimension, u.String())
		}
	}
	return u.factor, nil
}

// String renders the unit for error messages, e.g. "1000 fb GeV^-1".
func (u Unit) String() string {
	names := make([]string, 0, len(u.exps))
	for name, e := range u.exps {
		if e == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	parts := []string{fmt.Sprintf("%g", u.factor)}
	for _, name := range names {
		if e := u.exps[name]; e == 1 {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("%s^%d", name, e))
		}
	}
	return strings.Join(parts, " ")
}
