package env

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
)

// Unit is a TeX length unit.
type Unit string

const (
	Em Unit = "em"
	Ex Unit = "ex"
	Px Unit = "px"
	Pt Unit = "pt"
	Bp Unit = "bp"
	Pc Unit = "pc"
	Mu Unit = "mu"
	Cm Unit = "cm"
	Mm Unit = "mm"
	In Unit = "in"
	Sp Unit = "sp"
	Dd Unit = "dd"
	Cc Unit = "cc"
)

// pointsPer maps absolute units to TeX points.
var pointsPer = map[Unit]float64{
	Px: 1,
	Pt: 1,
	Bp: 72.27 / 72,
	Pc: 12,
	Cm: 72.27 / 2.54,
	Mm: 72.27 / 25.4,
	In: 72.27,
	Sp: 1.0 / 65536,
	Dd: 1238.0 / 1157,
	Cc: 12 * 1238.0 / 1157,
}

// ValidUnit reports whether u is a known unit.
func ValidUnit(u Unit) bool {
	if _, ok := pointsPer[u]; ok {
		return true
	}
	return u == Em || u == Ex || u == Mu
}

// Factor returns the size of one u in em under e. Font-relative units
// follow the current style; absolute units do not.
func (e Environment) Factor(u Unit) (float64, error) {
	switch u {
	case Em:
		return e.Quad(), nil
	case Ex:
		return e.XHeight(), nil
	case Mu:
		return e.Mu(), nil
	}
	if p, ok := pointsPer[u]; ok {
		return p * e.Point(), nil
	}
	return 0, errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q", string(u))
}

// Length is a dimension with its unit, as written in markup.
type Length struct {
	Value float64
	Unit  Unit
}

// In converts l to em under e.
func (l Length) In(e Environment) (float64, error) {
	f, err := e.Factor(l.Unit)
	if err != nil {
		return 0, err
	}
	return l.Value * f, nil
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + string(l.Unit)
}

var lengthRe = regexp.MustCompile(`^([+-]?\s*(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+))\s*([a-z]{2})$`)

// ParseLength reads a dimension such as "3pt", "-0.5em" or ".2 ex".
func ParseLength(raw string) (Length, error) {
	s := strings.TrimSpace(raw)
	m := lengthRe.FindStringSubmatch(s)
	if m == nil {
		if num := strings.TrimRight(s, "abcdefghijklmnopqrstuvwxyz"); num != s && num != "" {
			if _, err := strconv.ParseFloat(strings.ReplaceAll(num, " ", ""), 64); err == nil {
				return Length{}, errors.New(errors.ErrCodeInvalidUnit, "unknown unit in %q", raw)
			}
		}
		return Length{}, errors.New(errors.ErrCodeInvalidNumber, "invalid length %q", raw)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], " ", ""), 64)
	if err != nil {
		return Length{}, errors.Wrap(errors.ErrCodeInvalidNumber, err, "invalid length %q", raw)
	}
	u := Unit(m[2])
	if !ValidUnit(u) {
		return Length{}, errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q in %q", m[2], raw)
	}
	return Length{Value: v, Unit: u}, nil
}
