// Package units converts cargo and container measurements between length and
// mass units. Everything downstream works in centimetres and kilograms.
package units

import (
	"strings"

	"container_loading/internal/app/apperr"
)

type Unit string

const (
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Meter      Unit = "m"
	Inch       Unit = "in"
	Foot       Unit = "ft"

	Gram     Unit = "g"
	Kilogram Unit = "kg"
	Pound    Unit = "lb"
	Tonne    Unit = "t"
)

type Family string

const (
	Length Family = "length"
	Mass   Family = "mass"
)

type unitInfo struct {
	family Family
	// factor converts one of this unit into the canonical unit of its family.
	factor float64
}

var table = map[Unit]unitInfo{
	Millimeter: {Length, 0.1},
	Centimeter: {Length, 1},
	Meter:      {Length, 100},
	Inch:       {Length, 2.54},
	Foot:       {Length, 30.48},

	Gram:     {Mass, 0.001},
	Kilogram: {Mass, 1},
	Pound:    {Mass, 0.45359237},
	Tonne:    {Mass, 1000},
}

var aliases = map[string]Unit{
	"millimeter": Millimeter, "millimeters": Millimeter, "millimetre": Millimeter, "millimetres": Millimeter,
	"centimeter": Centimeter, "centimeters": Centimeter, "centimetre": Centimeter, "centimetres": Centimeter,
	"meter": Meter, "meters": Meter, "metre": Meter, "metres": Meter,
	"inch": Inch, "inches": Inch, `"`: Inch,
	"foot": Foot, "feet": Foot, "'": Foot,
	"gram": Gram, "grams": Gram,
	"kilogram": Kilogram, "kilograms": Kilogram, "kgs": Kilogram,
	"pound": Pound, "pounds": Pound, "lbs": Pound,
	"tonne": Tonne, "tonnes": Tonne, "ton": Tonne,
}

// Parse normalizes a unit token. Unknown tokens yield *apperr.InvalidUnitError.
func Parse(token string) (Unit, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if _, ok := table[Unit(t)]; ok {
		return Unit(t), nil
	}
	if u, ok := aliases[t]; ok {
		return u, nil
	}
	return "", &apperr.InvalidUnitError{Unit: token}
}

// ParseLength parses token and requires it to be a length unit.
func ParseLength(token string) (Unit, error) {
	return parseFamily(token, Length)
}

// ParseMass parses token and requires it to be a mass unit.
func ParseMass(token string) (Unit, error) {
	return parseFamily(token, Mass)
}

func parseFamily(token string, family Family) (Unit, error) {
	u, err := Parse(token)
	if err != nil {
		return "", err
	}
	if table[u].family != family {
		return "", &apperr.InvalidUnitError{From: string(u), To: string(family)}
	}
	return u, nil
}

func (u Unit) Family() Family {
	return table[u].family
}

func (u Unit) String() string {
	return string(u)
}

// Convert converts value from one unit to another within the same family.
func Convert(value float64, from, to Unit) (float64, error) {
	fi, ok := table[from]
	if !ok {
		return 0, &apperr.InvalidUnitError{Unit: string(from)}
	}
	ti, ok := table[to]
	if !ok {
		return 0, &apperr.InvalidUnitError{Unit: string(to)}
	}
	if fi.family != ti.family {
		return 0, &apperr.InvalidUnitError{From: string(from), To: string(to)}
	}
	if from == to {
		return value, nil
	}
	return value * fi.factor / ti.factor, nil
}

// ToCentimeters converts a length in u to centimetres.
func ToCentimeters(value float64, u Unit) (float64, error) {
	return Convert(value, u, Centimeter)
}

// ToKilograms converts a mass in u to kilograms.
func ToKilograms(value float64, u Unit) (float64, error) {
	return Convert(value, u, Kilogram)
}

// CubicCentimetersToCBM converts cm³ to cubic metres.
func CubicCentimetersToCBM(v float64) float64 {
	return v / 1e6
}

// CBMTo expresses a volume in cubic metres as the cube of length unit u
// (m³ -> ft³ for u = ft, and so on).
func CBMTo(cbm float64, u Unit) (float64, error) {
	side, err := Convert(1, Meter, u)
	if err != nil {
		return 0, err
	}
	return cbm * side * side * side, nil
}
