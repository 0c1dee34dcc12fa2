package units

import (
	"errors"
	"testing"

	"container_loading/internal/app/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertInchesToCentimeters(t *testing.T) {
	got, err := Convert(100, Inch, Centimeter)
	require.NoError(t, err)
	assert.Equal(t, 254.0, got)
}

func TestConvertKnownFactors(t *testing.T) {
	cases := []struct {
		value    float64
		from, to Unit
		want     float64
	}{
		{1, Meter, Centimeter, 100},
		{590, Centimeter, Meter, 5.9},
		{1, Foot, Inch, 12},
		{25, Millimeter, Centimeter, 2.5},
		{1, Pound, Kilogram, 0.45359237},
		{2.5, Tonne, Kilogram, 2500},
		{500, Gram, Kilogram, 0.5},
	}
	for _, tc := range cases {
		got, err := Convert(tc.value, tc.from, tc.to)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9, "%v %s -> %s", tc.value, tc.from, tc.to)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	values := []float64{0.001, 1, 12.5, 239, 590.25, 28000, 1e6}
	families := [][]Unit{
		{Millimeter, Centimeter, Meter, Inch, Foot},
		{Gram, Kilogram, Pound, Tonne},
	}
	for _, family := range families {
		for _, from := range family {
			for _, to := range family {
				for _, v := range values {
					there, err := Convert(v, from, to)
					require.NoError(t, err)
					back, err := Convert(there, to, from)
					require.NoError(t, err)
					assert.InEpsilon(t, v, back, 1e-12, "%v %s -> %s -> %s", v, from, to, from)
				}
			}
		}
	}
}

func TestConvertAcrossFamiliesFails(t *testing.T) {
	_, err := Convert(1, Centimeter, Kilogram)

	var unitErr *apperr.InvalidUnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Equal(t, "cm", unitErr.From)
	assert.Equal(t, "kg", unitErr.To)
}

func TestConvertUnknownUnit(t *testing.T) {
	_, err := Convert(1, Unit("furlong"), Centimeter)

	var unitErr *apperr.InvalidUnitError
	require.True(t, errors.As(err, &unitErr))
	assert.Equal(t, "furlong", unitErr.Unit)
}

func TestParse(t *testing.T) {
	cases := map[string]Unit{
		"cm":     Centimeter,
		" CM ":   Centimeter,
		"inches": Inch,
		"Lbs":    Pound,
		"kg":     Kilogram,
		"metres": Meter,
	}
	for token, want := range cases {
		got, err := Parse(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}

	_, err := Parse("parsec")
	assert.Equal(t, "invalid_unit", apperr.Kind(err))
}

func TestParseFamily(t *testing.T) {
	u, err := ParseLength("in")
	require.NoError(t, err)
	assert.Equal(t, Length, u.Family())

	_, err = ParseLength("kg")
	assert.Equal(t, "invalid_unit", apperr.Kind(err))

	_, err = ParseMass("m")
	assert.Equal(t, "invalid_unit", apperr.Kind(err))
}

func TestCBMTo(t *testing.T) {
	got, err := CBMTo(1, Centimeter)
	require.NoError(t, err)
	assert.InDelta(t, 1e6, got, 1e-6)

	got, err = CBMTo(1, Foot)
	require.NoError(t, err)
	assert.InDelta(t, 35.3146667, got, 1e-6)

	_, err = CBMTo(1, Kilogram)
	assert.Error(t, err)

	assert.InDelta(t, 0.25, CubicCentimetersToCBM(100*50*50), 1e-12)
}
