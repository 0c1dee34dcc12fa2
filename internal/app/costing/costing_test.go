package costing

import (
	"math"
	"testing"

	"container_loading/internal/app/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestComposeWithRouteAndValue(t *testing.T) {
	b, err := Compose(Input{
		Container:  ContainerInput{RentalCost: 1500},
		Route:      &RouteInput{BaseHandlingCost: 350, DocumentationFee: 75, InsuranceRate: 0.005},
		CargoValue: floatPtr(100_000_000),
	})
	require.NoError(t, err)

	require.Len(t, b.Components, 4)
	insurance, ok := b.Find(TypeInsurance)
	require.True(t, ok)
	nearlyEqual(t, "insurance", insurance.Amount, 500_000)
	nearlyEqual(t, "total", b.Total, 1500+350+75+500_000)
}

func TestComposeSkipsInsuranceWithoutValue(t *testing.T) {
	b, err := Compose(Input{
		Container: ContainerInput{RentalCost: 1500},
		Route:     &RouteInput{BaseHandlingCost: 350, DocumentationFee: 75, InsuranceRate: 0.005},
	})
	require.NoError(t, err)

	_, ok := b.Find(TypeInsurance)
	assert.False(t, ok)
	require.Len(t, b.Components, 3)
	nearlyEqual(t, "total", b.Total, 1925)
}

func TestComposeWithoutRoute(t *testing.T) {
	b, err := Compose(Input{
		Container:  ContainerInput{RentalCost: 2800},
		CargoValue: floatPtr(50_000),
	})
	require.NoError(t, err)

	handling, ok := b.Find(TypeHandling)
	require.True(t, ok)
	nearlyEqual(t, "handling", handling.Amount, 0)

	documentation, ok := b.Find(TypeDocumentation)
	require.True(t, ok)
	nearlyEqual(t, "documentation", documentation.Amount, 0)

	_, ok = b.Find(TypeInsurance)
	assert.False(t, ok, "insurance needs a route rate")
	nearlyEqual(t, "total", b.Total, 2800)
}

func TestComposeRoundsComponentsBeforeSumming(t *testing.T) {
	b, err := Compose(Input{
		Container:  ContainerInput{RentalCost: 100.004},
		Route:      &RouteInput{BaseHandlingCost: 0.004, DocumentationFee: 0.004, InsuranceRate: 0.0001},
		CargoValue: floatPtr(45),
	})
	require.NoError(t, err)

	nearlyEqual(t, "rental", b.Components[0].Amount, 100)
	nearlyEqual(t, "handling", b.Components[1].Amount, 0)
	nearlyEqual(t, "insurance", b.Components[3].Amount, 0)
	nearlyEqual(t, "total", b.Total, Sum(b.Components))
}

func TestComposeTotalMatchesComponents(t *testing.T) {
	rates := []float64{0, 0.001, 0.0035, 0.005, 0.0125}
	values := []float64{0, 1, 999.99, 12_345.67, 100_000_000}
	for _, rate := range rates {
		for _, value := range values {
			b, err := Compose(Input{
				Container:  ContainerInput{RentalCost: 1234.56},
				Route:      &RouteInput{BaseHandlingCost: 410.1, DocumentationFee: 65.35, InsuranceRate: rate},
				CargoValue: floatPtr(value),
			})
			require.NoError(t, err)

			var cents int64
			for _, c := range b.Components {
				cents += int64(math.Round(c.Amount * 100))
			}
			assert.Equal(t, cents, int64(math.Round(b.Total*100)))
			assert.Equal(t, float64(cents)/100, b.Total)
		}
	}
}

func TestComposeRejectsNegativeInputs(t *testing.T) {
	cases := map[string]Input{
		"rental_cost":        {Container: ContainerInput{RentalCost: -1}},
		"cargo_value":        {CargoValue: floatPtr(-5)},
		"base_handling_cost": {Route: &RouteInput{BaseHandlingCost: -1}},
		"documentation_fee":  {Route: &RouteInput{DocumentationFee: -1}},
		"insurance_rate":     {Route: &RouteInput{InsuranceRate: -0.1}},
	}
	for field, in := range cases {
		_, err := Compose(in)
		var ve *apperr.ValidationError
		require.ErrorAs(t, err, &ve, field)
		assert.Equal(t, field, ve.Field)
	}
}

func TestSumIsExactToTheCent(t *testing.T) {
	assert.Equal(t, 0.3, Sum([]Component{{Amount: 0.1}, {Amount: 0.2}}))

	dimes := make([]Component, 10)
	for i := range dimes {
		dimes[i].Amount = 0.1
	}
	assert.Equal(t, 1.0, Sum(dimes))

	assert.Equal(t, 501_925.01, Sum([]Component{
		{Amount: 1500}, {Amount: 350}, {Amount: 75.01}, {Amount: 500_000},
	}))
}
