// Package costing itemizes the cost of shipping one container.
package costing

import (
	"math"

	"container_loading/internal/app/apperr"
)

type ComponentType string

const (
	TypeRental        ComponentType = "rental"
	TypeHandling      ComponentType = "handling"
	TypeDocumentation ComponentType = "documentation"
	TypeInsurance     ComponentType = "insurance"
)

// ContainerInput carries the container type's flat rental cost.
type ContainerInput struct {
	RentalCost float64
}

// RouteInput carries per-route cost parameters. InsuranceRate is a fraction
// of cargo value (0.005 = 0.5%).
type RouteInput struct {
	BaseHandlingCost float64
	DocumentationFee float64
	InsuranceRate    float64
}

type Input struct {
	Container ContainerInput
	// Route is optional.
	Route *RouteInput
	// CargoValue is optional; insurance is itemized only when it and Route are set.
	CargoValue *float64
}

type Component struct {
	Name   string        `json:"component_name"`
	Type   ComponentType `json:"component_type"`
	Amount float64       `json:"cost_amount"`
}

type Breakdown struct {
	Components []Component `json:"components"`
	Total      float64     `json:"total_cost"`
}

// Find returns the component of type t, if present.
func (b Breakdown) Find(t ComponentType) (Component, bool) {
	for _, c := range b.Components {
		if c.Type == t {
			return c, true
		}
	}
	return Component{}, false
}

func Validate(in Input) error {
	if in.Container.RentalCost < 0 {
		return &apperr.ValidationError{Field: "rental_cost", Reason: "must not be negative"}
	}
	if in.CargoValue != nil && *in.CargoValue < 0 {
		return &apperr.ValidationError{Field: "cargo_value", Reason: "must not be negative"}
	}
	if r := in.Route; r != nil {
		if r.BaseHandlingCost < 0 {
			return &apperr.ValidationError{Field: "base_handling_cost", Reason: "must not be negative"}
		}
		if r.DocumentationFee < 0 {
			return &apperr.ValidationError{Field: "documentation_fee", Reason: "must not be negative"}
		}
		if r.InsuranceRate < 0 {
			return &apperr.ValidationError{Field: "insurance_rate", Reason: "must not be negative"}
		}
	}
	return nil
}

// Compose builds the itemized breakdown. Amounts are rounded to cents and
// Total is the sum of the rounded components.
func Compose(in Input) (Breakdown, error) {
	if err := Validate(in); err != nil {
		return Breakdown{}, err
	}

	var handling, documentation float64
	if in.Route != nil {
		handling = in.Route.BaseHandlingCost
		documentation = in.Route.DocumentationFee
	}

	b := Breakdown{Components: []Component{
		{Name: "Rental", Type: TypeRental, Amount: roundMoney(in.Container.RentalCost)},
		{Name: "Handling", Type: TypeHandling, Amount: roundMoney(handling)},
		{Name: "Documentation", Type: TypeDocumentation, Amount: roundMoney(documentation)},
	}}

	if in.Route != nil && in.CargoValue != nil {
		b.Components = append(b.Components, Component{
			Name:   "Insurance",
			Type:   TypeInsurance,
			Amount: roundMoney(*in.CargoValue * in.Route.InsuranceRate),
		})
	}

	b.Total = Sum(b.Components)
	return b, nil
}

// Sum adds component amounts in whole cents, so the total equals the rows to
// the cent regardless of float error in the addition.
func Sum(components []Component) float64 {
	var cents int64
	for _, c := range components {
		cents += toCents(c.Amount)
	}
	return float64(cents) / 100
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func roundMoney(v float64) float64 {
	return float64(toCents(v)) / 100
}
