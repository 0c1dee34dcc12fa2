package service

import (
	"context"
	"math"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/ds"
)

func (s *CalculationService) ContainerTypes(ctx context.Context) ([]ds.ContainerType, error) {
	return s.store.GetContainerTypes(ctx)
}

func (s *CalculationService) ContainerType(ctx context.Context, id uint) (*ds.ContainerType, error) {
	row, err := s.store.GetContainerType(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &apperr.NotFoundError{Entity: "container type", ID: id}
	}
	return row, nil
}

func (s *CalculationService) ShippingRoutes(ctx context.Context) ([]ds.ShippingRoute, error) {
	return s.store.GetShippingRoutes(ctx)
}

func (s *CalculationService) ShippingRoute(ctx context.Context, id uint) (*ds.ShippingRoute, error) {
	row, err := s.store.GetShippingRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &apperr.NotFoundError{Entity: "shipping route", ID: id}
	}
	return row, nil
}

// CreateContainerType loads one container type into the catalog. Dimensions
// are cm and weights kg. A zero cubic capacity is derived from the dimensions.
func (s *CalculationService) CreateContainerType(ctx context.Context, row *ds.ContainerType) error {
	if row.Code == "" {
		return &apperr.ValidationError{Field: "code", Reason: "is required"}
	}
	for _, f := range []field{
		{"internal_length", row.InternalLength},
		{"internal_width", row.InternalWidth},
		{"internal_height", row.InternalHeight},
		{"max_payload", row.MaxPayload},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return &apperr.ValidationError{Field: f.name, Reason: "must be greater than zero"}
		}
	}
	if err := nonNegative([]field{
		{"tare_weight", row.TareWeight},
		{"cubic_capacity", row.CubicCapacity},
		{"rental_cost", row.RentalCost},
	}); err != nil {
		return err
	}
	if row.CubicCapacity == 0 {
		row.CubicCapacity = row.InternalLength * row.InternalWidth * row.InternalHeight / 1e6
	}
	row.ContainerTypeID = 0
	return s.store.CreateContainerType(ctx, row)
}

// CreateShippingRoute loads one route into the catalog.
func (s *CalculationService) CreateShippingRoute(ctx context.Context, row *ds.ShippingRoute) error {
	if row.OriginPort == "" {
		return &apperr.ValidationError{Field: "origin_port", Reason: "is required"}
	}
	if row.DestinationPort == "" {
		return &apperr.ValidationError{Field: "destination_port", Reason: "is required"}
	}
	if row.TransitDays < 0 {
		return &apperr.ValidationError{Field: "transit_days", Reason: "must not be negative"}
	}
	if err := nonNegative([]field{
		{"distance_km", row.DistanceKm},
		{"base_handling_cost", row.BaseHandlingCost},
		{"documentation_fee", row.DocumentationFee},
		{"insurance_rate", row.InsuranceRate},
	}); err != nil {
		return err
	}
	row.ShippingRouteID = 0
	return s.store.CreateShippingRoute(ctx, row)
}

type field struct {
	name  string
	value float64
}

func nonNegative(fields []field) error {
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &apperr.ValidationError{Field: f.name, Reason: "must not be negative"}
		}
	}
	return nil
}
