package service

import (
	"context"
	"encoding/json"
	"errors"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/costing"
	"container_loading/internal/app/ds"
	"container_loading/internal/app/loading"
	"container_loading/internal/app/metrics"
	"container_loading/internal/app/units"

	"github.com/sirupsen/logrus"
)

// Request is one calculation as entered by the user. Cargo dimensions are in
// DimensionUnit and the per-box weight in WeightUnit; both default to cm and kg.
type Request struct {
	Name            string   `json:"name"`
	Notes           string   `json:"notes"`
	ContainerTypeID uint     `json:"container_type_id"`
	ShippingRouteID *uint    `json:"shipping_route_id"`
	CargoLength     float64  `json:"cargo_length"`
	CargoWidth      float64  `json:"cargo_width"`
	CargoHeight     float64  `json:"cargo_height"`
	CargoWeight     float64  `json:"cargo_weight"`
	CargoQuantity   *int     `json:"cargo_quantity"`
	DimensionUnit   string   `json:"dimension_unit"`
	WeightUnit      string   `json:"weight_unit"`
	CargoValue      *float64 `json:"cargo_value"`
	AllowRotation   bool     `json:"allow_rotation"`
}

// Presentation repeats the totals in the units the request was entered in.
type Presentation struct {
	DimensionUnit string             `json:"dimension_unit"`
	WeightUnit    string             `json:"weight_unit"`
	TotalWeight   float64            `json:"total_weight"`
	TotalVolume   float64            `json:"total_volume"`
	VolumeUnit    string             `json:"volume_unit"`
	TotalCBM      float64            `json:"total_cbm"`
	PlacedBox     loading.Dimensions `json:"placed_box"`
}

type Result struct {
	CalculationID      uint                       `json:"calculation_id,omitempty"`
	Name               string                     `json:"name,omitempty"`
	ContainerType      ds.ContainerType           `json:"container_type"`
	ShippingRoute      *ds.ShippingRoute          `json:"shipping_route,omitempty"`
	Arrangement        loading.Arrangement        `json:"arrangement"`
	Layout             loading.Layout             `json:"layout"`
	WeightDistribution loading.WeightDistribution `json:"weight_distribution"`
	Visualization      loading.Visualization      `json:"visualization"`
	Costs              costing.Breakdown          `json:"costs"`
	Presentation       Presentation               `json:"presentation"`
}

// Record is a saved calculation with its children.
type Record struct {
	ds.ContainerCalculation
	Presentation Presentation `json:"presentation"`
}

type normalized struct {
	dimUnit    units.Unit
	weightUnit units.Unit
	input      loading.Input
}

// Preview computes a calculation without saving it.
//
// When the cargo does not fit the container the Result is still returned,
// with zero boxes, together with a *apperr.CargoTooLargeError.
func (s *CalculationService) Preview(ctx context.Context, req Request) (*Result, error) {
	res, _, err := s.compute(ctx, req)
	if res != nil {
		metrics.RecordCalculation("preview", string(res.Arrangement.Constraint))
	}
	return res, err
}

// Save computes the calculation and stores it with its cost components and
// loading plan. Nothing is stored when the computation fails.
func (s *CalculationService) Save(ctx context.Context, req Request) (*Result, error) {
	res, norm, err := s.compute(ctx, req)
	if err != nil {
		return res, err
	}

	calc, err := buildRecord(req, norm, res)
	if err != nil {
		return nil, err
	}
	id, err := s.store.SaveCalculation(ctx, calc)
	if err != nil {
		logrus.Errorf("save calculation: %v", err)
		return nil, err
	}
	res.CalculationID = id
	metrics.RecordCalculation("save", string(res.Arrangement.Constraint))
	logrus.WithFields(logrus.Fields{
		"calculation_id": id,
		"max_boxes":      res.Arrangement.MaxBoxes,
		"constraint":     res.Arrangement.Constraint,
		"total_cost":     res.Costs.Total,
	}).Info("calculation saved")
	return res, nil
}

// Get returns the saved calculation id with its cost components and loading plan.
func (s *CalculationService) Get(ctx context.Context, id uint) (*Record, error) {
	calc, err := s.store.GetCalculation(ctx, id)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, &apperr.NotFoundError{Entity: "calculation", ID: id}
	}

	components, err := s.store.GetCostComponents(ctx, id)
	if err != nil {
		return nil, err
	}
	plan, err := s.store.GetLoadingPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	calc.CostComponents = components
	calc.LoadingPlan = plan

	rec := &Record{ContainerCalculation: *calc}
	rec.Presentation, err = recordPresentation(calc)
	if err != nil {
		logrus.Warnf("calculation %d presentation: %v", id, err)
	}
	return rec, nil
}

// History returns saved calculations, newest first. A non-positive limit
// uses the default; larger limits are clamped.
func (s *CalculationService) History(ctx context.Context, limit int) ([]ds.ContainerCalculation, error) {
	if limit <= 0 {
		limit = s.opts.HistoryDefaultLimit
	}
	if limit > s.opts.HistoryMaxLimit {
		limit = s.opts.HistoryMaxLimit
	}
	return s.store.GetCalculationHistory(ctx, limit)
}

// Delete removes the calculation and its children.
func (s *CalculationService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteCalculation(ctx, id); err != nil {
		return err
	}
	logrus.Infof("calculation %d deleted", id)
	return nil
}

// compute validates req, looks up the catalog and runs both calculators.
// All validation happens before the first store call.
func (s *CalculationService) compute(ctx context.Context, req Request) (*Result, normalized, error) {
	norm, err := normalize(req)
	if err != nil {
		return nil, normalized{}, err
	}

	ct, err := s.ContainerType(ctx, req.ContainerTypeID)
	if err != nil {
		return nil, normalized{}, err
	}
	res := &Result{Name: req.Name, ContainerType: *ct}

	var route *costing.RouteInput
	if req.ShippingRouteID != nil {
		r, err := s.ShippingRoute(ctx, *req.ShippingRouteID)
		if err != nil {
			return nil, normalized{}, err
		}
		res.ShippingRoute = r
		route = &costing.RouteInput{
			BaseHandlingCost: r.BaseHandlingCost,
			DocumentationFee: r.DocumentationFee,
			InsuranceRate:    r.InsuranceRate,
		}
	}

	container := loading.Container{
		Internal: loading.Dimensions{
			Length: ct.InternalLength,
			Width:  ct.InternalWidth,
			Height: ct.InternalHeight,
		},
		MaxPayloadKg:     ct.MaxPayload,
		CubicCapacityCBM: ct.CubicCapacity,
	}

	arrangement, arrErr := loading.Arrange(container, norm.input)
	var tooLarge *apperr.CargoTooLargeError
	if arrErr != nil && !errors.As(arrErr, &tooLarge) {
		return nil, normalized{}, arrErr
	}
	res.Arrangement = arrangement
	res.Layout = arrangement.Layout()
	res.WeightDistribution = arrangement.WeightDistribution(container)
	res.Visualization = arrangement.Visualization(container)

	res.Costs, err = costing.Compose(costing.Input{
		Container:  costing.ContainerInput{RentalCost: ct.RentalCost},
		Route:      route,
		CargoValue: req.CargoValue,
	})
	if err != nil {
		return nil, normalized{}, err
	}

	res.Presentation, err = present(arrangement.TotalWeightKg, arrangement.TotalCBM, arrangement.Box, norm.dimUnit, norm.weightUnit)
	if err != nil {
		return nil, normalized{}, err
	}
	return res, norm, arrErr
}

func normalize(req Request) (normalized, error) {
	if req.ContainerTypeID == 0 {
		return normalized{}, &apperr.ValidationError{Field: "container_type_id", Reason: "is required"}
	}
	dimToken, weightToken := req.DimensionUnit, req.WeightUnit
	if dimToken == "" {
		dimToken = string(units.Centimeter)
	}
	if weightToken == "" {
		weightToken = string(units.Kilogram)
	}
	dimUnit, err := units.ParseLength(dimToken)
	if err != nil {
		return normalized{}, err
	}
	weightUnit, err := units.ParseMass(weightToken)
	if err != nil {
		return normalized{}, err
	}

	// Validate as entered so the error names the user's value, then convert.
	in := loading.Input{
		Cargo:         loading.Dimensions{Length: req.CargoLength, Width: req.CargoWidth, Height: req.CargoHeight},
		BoxWeightKg:   req.CargoWeight,
		Quantity:      req.CargoQuantity,
		AllowRotation: req.AllowRotation,
	}
	if err := loading.ValidateInput(in); err != nil {
		return normalized{}, err
	}
	if err := costing.Validate(costing.Input{CargoValue: req.CargoValue}); err != nil {
		return normalized{}, err
	}

	if in.Cargo.Length, err = units.ToCentimeters(req.CargoLength, dimUnit); err != nil {
		return normalized{}, err
	}
	if in.Cargo.Width, err = units.ToCentimeters(req.CargoWidth, dimUnit); err != nil {
		return normalized{}, err
	}
	if in.Cargo.Height, err = units.ToCentimeters(req.CargoHeight, dimUnit); err != nil {
		return normalized{}, err
	}
	if in.BoxWeightKg, err = units.ToKilograms(req.CargoWeight, weightUnit); err != nil {
		return normalized{}, err
	}
	return normalized{dimUnit: dimUnit, weightUnit: weightUnit, input: in}, nil
}

func present(totalKg, totalCBM float64, box loading.Dimensions, dimUnit, weightUnit units.Unit) (Presentation, error) {
	p := Presentation{
		DimensionUnit: dimUnit.String(),
		WeightUnit:    weightUnit.String(),
		VolumeUnit:    dimUnit.String() + "3",
		TotalCBM:      loading.Round(totalCBM, 3),
	}
	weight, err := units.Convert(totalKg, units.Kilogram, weightUnit)
	if err != nil {
		return Presentation{}, err
	}
	p.TotalWeight = loading.Round(weight, 2)

	volume, err := units.CBMTo(totalCBM, dimUnit)
	if err != nil {
		return Presentation{}, err
	}
	p.TotalVolume = loading.Round(volume, 3)

	for _, pair := range []struct {
		dst *float64
		cm  float64
	}{
		{&p.PlacedBox.Length, box.Length},
		{&p.PlacedBox.Width, box.Width},
		{&p.PlacedBox.Height, box.Height},
	} {
		v, err := units.Convert(pair.cm, units.Centimeter, dimUnit)
		if err != nil {
			return Presentation{}, err
		}
		*pair.dst = loading.Round(v, 3)
	}
	return p, nil
}

func recordPresentation(calc *ds.ContainerCalculation) (Presentation, error) {
	dimUnit, err := units.ParseLength(calc.DimensionUnit)
	if err != nil {
		return Presentation{}, err
	}
	weightUnit, err := units.ParseMass(calc.WeightUnit)
	if err != nil {
		return Presentation{}, err
	}
	var box loading.Dimensions
	if calc.LoadingPlan != nil && calc.LoadingPlan.VisualizationData != "" {
		var vis loading.Visualization
		if err := json.Unmarshal([]byte(calc.LoadingPlan.VisualizationData), &vis); err == nil {
			box = vis.Box
		}
	}
	return present(calc.TotalWeight, calc.TotalCBM, box, dimUnit, weightUnit)
}

func buildRecord(req Request, norm normalized, res *Result) (*ds.ContainerCalculation, error) {
	a := res.Arrangement
	calc := &ds.ContainerCalculation{
		Name:              req.Name,
		Notes:             req.Notes,
		ContainerTypeID:   res.ContainerType.ContainerTypeID,
		ShippingRouteID:   req.ShippingRouteID,
		CargoLength:       req.CargoLength,
		CargoWidth:        req.CargoWidth,
		CargoHeight:       req.CargoHeight,
		CargoWeight:       req.CargoWeight,
		CargoQuantity:     req.CargoQuantity,
		DimensionUnit:     norm.dimUnit.String(),
		WeightUnit:        norm.weightUnit.String(),
		CargoValue:        req.CargoValue,
		AllowRotation:     req.AllowRotation,
		MaxBoxes:          a.MaxBoxes,
		LoadingEfficiency: a.Efficiency,
		BindingConstraint: string(a.Constraint),
		TotalWeight:       a.TotalWeightKg,
		TotalCBM:          a.TotalCBM,
		TotalCost:         res.Costs.Total,
	}

	for _, c := range res.Costs.Components {
		calc.CostComponents = append(calc.CostComponents, ds.CostComponent{
			ComponentName: c.Name,
			ComponentType: string(c.Type),
			CostAmount:    c.Amount,
		})
	}

	layout, err := json.Marshal(res.Layout)
	if err != nil {
		return nil, err
	}
	visualization, err := json.Marshal(res.Visualization)
	if err != nil {
		return nil, err
	}
	weights, err := json.Marshal(res.WeightDistribution)
	if err != nil {
		return nil, err
	}
	// The plan keeps the full grid; when quantity or payload binds, LayoutData
	// says how many layers are actually filled.
	calc.LoadingPlan = &ds.LoadingPlan{
		LengthCount:        a.LengthCount,
		WidthCount:         a.WidthCount,
		HeightCount:        a.HeightCount,
		ArrangementPattern: a.Pattern(),
		Orientation:        string(a.Orientation),
		LayoutData:         string(layout),
		VisualizationData:  string(visualization),
		WeightDistribution: string(weights),
	}
	return calc, nil
}
