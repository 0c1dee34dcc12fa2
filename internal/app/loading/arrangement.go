// Package loading computes how many identical cargo boxes fit into a
// container. Boxes are axis-aligned and all share one orientation. All
// lengths are centimetres and all masses kilograms.
package loading

import (
	"fmt"
	"math"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/units"
)

// epsilon absorbs float noise in exact fits such as 0.3 / 0.1.
const epsilon = 1e-9

// MaxGridBoxes bounds the grid of one container. Cargo small enough to
// exceed it is rejected before counting.
const MaxGridBoxes = math.MaxInt32

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

type Container struct {
	Internal     Dimensions
	MaxPayloadKg float64
	// CubicCapacityCBM is the rated capacity; zero means derive it from Internal.
	CubicCapacityCBM float64
}

func (c Container) capacityCBM() float64 {
	if c.CubicCapacityCBM > 0 {
		return c.CubicCapacityCBM
	}
	return units.CubicCentimetersToCBM(c.Internal.Volume())
}

type Input struct {
	Cargo       Dimensions
	BoxWeightKg float64
	// Quantity is the number of boxes to ship; nil means no limit.
	Quantity      *int
	AllowRotation bool
}

type Constraint string

const (
	ConstraintGeometry Constraint = "geometry"
	ConstraintQuantity Constraint = "quantity"
	ConstraintPayload  Constraint = "payload"
	ConstraintOversize Constraint = "oversize"
)

// Orientation names which box edge runs along the container length, width
// and height, in that order. "LWH" is the box as entered.
type Orientation string

var orientations = []Orientation{"LWH", "LHW", "WLH", "WHL", "HLW", "HWL"}

func (o Orientation) apply(d Dimensions) Dimensions {
	pick := func(c byte) float64 {
		switch c {
		case 'W':
			return d.Width
		case 'H':
			return d.Height
		default:
			return d.Length
		}
	}
	return Dimensions{Length: pick(o[0]), Width: pick(o[1]), Height: pick(o[2])}
}

type Arrangement struct {
	LengthCount  int         `json:"length_count"`
	WidthCount   int         `json:"width_count"`
	HeightCount  int         `json:"height_count"`
	GeometricMax int         `json:"geometric_max_boxes"`
	MaxBoxes     int         `json:"max_boxes"`
	Efficiency   float64     `json:"loading_efficiency"`
	Constraint   Constraint  `json:"binding_constraint"`
	Orientation  Orientation `json:"orientation"`
	// Box is the cargo box as placed, after orientation.
	Box           Dimensions `json:"box"`
	BoxWeightKg   float64    `json:"box_weight_kg"`
	TotalWeightKg float64    `json:"total_weight_kg"`
	TotalCBM      float64    `json:"total_cbm"`
}

// Pattern is the grid label, e.g. "5x4x4".
func (a Arrangement) Pattern() string {
	return fmt.Sprintf("%dx%dx%d", a.LengthCount, a.WidthCount, a.HeightCount)
}

// ValidateInput rejects non-positive cargo inputs.
func ValidateInput(in Input) error {
	if err := positive([]check{
		{"cargo_length", in.Cargo.Length},
		{"cargo_width", in.Cargo.Width},
		{"cargo_height", in.Cargo.Height},
		{"cargo_weight", in.BoxWeightKg},
	}); err != nil {
		return err
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return &apperr.ValidationError{Field: "cargo_quantity", Reason: "must be greater than zero"}
	}
	return nil
}

// Validate rejects non-positive inputs before any arithmetic happens.
func Validate(c Container, in Input) error {
	if err := ValidateInput(in); err != nil {
		return err
	}
	return positive([]check{
		{"container_internal_length", c.Internal.Length},
		{"container_internal_width", c.Internal.Width},
		{"container_internal_height", c.Internal.Height},
		{"container_max_payload", c.MaxPayloadKg},
	})
}

type check struct {
	field string
	value float64
}

func positive(checks []check) error {
	for _, ch := range checks {
		if math.IsNaN(ch.value) || math.IsInf(ch.value, 0) {
			return &apperr.ValidationError{Field: ch.field, Reason: "must be a finite number"}
		}
		if ch.value <= 0 {
			return &apperr.ValidationError{Field: ch.field, Reason: "must be greater than zero"}
		}
	}
	return nil
}

// Arrange computes the arrangement for in inside c.
//
// When the box does not fit along some axis the returned Arrangement has
// MaxBoxes 0 and Constraint "oversize", and the error is a
// *apperr.CargoTooLargeError naming that axis.
func Arrange(c Container, in Input) (Arrangement, error) {
	if err := Validate(c, in); err != nil {
		return Arrangement{}, err
	}

	if in.Cargo.Volume() == 0 || c.Internal.Volume()/in.Cargo.Volume() > MaxGridBoxes {
		return Arrangement{}, &apperr.ValidationError{
			Field:  "cargo_dimensions",
			Reason: fmt.Sprintf("too small, more than %d boxes per container", MaxGridBoxes),
		}
	}

	candidates := orientations[:1]
	if in.AllowRotation {
		candidates = orientations
	}

	best := grid(c.Internal, in.Cargo, candidates[0])
	for _, o := range candidates[1:] {
		g := grid(c.Internal, in.Cargo, o)
		if g.GeometricMax > best.GeometricMax {
			best = g
		}
	}
	best.BoxWeightKg = in.BoxWeightKg

	if best.GeometricMax == 0 {
		best.Constraint = ConstraintOversize
		return best, oversize(c.Internal, in.Cargo)
	}

	best.MaxBoxes = best.GeometricMax
	best.Constraint = ConstraintGeometry

	if in.Quantity != nil && *in.Quantity < best.MaxBoxes {
		best.MaxBoxes = *in.Quantity
		best.Constraint = ConstraintQuantity
	}

	if float64(best.MaxBoxes)*in.BoxWeightKg > c.MaxPayloadKg {
		payloadCap := int(math.Floor(c.MaxPayloadKg/in.BoxWeightKg + epsilon))
		if payloadCap < best.MaxBoxes {
			best.MaxBoxes = payloadCap
			best.Constraint = ConstraintPayload
		}
	}

	best.TotalWeightKg = float64(best.MaxBoxes) * in.BoxWeightKg
	best.TotalCBM = units.CubicCentimetersToCBM(float64(best.MaxBoxes) * best.Box.Volume())
	best.Efficiency = Round(best.TotalCBM/c.capacityCBM()*100, 2)
	return best, nil
}

func grid(container, cargo Dimensions, o Orientation) Arrangement {
	box := o.apply(cargo)
	a := Arrangement{
		LengthCount: fit(container.Length, box.Length),
		WidthCount:  fit(container.Width, box.Width),
		HeightCount: fit(container.Height, box.Height),
		Orientation: o,
		Box:         box,
	}
	a.GeometricMax = a.LengthCount * a.WidthCount * a.HeightCount
	return a
}

// fit saturates at MaxGridBoxes so a thin edge on one axis cannot overflow
// the count while another axis is oversize.
func fit(space, edge float64) int {
	n := math.Floor(space/edge + epsilon)
	if n > MaxGridBoxes {
		return MaxGridBoxes
	}
	return int(n)
}

func oversize(container, cargo Dimensions) error {
	switch {
	case fit(container.Length, cargo.Length) == 0:
		return &apperr.CargoTooLargeError{Axis: "length", Cargo: cargo.Length, Container: container.Length}
	case fit(container.Width, cargo.Width) == 0:
		return &apperr.CargoTooLargeError{Axis: "width", Cargo: cargo.Width, Container: container.Width}
	default:
		return &apperr.CargoTooLargeError{Axis: "height", Cargo: cargo.Height, Container: container.Height}
	}
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
