package ds

import "time"

// @Schema(description="One saved container loading calculation")
// Cargo dimensions and weight are stored as entered, in DimensionUnit and
// WeightUnit. TotalWeight is kg and TotalCBM is cubic metres.
type ContainerCalculation struct {
	CalculationID     uint      `gorm:"primaryKey;column:calculation_id" json:"calculation_id"`
	Name              string    `gorm:"column:name" json:"name"`
	Notes             string    `gorm:"column:notes" json:"notes"`
	ContainerTypeID   uint      `gorm:"column:container_type_id;not null;index" json:"container_type_id"`
	ShippingRouteID   *uint     `gorm:"column:shipping_route_id;index" json:"shipping_route_id"`
	CargoLength       float64   `gorm:"column:cargo_length" json:"cargo_length"`
	CargoWidth        float64   `gorm:"column:cargo_width" json:"cargo_width"`
	CargoHeight       float64   `gorm:"column:cargo_height" json:"cargo_height"`
	CargoWeight       float64   `gorm:"column:cargo_weight" json:"cargo_weight"`
	CargoQuantity     *int      `gorm:"column:cargo_quantity" json:"cargo_quantity"`
	DimensionUnit     string    `gorm:"column:dimension_unit;size:8" json:"dimension_unit"`
	WeightUnit        string    `gorm:"column:weight_unit;size:8" json:"weight_unit"`
	CargoValue        *float64  `gorm:"column:cargo_value" json:"cargo_value"`
	AllowRotation     bool      `gorm:"column:allow_rotation" json:"allow_rotation"`
	MaxBoxes          int       `gorm:"column:max_boxes" json:"max_boxes"`
	LoadingEfficiency float64   `gorm:"column:loading_efficiency" json:"loading_efficiency"`
	BindingConstraint string    `gorm:"column:binding_constraint;size:16" json:"binding_constraint"`
	TotalWeight       float64   `gorm:"column:total_weight" json:"total_weight"`
	TotalCBM          float64   `gorm:"column:total_cbm" json:"total_cbm"`
	TotalCost         float64   `gorm:"column:total_cost" json:"total_cost"`
	CreatedAt         time.Time `gorm:"column:created_at;index" json:"created_at"`

	ContainerType  *ContainerType  `gorm:"foreignKey:ContainerTypeID;references:ContainerTypeID;constraint:OnDelete:RESTRICT" json:"container_type,omitempty"`
	ShippingRoute  *ShippingRoute  `gorm:"foreignKey:ShippingRouteID;references:ShippingRouteID;constraint:OnDelete:SET NULL" json:"shipping_route,omitempty"`
	CostComponents []CostComponent `gorm:"foreignKey:CalculationID;references:CalculationID;constraint:OnDelete:CASCADE" json:"cost_components,omitempty"`
	LoadingPlan    *LoadingPlan    `gorm:"foreignKey:CalculationID;references:CalculationID;constraint:OnDelete:CASCADE" json:"loading_plan,omitempty"`
}

func (ContainerCalculation) TableName() string {
	return "container_calculations"
}
