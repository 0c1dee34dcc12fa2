package ds

import "time"

// @Schema(description="Shipping route reference row; insurance_rate is a fraction of cargo value")
type ShippingRoute struct {
	ShippingRouteID  uint      `gorm:"primaryKey;column:shipping_route_id" json:"shipping_route_id"`
	OriginPort       string    `gorm:"column:origin_port;size:8" json:"origin_port"`
	DestinationPort  string    `gorm:"column:destination_port;size:8" json:"destination_port"`
	TransitDays      int       `gorm:"column:transit_days" json:"transit_days"`
	DistanceKm       float64   `gorm:"column:distance_km" json:"distance_km"`
	BaseHandlingCost float64   `gorm:"column:base_handling_cost" json:"base_handling_cost"`
	DocumentationFee float64   `gorm:"column:documentation_fee" json:"documentation_fee"`
	InsuranceRate    float64   `gorm:"column:insurance_rate" json:"insurance_rate"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ShippingRoute) TableName() string {
	return "shipping_routes"
}
