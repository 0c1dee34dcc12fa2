package ds

import "time"

// @Schema(description="Container type reference row; dimensions in cm, weights in kg")
type ContainerType struct {
	ContainerTypeID uint      `gorm:"primaryKey;column:container_type_id" json:"container_type_id"`
	Code            string    `gorm:"column:code;uniqueIndex;size:16" json:"code"`
	Name            string    `gorm:"column:name" json:"name"`
	InternalLength  float64   `gorm:"column:internal_length;check:internal_length > 0" json:"internal_length"`
	InternalWidth   float64   `gorm:"column:internal_width;check:internal_width > 0" json:"internal_width"`
	InternalHeight  float64   `gorm:"column:internal_height;check:internal_height > 0" json:"internal_height"`
	MaxPayload      float64   `gorm:"column:max_payload;check:max_payload > 0" json:"max_payload"`
	TareWeight      float64   `gorm:"column:tare_weight" json:"tare_weight"`
	CubicCapacity   float64   `gorm:"column:cubic_capacity" json:"cubic_capacity"`
	RentalCost      float64   `gorm:"column:rental_cost" json:"rental_cost"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ContainerType) TableName() string {
	return "container_types"
}
