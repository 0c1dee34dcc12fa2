package ds

import "time"

type CostComponent struct {
	CostComponentID uint      `gorm:"primaryKey;column:cost_component_id" json:"cost_component_id"`
	CalculationID   uint      `gorm:"column:calculation_id;not null;index" json:"calculation_id"`
	ComponentName   string    `gorm:"column:component_name" json:"component_name"`
	ComponentType   string    `gorm:"column:component_type;size:32" json:"component_type"`
	CostAmount      float64   `gorm:"column:cost_amount" json:"cost_amount"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CostComponent) TableName() string {
	return "cost_components"
}
