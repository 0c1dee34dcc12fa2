package ds

import "time"

// LoadingPlan is the 1-1 arrangement row of a calculation. The counts are the
// container grid, so their product can exceed the calculation's MaxBoxes when
// quantity or payload binds. The *Data columns are opaque JSON documents for rendering.
type LoadingPlan struct {
	LoadingPlanID      uint      `gorm:"primaryKey;column:loading_plan_id" json:"loading_plan_id"`
	CalculationID      uint      `gorm:"column:calculation_id;not null;uniqueIndex" json:"calculation_id"`
	LengthCount        int       `gorm:"column:length_count" json:"length_count"`
	WidthCount         int       `gorm:"column:width_count" json:"width_count"`
	HeightCount        int       `gorm:"column:height_count" json:"height_count"`
	ArrangementPattern string    `gorm:"column:arrangement_pattern" json:"arrangement_pattern"`
	Orientation        string    `gorm:"column:orientation;size:3" json:"orientation"`
	LayoutData         string    `gorm:"column:layout_data;type:jsonb" json:"layout_data"`
	VisualizationData  string    `gorm:"column:visualization_data;type:jsonb" json:"visualization_data"`
	WeightDistribution string    `gorm:"column:weight_distribution;type:jsonb" json:"weight_distribution"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
}

func (LoadingPlan) TableName() string {
	return "loading_plans"
}
