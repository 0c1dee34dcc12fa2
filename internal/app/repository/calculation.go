package repository

import (
	"context"
	"errors"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveCalculation writes the record, its cost components and its loading plan
// in one transaction and returns the new calculation id.
func (r *Repository) SaveCalculation(ctx context.Context, calc *ds.ContainerCalculation) (uint, error) {
	dbTx := r.db.WithContext(ctx).Begin()
	if dbTx.Error != nil {
		return 0, mapError("begin save calculation", dbTx.Error)
	}

	if err := dbTx.Omit(clause.Associations).Create(calc).Error; err != nil {
		dbTx.Rollback()
		return 0, mapError("save calculation", err)
	}
	if err := saveCostComponents(dbTx, calc.CalculationID, calc.CostComponents); err != nil {
		dbTx.Rollback()
		return 0, err
	}
	if calc.LoadingPlan != nil {
		if _, err := saveLoadingPlan(dbTx, calc.CalculationID, calc.LoadingPlan); err != nil {
			dbTx.Rollback()
			return 0, err
		}
	}

	if err := dbTx.Commit().Error; err != nil {
		return 0, mapError("commit save calculation", err)
	}
	return calc.CalculationID, nil
}

// GetCalculationHistory returns up to limit records, newest first.
func (r *Repository) GetCalculationHistory(ctx context.Context, limit int) ([]ds.ContainerCalculation, error) {
	var rows []ds.ContainerCalculation
	err := r.db.WithContext(ctx).
		Order("created_at DESC, calculation_id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, mapError("get calculation history", err)
	}
	return rows, nil
}

// GetCalculation returns the bare record, or nil, nil when id does not exist.
func (r *Repository) GetCalculation(ctx context.Context, id uint) (*ds.ContainerCalculation, error) {
	calc := &ds.ContainerCalculation{}
	err := r.db.WithContext(ctx).Where("calculation_id = ?", id).First(calc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get calculation", err)
	}
	return calc, nil
}

// DeleteCalculation removes the record and its children.
func (r *Repository) DeleteCalculation(ctx context.Context, id uint) error {
	dbTx := r.db.WithContext(ctx).Begin()
	if dbTx.Error != nil {
		return mapError("begin delete calculation", dbTx.Error)
	}

	if err := dbTx.Where("calculation_id = ?", id).Delete(&ds.CostComponent{}).Error; err != nil {
		dbTx.Rollback()
		return mapError("delete cost components", err)
	}
	if err := dbTx.Where("calculation_id = ?", id).Delete(&ds.LoadingPlan{}).Error; err != nil {
		dbTx.Rollback()
		return mapError("delete loading plan", err)
	}
	res := dbTx.Where("calculation_id = ?", id).Delete(&ds.ContainerCalculation{})
	if res.Error != nil {
		dbTx.Rollback()
		return mapError("delete calculation", res.Error)
	}
	if res.RowsAffected == 0 {
		dbTx.Rollback()
		return &apperr.NotFoundError{Entity: "calculation", ID: id}
	}

	return mapError("commit delete calculation", dbTx.Commit().Error)
}

func (r *Repository) SaveCostComponents(ctx context.Context, calculationID uint, components []ds.CostComponent) error {
	return saveCostComponents(r.db.WithContext(ctx), calculationID, components)
}

// GetCostComponents returns the rows in insertion order.
func (r *Repository) GetCostComponents(ctx context.Context, calculationID uint) ([]ds.CostComponent, error) {
	var rows []ds.CostComponent
	err := r.db.WithContext(ctx).
		Where("calculation_id = ?", calculationID).
		Order("cost_component_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, mapError("get cost components", err)
	}
	return rows, nil
}

func (r *Repository) SaveLoadingPlan(ctx context.Context, plan *ds.LoadingPlan) (uint, error) {
	return saveLoadingPlan(r.db.WithContext(ctx), plan.CalculationID, plan)
}

// GetLoadingPlan returns nil, nil when the calculation has no plan.
func (r *Repository) GetLoadingPlan(ctx context.Context, calculationID uint) (*ds.LoadingPlan, error) {
	plan := &ds.LoadingPlan{}
	err := r.db.WithContext(ctx).Where("calculation_id = ?", calculationID).First(plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get loading plan", err)
	}
	return plan, nil
}

func saveCostComponents(db *gorm.DB, calculationID uint, components []ds.CostComponent) error {
	if len(components) == 0 {
		return nil
	}
	for i := range components {
		components[i].CalculationID = calculationID
	}
	return mapError("save cost components", db.Create(&components).Error)
}

func saveLoadingPlan(db *gorm.DB, calculationID uint, plan *ds.LoadingPlan) (uint, error) {
	plan.CalculationID = calculationID
	if err := db.Create(plan).Error; err != nil {
		return 0, mapError("save loading plan", err)
	}
	return plan.LoadingPlanID, nil
}
