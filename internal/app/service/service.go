// Package service ties the catalog, the loading and costing calculators and
// the calculation store together.
package service

import (
	"context"

	"container_loading/internal/app/ds"
)

type Catalog interface {
	GetContainerTypes(ctx context.Context) ([]ds.ContainerType, error)
	GetContainerType(ctx context.Context, id uint) (*ds.ContainerType, error)
	GetShippingRoutes(ctx context.Context) ([]ds.ShippingRoute, error)
	GetShippingRoute(ctx context.Context, id uint) (*ds.ShippingRoute, error)
	CreateContainerType(ctx context.Context, row *ds.ContainerType) error
	CreateShippingRoute(ctx context.Context, row *ds.ShippingRoute) error
}

type CalculationStore interface {
	SaveCalculation(ctx context.Context, calc *ds.ContainerCalculation) (uint, error)
	GetCalculationHistory(ctx context.Context, limit int) ([]ds.ContainerCalculation, error)
	GetCalculation(ctx context.Context, id uint) (*ds.ContainerCalculation, error)
	DeleteCalculation(ctx context.Context, id uint) error
	GetCostComponents(ctx context.Context, calculationID uint) ([]ds.CostComponent, error)
	GetLoadingPlan(ctx context.Context, calculationID uint) (*ds.LoadingPlan, error)
}

// Store is satisfied by repository.Repository and repository.MemoryStore.
type Store interface {
	Catalog
	CalculationStore
}

type Options struct {
	HistoryDefaultLimit int
	HistoryMaxLimit     int
}

type CalculationService struct {
	store Store
	opts  Options
}

func NewCalculationService(store Store, opts Options) *CalculationService {
	if opts.HistoryDefaultLimit <= 0 {
		opts.HistoryDefaultLimit = 20
	}
	if opts.HistoryMaxLimit < opts.HistoryDefaultLimit {
		opts.HistoryMaxLimit = opts.HistoryDefaultLimit
	}
	return &CalculationService{store: store, opts: opts}
}
