package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"container_loading/internal/app/ds"
	"container_loading/internal/app/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	containerTypeKey = "catalog:container_type:%d"
	shippingRouteKey = "catalog:shipping_route:%d"
)

// GetContainerTypes returns all container types, cheapest first.
func (r *Repository) GetContainerTypes(ctx context.Context) ([]ds.ContainerType, error) {
	var rows []ds.ContainerType
	err := r.db.WithContext(ctx).Order("rental_cost ASC, container_type_id ASC").Find(&rows).Error
	if err != nil {
		return nil, mapError("get container types", err)
	}
	return rows, nil
}

// GetContainerType returns nil, nil when id does not exist.
func (r *Repository) GetContainerType(ctx context.Context, id uint) (*ds.ContainerType, error) {
	row := &ds.ContainerType{}
	key := fmt.Sprintf(containerTypeKey, id)
	if r.cacheGet(ctx, key, row) {
		return row, nil
	}

	err := r.db.WithContext(ctx).Where("container_type_id = ?", id).First(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get container type", err)
	}
	r.cacheSet(ctx, key, row)
	return row, nil
}

// GetShippingRoutes returns all routes, fastest first.
func (r *Repository) GetShippingRoutes(ctx context.Context) ([]ds.ShippingRoute, error) {
	var rows []ds.ShippingRoute
	err := r.db.WithContext(ctx).Order("transit_days ASC, shipping_route_id ASC").Find(&rows).Error
	if err != nil {
		return nil, mapError("get shipping routes", err)
	}
	return rows, nil
}

// GetShippingRoute returns nil, nil when id does not exist.
func (r *Repository) GetShippingRoute(ctx context.Context, id uint) (*ds.ShippingRoute, error) {
	row := &ds.ShippingRoute{}
	key := fmt.Sprintf(shippingRouteKey, id)
	if r.cacheGet(ctx, key, row) {
		return row, nil
	}

	err := r.db.WithContext(ctx).Where("shipping_route_id = ?", id).First(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get shipping route", err)
	}
	r.cacheSet(ctx, key, row)
	return row, nil
}

// CreateContainerType - administrative catalog loading
func (r *Repository) CreateContainerType(ctx context.Context, row *ds.ContainerType) error {
	return mapError("create container type", r.db.WithContext(ctx).Create(row).Error)
}

// CreateShippingRoute - administrative catalog loading
func (r *Repository) CreateShippingRoute(ctx context.Context, row *ds.ShippingRoute) error {
	return mapError("create shipping route", r.db.WithContext(ctx).Create(row).Error)
}

func (r *Repository) cacheGet(ctx context.Context, key string, dst any) bool {
	if r.redis == nil || r.opts.CatalogCacheTTL <= 0 {
		return false
	}
	raw, err := r.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.Warnf("catalog cache get %s: %v", key, err)
		}
		metrics.RecordCacheLookup(false)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logrus.Warnf("catalog cache decode %s: %v", key, err)
		metrics.RecordCacheLookup(false)
		return false
	}
	metrics.RecordCacheLookup(true)
	return true
}

func (r *Repository) cacheSet(ctx context.Context, key string, v any) {
	if r.redis == nil || r.opts.CatalogCacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		logrus.Warnf("catalog cache encode %s: %v", key, err)
		return
	}
	if err := r.redis.Set(ctx, key, raw, r.opts.CatalogCacheTTL).Err(); err != nil {
		logrus.Warnf("catalog cache set %s: %v", key, err)
	}
}
