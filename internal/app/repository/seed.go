package repository

import (
	"context"
	"fmt"

	"container_loading/internal/app/ds"

	"gorm.io/gorm"
)

// SeedStats counts rows inserted by SeedCatalog.
type SeedStats struct {
	ContainerTypes int
	ShippingRoutes int
}

// SeedCatalog inserts the standard catalog rows that are missing. It runs in
// one transaction and is safe to repeat.
func SeedCatalog(ctx context.Context, db *gorm.DB) (SeedStats, error) {
	stats := SeedStats{}
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SeedStats{}, fmt.Errorf("begin seed transaction: %w", tx.Error)
	}

	for _, ct := range StandardContainerTypes() {
		var count int64
		if err := tx.Model(&ds.ContainerType{}).Where("code = ?", ct.Code).Count(&count).Error; err != nil {
			tx.Rollback()
			return SeedStats{}, fmt.Errorf("check container type %s: %w", ct.Code, err)
		}
		if count > 0 {
			continue
		}
		row := ct
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return SeedStats{}, fmt.Errorf("seed container type %s: %w", ct.Code, err)
		}
		stats.ContainerTypes++
	}

	for _, route := range StandardShippingRoutes() {
		var count int64
		err := tx.Model(&ds.ShippingRoute{}).
			Where("origin_port = ? AND destination_port = ?", route.OriginPort, route.DestinationPort).
			Count(&count).Error
		if err != nil {
			tx.Rollback()
			return SeedStats{}, fmt.Errorf("check route %s-%s: %w", route.OriginPort, route.DestinationPort, err)
		}
		if count > 0 {
			continue
		}
		row := route
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return SeedStats{}, fmt.Errorf("seed route %s-%s: %w", route.OriginPort, route.DestinationPort, err)
		}
		stats.ShippingRoutes++
	}

	if err := tx.Commit().Error; err != nil {
		return SeedStats{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	return stats, nil
}
