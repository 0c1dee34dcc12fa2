package main

import (
	"context"
	"os"

	"container_loading/internal/app/config"
	"container_loading/internal/app/ds"
	"container_loading/internal/app/dsn"
	"container_loading/internal/app/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	conf.ApplyLogLevel()

	postgresString := dsn.FromEnv()
	db, err := gorm.Open(postgres.Open(postgresString), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}

	// Catalog first, then calculations and their children
	err = db.AutoMigrate(&ds.User{}, &ds.ContainerType{}, &ds.ShippingRoute{})
	if err != nil {
		logrus.Fatalf("error migrating catalog: %v", err)
	}
	err = db.AutoMigrate(&ds.ContainerCalculation{})
	if err != nil {
		logrus.Fatalf("error migrating container_calculations: %v", err)
	}
	err = db.AutoMigrate(&ds.CostComponent{}, &ds.LoadingPlan{})
	if err != nil {
		logrus.Fatalf("error migrating cost_components and loading_plans: %v", err)
	}

	ctx := context.Background()
	stats, err := repository.SeedCatalog(ctx, db)
	if err != nil {
		logrus.Fatalf("error seeding catalog: %v", err)
	}
	logrus.Infof("catalog seeded: %d container types, %d shipping routes", stats.ContainerTypes, stats.ShippingRoutes)

	if login, password := os.Getenv("ADMIN_LOGIN"), os.Getenv("ADMIN_PASSWORD"); login != "" && password != "" {
		rep := repository.NewWithDB(db, nil, repository.Options{JWTKey: conf.JwtKey})
		_, err := rep.RegisterUser(ctx, ds.User{Login: login, Password: password, Role: ds.RoleAdmin})
		if err != nil {
			logrus.Warnf("admin user %s not created: %v", login, err)
		} else {
			logrus.Infof("admin user %s created", login)
		}
	}

	logrus.Info("Database migration completed")
}
