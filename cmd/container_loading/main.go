package main

// go run cmd/container_loading/main.go

import (
	"context"

	"container_loading/internal/app/config"
	"container_loading/internal/app/dsn"
	"container_loading/internal/app/export"
	"container_loading/internal/app/handler"
	"container_loading/internal/app/handler/api"
	"container_loading/internal/app/pkg"
	"container_loading/internal/app/repository"
	"container_loading/internal/app/service"
	"container_loading/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	_ "container_loading/docs" // Swagger docs
)

type store interface {
	service.Store
	handler.Store
}

// @title Container Loading API
// @version 1.0
// @description Container loading and shipping cost calculator.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	conf.ApplyLogLevel()

	ctx := context.Background()
	opts := repository.Options{
		CatalogCacheTTL: conf.CatalogCacheTTL,
		JWTKey:          conf.JwtKey,
		JWTTTL:          conf.JwtTTL,
	}
	if conf.JwtKey == "" {
		logrus.Fatal("JWT_KEY is not set")
	}

	var rep store
	switch conf.StorageDriver {
	case config.StorageDriverMemory:
		logrus.Warn("using in-memory storage, calculations are lost on restart")
		rep = repository.NewMemoryStore(opts)
	case config.StorageDriverPostgres:
		rdb := utils.InitRedis(ctx, conf.RedisEndpoint, conf.RedisPassword)
		pg, errRep := repository.New(dsn.FromEnv(), rdb, opts)
		if errRep != nil {
			logrus.Fatalf("error initializing repository: %v", errRep)
		}
		rep = pg
	default:
		logrus.Fatalf("unknown storage driver %q", conf.StorageDriver)
	}

	var uploader api.ReportUploader
	if client := utils.InitMinio(ctx, conf.MinioEndpoint, conf.MinioAccessKey, conf.MinioSecretKey, conf.MinioBucket, conf.MinioUseSSL); client != nil {
		uploader = &export.Uploader{Client: client, Bucket: conf.MinioBucket}
	}

	svc := service.NewCalculationService(rep, service.Options{
		HistoryDefaultLimit: conf.HistoryDefaultLimit,
		HistoryMaxLimit:     conf.HistoryMaxLimit,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	hand := handler.NewHandler(rep, svc, uploader, conf.JwtTTL)

	application := pkg.NewApp(conf, router, hand)
	application.RunApp()
}
