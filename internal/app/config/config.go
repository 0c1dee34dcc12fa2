package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	ServiceHost string
	ServicePort int
	LogLevel    string

	StorageDriver string

	RedisEndpoint   string
	RedisPassword   string
	CatalogCacheTTL time.Duration

	JwtKey string
	JwtTTL time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	HistoryDefaultLimit int
	HistoryMaxLimit     int
}

func setDefaults() {
	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("StorageDriver", StorageDriverPostgres)
	viper.SetDefault("CatalogCacheTTL", "10m")
	viper.SetDefault("JwtTTL", "24h")
	viper.SetDefault("MinioBucket", "container-loading-reports")
	viper.SetDefault("HistoryDefaultLimit", 20)
	viper.SetDefault("HistoryMaxLimit", 100)
}

func NewConfig() (*Config, error) {
	var err error
	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	// .env first so BindEnv below sees its values
	err = godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using defaults")
	}

	setDefaults()
	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		logrus.Warnf("config file %s.toml not found, using defaults and environment", configName)
	}

	viper.BindEnv("StorageDriver", "STORAGE_DRIVER")
	viper.BindEnv("RedisEndpoint", "REDIS_ENDPOINT")
	viper.BindEnv("RedisPassword", "REDIS_PASSWORD")
	viper.BindEnv("JwtKey", "JWT_KEY")
	viper.BindEnv("MinioEndpoint", "MINIO_ENDPOINT")
	viper.BindEnv("MinioAccessKey", "MINIO_ACCESS_KEY")
	viper.BindEnv("MinioSecretKey", "MINIO_SECRET_KEY")
	viper.BindEnv("MinioBucket", "MINIO_BUCKET")

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	logrus.Info("config parsed")
	return cfg, nil
}

// ApplyLogLevel sets the logrus level from LogLevel, keeping info on bad input.
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
