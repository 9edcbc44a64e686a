package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Matrix store backends.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreS3       = "s3"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Reco     RecoConfig
	S3       S3Config
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type RecoConfig struct {
	// Store selects where the co-occurrence matrix lives: file, postgres, redis or s3.
	Store        string
	MatrixPath   string
	MatrixKey    string
	OrdersFile   string
	DefaultLimit int
}

type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	recoLimit, err := getEnvInt("RECO_DEFAULT_LIMIT", 5)
	if err != nil {
		return nil, err
	}

	usePathStyle, err := getEnvBool("S3_USE_PATH_STYLE", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MyShopCart API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "my_shop_cart"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Reco: RecoConfig{
			Store:        strings.ToLower(getEnv("RECO_STORE", StoreFile)),
			MatrixPath:   getEnv("RECO_MATRIX_PATH", "storage/co_matrix.json"),
			MatrixKey:    getEnv("RECO_MATRIX_KEY", "reco/co_matrix.json"),
			OrdersFile:   getEnv("RECO_ORDERS_FILE", "storage/orders.json"),
			DefaultLimit: recoLimit,
		},
		S3: S3Config{
			Bucket:       getEnv("S3_BUCKET", ""),
			Region:       getEnv("S3_REGION", "us-east-1"),
			Endpoint:     getEnv("S3_ENDPOINT", ""),
			AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			SecretKey:    getEnv("S3_SECRET_KEY", ""),
			UsePathStyle: usePathStyle,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Reco.DefaultLimit <= 0 {
		return errors.New("RECO_DEFAULT_LIMIT must be positive")
	}

	switch c.Reco.Store {
	case StoreFile:
		if c.Reco.MatrixPath == "" {
			return errors.New("missing recommendation matrix path")
		}
	case StorePostgres, StoreRedis:
		if c.Reco.MatrixKey == "" {
			return errors.New("missing recommendation matrix key")
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			return errors.New("missing s3 bucket")
		}
		if c.Reco.MatrixKey == "" {
			return errors.New("missing recommendation matrix key")
		}
	default:
		return fmt.Errorf("unknown recommendation store %q", c.Reco.Store)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return v, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return v, nil
}
