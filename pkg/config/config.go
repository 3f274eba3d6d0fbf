package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	Neo4j          Neo4jConfig
	Redis          RedisConfig
	Recommendation RecommendationConfig
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

type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CatalogTTL    time.Duration
	DialTimeout   time.Duration
	PoolSize      int
	MinIdleConns  int
}

type RecommendationConfig struct {
	Timeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	catalogTTL, err := time.ParseDuration(getEnv("REDIS_CATALOG_TTL", "60s"))
	if err != nil {
		return nil, errors.New("invalid redis catalog ttl")
	}

	redisDialTimeout, err := time.ParseDuration(getEnv("REDIS_DIAL_TIMEOUT", "5s"))
	if err != nil {
		return nil, errors.New("invalid redis dial timeout")
	}

	redisPoolSize, err := strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10"))
	if err != nil {
		return nil, errors.New("invalid redis pool size")
	}

	redisMinIdle, err := strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "5"))
	if err != nil {
		return nil, errors.New("invalid redis min idle conns")
	}

	recoTimeout, err := time.ParseDuration(getEnv("RECOMMENDATION_TIMEOUT", "10s"))
	if err != nil {
		return nil, errors.New("invalid recommendation timeout")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MotoMatch API"),
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
			Name:     getEnv("DB_NAME", "moto_match"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Neo4j: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", ""),
			User:     getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
			Database: getEnv("NEO4J_DATABASE", "neo4j"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			CatalogTTL:    catalogTTL,
			DialTimeout:   redisDialTimeout,
			PoolSize:      redisPoolSize,
			MinIdleConns:  redisMinIdle,
		},
		Recommendation: RecommendationConfig{
			Timeout: recoTimeout,
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Neo4j.URI == "" {
		return nil, errors.New("missing neo4j uri")
	}

	if cfg.Neo4j.Password == "" {
		return nil, errors.New("missing neo4j password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
