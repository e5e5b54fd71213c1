package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Config struct {
	// gRPC Server
	Port     string
	APIToken string

	// Backend selection
	DataBackend string
	StoreName   string

	// Postgres
	DBConnStr  string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// SQLite
	SQLiteDBPath string

	// Redis snapshot cache, disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Suggestions
	AssumedMonthlyIncome decimal.Decimal

	// Logging
	LogLevel string
}

// Load reads the configuration from the environment, after applying an optional .env file
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("GRPC_PORT", "50051"),
		APIToken: getEnv("API_TOKEN", ""),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
		StoreName:   getEnv("STORE_NAME", "finance_data"),

		DBConnStr:  getEnv("DB_CONN_STR", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "darkmoney"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/darkmoney.db"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		AssumedMonthlyIncome: getEnvDecimal("ASSUMED_MONTHLY_INCOME", decimal.NewFromInt(5000)),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// PostgresConnString returns DB_CONN_STR, or a connection string built from the DB_* parts
func (c *Config) PostgresConnString() string {
	if c.DBConnStr != "" {
		return c.DBConnStr
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "postgres", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.StoreName == "" {
		errors = append(errors, "store name cannot be empty")
	}

	if c.DataBackend == "postgres" && c.DBConnStr == "" {
		if c.DBHost == "" || c.DBName == "" {
			errors = append(errors, "either DB_CONN_STR or DB_HOST and DB_NAME must be provided for postgres backend")
		}
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.RedisAddr != "" && c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: cannot be negative", c.CacheTTL))
	}

	if c.RedisDB < 0 {
		errors = append(errors, fmt.Sprintf("invalid redis db %d: cannot be negative", c.RedisDB))
	}

	if !c.AssumedMonthlyIncome.IsPositive() {
		errors = append(errors, fmt.Sprintf("invalid assumed monthly income %s: must be positive", c.AssumedMonthlyIncome))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': %v", c.LogLevel, err))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
