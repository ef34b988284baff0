package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings the server and the seed tool are started with.
type Config struct {
	Port        string
	Env         string
	CORSOrigins string

	StorageDriver string

	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxIdleConns    int
	DBMaxOpenConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	HistoryTTL    time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	MinWithdrawal string
	LockTimeout   time.Duration
	WithdrawRate  int
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the .env file and the process environment into a Config.
func Load() *Config {
	LoadEnv()

	return &Config{
		Port:        GetEnv("PORT", "3000"),
		Env:         GetEnv("ENV", "development"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),

		StorageDriver: GetEnv("STORAGE_DRIVER", "postgres"),

		DBHost:            GetEnv("DB_HOST", "localhost"),
		DBPort:            GetEnv("DB_PORT", "5432"),
		DBUser:            GetEnv("DB_USER", "postgres"),
		DBPassword:        GetEnv("DB_PASSWORD", "postgres"),
		DBName:            GetEnv("DB_NAME", "usercenter"),
		DBSSLMode:         GetEnv("DB_SSLMODE", "disable"),
		DBMaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		DBConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		DBConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),

		RedisHost:     GetEnv("REDIS_HOST", ""),
		RedisPort:     GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),
		CacheTTL:      GetDurationEnv("CACHE_TTL", 5*time.Minute),
		HistoryTTL:    GetDurationEnv("CACHE_HISTORY_TTL", 30*time.Second),

		JWTSecret: GetEnv("JWT_SECRET", "usercenter"),
		JWTTTL:    GetDurationEnv("JWT_TTL", 24*time.Hour),

		MinWithdrawal: GetEnv("MIN_WITHDRAWAL", "100"),
		LockTimeout:   GetDurationEnv("LOCK_TIMEOUT", 5*time.Second),
		WithdrawRate:  GetIntEnv("WITHDRAW_RATE_LIMIT", 10),
	}
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable (e.g. "5s") or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
		log.Printf("invalid duration for %s=%q, using %s", key, val, defaultVal)
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
