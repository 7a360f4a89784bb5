package config

import (
	"errors"  // For validation errors
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For token and cache lifetimes

	"github.com/joho/godotenv" // For loading .env files
)

// Storage drivers accepted in DB_DRIVER
const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBDriver   string        // Storage driver: mysql or memory
	DBDSN      string        // Full MySQL DSN, overrides the DB_* parts
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name
	JWTSecret  string        // Token signing secret
	TokenTTL   time.Duration // Lifetime of issued tokens
	RedisAddr  string        // Redis server address, empty disables the listing cache
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	CacheTTL   time.Duration // Lifetime of cached listings
	CORSOrigin string        // Allowed CORS origins, comma separated
	IsProd     bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	secret := os.Getenv("ACCESS_TOKEN_SECRET")
	if secret == "" {
		secret = os.Getenv("JWT_SECRET") // Older deployments use JWT_SECRET
	}
	return &Config{
		AppPort:    getEnv("APP_PORT", "5000"),
		DBDriver:   getEnv("DB_DRIVER", DriverMySQL),
		DBDSN:      os.Getenv("DB_DSN"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  secret,
		TokenTTL:   getDuration("TOKEN_TTL", time.Hour),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisPass:  os.Getenv("REDIS_PASS"),
		RedisDB:    redisDB,
		CacheTTL:   getDuration("CACHE_TTL", 60*time.Second),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		IsProd:     os.Getenv("IS_PROD") == "true",
	}
}

// DSN returns the MySQL data source name
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	if c.DBHost == "" || c.DBName == "" {
		return ""
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	switch c.DBDriver {
	case DriverMemory:
		return nil
	case DriverMySQL:
		if c.DSN() == "" {
			return errors.New("DB_DSN or DB_HOST and DB_NAME are required for the mysql driver")
		}
		return nil
	default:
		return errors.New("unknown DB_DRIVER " + strconv.Quote(c.DBDriver))
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
