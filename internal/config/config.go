package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // Session timeout duration

	"github.com/joho/godotenv" // For loading .env files
)

// DefaultSessionTimeout is the sliding inactivity window (8 hours)
const DefaultSessionTimeout = 8 * time.Hour

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	SessionTimeout time.Duration // Sliding session inactivity window
	CookieSecure   bool          // Send the session cookie over HTTPS only
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	timeout := DefaultSessionTimeout // 28800 seconds unless overridden
	if secs, err := strconv.Atoi(os.Getenv("SESSION_TIMEOUT_SECONDS")); err == nil && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),                // Application port
		DBUser:         os.Getenv("DB_USER"),                 // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),             // Database password
		DBHost:         os.Getenv("DB_HOST"),                 // Database host
		DBPort:         os.Getenv("DB_PORT"),                 // Database port
		DBName:         os.Getenv("DB_NAME"),                 // Database name
		RedisAddr:      os.Getenv("REDIS_ADDR"),              // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),              // Redis password
		RedisDB:        redisDB,                              // Redis database number
		SessionTimeout: timeout,                              // Sliding session window
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true", // HTTPS-only cookie
		IsProd:         os.Getenv("IS_PROD") == "true",       // Is production environment
	}
}

// DSN builds the MySQL Data Source Name from the loaded settings
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
