package config

import (
	"os"      // For environment variables
	"strconv" // For string to number conversion
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string   // Application port
	DBUser         string   // Database user
	DBPassword     string   // Database password
	DBHost         string   // Database host
	DBPort         string   // Database port
	DBName         string   // Database name
	JWTSecret      string   // Secret used to sign session tokens
	RedisAddr      string   // Redis server address
	RedisPass      string   // Redis password
	RedisDB        int      // Redis database number
	IsProd         bool     // Is production environment
	UploadDir      string   // Directory where proof files are stored
	EnforceBalance bool     // Reject allocations that exceed the available balance
	StrictRoles    bool     // Reject re-registering a wallet under a different role
	EnforceRoles   bool     // Reject mutating calls whose session role is not allowed
	CORSOrigins    []string // Allowed CORS origins
	RateLimitRPS   int      // Requests per second allowed per client
	RateLimitBurst int      // Burst size for the per-client limiter
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        getEnv("APP_PORT", "5000"),             // Application port
		DBUser:         os.Getenv("DB_USER"),                   // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),               // Database password
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),         // Database host
		DBPort:         getEnv("DB_PORT", "3306"),              // Database port
		DBName:         getEnv("DB_NAME", "chainvora"),         // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),                // Session token secret
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"), // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:        redisDB,                                // Redis database number
		IsProd:         os.Getenv("IS_PROD") == "true",         // Is production environment
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),        // Proof upload directory
		EnforceBalance: os.Getenv("ENFORCE_BALANCE") == "true", // Balance check on allocate
		StrictRoles:    os.Getenv("STRICT_ROLES") == "true",    // Role re-registration policy
		EnforceRoles:   os.Getenv("ENFORCE_ROLES") == "true",   // Role gating on mutating routes
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")), // Allowed CORS origins
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 20),        // Per-client request rate
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),      // Per-client burst
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the variable as an int or a fallback when unset or invalid
func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
