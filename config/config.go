package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr    string
	AllowedOrigin string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPort     string
	RedisPassword string

	JWTSecret string

	// OAuth sign-in redirect
	OAuthAuthorizeURL string
	OAuthClientID     string
	OAuthRedirectURL  string

	// Generation vendor credentials
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GoogleAPIKey    string

	// Base URL overrides, empty means the vendor default
	OpenAIBaseURL    string
	AnthropicBaseURL string
	GoogleBaseURL    string

	// Avatar storage (Alibaba Cloud OSS)
	OSSEndpoint        string
	OSSBucketName      string
	OSSAccessKeyID     string
	OSSAccessKeySecret string

	// Gumroad credit purchases
	GumroadSellerID  string
	GumroadVerifyURL string

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c *Config) RedisFullAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisAddr, c.RedisPort)
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),

		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		RedisAddr:     os.Getenv("REDIS_HOST"),
		RedisPort:     os.Getenv("REDIS_PORT"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		OAuthAuthorizeURL: getEnv("OAUTH_AUTHORIZE_URL", "https://accounts.google.com/o/oauth2/v2/auth"),
		OAuthClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		OAuthRedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),

		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
		GoogleBaseURL:    os.Getenv("GOOGLE_BASE_URL"),

		OSSEndpoint:        os.Getenv("OSS_ENDPOINT"),
		OSSBucketName:      os.Getenv("OSS_BUCKET_NAME"),
		OSSAccessKeyID:     os.Getenv("OSS_ACCESS_KEY_ID"),
		OSSAccessKeySecret: os.Getenv("OSS_ACCESS_KEY_SECRET"),

		GumroadSellerID:  os.Getenv("GUMROAD_SELLER_ID"),
		GumroadVerifyURL: getEnv("GUMROAD_VERIFY_URL", "https://api.gumroad.com/v2/sales"),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
