package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                  = "8080"
	DefaultAccessTokenExpiryMin  = 15
	DefaultRefreshTokenExpiryMin = 10080 // 7 days
	DefaultSingleUseTokenTTLMin  = 30
	DefaultMailQueueName         = "mail-queue"
	DefaultTOTPIssuer            = "TaskBackend"
)

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Config struct {
	Env                  string
	Port                 string
	DBURL                string
	RedisAddr            string
	RedisPassword        string
	AccessTokenSecret    string
	RefreshTokenSecret   string
	AccessExpiryMin      int
	RefreshExpiryMin     int
	SingleUseTokenTTLMin int
	TOTPIssuer           string
	MailQueueName        string
	Mail                 MailConfig
	Google               GoogleConfig
}

// Load reads config/.env.dev or config/.env.prod depending on ENV, then
// overlays process environment variables. Values already present in the
// environment win over file values.
func Load() *Config {
	env := getEnv("ENV", "development")

	envFile := "config/.env.dev"
	if env == "production" {
		envFile = "config/.env.prod"
	}
	// Missing file is fine; everything can come from the environment.
	_ = godotenv.Load(envFile)

	return &Config{
		Env:                  env,
		Port:                 getEnv("PORT", DefaultPort),
		DBURL:                mustGetEnv("DB_URL"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		AccessTokenSecret:    mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:   mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:      getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:     getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		SingleUseTokenTTLMin: getEnvAsInt("SINGLE_USE_TOKEN_EXPIRY", DefaultSingleUseTokenTTLMin),
		TOTPIssuer:           getEnv("TOTP_ISSUER", DefaultTOTPIssuer),
		MailQueueName:        getEnv("MAIL_QUEUE_NAME", DefaultMailQueueName),
		Mail: MailConfig{
			Host:     getEnv("MAIL_HOST", "localhost"),
			Port:     getEnvAsInt("MAIL_PORT", 587),
			User:     getEnv("MAIL_USER", ""),
			Password: getEnv("MAIL_PASSWORD", ""),
			From:     getEnv("MAIL_FROM", "no-reply@localhost"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
