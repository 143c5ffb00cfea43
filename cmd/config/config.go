package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config is read from the environment once at startup and handed to
// constructors explicitly.
type Config struct {
	Port string
	Env  string

	MongoURI  string
	MongoName string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	CORSOrigin string

	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getenv("PORT", "8080"),
		Env:                getenv("APP_ENV", "development"),
		MongoURI:           getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoName:          getenv("MONGODB_NAME", "auth_api"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		CORSOrigin:         getenv("CORS_ORIGIN", "http://localhost:3000"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPSender:         os.Getenv("SMTP_SENDER"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
	}

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}

	var err error
	if cfg.AccessTokenTTL, err = getduration("ACCESS_TOKEN_EXPIRY", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = getduration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour); err != nil {
		return nil, err
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		if cfg.SMTPPort, err = strconv.Atoi(port); err != nil {
			return nil, errors.New("SMTP_PORT must be a number")
		}
	} else {
		cfg.SMTPPort = 587
	}

	return cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}
