package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	JWTSecret   string
	RedisURL    string // optional; enables token revocation and health counters
	UploadDir   string
	FrontendURL string // CORS allow origin; "*" when unset
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	port := viper.GetString("PORT")
	if port == "" {
		port = "5000"
	}

	// Per-environment URL wins over the generic one when set.
	dbURL := viper.GetString("DATABASE_URL")
	switch env {
	case "test":
		if u := viper.GetString("DATABASE_URL_TEST"); u != "" {
			dbURL = u
		}
	case "production":
		if u := viper.GetString("DATABASE_URL_PROD"); u != "" {
			dbURL = u
		}
	}

	uploadDir := viper.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return &Config{
		Env:         env,
		Port:        port,
		DatabaseURL: dbURL,
		JWTSecret:   viper.GetString("JWT_SECRET"),
		RedisURL:    viper.GetString("REDIS_URL"),
		UploadDir:   uploadDir,
		FrontendURL: viper.GetString("FRONTEND_URL"),
	}, nil
}
