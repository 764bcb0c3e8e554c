package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
)

const (
	defaultAccessTTL      = 60 * time.Minute
	minSecretLength       = 16
	devBootstrapLogin     = "admin"
	devBootstrapPassword  = "admin"
	generatedSecretLength = 32
)

// Config carries environment-driven settings for the API process. It is loaded once at startup.
type Config struct {
	Port                   string
	PostgresDSN            string
	JWTSecret              string
	AccessTokenTTL         time.Duration
	BootstrapAdminLogin    string
	BootstrapAdminPassword string
	TemporalAddress        string
	TemporalNamespace      string
	TemporalDisabled       bool
	RunMigrations          bool
	MediaRoot              string
	MediaURL               string

	// GeneratedSecret is set when JWT_SECRET was absent in memory mode.
	GeneratedSecret bool
	// DevBootstrap is set when the default admin account is used in memory mode.
	DevBootstrap bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                   envDefault("PORT", "8080"),
		PostgresDSN:            strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		JWTSecret:              strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AccessTokenTTL:         defaultAccessTTL,
		BootstrapAdminLogin:    strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_LOGIN")),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		TemporalAddress:        envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:      envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:       isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		RunMigrations:          isTruthy(os.Getenv("RUN_MIGRATIONS")),
		MediaRoot:              envDefault("MEDIA_ROOT", "./media"),
		MediaURL:               "/" + strings.Trim(envDefault("MEDIA_URL", "/media"), "/"),
	}
	if raw := strings.TrimSpace(os.Getenv("JWT_ACCESS_TTL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("JWT_ACCESS_TTL_MINUTES must be a positive integer")
		}
		cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if cfg.MediaURL == "/" {
		return Config{}, errors.New("MEDIA_URL must not be the site root")
	}
	if err := cfg.resolveSecret(); err != nil {
		return Config{}, err
	}
	if err := cfg.resolveBootstrap(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// MemoryMode reports whether no database is configured.
func (c Config) MemoryMode() bool {
	return c.PostgresDSN == ""
}

func (c *Config) resolveSecret() error {
	if c.JWTSecret == "" {
		if !c.MemoryMode() {
			return errors.New("JWT_SECRET is required when POSTGRES_DSN is set")
		}
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		c.JWTSecret = secret
		c.GeneratedSecret = true
		return nil
	}
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	return nil
}

func (c *Config) resolveBootstrap() error {
	login, password := c.BootstrapAdminLogin, c.BootstrapAdminPassword
	switch {
	case login != "" && password != "":
		return nil
	case login != "" || password != "":
		return errors.New("BOOTSTRAP_ADMIN_LOGIN and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	case c.MemoryMode():
		c.BootstrapAdminLogin, c.BootstrapAdminPassword = devBootstrapLogin, devBootstrapPassword
		c.DevBootstrap = true
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, generatedSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate JWT secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
