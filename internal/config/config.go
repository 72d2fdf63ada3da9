// Package config loads the process configuration from environment
// variables. All required values are validated once at startup; the
// process must not come up in a degraded state with credentials missing.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kivrims/backend/pkg/mpesa"
)

// Config is the full process configuration.
type Config struct {
	// Port the HTTP server listens on. Defaults to 5000.
	Port string
	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string
	// AllowedOrigins for CORS. Defaults to "*" (comma-separated list).
	AllowedOrigins []string
	// Mpesa holds the Daraja credentials. All except BaseURL required.
	Mpesa mpesa.Config
}

// Load reads configuration from the environment. It returns an error
// naming every missing required variable so a misconfigured deployment
// fails fast with a single complete diagnostic.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Mpesa: mpesa.Config{
			BaseURL:        getenv("MPESA_BASE_URL", mpesa.SandboxBaseURL),
			ConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
			ConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
			Passkey:        os.Getenv("MPESA_PASSKEY"),
			ShortCode:      os.Getenv("MPESA_SHORTCODE"),
			CallbackURL:    os.Getenv("MPESA_CALLBACK_URL"),
		},
	}

	origins := getenv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"MPESA_CONSUMER_KEY", cfg.Mpesa.ConsumerKey},
		{"MPESA_CONSUMER_SECRET", cfg.Mpesa.ConsumerSecret},
		{"MPESA_PASSKEY", cfg.Mpesa.Passkey},
		{"MPESA_SHORTCODE", cfg.Mpesa.ShortCode},
		{"MPESA_CALLBACK_URL", cfg.Mpesa.CallbackURL},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
