package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	DatabaseURL  string   `mapstructure:"DATABASE_URL"`
	DBMaxConns   int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns   int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret    string   `mapstructure:"JWT_SECRET"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`
	SMTPHost     string   `mapstructure:"SMTP_HOST"`
	SMTPPort     int      `mapstructure:"SMTP_PORT"`
	SMTPUsername string   `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string   `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string   `mapstructure:"MAIL_FROM"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "4000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "no-reply@medisense.ai")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SMTP_HOST")
	v.BindEnv("SMTP_PORT")
	v.BindEnv("SMTP_USERNAME")
	v.BindEnv("SMTP_PASSWORD")
	v.BindEnv("MAIL_FROM")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT_SECRET must be configured so doctor sessions cannot be forged, and an
// SMTP host is required so verification codes can actually be delivered.
func (c *Config) Validate() error {
	if !c.IsDev() {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when ENV is %q", c.Env)
		}
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when ENV is %q", c.Env)
		}
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be a valid port, got %d", c.SMTPPort)
	}
	if c.MailFrom == "" {
		return fmt.Errorf("MAIL_FROM must not be empty")
	}
	return nil
}
