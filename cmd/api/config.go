package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config is loaded from config.env and the environment.
type Config struct {
	DSN                  string        `mapstructure:"DSN"`
	DBDriver             string        `mapstructure:"DB_DRIVER"`
	JWTSecret            string        `mapstructure:"JWT_SECRET"`
	WebhookSecret        string        `mapstructure:"WEBHOOK_SECRET"`
	BackendURL           string        `mapstructure:"BACKEND_URL"`
	BackendTimeout       time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	HTTPAddr             string        `mapstructure:"HTTP_ADDR"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	WithdrawalFeePercent string        `mapstructure:"WITHDRAWAL_FEE_PERCENT"`
	CORSOrigins          string        `mapstructure:"CORS_ORIGINS"`
	ProfileTTL           time.Duration `mapstructure:"PROFILE_TTL"`
}

func loadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("BACKEND_URL", "http://localhost:3000/api")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WITHDRAWAL_FEE_PERCENT", "5")
	v.SetDefault("PROFILE_TTL", "5m")
	// AutomaticEnv only sees keys viper already knows about.
	for _, k := range []string{"DSN", "JWT_SECRET", "WEBHOOK_SECRET", "CORS_ORIGINS"} {
		v.SetDefault(k, "")
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	return
}

func (c Config) validate() error {
	if c.DSN == "" {
		return errors.New("DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	_, err := c.feePercent()
	return err
}

func (c Config) feePercent() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(c.WithdrawalFeePercent))
	if err != nil {
		return decimal.Zero, fmt.Errorf("WITHDRAWAL_FEE_PERCENT: %w", err)
	}
	if fee.IsNegative() || fee.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("WITHDRAWAL_FEE_PERCENT must be between 0 and 100, got %s", fee)
	}
	return fee, nil
}

func (c Config) corsOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
