package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DSN", "file::memory:")
	t.Setenv("JWT_SECRET", "s3cret")

	config, err := loadConfig(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, config.validate())

	assert.Equal(t, "pgx", config.DBDriver)
	assert.Equal(t, ":8080", config.HTTPAddr)
	assert.Equal(t, 15*time.Second, config.BackendTimeout)
	fee, err := config.feePercent()
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, config.corsOrigins())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := "DSN=postgres://localhost/tributes\nJWT_SECRET=abc\nWITHDRAWAL_FEE_PERCENT=2.5\nCORS_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.env"), []byte(body), 0o600))

	config, err := loadConfig(dir)
	require.NoError(t, err)
	require.NoError(t, config.validate())

	fee, _ := config.feePercent()
	assert.Equal(t, "2.5", fee.String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.corsOrigins())
}

func TestConfigValidate(t *testing.T) {
	c := Config{DSN: "x", JWTSecret: "y", WithdrawalFeePercent: "101"}
	assert.Error(t, c.validate())
	c.WithdrawalFeePercent = "abc"
	assert.Error(t, c.validate())
	c.JWTSecret = ""
	assert.EqualError(t, c.validate(), "JWT_SECRET is required")
}
