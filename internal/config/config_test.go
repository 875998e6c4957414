package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, PaymentMock, cfg.PaymentProvider)
	assert.Equal(t, 720*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10*time.Minute, cfg.FacetCacheTTL)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, "mock-secret", cfg.PaymentSecret())
	assert.Equal(t, "localhost:6379", cfg.Redis().Addr())
	assert.Equal(t, 60*time.Minute, cfg.Postgres().MaxConnLifetime)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=7070\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("HTTP_PORT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.HTTPPort)
}

func TestLoad_RazorpayNeedsKeys(t *testing.T) {
	t.Setenv("PAYMENT_PROVIDER", PaymentRazorpay)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RAZORPAY_KEY_ID")

	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_1")
	t.Setenv("RAZORPAY_KEY_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.PaymentSecret())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port", "HTTP_PORT", "70000"},
		{"provider", "PAYMENT_PROVIDER", "paypal"},
		{"sample rate", "OTEL_SAMPLE_RATE", "1.5"},
		{"expiry", "JWT_EXPIRY", "0s"},
		{"not a number", "REDIS_PORT", "six"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = Load()
	require.NoError(t, err)
}
