package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Minute, cfg.Verify.CodeTTL)
	assert.Equal(t, 30*time.Second, cfg.Verify.ResendCooldown)
	assert.Equal(t, 10, cfg.Verify.MaxAttempts)
	assert.True(t, cfg.Verify.Required)
	assert.False(t, cfg.Verify.EchoCodes)
	assert.True(t, cfg.SMTP.Enabled)
	assert.False(t, cfg.SMS.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VERIFY_CODE_TTL", "5m")
	t.Setenv("VERIFY_RESEND_COOLDOWN", "5m")
	t.Setenv("VERIFY_ECHO_CODES", "true")
	t.Setenv("SMS_ENABLED", "true")
	t.Setenv("SMS_API_URL", "https://sms.example.com/v1/send")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Verify.CodeTTL)
	assert.Equal(t, 5*time.Minute, cfg.Verify.ResendCooldown)
	assert.True(t, cfg.Verify.EchoCodes)
	assert.True(t, cfg.SMS.Enabled)
	assert.Equal(t, "https://sms.example.com/v1/send", cfg.SMS.APIURL)
}
