package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	v.Set("DB_DSN", "postgres://localhost/catering")
	v.Set("JWT_ACCESS_SECRET", "secret")
	v.Set("DRAFT_TTL", "30m")
	v.Set("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Drafts.TTL)
}

func TestFromViperRequiresSecrets(t *testing.T) {
	v := viper.New()
	_, err := fromViper(v)
	assert.EqualError(t, err, "DB_DSN is required")

	v.Set("DB_DSN", "dsn")
	_, err = fromViper(v)
	assert.EqualError(t, err, "JWT_ACCESS_SECRET is required")
}
