package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("fails fast without the signing secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "")

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "authgate", cfg.Issuer)
		require.Equal(t, 24*time.Hour, cfg.TokenTTL)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, 40*time.Second, cfg.ProviderTimeout)
		require.False(t, cfg.googleEnabled())
		require.False(t, cfg.githubEnabled())
		require.False(t, cfg.oidcEnabled())
	})

	t.Run("provider enabled when id and secret are set", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("GOOGLE_CLIENT_ID", "client-id")
		t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.True(t, cfg.googleEnabled())
		require.False(t, cfg.githubEnabled())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("AUTH_TOKEN_TTL", "30m")
		t.Setenv("PORT", "9090")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 30*time.Minute, cfg.TokenTTL)
		require.Equal(t, 9090, cfg.Port)
	})
}
