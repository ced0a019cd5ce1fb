package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, "data/messagely.db", cfg.Database.Path)
	require.Empty(t, cfg.Auth.JWTSecret)
	require.Zero(t, cfg.Auth.TokenTTLMinutes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MSGLY_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("MSGLY_AUTH_JWTSECRET", "hunter2")
	t.Setenv("MSGLY_AUTH_TOKENTTLMINUTES", "60")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Equal(t, "hunter2", cfg.Auth.JWTSecret)
	require.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
}
