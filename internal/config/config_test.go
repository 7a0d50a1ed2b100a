package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func env(kv map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := kv[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(nil, env(map[string]string{"DOGIAL_JWT_KEY": "k"}))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Empty(t, cfg.DSN)
	require.Equal(t, []byte("k"), cfg.JWTKey)
	require.Equal(t, time.Hour, cfg.AccessTTL)
	require.Equal(t, "dogial", cfg.Issuer)
	require.Equal(t, 5, cfg.Limiter.MaxFails)
	require.False(t, cfg.Dev)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	cfg, err := load(
		[]string{"-addr", ":9999", "-login-max-fails", "7"},
		env(map[string]string{
			"DOGIAL_ADDR":            ":1111",
			"DOGIAL_DSN":             "postgres://x",
			"DOGIAL_JWT_KEY":         "secret",
			"DOGIAL_ACCESS_TTL":      "30m",
			"DOGIAL_LOGIN_MAX_FAILS": "3",
			"DOGIAL_LOGIN_BLOCK":     "1m",
			"DOGIAL_DEV":             "true",
		}),
	)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "postgres://x", cfg.DSN)
	require.Equal(t, 30*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7, cfg.Limiter.MaxFails)
	require.Equal(t, time.Minute, cfg.Limiter.BlockFor)
	require.True(t, cfg.Dev)
}

func TestLoad_CollectsAllProblems(t *testing.T) {
	_, err := load(nil, env(map[string]string{
		"DOGIAL_ACCESS_TTL":      "soon",
		"DOGIAL_LOGIN_MAX_FAILS": "many",
		"DOGIAL_DEV":             "maybe",
	}))
	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "missing jwt signing key")
	require.Contains(t, msg, "DOGIAL_ACCESS_TTL")
	require.Contains(t, msg, "DOGIAL_LOGIN_MAX_FAILS")
	require.Contains(t, msg, "DOGIAL_DEV")
}

func TestLoad_RejectsNonPositive(t *testing.T) {
	_, err := load([]string{"-access-ttl", "0s", "-login-max-fails", "0"}, env(map[string]string{"DOGIAL_JWT_KEY": "k"}))
	require.ErrorContains(t, err, "access-ttl")
	require.ErrorContains(t, err, "login-max-fails")
}

func TestLoad_UnknownFlag(t *testing.T) {
	_, err := load([]string{"-nope"}, env(map[string]string{"DOGIAL_JWT_KEY": "k"}))
	require.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOGIAL_JWT_KEY=from-dotenv\nDOGIAL_ADDR=:7070\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("DOGIAL_JWT_KEY")
		_ = os.Unsetenv("DOGIAL_ADDR")
	})

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, []byte("from-dotenv"), cfg.JWTKey)
	require.Equal(t, ":7070", cfg.Addr)
}
