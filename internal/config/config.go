// Package config builds the server configuration from flags, environment
// variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/and161185/dogial/internal/limiter"
)

// Config is the immutable server configuration.
type Config struct {
	Addr      string
	DSN       string // empty selects the in-memory store
	JWTKey    []byte
	AccessTTL time.Duration
	Issuer    string
	Limiter   limiter.Settings
	Dev       bool
}

// Load reads .env (if present), then the environment, then flags in args.
// Flags win over environment values. All problems are reported together.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}
	return load(args, os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	var problems []string
	env := envReader{lookup: lookup, problems: &problems}

	cfg := &Config{}
	var jwtKey string
	fs := flag.NewFlagSet("dogial-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", env.str("DOGIAL_ADDR", ":8080"), "listen address")
	fs.StringVar(&cfg.DSN, "dsn", env.str("DOGIAL_DSN", ""), "PostgreSQL DSN (empty: in-memory store)")
	fs.StringVar(&jwtKey, "jwt-key", env.str("DOGIAL_JWT_KEY", ""), "HS256 signing key (required)")
	fs.DurationVar(&cfg.AccessTTL, "access-ttl", env.duration("DOGIAL_ACCESS_TTL", time.Hour), "access token TTL")
	fs.StringVar(&cfg.Issuer, "jwt-issuer", env.str("DOGIAL_JWT_ISSUER", "dogial"), "token issuer claim")
	fs.IntVar(&cfg.Limiter.MaxFails, "login-max-fails", env.integer("DOGIAL_LOGIN_MAX_FAILS", limiter.DefaultSettings.MaxFails), "failed logins before lockout")
	fs.DurationVar(&cfg.Limiter.Window, "login-window", env.duration("DOGIAL_LOGIN_WINDOW", limiter.DefaultSettings.Window), "failed login counting window")
	fs.DurationVar(&cfg.Limiter.BlockFor, "login-block", env.duration("DOGIAL_LOGIN_BLOCK", limiter.DefaultSettings.BlockFor), "lockout duration")
	fs.BoolVar(&cfg.Dev, "dev", env.boolean("DOGIAL_DEV", false), "development logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.JWTKey = []byte(jwtKey)

	if len(cfg.JWTKey) == 0 {
		problems = append(problems, "missing jwt signing key (DOGIAL_JWT_KEY or -jwt-key)")
	}
	if cfg.AccessTTL <= 0 {
		problems = append(problems, "access-ttl must be positive")
	}
	if cfg.Limiter.MaxFails < 1 {
		problems = append(problems, "login-max-fails must be at least 1")
	}
	if cfg.Limiter.Window <= 0 || cfg.Limiter.BlockFor <= 0 {
		problems = append(problems, "login-window and login-block must be positive")
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

type envReader struct {
	lookup   func(string) (string, bool)
	problems *[]string
}

func (e envReader) str(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e envReader) integer(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*e.problems = append(*e.problems, fmt.Sprintf("invalid %s=%q: expected integer", key, v))
		return def
	}
	return n
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*e.problems = append(*e.problems, fmt.Sprintf("invalid %s=%q: expected duration", key, v))
		return def
	}
	return d
}

func (e envReader) boolean(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*e.problems = append(*e.problems, fmt.Sprintf("invalid %s=%q: expected boolean", key, v))
		return def
	}
	return b
}
