// Command dogial is a CLI client for the Dogial HTTP API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/dogial/internal/api"
)

// ---- token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "dogial")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dogial")
}

func tokenPath() string { return filepath.Join(cfgDir(), "token.json") }

func saveToken(tok string, exp time.Time) error {
	if err := os.MkdirAll(cfgDir(), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(tokenPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: tok, ExpiresAt: exp})
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", errors.New("no saved token (login required)")
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", errors.New("no valid token (login required)")
	}
	return tf.AccessToken, nil
}

// tokenExpiry reads exp from a token without verifying it; the server does that.
func tokenExpiry(raw string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(15 * time.Minute)
}

// ---- utils ----

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

const usageText = `dogial CLI
Usage:
  dogial [-addr URL] <cmd> [args]

Commands:
  version
  register   -e <email> -p <password>
  login      -e <email> -p <password>              (saves token)
  user-get   -id <uuid>
  user-rm    -id <uuid>
  dogs       -owner <uuid>
  dog-add    -owner <uuid> -name <n> -breed <b> -gender <g>
             [-weight kg] [-age a] [-neutered] [-behavior b] [-pedigree]
  dog-get    -id <uuid>
  dog-rm     -id <uuid>
`

var errUsage = errors.New("usage")

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := run(ctx, os.Args[1:], os.Stdout)
	cancel()
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run dispatches one subcommand.
func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("dogial", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	addr := global.String("addr", envOr("DOGIAL_URL", "http://localhost:8080"), "server base URL")
	if err := global.Parse(args); err != nil || global.NArg() < 1 {
		return errUsage
	}
	cmd, rest := global.Arg(0), global.Args()[1:]
	c := newClient(*addr)

	authed := func() error {
		tok, err := loadToken()
		if err != nil {
			return err
		}
		c.token = tok
		return nil
	}

	switch cmd {
	case "version":
		fmt.Fprintf(out, "dogial %s (%s)\n", version, buildDate)
		return nil

	case "register":
		fs := flag.NewFlagSet("register", flag.ContinueOnError)
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		if err := fs.Parse(rest); err != nil || *e == "" || *p == "" {
			return fmt.Errorf("%w: need -e and -p", errUsage)
		}
		var u api.UserResponse
		if err := c.do(ctx, "POST", "/v1/users", api.UserRequest{Email: *e, PasswordHash: *p}, &u); err != nil {
			return err
		}
		fmt.Fprintln(out, u.ID)
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ContinueOnError)
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		if err := fs.Parse(rest); err != nil || *e == "" || *p == "" {
			return fmt.Errorf("%w: need -e and -p", errUsage)
		}
		var lr api.LoginResponse
		if err := c.do(ctx, "POST", "/authentication/login", api.LoginRequest{Email: *e, Password: *p}, &lr); err != nil {
			return err
		}
		if err := saveToken(lr.AccessToken, tokenExpiry(lr.AccessToken)); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")
		return nil

	case "user-get", "user-rm", "dog-get", "dog-rm":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		id := fs.String("id", "", "uuid")
		if err := fs.Parse(rest); err != nil || *id == "" {
			return fmt.Errorf("%w: need -id", errUsage)
		}
		if err := authed(); err != nil {
			return err
		}
		return idCommand(ctx, c, cmd, *id, out)

	case "dogs":
		fs := flag.NewFlagSet("dogs", flag.ContinueOnError)
		owner := fs.String("owner", "", "owner uuid")
		if err := fs.Parse(rest); err != nil || *owner == "" {
			return fmt.Errorf("%w: need -owner", errUsage)
		}
		if err := authed(); err != nil {
			return err
		}
		var list []api.DogResponse
		if err := c.do(ctx, "GET", "/v1/users/"+*owner+"/dogs", nil, &list); err != nil {
			return err
		}
		printJSON(out, list)
		return nil

	case "dog-add":
		req, err := parseDogFlags(rest)
		if err != nil {
			return err
		}
		if err := authed(); err != nil {
			return err
		}
		var d api.DogResponse
		if err := c.do(ctx, "POST", "/v1/dogs", req, &d); err != nil {
			return err
		}
		printJSON(out, d)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func idCommand(ctx context.Context, c *client, cmd, id string, out io.Writer) error {
	switch cmd {
	case "user-get":
		var u api.UserResponse
		if err := c.do(ctx, "GET", "/v1/users/"+id, nil, &u); err != nil {
			return err
		}
		printJSON(out, u)
	case "dog-get":
		var d api.DogResponse
		if err := c.do(ctx, "GET", "/v1/dogs/"+id, nil, &d); err != nil {
			return err
		}
		printJSON(out, d)
	case "user-rm":
		if err := c.do(ctx, "DELETE", "/v1/users/"+id, nil, nil); err != nil {
			return err
		}
		fmt.Fprintln(out, "deleted")
	case "dog-rm":
		if err := c.do(ctx, "DELETE", "/v1/dogs/"+id, nil, nil); err != nil {
			return err
		}
		fmt.Fprintln(out, "deleted")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
