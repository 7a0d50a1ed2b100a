package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/dogial/internal/api"
)

func withTmpConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func Test_cfgDir_And_Paths(t *testing.T) {
	dir := withTmpConfig(t)
	if got, want := cfgDir(), filepath.Join(dir, "dogial"); got != want {
		t.Fatalf("cfgDir = %q, want %q", got, want)
	}
	if got, want := tokenPath(), filepath.Join(dir, "dogial", "token.json"); got != want {
		t.Fatalf("tokenPath = %q, want %q", got, want)
	}
}

func Test_token_SaveLoad(t *testing.T) {
	withTmpConfig(t)
	if _, err := loadToken(); err == nil {
		t.Fatal("expected error without a saved token")
	}
	if err := saveToken("tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	got, err := loadToken()
	if err != nil || got != "tok" {
		t.Fatalf("loadToken = %q, %v", got, err)
	}
	st, err := os.Stat(tokenPath())
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("token file mode = %v", st.Mode().Perm())
	}
}

func Test_token_Expired(t *testing.T) {
	withTmpConfig(t)
	if err := saveToken("tok", time.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := loadToken(); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func Test_tokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if got := tokenExpiry(raw); !got.Equal(exp) {
		t.Fatalf("tokenExpiry = %v, want %v", got, exp)
	}
	if got := tokenExpiry("garbage"); got.Before(time.Now()) {
		t.Fatalf("fallback expiry in the past: %v", got)
	}
}

func Test_client_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "owner not found"})
	}))
	defer srv.Close()

	err := newClient(srv.URL).do(context.Background(), http.MethodGet, "/v1/dogs/x", nil, nil)
	var ae *apiError
	if !errors.As(err, &ae) {
		t.Fatalf("want *apiError, got %v", err)
	}
	if ae.Status != http.StatusNotFound || ae.Message != "owner not found" {
		t.Fatalf("unexpected error: %+v", ae)
	}
}

func Test_run_LoginThenGet(t *testing.T) {
	withTmpConfig(t)
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("k"))

	var sawAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /authentication/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "a@b.co" || req.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.LoginResponse{AccessToken: raw, TokenType: "Bearer"})
	})
	mux.HandleFunc("GET /v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(api.UserResponse{ID: r.PathValue("id"), Email: "a@b.co"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-addr", srv.URL, "login", "-e", "a@b.co", "-p", "pw"}, &out); err != nil {
		t.Fatalf("login: %v", err)
	}
	out.Reset()
	if err := run(context.Background(), []string{"-addr", srv.URL, "user-get", "-id", "u1"}, &out); err != nil {
		t.Fatalf("user-get: %v", err)
	}
	if sawAuth != "Bearer "+raw {
		t.Fatalf("Authorization = %q", sawAuth)
	}
	if !strings.Contains(out.String(), `"email": "a@b.co"`) {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func Test_run_NeedsLogin(t *testing.T) {
	withTmpConfig(t)
	err := run(context.Background(), []string{"dog-get", "-id", "x"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "login required") {
		t.Fatalf("expected login required, got %v", err)
	}
}

func Test_run_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"nope"}, {"login"}, {"dog-add", "-name", "Rex"}} {
		if err := run(context.Background(), args, &bytes.Buffer{}); !errors.Is(err, errUsage) {
			t.Fatalf("args %v: want errUsage, got %v", args, err)
		}
	}
}

func Test_run_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"version"}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "dogial dev") {
		t.Fatalf("unexpected: %q", out.String())
	}
}

func Test_parseDogFlags(t *testing.T) {
	owner := "7d7b8f3a-0d0e-4c36-9f43-3b0b4ad0b2a1"
	req, err := parseDogFlags([]string{"-owner", owner, "-name", "Rex", "-breed", "Lab", "-gender", "m", "-weight", "12.5", "-neutered"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Weight == nil || *req.Weight != 12.5 {
		t.Fatalf("weight = %v", req.Weight)
	}
	if req.IsNeutered == nil || !*req.IsNeutered {
		t.Fatal("neutered not set")
	}
	if req.Age != nil || req.Pedigree != nil || req.Behavior != nil {
		t.Fatal("unset optionals must stay nil")
	}

	if _, err := parseDogFlags([]string{"-owner", "bad", "-name", "Rex", "-breed", "Lab", "-gender", "m"}); err == nil {
		t.Fatal("expected error for bad owner id")
	}
}
