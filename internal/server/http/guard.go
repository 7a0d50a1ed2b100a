package httpserver

import (
	"net/http"
	"strings"

	"github.com/and161185/dogial/internal/model"
)

// Policy states what a route requires from the caller.
type Policy int

const (
	// Anonymous routes run without any token check.
	Anonymous Policy = iota
	// Authenticated routes need a valid bearer token.
	Authenticated
)

func (p Policy) String() string {
	if p == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// TokenParser validates a raw bearer token.
type TokenParser interface {
	Parse(raw string) (model.Principal, error)
}

// Guard enforces policy before the handler runs. Authenticated requests get
// their Principal in context; anything else is answered with 401.
func Guard(policy Policy, tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if policy == Anonymous {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				unauthorized(w, "missing bearer token")
				return
			}
			p, err := tokens.Parse(raw)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="dogial"`)
	writeJSON(w, http.StatusUnauthorized, errorBody(msg))
}

func bearerToken(authHeader string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, model.TokenTypeBearer) {
		return ""
	}
	return strings.TrimSpace(tok)
}
