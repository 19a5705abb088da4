package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mslima/blog-core-go/pkg/result"
)

// MsgBadCredentials is the single generic message for every authentication
// failure; it never distinguishes missing tokens from bad ones, nor unknown
// emails from wrong passwords.
const MsgBadCredentials = "Usuário ou senha inválido"

// MsgForbidden is returned when an authenticated caller lacks a required role.
const MsgForbidden = "Acesso negado"

type ctxKey struct{}

// Gate is the authorization middleware. Authentication always runs before
// role checks, which run before any handler logic.
type Gate struct {
	tokens     *TokenService
	apiKeyName string
	apiKey     string
	logger     *zap.SugaredLogger
}

// NewGate builds the gate. apiKeyName/apiKey enable the query-string
// credential for trusted integrations; empty values disable it.
func NewGate(tokens *TokenService, apiKeyName, apiKey string, logger *zap.SugaredLogger) *Gate {
	return &Gate{tokens: tokens, apiKeyName: apiKeyName, apiKey: apiKey, logger: logger}
}

// Require wraps a handler so it only runs for authenticated requests. The
// validated claims are stored in the request context.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := g.authenticate(r)
		if !ok {
			result.WriteFail(w, http.StatusUnauthorized, MsgBadCredentials)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RequireRole wraps a handler so it only runs for authenticated requests
// whose claim set carries the given role slug.
func (g *Gate) RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := g.authenticate(r)
		if !ok {
			result.WriteFail(w, http.StatusUnauthorized, MsgBadCredentials)
			return
		}
		if !hasRole(claims, role) {
			result.WriteFail(w, http.StatusForbidden, MsgForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (g *Gate) authenticate(r *http.Request) (*Claims, bool) {
	if tok, ok := bearerToken(r); ok {
		claims, err := g.tokens.Validate(tok)
		if err != nil {
			g.logger.Debugw("token rejected", "path", r.URL.Path)
			return nil, false
		}
		return claims, true
	}
	// query-string API key: authenticates the caller but grants no roles
	if g.apiKeyName != "" && g.apiKey != "" {
		candidate := r.URL.Query().Get(g.apiKeyName)
		if candidate != "" && subtle.ConstantTimeCompare([]byte(candidate), []byte(g.apiKey)) == 1 {
			return &Claims{Name: "integration"}, true
		}
	}
	return nil, false
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(header[len("bearer "):])
	return tok, tok != ""
}

func hasRole(c *Claims, role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func withClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// ClaimsFrom returns the validated claims the gate stored for this request.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok
}
