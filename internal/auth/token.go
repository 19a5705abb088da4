package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mslima/blog-core-go/internal/account/entity"
)

// ErrInvalidToken covers every rejection: bad signature, expiry, malformed
// input. Callers only ever learn that the token was not accepted.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the claim set embedded in issued tokens: the account email as the
// name claim plus one role slug per assigned role.
type Claims struct {
	jwt.RegisteredClaims
	Name  string   `json:"name"`
	Roles []string `json:"roles,omitempty"`
}

// TokenService issues and validates the self-contained bearer tokens used by
// the authorization gate. Tokens are signed with a symmetric process-wide
// secret loaded once at startup; there is no revocation list or key
// versioning, rotating the secret requires a restart.
type TokenService struct {
	key []byte
	ttl time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{key: []byte(secret), ttl: ttl}
}

// Issue builds the claim set for the user and returns the signed compact
// serialization. Roles must be eagerly loaded on the user; an unloaded role
// association silently degrades to a name-only token.
func (s *TokenService) Issue(u *entity.User) (string, error) {
	name, roles := UserClaims(u)
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Name:  name,
		Roles: roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Validate verifies signature and expiry and returns the embedded claims.
// Issuer and audience are deliberately not checked: single-tenant,
// single-audience deployment.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
