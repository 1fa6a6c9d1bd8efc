package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultTokenTTL is the absolute token lifetime (30 days, no refresh).
const DefaultTokenTTL = 30 * 24 * time.Hour

const denylistPrefix = "token_denylist:"

// Claims is the signed token payload: account id, role, and standard
// registered claims (jti for revocation, exp, iat).
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. Tokens are stateless;
// when Rdb is set, Revoke denylists a token's jti until its natural expiry and
// Verify consults that denylist. Without Redis, revocation is a client-side
// discard (accepted limitation).
type TokenService struct {
	Secret []byte
	Rdb    *redis.Client
	TTL    time.Duration // zero means DefaultTokenTTL
}

func (t *TokenService) ttl() time.Duration {
	if t.TTL != 0 {
		return t.TTL
	}
	return DefaultTokenTTL
}

// Issue signs a token encoding userID and role with an absolute expiry.
func (t *TokenService) Issue(userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

// Verify parses and validates a token, returning its claims. Malformed,
// expired, badly signed, and revoked tokens all collapse to ErrInvalidToken;
// the distinct cause is logged here.
func (t *TokenService) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil || !token.Valid {
		log.Debug().Err(err).Msg("token: verification failed")
		return nil, ErrInvalidToken
	}
	if t.Rdb != nil && claims.ID != "" {
		n, err := t.Rdb.Exists(ctx, denylistPrefix+claims.ID).Result()
		if err != nil {
			log.Error().Err(err).Msg("token: denylist lookup failed")
		} else if n > 0 {
			log.Debug().Str("jti", claims.ID).Msg("token: revoked")
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// Revoke denylists the token's jti until the token would have expired anyway.
// A no-op when Redis is not configured or the token is already past expiry.
func (t *TokenService) Revoke(ctx context.Context, claims *Claims) error {
	if t.Rdb == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return t.Rdb.Set(ctx, denylistPrefix+claims.ID, "1", ttl).Err()
}
