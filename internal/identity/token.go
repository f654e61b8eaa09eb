// AngelaMos | 2026
// token.go

package identity

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/deenhub-app/admin-backend/internal/config"
	"github.com/deenhub-app/admin-backend/internal/core"
)

// TokenVerifier validates provider-issued session tokens against the
// provider's JWKS endpoint. The key set is cached and refreshed by
// jwk.Cache; no keys are held locally.
type TokenVerifier struct {
	keySet   jwk.Set
	issuer   string
	audience string
}

func NewTokenVerifier(
	ctx context.Context,
	cfg config.IdentityConfig,
) (*TokenVerifier, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("create jwks cache: %w", err)
	}

	if err := cache.Register(ctx, cfg.JWKSURL); err != nil {
		return nil, fmt.Errorf("register jwks url: %w", err)
	}

	cached, err := cache.CachedSet(cfg.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("cache jwks set: %w", err)
	}

	return &TokenVerifier{
		keySet:   cached,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}, nil
}

// VerifySessionToken returns the subject id of a valid token. Any
// parse or validation failure maps to ErrUnauthorized.
func (v *TokenVerifier) VerifySessionToken(
	ctx context.Context,
	tokenString string,
) (string, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKeySet(v.keySet),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
	)
	if err != nil {
		return "", fmt.Errorf("verify session token: %w", core.ErrUnauthorized)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return "", fmt.Errorf(
			"verify session token: missing subject: %w",
			core.ErrUnauthorized,
		)
	}

	return subject, nil
}
