package api

import (
	"context"

	"github.com/rpupo63/portfolio-backend/auth"
)

type keyType string

const claimsKey keyType = "adminClaims"

// ctxWithClaims adds the verified admin claims to the context
func ctxWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves the admin claims set by requireAdmin
func ctxGetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
