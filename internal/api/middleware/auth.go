package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festivefusion/festival-api/internal/api/handler/v1/response"
	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/service"
)

const claimsKey = "claims"

var (
	errMissingToken = errors.New("missing bearer token")
	errNoClaims     = errors.New("no verified claims on request")
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (domain.Claims, error)
	RequireRole(claims domain.Claims, role string) error
}

type Authenticator struct {
	verifier TokenVerifier
}

func NewAuthenticator(verifier TokenVerifier) *Authenticator {
	return &Authenticator{
		verifier: verifier,
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// verified claims on the context for the handlers.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx.GetHeader("Authorization"))
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := a.verifier.VerifyToken(ctx.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				response.RenderErr(ctx, response.ErrUnauthorized(err))
				return
			}

			err = fmt.Errorf("middleware.VerifyJWT -> a.verifier.VerifyToken -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		ctx.Set(claimsKey, claims)
		ctx.Next()
	}
}

// RequireRole must run after VerifyJWT.
func (a *Authenticator) RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errNoClaims))
			return
		}

		if err := a.verifier.RequireRole(claims, role); err != nil {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		ctx.Next()
	}
}

func ClaimsFromContext(ctx *gin.Context) (domain.Claims, bool) {
	v, ok := ctx.Get(claimsKey)
	if !ok {
		return domain.Claims{}, false
	}

	claims, ok := v.(domain.Claims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
