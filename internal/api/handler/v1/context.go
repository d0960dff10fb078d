package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/festivefusion/festival-api/internal/api/handler/v1/response"
	"github.com/festivefusion/festival-api/internal/api/middleware"
	"github.com/festivefusion/festival-api/internal/domain"
)

var errMissingClaims = errors.New("request is not authenticated")

func claimsFromContext(ctx *gin.Context) (domain.Claims, *response.Err) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return domain.Claims{}, response.ErrUnauthorized(errMissingClaims)
	}

	return claims, nil
}
