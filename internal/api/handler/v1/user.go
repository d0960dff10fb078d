package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gin-gonic/gin"

	"github.com/festivefusion/festival-api/internal/api/handler/v1/request"
	"github.com/festivefusion/festival-api/internal/api/handler/v1/response"
	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/service"
)

type UserService interface {
	UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (domain.User, error)
	ListSavedFestivals(ctx context.Context, id string) ([]domain.Festival, error)
	SaveFestival(ctx context.Context, id, festivalID string) (domain.User, error)
	UnsaveFestival(ctx context.Context, id, festivalID string) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleUpdatePreferences godoc
// @Summary      Replace the caller's preferences
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdatePreferencesRequest  true  "preferences"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/me/preferences [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdatePreferences(ctx *gin.Context) {
	claims, respErr := claimsFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdatePreferences(ctx.Request.Context(), claims.UserID, domain.Preferences{
		Categories: req.Categories,
		Regions:    req.Regions,
	})
	if err != nil {
		h.renderUserErr(ctx, fmt.Errorf("v1.HandleUpdatePreferences -> h.svc.UpdatePreferences -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleListSavedFestivals godoc
// @Summary      List the caller's saved festivals
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.Festival
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me/saved-festivals [get]
// @Security BearerAuth
func (h *UserHandler) HandleListSavedFestivals(ctx *gin.Context) {
	claims, respErr := claimsFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	festivals, err := h.svc.ListSavedFestivals(ctx.Request.Context(), claims.UserID)
	if err != nil {
		h.renderUserErr(ctx, fmt.Errorf("v1.HandleListSavedFestivals -> h.svc.ListSavedFestivals -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, festivals)
}

// HandleSaveFestival godoc
// @Summary      Save a festival
// @Tags         users
// @Produce      json
// @Param        festivalId  path      string  true  "festival ID"
// @Success      200         {object}  domain.User
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /users/me/saved-festivals/{festivalId} [post]
// @Security BearerAuth
func (h *UserHandler) HandleSaveFestival(ctx *gin.Context) {
	claims, respErr := claimsFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.SaveFestival(ctx.Request.Context(), claims.UserID, ctx.Param("festivalId"))
	if err != nil {
		h.renderUserErr(ctx, fmt.Errorf("v1.HandleSaveFestival -> h.svc.SaveFestival -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUnsaveFestival godoc
// @Summary      Remove a saved festival
// @Tags         users
// @Produce      json
// @Param        festivalId  path      string  true  "festival ID"
// @Success      200         {object}  domain.User
// @Failure      401         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /users/me/saved-festivals/{festivalId} [delete]
// @Security BearerAuth
func (h *UserHandler) HandleUnsaveFestival(ctx *gin.Context) {
	claims, respErr := claimsFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.UnsaveFestival(ctx.Request.Context(), claims.UserID, ctx.Param("festivalId"))
	if err != nil {
		h.renderUserErr(ctx, fmt.Errorf("v1.HandleUnsaveFestival -> h.svc.UnsaveFestival -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *UserHandler) renderUserErr(ctx *gin.Context, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		// The token outlived its user.
		response.RenderErr(ctx, response.ErrUnauthorized(err))
	case errors.As(err, &fieldErrs):
		response.RenderErr(ctx, response.ErrBadRequest(fieldErrs))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
