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

type VisitService interface {
	ListForUser(ctx context.Context, userID string) ([]domain.PlannedVisit, error)
	CreateVisit(ctx context.Context, visit domain.PlannedVisit) (domain.PlannedVisit, error)
	UpdateVisit(ctx context.Context, id, ownerID string, patch domain.VisitPatch) (domain.PlannedVisit, error)
	DeleteVisit(ctx context.Context, id, ownerID string) error
}

type VisitHandler struct {
	svc VisitService
}

func NewVisitHandler(svc VisitService) *VisitHandler {
	return &VisitHandler{
		svc: svc,
	}
}

// HandleListUserVisits godoc
// @Summary      List the caller's planned visits
// @Tags         planned-visits
// @Produce      json
// @Success      200  {array}   domain.PlannedVisit
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /planned-visits/user [get]
// @Security BearerAuth
func (h *VisitHandler) HandleListUserVisits(ctx *gin.Context) {
	claims, respErr := claimsFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	visits, err := h.svc.ListForUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListUserVisits -> h.svc.ListForUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, visits)
}

// HandleCreateVisit godoc
// @Summary      Plan a visit
// @Tags         planned-visits
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateVisitRequest  true  "visit"
// @Success      201      {object}  domain.PlannedVisit
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /planned-visits [post]
// @Security BearerAuth
func (h *VisitHandler) HandleCreateVisit(ctx *gin.Context) {
	claims, respErr := claimsFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateVisitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	visit, err := h.svc.CreateVisit(ctx.Request.Context(), req.ToDomain(claims.UserID))
	if err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateVisit -> h.svc.CreateVisit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, visit)
}

// HandleUpdateVisit godoc
// @Summary      Update a planned visit
// @Description  Only the visit's owner can update it; other users get 404.
// @Tags         planned-visits
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "visit ID"
// @Param        request  body      request.UpdateVisitRequest  true  "fields to change"
// @Success      200      {object}  domain.PlannedVisit
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /planned-visits/{id} [put]
// @Security BearerAuth
func (h *VisitHandler) HandleUpdateVisit(ctx *gin.Context) {
	claims, respErr := claimsFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateVisitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	visit, err := h.svc.UpdateVisit(ctx.Request.Context(), ctx.Param("id"), claims.UserID, req.ToPatch())
	if err != nil {
		h.renderVisitErr(ctx, fmt.Errorf("v1.HandleUpdateVisit -> h.svc.UpdateVisit -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, visit)
}

// HandleDeleteVisit godoc
// @Summary      Delete a planned visit
// @Tags         planned-visits
// @Produce      json
// @Param        id   path      string  true  "visit ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /planned-visits/{id} [delete]
// @Security BearerAuth
func (h *VisitHandler) HandleDeleteVisit(ctx *gin.Context) {
	claims, respErr := claimsFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteVisit(ctx.Request.Context(), ctx.Param("id"), claims.UserID); err != nil {
		h.renderVisitErr(ctx, fmt.Errorf("v1.HandleDeleteVisit -> h.svc.DeleteVisit -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Planned visit deleted successfully"})
}

func (h *VisitHandler) renderVisitErr(ctx *gin.Context, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.Is(err, service.ErrVisitNotFound):
		response.RenderErr(ctx, response.ErrNotFound("planned visit"))
	case errors.As(err, &fieldErrs):
		response.RenderErr(ctx, response.ErrBadRequest(fieldErrs))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
