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

type FestivalService interface {
	ListFestivals(ctx context.Context, filter domain.FestivalFilter) ([]domain.Festival, error)
	ListHiddenGems(ctx context.Context) ([]domain.Festival, error)
	ListUpcoming(ctx context.Context) ([]domain.Festival, error)
	GetFestival(ctx context.Context, id string) (domain.Festival, error)
	CreateFestival(ctx context.Context, festival domain.Festival) (domain.Festival, error)
	UpdateFestival(ctx context.Context, id string, patch domain.FestivalPatch) (domain.Festival, error)
	DeleteFestival(ctx context.Context, id string) error
}

type FestivalHandler struct {
	svc FestivalService
}

func NewFestivalHandler(svc FestivalService) *FestivalHandler {
	return &FestivalHandler{
		svc: svc,
	}
}

// HandleListFestivals godoc
// @Summary      List festivals
// @Description  Festivals matching every given filter, earliest first.
// @Tags         festivals
// @Produce      json
// @Param        region       query     string  false  "region"
// @Param        type         query     string  false  "religious, tribal, harvest or seasonal"
// @Param        startDate    query     string  false  "festivals starting on or after, needs endDate"
// @Param        endDate      query     string  false  "festivals ending on or before, needs startDate"
// @Param        crowdLevel   query     string  false  "low, medium or high"
// @Param        budgetLevel  query     string  false  "budget, moderate or luxury"
// @Param        isHiddenGem  query     bool    false  "hidden gems only"
// @Success      200  {array}   domain.Festival
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /festivals [get]
func (h *FestivalHandler) HandleListFestivals(ctx *gin.Context) {
	var query request.ListFestivalsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	festivals, err := h.svc.ListFestivals(ctx.Request.Context(), query.ToFilter())
	if err != nil {
		err = fmt.Errorf("v1.HandleListFestivals -> h.svc.ListFestivals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, festivals)
}

// HandleListHiddenGems godoc
// @Summary      List hidden gem festivals
// @Tags         festivals
// @Produce      json
// @Success      200  {array}   domain.Festival
// @Failure      500  {object}  response.Err
// @Router       /festivals/hidden-gems [get]
func (h *FestivalHandler) HandleListHiddenGems(ctx *gin.Context) {
	festivals, err := h.svc.ListHiddenGems(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListHiddenGems -> h.svc.ListHiddenGems -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, festivals)
}

// HandleListUpcoming godoc
// @Summary      List upcoming festivals
// @Tags         festivals
// @Produce      json
// @Success      200  {array}   domain.Festival
// @Failure      500  {object}  response.Err
// @Router       /festivals/upcoming [get]
func (h *FestivalHandler) HandleListUpcoming(ctx *gin.Context) {
	festivals, err := h.svc.ListUpcoming(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUpcoming -> h.svc.ListUpcoming -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, festivals)
}

// HandleGetFestival godoc
// @Summary      Get a festival
// @Tags         festivals
// @Produce      json
// @Param        id   path      string  true  "festival ID"
// @Success      200  {object}  domain.Festival
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /festivals/{id} [get]
func (h *FestivalHandler) HandleGetFestival(ctx *gin.Context) {
	festival, err := h.svc.GetFestival(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrFestivalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("festival"))
			return
		}

		err = fmt.Errorf("v1.HandleGetFestival -> h.svc.GetFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, festival)
}

// HandleCreateFestival godoc
// @Summary      Create a festival
// @Tags         festivals
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateFestivalRequest  true  "festival"
// @Success      201      {object}  domain.Festival
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /festivals [post]
// @Security BearerAuth
func (h *FestivalHandler) HandleCreateFestival(ctx *gin.Context) {
	var req request.CreateFestivalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	festival, err := h.svc.CreateFestival(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateFestival -> h.svc.CreateFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, festival)
}

// HandleUpdateFestival godoc
// @Summary      Update a festival
// @Description  Fields present in the body replace the stored ones. Nested objects are replaced as a whole.
// @Tags         festivals
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "festival ID"
// @Param        request  body      request.UpdateFestivalRequest  true  "fields to change"
// @Success      200      {object}  domain.Festival
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /festivals/{id} [put]
// @Security BearerAuth
func (h *FestivalHandler) HandleUpdateFestival(ctx *gin.Context) {
	var req request.UpdateFestivalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	festival, err := h.svc.UpdateFestival(ctx.Request.Context(), ctx.Param("id"), req.ToPatch())
	if err != nil {
		var fieldErrs validation.Errors
		switch {
		case errors.Is(err, service.ErrFestivalNotFound):
			response.RenderErr(ctx, response.ErrNotFound("festival"))
		case errors.As(err, &fieldErrs):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateFestival -> h.svc.UpdateFestival -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, festival)
}

// HandleDeleteFestival godoc
// @Summary      Delete a festival
// @Description  Planned visits of the festival are deleted with it.
// @Tags         festivals
// @Produce      json
// @Param        id   path      string  true  "festival ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /festivals/{id} [delete]
// @Security BearerAuth
func (h *FestivalHandler) HandleDeleteFestival(ctx *gin.Context) {
	if err := h.svc.DeleteFestival(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, service.ErrFestivalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("festival"))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteFestival -> h.svc.DeleteFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Festival deleted successfully"})
}
