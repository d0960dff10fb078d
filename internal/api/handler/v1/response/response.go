package response

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festivefusion/festival-api/internal/domain"
)

// Err is the body of every non-2xx response.
type Err struct {
	HTTPStatusCode int               `json:"-"`
	StatusText     string            `json:"status"`
	Message        string            `json:"message"`
	Errors         map[string]string `json:"errors,omitempty"`

	cause error
}

func (e *Err) Error() string {
	return fmt.Sprintf("%d %s: %s", e.HTTPStatusCode, e.StatusText, e.Message)
}

func newErr(status int, message string, cause error) *Err {
	return &Err{
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Message:        message,
		cause:          cause,
	}
}

// RenderErr writes e and aborts the chain. Server errors are logged with
// their cause, which never reaches the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.cause),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

// ErrBadRequest reports invalid input. Field errors from ozzo-validation are
// listed per field.
func ErrBadRequest(err error) *Err {
	e := newErr(http.StatusBadRequest, err.Error(), err)

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		e.Message = "validation failed"
		e.Errors = make(map[string]string, len(fieldErrs))
		flatten("", fieldErrs, e.Errors)
	}

	return e
}

func flatten(prefix string, errs validation.Errors, into map[string]string) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}

		var nested validation.Errors
		if errors.As(errs[k], &nested) {
			flatten(name, nested, into)
			continue
		}
		into[name] = errs[k].Error()
	}
}

func ErrNotFound(resource string) *Err {
	return newErr(http.StatusNotFound, resource+" not found", nil)
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, "invalid email or password", err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, "authentication required", err)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, "permission denied", err)
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, "internal server error", err)
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
