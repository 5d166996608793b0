package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/apperr"
)

type errorBody struct {
	Error    string `json:"error"`
	Details  string `json:"details,omitempty"`
	Resource string `json:"resource,omitempty"`
	Key      string `json:"key,omitempty"`
}

// HTTPError renders every error returned by a route as
// {"error": ..., "details"?: ..., "resource"?: ..., "key"?: ...}.
func (h *Handler) HTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := h.render(err)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		h.log.Error("write error response", zap.Error(writeErr))
	}
}

func (h *Handler) render(err error) (int, errorBody) {
	var (
		nf  *apperr.NotFoundError
		ce  *apperr.ConflictError
		ve  *apperr.ValidationError
		vv  validator.ValidationErrors
		ge  *apperr.GenerationError
		pe  *apperr.PersistenceError
		hte *echo.HTTPError
	)

	// Generation errors unwrap to their decode or schema cause, so they are
	// matched before the input validation kinds.
	switch {
	case errors.As(err, &ge):
		body := errorBody{Error: fmt.Sprintf("%s generation failed", ge.Purpose)}
		status := http.StatusInternalServerError
		if errors.Is(err, apperr.ErrGenerationUnavailable) {
			status = http.StatusServiceUnavailable
			body.Error = fmt.Sprintf("%s generation is unavailable", ge.Purpose)
		}
		return status, h.withDetails(body, ge.Err)
	case errors.As(err, &nf):
		return http.StatusNotFound, errorBody{Error: nf.Error(), Resource: nf.Resource, Key: nf.Key}
	case errors.As(err, &ce):
		return http.StatusConflict, errorBody{Error: ce.Msg, Resource: ce.Resource, Key: ce.Key}
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorBody{Error: ve.Msg}
	case errors.As(err, &vv):
		return http.StatusBadRequest, errorBody{Error: describe(vv)}
	case errors.As(err, &pe):
		return http.StatusInternalServerError, h.withDetails(errorBody{Error: "failed to save changes"}, pe.Err)
	case errors.As(err, &hte):
		msg := http.StatusText(hte.Code)
		if s, ok := hte.Message.(string); ok {
			msg = s
		} else if hte.Message != nil {
			msg = fmt.Sprint(hte.Message)
		}
		return hte.Code, h.withDetails(errorBody{Error: msg}, hte.Internal)
	}
	return http.StatusInternalServerError, h.withDetails(errorBody{Error: "internal server error"}, err)
}

func (h *Handler) withDetails(b errorBody, cause error) errorBody {
	if h.debug && cause != nil {
		b.Details = cause.Error()
	}
	return b
}

func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must have at least %s item(s)", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}

// requestValidator adapts validator/v10 to echo.Validator, reporting fields
// by their json names.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}
