package handler

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/pkg/middleware"
)

// Response shapes
type errs struct {
	Code    errors.ErrorCode  `json:"code"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HandleSuccess writes payload as the response body
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, payload interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}
	return c.JSON(status, payload)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := middleware.GetRequestID(c)

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = errors.ErrInternal(err)
	}

	if logger != nil {
		level := logger.Warn
		if appErr.HTTPCode >= http.StatusInternalServerError {
			level = logger.Error
		}
		level("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Int("status", appErr.HTTPCode),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	})
}

// mapPipelineError translates pipeline failures into API errors
func mapPipelineError(err error) errors.AppError {
	var (
		repairErr *entities.RepairExhaustedError
		verr      *entities.ValidationError
	)
	switch {
	case stdErrors.Is(err, entities.ErrEmptyTranscript):
		return errors.ErrInvalidPayload(err)
	case stdErrors.As(err, &repairErr), stdErrors.As(err, &verr):
		return errors.ErrUpstreamInvalidOutput(err)
	case entities.IsTransient(err),
		stdErrors.Is(err, entities.ErrGeneratorFailed),
		stdErrors.Is(err, context.DeadlineExceeded):
		return errors.ErrUpstreamCommunication(err)
	}
	return errors.ErrInternal(err)
}
