package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

const defaultRunListLimit = 50

// RunController exposes the pipeline run log
type RunController struct {
	runs   repositories.RunLog
	logger *zap.Logger
}

// NewRunController creates a new run controller
func NewRunController(runs repositories.RunLog, logger *zap.Logger) *RunController {
	return &RunController{runs: runs, logger: logger}
}

// List returns logged pipeline runs
// @Summary      List pipeline runs
// @Description  Returns the newest runs first, or every run of one request when request_id is given.
// @Tags         Runs
// @Security     BearerAuth
// @Produce      json
// @Param        limit       query     int     false  "Maximum rows (default 50, max 500)"
// @Param        request_id  query     string  false  "Only runs of this request"
// @Success      200         {array}   entities.PipelineRun
// @Failure      401         {object}  map[string]interface{}
// @Failure      403         {object}  map[string]interface{}
// @Failure      404         {object}  map[string]interface{}
// @Failure      422         {object}  map[string]interface{}
// @Failure      500         {object}  map[string]interface{}
// @Router       /runs [get]
func (rc *RunController) List(c echo.Context) error {
	ctx := c.Request().Context()

	if reqID := c.QueryParam("request_id"); reqID != "" {
		runs, err := rc.runs.GetByRequestID(ctx, reqID)
		if err != nil {
			return HandleError(rc.logger, c, errors.ErrInternal(err))
		}
		if len(runs) == 0 {
			return HandleError(rc.logger, c, errors.ErrNotFound("runs for request "+reqID))
		}
		return HandleSuccess(rc.logger, c, http.StatusOK, runs)
	}

	limit := defaultRunListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return HandleError(rc.logger, c, errors.ErrInvalidPayload(err).WithDetail("limit", "positive integer"))
		}
		limit = n
	}
	runs, err := rc.runs.ListRecent(ctx, limit)
	if err != nil {
		return HandleError(rc.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(rc.logger, c, http.StatusOK, runs)
}
