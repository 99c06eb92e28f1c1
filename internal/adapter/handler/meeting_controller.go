package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-insights/pkg/validator"
)

// MeetingController exposes the extraction and analysis pipeline over HTTP
type MeetingController struct {
	svc    pipeline.Service
	logger *zap.Logger
}

// NewMeetingController creates a new meeting controller
func NewMeetingController(svc pipeline.Service, logger *zap.Logger) *MeetingController {
	return &MeetingController{svc: svc, logger: logger}
}

// Extract returns the structured facts of a meeting
// @Summary      Extract meeting information
// @Description  Extracts metadata, an executive summary, key points, action items and topics from a meeting transcript.
// @Description  Send either transcript (with optional metadata) or raw_meeting. Provided metadata is treated as ground truth.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.MeetingRequest     true  "Transcript with metadata, or a raw meeting"
// @Success      200      {object}  entities.ExtractedMeeting
// @Failure      422      {object}  map[string]interface{}     "Invalid payload"
// @Failure      429      {object}  map[string]interface{}     "Too many requests"
// @Failure      502      {object}  map[string]interface{}     "Language model failure or invalid output"
// @Failure      500      {object}  map[string]interface{}     "Internal error"
// @Router       /extract [post]
func (mc *MeetingController) Extract(c echo.Context) error {
	in, err := mc.bind(c)
	if err != nil {
		return HandleError(mc.logger, c, err)
	}
	out, err := mc.svc.Extract(c.Request().Context(), in)
	if err != nil {
		return HandleError(mc.logger, c, mapPipelineError(err))
	}
	return HandleSuccess(mc.logger, c, http.StatusOK, out)
}

// Analyze returns the sentiment analysis of a meeting
// @Summary      Analyze meeting sentiment
// @Description  Produces a summary, key points, action items, sentiment label and score and a list of risks.
// @Description  The sentiment label always agrees with the score: positive >= 0.6, neutral in [0.4, 0.6), negative < 0.4.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.MeetingRequest     true  "Transcript with metadata, or a raw meeting"
// @Success      200      {object}  entities.AnalyzedMeeting
// @Failure      422      {object}  map[string]interface{}     "Invalid payload"
// @Failure      429      {object}  map[string]interface{}     "Too many requests"
// @Failure      502      {object}  map[string]interface{}     "Language model failure or invalid output"
// @Failure      500      {object}  map[string]interface{}     "Internal error"
// @Router       /analyze [post]
func (mc *MeetingController) Analyze(c echo.Context) error {
	in, err := mc.bind(c)
	if err != nil {
		return HandleError(mc.logger, c, err)
	}
	out, err := mc.svc.Analyze(c.Request().Context(), in)
	if err != nil {
		return HandleError(mc.logger, c, mapPipelineError(err))
	}
	return HandleSuccess(mc.logger, c, http.StatusOK, out)
}

// ClearCache drops every cached result
// @Summary      Clear result cache
// @Tags         Meetings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]int  "Number of entries removed"
// @Failure      401  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /cache [delete]
func (mc *MeetingController) ClearCache(c echo.Context) error {
	n, err := mc.svc.ClearCache(c.Request().Context())
	if err != nil {
		return HandleError(mc.logger, c, errors.ErrCacheFailed("clear", err))
	}
	return HandleSuccess(mc.logger, c, http.StatusOK, map[string]int{"cleared": n})
}

func (mc *MeetingController) bind(c echo.Context) (entities.NormalizedInput, error) {
	var req meeting.MeetingRequest
	if err := c.Bind(&req); err != nil {
		return entities.NormalizedInput{}, errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrInvalidPayload(err)
		for field, rule := range validator.Fields(err) {
			appErr = appErr.WithDetail(field, rule)
		}
		return entities.NormalizedInput{}, appErr
	}
	return req.ToNormalized(), nil
}
