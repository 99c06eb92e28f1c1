package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg       *config.Config
	meetings  *MeetingController
	runs      *RunController
	gatherer  prometheus.Gatherer
	rateLimit echo.MiddlewareFunc
	adminAuth echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers. runs, gatherer and the
// middlewares may be nil.
func NewRouter(
	cfg *config.Config,
	meetings *MeetingController,
	runs *RunController,
	gatherer prometheus.Gatherer,
	rateLimit echo.MiddlewareFunc,
	adminAuth echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:       cfg,
		meetings:  meetings,
		runs:      runs,
		gatherer:  gatherer,
		rateLimit: rateLimit,
		adminAuth: adminAuth,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	rt.setupMeetingRoutes(v1)
}

// setupMeetingRoutes configures the pipeline routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	var mws []echo.MiddlewareFunc
	if rt.rateLimit != nil {
		mws = append(mws, rt.rateLimit)
	}
	g.POST("/extract", rt.meetings.Extract, mws...)
	g.POST("/analyze", rt.meetings.Analyze, mws...)

	var admin []echo.MiddlewareFunc
	if rt.adminAuth != nil {
		admin = append(admin, rt.adminAuth)
	}
	g.DELETE("/cache", rt.meetings.ClearCache, admin...)
	if rt.runs != nil {
		g.GET("/runs", rt.runs.List, admin...)
	}
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	body := map[string]string{"status": "ok"}
	if rt.cfg != nil {
		body["environment"] = rt.cfg.Server.Environment
		body["provider"] = rt.cfg.LLM.Provider
		body["model"] = rt.cfg.LLM.Model()
		body["cache_backend"] = rt.cfg.Cache.Backend
	}
	return c.JSON(http.StatusOK, body)
}
