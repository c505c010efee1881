package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parsianclinic/postop-api/internal/handler"
	authHandler "github.com/parsianclinic/postop-api/internal/handler/auth"
	patientHandler "github.com/parsianclinic/postop-api/internal/handler/patient"
	"github.com/parsianclinic/postop-api/internal/middleware"
	"github.com/parsianclinic/postop-api/pkg/metrics"
)

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	authH    *authHandler.Handler
	patientH *patientHandler.Handler
	metrics  *metrics.Metrics
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	patientH *patientHandler.Handler,
	m *metrics.Metrics,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		authH:    authH,
		patientH: patientH,
		metrics:  m,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", handler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	// Public: login and refresh.
	r.authH.RegisterRoutes(api)

	// Any authenticated patient.
	me := api.Group("")
	me.Use(r.auth.Authenticate())
	r.patientH.RegisterPatientRoutes(me)

	// Back-office.
	admin := api.Group("")
	admin.Use(r.auth.Authenticate(), r.auth.RequireAdmin())
	r.patientH.RegisterAdminRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
