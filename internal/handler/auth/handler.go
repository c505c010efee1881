package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parsianclinic/postop-api/internal/i18n"
	"github.com/parsianclinic/postop-api/internal/model"
	"github.com/parsianclinic/postop-api/internal/service/auth"
	"github.com/parsianclinic/postop-api/pkg/metrics"
)

type Handler struct {
	svc     *auth.Service
	tr      *i18n.Translator
	metrics *metrics.Metrics
}

func NewHandler(svc *auth.Service, tr *i18n.Translator, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, tr: tr, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

// Login exchanges an identity pair for a token pair. The response
// shapes are part of the patient-app wire contract: a bare
// {"refresh","access"} object on success, {"error"} on failure. The
// failure body is identical for every reason, so callers cannot probe
// which identity field was wrong.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.loginFailure(c)
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.NationalID, req.PhoneNumber)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		h.loginFailure(c)
		return
	}

	h.countLogin("success")
	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.loginFailure(c)
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		h.loginFailure(c)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) loginFailure(c *gin.Context) {
	h.countLogin("failure")
	c.JSON(http.StatusBadRequest, gin.H{"error": h.tr.T("invalid credentials")})
}

func (h *Handler) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}
