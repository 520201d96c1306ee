package handlers

import (
	"net/http"

	"procasa_backend/internal/services"
	"procasa_backend/internal/services/dto"
	"procasa_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(),
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/federated", h.FederatedLogin)
		auth.POST("/demo", h.DemoLogin)
	}
}

func (h *AuthHandler) FederatedLogin(c *gin.Context) {
	var req dto.FederatedLoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.FederatedLogin(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) DemoLogin(c *gin.Context) {
	var req dto.DemoLoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.DemoLogin(h.GetDB(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
