package handlers

import (
	"net/http"

	"procasa_backend/internal/middleware"
	"procasa_backend/internal/models"
	"procasa_backend/internal/services"
	"procasa_backend/internal/services/dto"
	"procasa_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         NewBaseHandler(),
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	subs := r.Group("/subscriptions", middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleProfessional))
	{
		subs.GET("/my", h.Status)
		subs.POST("/upgrade", h.Upgrade)
	}
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	resp, err := h.subscriptionService.GetStatus(h.GetDB(c), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	var req dto.UpgradeSubscriptionRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.subscriptionService.Upgrade(h.GetDB(c), middleware.CurrentUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
