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

type ReviewHandler struct {
	BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   NewBaseHandler(),
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews", middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleProfessional))
	{
		reviews.GET("/my", h.ListMine)
		reviews.POST("/:id/confirm", h.Confirm)
		reviews.POST("/:id/reply", h.Reply)
	}
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	resp, err := h.reviewService.GetProfessionalReviews(h.GetDB(c), middleware.CurrentUserID(c), true)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Confirm(c *gin.Context) {
	resp, err := h.reviewService.ConfirmReview(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Reply(c *gin.Context) {
	var req dto.ReplyToReviewRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.reviewService.ReplyToReview(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
