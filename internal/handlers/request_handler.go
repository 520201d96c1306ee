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

type RequestHandler struct {
	BaseHandler
	requestService services.RequestService
}

func NewRequestHandler(requestService services.RequestService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    NewBaseHandler(),
		requestService: requestService,
	}
}

func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests", middleware.AuthMiddleware())
	{
		requests.POST("", middleware.RequireRole(models.UserRoleClient), h.Create)
		requests.GET("/my", middleware.RequireRole(models.UserRoleClient), h.ListMine)
		requests.GET("/opportunities", middleware.RequireRole(models.UserRoleProfessional), h.ListOpportunities)
		requests.GET("/:id", h.Get)
		requests.DELETE("/:id", middleware.RequireRole(models.UserRoleClient), h.Delete)

		requests.POST("/:id/accept", middleware.RequireRole(models.UserRoleProfessional), h.Accept)
		requests.POST("/:id/reject", middleware.RequireRole(models.UserRoleProfessional), h.Reject)
		requests.POST("/:id/hire", middleware.RequireRole(models.UserRoleClient), h.Hire)
		requests.POST("/:id/received", middleware.RequireRole(models.UserRoleClient), h.MarkReceived)
		requests.POST("/:id/reviews", middleware.RequireRole(models.UserRoleClient), h.FileReview)
	}
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.requestService.CreateRequest(h.GetDB(c), middleware.CurrentUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RequestHandler) Get(c *gin.Context) {
	resp, err := h.requestService.GetRequest(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) ListMine(c *gin.Context) {
	resp, err := h.requestService.GetClientRequests(h.GetDB(c), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) ListOpportunities(c *gin.Context) {
	resp, err := h.requestService.GetOpportunities(h.GetDB(c), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) Accept(c *gin.Context) {
	resp, err := h.requestService.AcceptRequest(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) Reject(c *gin.Context) {
	resp, err := h.requestService.RejectRequest(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) Hire(c *gin.Context) {
	var req dto.HireRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.requestService.HireProfessional(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c), req.ProID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) MarkReceived(c *gin.Context) {
	resp, err := h.requestService.MarkServiceReceived(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) FileReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.requestService.FileReview(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RequestHandler) Delete(c *gin.Context) {
	if err := h.requestService.DeleteRequest(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
