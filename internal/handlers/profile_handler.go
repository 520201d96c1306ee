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

type ProfileHandler struct {
	BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    NewBaseHandler(),
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	pros := r.Group("/professionals", middleware.AuthMiddleware())
	{
		pros.GET("", h.Roster)
		pros.GET("/:id", h.Get)
		pros.PUT("/me", middleware.RequireRole(models.UserRoleProfessional), h.UpdateMine)
		pros.POST("/me/optimize", middleware.RequireRole(models.UserRoleProfessional), h.OptimizeMine)
	}

	clients := r.Group("/clients", middleware.AuthMiddleware())
	{
		clients.GET("/:id", h.GetClient)
	}
}

func (h *ProfileHandler) Roster(c *gin.Context) {
	resp, err := h.profileService.GetRoster(h.GetDB(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	resp, err := h.profileService.GetProfessional(h.GetDB(c), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateProfile(h.GetDB(c), middleware.CurrentUserID(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) OptimizeMine(c *gin.Context) {
	resp, err := h.profileService.OptimizeProfile(c.Request.Context(), h.GetDB(c), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetClient(c *gin.Context) {
	resp, err := h.profileService.GetClient(h.GetDB(c), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
