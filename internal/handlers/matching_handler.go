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

type MatchingHandler struct {
	BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     NewBaseHandler(),
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	match := r.Group("/match", middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleClient))
	{
		match.POST("/clarify", h.Clarify)
		match.POST("/budget", h.RefineBudget)
		match.POST("/rank", h.Rank)
		match.GET("/locations", h.Locations)
	}
}

func (h *MatchingHandler) Clarify(c *gin.Context) {
	var req dto.ClarifyRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp := h.matchingService.Clarify(c.Request.Context(), req.Description)
	c.JSON(http.StatusOK, resp)
}

func (h *MatchingHandler) RefineBudget(c *gin.Context) {
	var req dto.RefineBudgetRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	// Debounce per authenticated user: rapid re-submissions while answering
	// clarifications collapse into the latest one.
	resp := h.matchingService.RefineBudget(c.Request.Context(), middleware.CurrentUserID(c), &req)
	c.JSON(http.StatusOK, resp)
}

func (h *MatchingHandler) Rank(c *gin.Context) {
	var req dto.RankRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.matchingService.RankCandidates(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MatchingHandler) Locations(c *gin.Context) {
	partial := c.Query("q")
	if partial == "" {
		c.JSON(http.StatusOK, []string{})
		return
	}
	c.JSON(http.StatusOK, h.matchingService.SuggestLocations(c.Request.Context(), partial))
}
