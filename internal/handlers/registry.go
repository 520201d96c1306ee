package handlers

import (
	"procasa_backend/internal/services"
	"procasa_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// AppHandlers groups every HTTP handler behind one registration point.
type AppHandlers struct {
	Auth         *AuthHandler
	Request      *RequestHandler
	Review       *ReviewHandler
	Matching     *MatchingHandler
	Profile      *ProfileHandler
	Subscription *SubscriptionHandler
	WS           *ws.Handler
}

func NewAppHandlers(container *services.ServiceContainer, wsManager *ws.Manager) *AppHandlers {
	return &AppHandlers{
		Auth:         NewAuthHandler(container.Auth),
		Request:      NewRequestHandler(container.Request),
		Review:       NewReviewHandler(container.Review),
		Matching:     NewMatchingHandler(container.Matching),
		Profile:      NewProfileHandler(container.Profile),
		Subscription: NewSubscriptionHandler(container.Subscription),
		WS:           ws.NewHandler(wsManager),
	}
}

func (h *AppHandlers) RegisterAll(r *gin.RouterGroup) {
	h.Auth.RegisterRoutes(r)
	h.Request.RegisterRoutes(r)
	h.Review.RegisterRoutes(r)
	h.Matching.RegisterRoutes(r)
	h.Profile.RegisterRoutes(r)
	h.Subscription.RegisterRoutes(r)
	h.WS.RegisterRoutes(r)
}
