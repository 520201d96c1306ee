package services

import (
	"time"

	"procasa_backend/internal/config"
	"procasa_backend/internal/email"
	"procasa_backend/internal/identity"
	"procasa_backend/internal/repositories"
	"procasa_backend/internal/suggest"
)

// ServiceContainer wires repositories, providers and services together.
// Handlers pull from here; nothing constructs a service directly.
type ServiceContainer struct {
	Auth         AuthService
	Request      RequestService
	Review       ReviewService
	Subscription SubscriptionService
	Matching     MatchingService
	Profile      ProfileService
}

type Providers struct {
	Identity  identity.Provider
	Suggest   suggest.Provider
	Mailer    email.Provider
	Publisher SnapshotPublisher
}

func NewServiceContainer(cfg *config.Config, providers Providers) *ServiceContainer {
	requestRepo := repositories.NewRequestRepository()
	proRepo := repositories.NewProfessionalRepository()
	clientRepo := repositories.NewClientRepository()
	reviewRepo := repositories.NewReviewRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	demoRepo := repositories.NewDemoAccountRepository()

	return &ServiceContainer{
		Auth: NewAuthService(providers.Identity, clientRepo, proRepo, subscriptionRepo, demoRepo),
		Request: NewRequestService(
			requestRepo, proRepo, clientRepo, reviewRepo,
			providers.Mailer, providers.Publisher,
		),
		Review:       NewReviewService(reviewRepo, proRepo, clientRepo, subscriptionRepo),
		Subscription: NewSubscriptionService(subscriptionRepo, proRepo),
		Matching: NewMatchingService(
			providers.Suggest, proRepo,
			cfg.Matching.FallbackSize,
			time.Duration(cfg.Matching.DebounceMillis)*time.Millisecond,
		),
		Profile: NewProfileService(proRepo, clientRepo, providers.Suggest),
	}
}
