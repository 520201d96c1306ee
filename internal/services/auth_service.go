package services

import (
	"context"
	"errors"

	"procasa_backend/internal/auth"
	"procasa_backend/internal/identity"
	"procasa_backend/internal/models"
	"procasa_backend/internal/repositories"
	"procasa_backend/internal/services/dto"
	"procasa_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	// FederatedLogin resolves an external sign-in assertion, provisioning the
	// client or professional on first contact.
	FederatedLogin(ctx context.Context, db *gorm.DB, req *dto.FederatedLoginRequest) (*dto.AuthResponse, error)
	// DemoLogin is the sandbox path: name/secret pairs stored locally, no
	// federated provider involved.
	DemoLogin(db *gorm.DB, req *dto.DemoLoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	identityProvider identity.Provider
	clientRepo       repositories.ClientRepository
	proRepo          repositories.ProfessionalRepository
	subscriptionRepo repositories.SubscriptionRepository
	demoRepo         repositories.DemoAccountRepository
}

func NewAuthService(
	identityProvider identity.Provider,
	clientRepo repositories.ClientRepository,
	proRepo repositories.ProfessionalRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	demoRepo repositories.DemoAccountRepository,
) AuthService {
	return &authService{
		identityProvider: identityProvider,
		clientRepo:       clientRepo,
		proRepo:          proRepo,
		subscriptionRepo: subscriptionRepo,
		demoRepo:         demoRepo,
	}
}

func (s *authService) FederatedLogin(ctx context.Context, db *gorm.DB, req *dto.FederatedLoginRequest) (*dto.AuthResponse, error) {
	resolved, err := s.identityProvider.Resolve(ctx, req.Assertion)
	if err != nil {
		if errors.Is(err, identity.ErrUnauthorizedOrigin) {
			return nil, apperrors.NewUnauthorizedError("Sign-in origin not authorized; use the demo sign-in instead")
		}
		return nil, apperrors.NewUnauthorizedError("Sign-in assertion could not be verified")
	}

	role := models.UserRole(req.Role)
	switch role {
	case models.UserRoleClient:
		return s.loginClient(db, resolved)
	case models.UserRoleProfessional:
		return s.loginProfessional(db, resolved, req.Category)
	}
	return nil, apperrors.ErrInvalidUserRole
}

func (s *authService) loginClient(db *gorm.DB, resolved *identity.Identity) (*dto.AuthResponse, error) {
	client, err := s.clientRepo.FindByEmail(db, resolved.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrClientNotFound) {
			return nil, err
		}
		client = &models.Client{
			BaseModel: models.BaseModel{ID: uuid.NewString()},
			Name:      resolved.Name,
			Email:     resolved.Email,
			Avatar:    resolved.Avatar,
			Ranking:   models.DefaultRanking,
		}
		if err := s.clientRepo.Create(db, client); err != nil {
			return nil, err
		}
	}

	return s.issue(client.ID, models.UserRoleClient, client.Name, client.Avatar, false)
}

func (s *authService) loginProfessional(db *gorm.DB, resolved *identity.Identity, category *string) (*dto.AuthResponse, error) {
	pro, err := s.proRepo.FindByEmail(db, resolved.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, err
		}
		pro, err = s.provisionProfessional(db, resolved.Name, resolved.Email, resolved.Avatar, category)
		if err != nil {
			return nil, err
		}
	}

	return s.issue(pro.ID, models.UserRoleProfessional, pro.Name, pro.Avatar, false)
}

func (s *authService) DemoLogin(db *gorm.DB, req *dto.DemoLoginRequest) (*dto.AuthResponse, error) {
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, apperrors.ErrInvalidUserRole
	}

	account, err := s.demoRepo.FindByName(db, req.Name)
	if err == nil {
		if !auth.CheckSecretHash(req.Secret, account.SecretHash) {
			return nil, apperrors.NewUnauthorizedError("Invalid demo credentials")
		}
		if account.Role != role {
			return nil, apperrors.NewUnauthorizedError("Demo account is registered for a different role")
		}
		return s.issueForSubject(db, account)
	}
	if !errors.Is(err, repositories.ErrDemoAccountNotFound) {
		return nil, err
	}

	// First sign-in provisions both the subject and the demo account.
	subjectID, err := s.provisionDemoSubject(db, req)
	if err != nil {
		return nil, err
	}

	secretHash, err := auth.HashSecret(req.Secret)
	if err != nil {
		return nil, err
	}
	account = &models.DemoAccount{
		Name:       req.Name,
		SecretHash: secretHash,
		Role:       role,
		SubjectID:  subjectID,
	}
	if err := s.demoRepo.Create(db, account); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(subjectID, role, true)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:  token,
		UserID: subjectID,
		Role:   string(role),
		Name:   req.Name,
		Demo:   true,
	}, nil
}

func (s *authService) provisionDemoSubject(db *gorm.DB, req *dto.DemoLoginRequest) (string, error) {
	if models.UserRole(req.Role) == models.UserRoleClient {
		client := &models.Client{
			BaseModel: models.BaseModel{ID: uuid.NewString()},
			Name:      req.Name,
			Ranking:   models.DefaultRanking,
		}
		if err := s.clientRepo.Create(db, client); err != nil {
			return "", err
		}
		return client.ID, nil
	}

	pro, err := s.provisionProfessional(db, req.Name, "", "", req.Category)
	if err != nil {
		return "", err
	}
	return pro.ID, nil
}

func (s *authService) provisionProfessional(db *gorm.DB, name, email, avatar string, category *string) (*models.Professional, error) {
	if category == nil {
		return nil, apperrors.NewBadRequestError("Category is required on first professional sign-in")
	}
	cat := models.Category(*category)
	if !cat.Valid() {
		return nil, apperrors.NewBadRequestError("Unknown category: " + *category)
	}

	pro := &models.Professional{
		BaseModel: models.BaseModel{ID: uuid.NewString()},
		Name:      name,
		Category:  cat,
		Email:     email,
		Avatar:    avatar,
		Ranking:   models.DefaultRanking,
	}
	if err := s.proRepo.Create(db, pro); err != nil {
		return nil, err
	}

	// Every professional starts on the free plan.
	sub := &models.Subscription{ProfessionalID: pro.ID, Plan: models.PlanBase}
	if err := s.subscriptionRepo.Create(db, sub); err != nil {
		return nil, err
	}
	return pro, nil
}

func (s *authService) issueForSubject(db *gorm.DB, account *models.DemoAccount) (*dto.AuthResponse, error) {
	name := account.Name
	avatar := ""
	switch account.Role {
	case models.UserRoleClient:
		if client, err := s.clientRepo.FindByID(db, account.SubjectID); err == nil {
			name, avatar = client.Name, client.Avatar
		}
	case models.UserRoleProfessional:
		if pro, err := s.proRepo.FindByID(db, account.SubjectID); err == nil {
			name, avatar = pro.Name, pro.Avatar
		}
	}

	token, err := auth.GenerateToken(account.SubjectID, account.Role, true)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:  token,
		UserID: account.SubjectID,
		Role:   string(account.Role),
		Name:   name,
		Avatar: avatar,
		Demo:   true,
	}, nil
}

func (s *authService) issue(userID string, role models.UserRole, name, avatar string, demo bool) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(userID, role, demo)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:  token,
		UserID: userID,
		Role:   string(role),
		Name:   name,
		Avatar: avatar,
		Demo:   demo,
	}, nil
}
