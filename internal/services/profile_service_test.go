package services

import (
	"context"
	"errors"
	"testing"

	"procasa_backend/internal/models"
	"procasa_backend/internal/services/dto"
	"procasa_backend/internal/suggest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture(t *testing.T, provider suggest.Provider) (ProfileService, *fakeProRepo, string) {
	t.Helper()

	pros := newFakeProRepo()
	clients := newFakeClientRepo()

	pro := &models.Professional{
		Name:     "Mario Bianchi",
		Category: models.CategoryPainter,
		Bio:      "Imbianchino con esperienza",
		Phone:    "+39 333 1234567",
		Email:    "mario@example.com",
		Ranking:  models.DefaultRanking,
	}
	require.NoError(t, pros.Create(nil, pro))

	return NewProfileService(pros, clients, provider), pros, pro.ID
}

func TestGetProfessionalHidesPendingReviewsFromOthers(t *testing.T) {
	svc, pros, proID := newProfileFixture(t, &suggest.MockProvider{})

	pro, _ := pros.FindByID(nil, proID)
	pro.Reviews = []models.Review{
		{ProfessionalID: proID, Rating: 5, IsConfirmed: true},
		{ProfessionalID: proID, Rating: 1, IsConfirmed: false},
	}
	require.NoError(t, pros.Update(nil, pro))

	public, err := svc.GetProfessional(nil, proID, "some-client")
	require.NoError(t, err)
	assert.Len(t, public.Reviews, 1)
	assert.Empty(t, public.Phone, "contact details are owner-only")

	own, err := svc.GetProfessional(nil, proID, proID)
	require.NoError(t, err)
	assert.Len(t, own.Reviews, 2)
	assert.Equal(t, "+39 333 1234567", own.Phone)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	svc, pros, proID := newProfileFixture(t, &suggest.MockProvider{})

	bio := "Specializzato in facciate"
	rate := 35.0
	resp, err := svc.UpdateProfile(nil, proID, &dto.UpdateProfileRequest{
		Bio:            &bio,
		HourlyRateMin:  &rate,
		Certifications: []string{"Patentino ponteggi"},
	})
	require.NoError(t, err)
	assert.Equal(t, bio, resp.Bio)
	assert.Equal(t, []string{"Patentino ponteggi"}, resp.Certifications)

	// Untouched fields survive.
	stored, _ := pros.FindByID(nil, proID)
	assert.Equal(t, "Mario Bianchi", stored.Name)
	assert.Equal(t, models.CategoryPainter, stored.Category)
}

func TestUpdateProfileRejectsBadInput(t *testing.T) {
	svc, _, proID := newProfileFixture(t, &suggest.MockProvider{})

	badCategory := "Astronauta"
	_, err := svc.UpdateProfile(nil, proID, &dto.UpdateProfileRequest{Category: &badCategory})
	require.Error(t, err)

	min, max := 80.0, 40.0
	_, err = svc.UpdateProfile(nil, proID, &dto.UpdateProfileRequest{HourlyRateMin: &min, HourlyRateMax: &max})
	require.Error(t, err)
}

func TestOptimizeProfileFallsBackToCurrentText(t *testing.T) {
	provider := &suggest.MockProvider{
		OptimizeProfileFn: func(context.Context, suggest.ProfileDraft) (*suggest.OptimizedProfile, error) {
			return nil, errors.New("provider down")
		},
	}
	svc, _, proID := newProfileFixture(t, provider)

	resp, err := svc.OptimizeProfile(context.Background(), nil, proID)
	require.NoError(t, err)
	assert.Equal(t, "Imbianchino con esperienza", resp.Bio)
}

func TestOptimizeProfileUsesProviderResult(t *testing.T) {
	provider := &suggest.MockProvider{
		OptimizeProfileFn: func(_ context.Context, draft suggest.ProfileDraft) (*suggest.OptimizedProfile, error) {
			return &suggest.OptimizedProfile{
				Bio:       "Bio rivista per " + draft.Name,
				CVSummary: "Riassunto tecnico",
			}, nil
		},
	}
	svc, _, proID := newProfileFixture(t, provider)

	resp, err := svc.OptimizeProfile(context.Background(), nil, proID)
	require.NoError(t, err)
	assert.Equal(t, "Bio rivista per Mario Bianchi", resp.Bio)
	assert.Equal(t, "Riassunto tecnico", resp.CVSummary)
}
