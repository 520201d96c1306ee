package services

import (
	"testing"
	"time"

	"procasa_backend/internal/models"
	"procasa_backend/internal/services/dto"
	"procasa_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscriptionFixture(t *testing.T) (*subscriptionService, *fakeSubscriptionRepo, string) {
	t.Helper()

	subs := newFakeSubscriptionRepo()
	pros := newFakeProRepo()

	pro := &models.Professional{Name: "Luca", Category: models.CategoryGardener}
	require.NoError(t, pros.Create(nil, pro))

	svc := NewSubscriptionService(subs, pros).(*subscriptionService)
	return svc, subs, pro.ID
}

func TestGetStatusDefaultsToBase(t *testing.T) {
	svc, _, proID := newSubscriptionFixture(t)

	status, err := svc.GetStatus(nil, proID)
	require.NoError(t, err)
	assert.Equal(t, string(models.PlanBase), status.Plan)
	assert.False(t, status.Active)
	assert.False(t, status.IsTrialUsed)
}

func TestUpgradePlans(t *testing.T) {
	svc, _, proID := newSubscriptionFixture(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	status, err := svc.Upgrade(nil, proID, &dto.UpgradeSubscriptionRequest{Plan: "MONTHLY"})
	require.NoError(t, err)
	assert.Equal(t, string(models.PlanMonthly), status.Plan)
	assert.True(t, status.Active)
	require.NotNil(t, status.ExpiryDate)
	assert.Equal(t, now.Add(30*24*time.Hour), *status.ExpiryDate)

	status, err = svc.Upgrade(nil, proID, &dto.UpgradeSubscriptionRequest{Plan: "ANNUAL"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(365*24*time.Hour), *status.ExpiryDate)
}

func TestUpgradeTrialOnlyOnce(t *testing.T) {
	svc, _, proID := newSubscriptionFixture(t)

	status, err := svc.Upgrade(nil, proID, &dto.UpgradeSubscriptionRequest{Plan: "TRIAL"})
	require.NoError(t, err)
	assert.True(t, status.IsTrialUsed)
	assert.True(t, status.Active)

	// Moving to a paid plan and back does not reset the trial.
	_, err = svc.Upgrade(nil, proID, &dto.UpgradeSubscriptionRequest{Plan: "MONTHLY"})
	require.NoError(t, err)

	_, err = svc.Upgrade(nil, proID, &dto.UpgradeSubscriptionRequest{Plan: "TRIAL"})
	assert.ErrorIs(t, err, apperrors.ErrTrialAlreadyUsed)
}

func TestUpgradeRejectsUnknownPlan(t *testing.T) {
	svc, _, proID := newSubscriptionFixture(t)

	_, err := svc.Upgrade(nil, proID, &dto.UpgradeSubscriptionRequest{Plan: "BASE"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUpgradeUnknownProfessional(t *testing.T) {
	svc, _, _ := newSubscriptionFixture(t)

	_, err := svc.Upgrade(nil, "missing", &dto.UpgradeSubscriptionRequest{Plan: "MONTHLY"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestExpiredPlanIsInactive(t *testing.T) {
	svc, subs, proID := newSubscriptionFixture(t)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, subs.Create(nil, &models.Subscription{
		ProfessionalID: proID,
		Plan:           models.PlanAnnual,
		ExpiryDate:     &expired,
	}))

	status, err := svc.GetStatus(nil, proID)
	require.NoError(t, err)
	assert.Equal(t, string(models.PlanAnnual), status.Plan)
	assert.False(t, status.Active)
}
