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

type reviewFixture struct {
	svc      *reviewService
	reviews  *fakeReviewRepo
	pros     *fakeProRepo
	clients  *fakeClientRepo
	subs     *fakeSubscriptionRepo
	proID    string
	clientID string
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	reviews := newFakeReviewRepo()
	pros := newFakeProRepo()
	clients := newFakeClientRepo()
	subs := newFakeSubscriptionRepo()

	pro := &models.Professional{Name: "Mario", Category: models.CategoryElectrician, Ranking: models.DefaultRanking}
	require.NoError(t, pros.Create(nil, pro))
	client := &models.Client{Name: "Anna", Ranking: models.DefaultRanking}
	require.NoError(t, clients.Create(nil, client))

	svc := NewReviewService(reviews, pros, clients, subs).(*reviewService)
	return &reviewFixture{
		svc:      svc,
		reviews:  reviews,
		pros:     pros,
		clients:  clients,
		subs:     subs,
		proID:    pro.ID,
		clientID: client.ID,
	}
}

func (f *reviewFixture) addReview(t *testing.T, rating int, confirmed bool) *models.Review {
	t.Helper()
	review := &models.Review{
		ProfessionalID: f.proID,
		ClientID:       f.clientID,
		Rating:         rating,
		Comment:        "commento",
		IsConfirmed:    confirmed,
	}
	require.NoError(t, f.reviews.Create(nil, review))
	return review
}

func (f *reviewFixture) activateSubscription(t *testing.T) {
	t.Helper()
	expiry := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(t, f.subs.Create(nil, &models.Subscription{
		ProfessionalID: f.proID,
		Plan:           models.PlanMonthly,
		ExpiryDate:     &expiry,
	}))
}

func TestConfirmReviewRequiresActiveSubscription(t *testing.T) {
	f := newReviewFixture(t)
	review := f.addReview(t, 5, false)

	// No subscription row at all.
	_, err := f.svc.ConfirmReview(nil, review.ID, f.proID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionRequired)

	// BASE plan is never active.
	require.NoError(t, f.subs.Create(nil, &models.Subscription{ProfessionalID: f.proID, Plan: models.PlanBase}))
	_, err = f.svc.ConfirmReview(nil, review.ID, f.proID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionRequired)

	// Expired paid plan does not count either.
	expired := time.Now().Add(-time.Hour)
	require.NoError(t, f.subs.Update(nil, &models.Subscription{
		ProfessionalID: f.proID,
		Plan:           models.PlanMonthly,
		ExpiryDate:     &expired,
	}))
	_, err = f.svc.ConfirmReview(nil, review.ID, f.proID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionRequired)

	// The review stayed unconfirmed and the ranking untouched.
	stored, err := f.reviews.FindByID(nil, review.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsConfirmed)
	pro, _ := f.pros.FindByID(nil, f.proID)
	assert.Equal(t, models.DefaultRanking, pro.Ranking)
}

// A confirmation refused for lack of subscription must succeed untouched
// once the professional upgrades and retries.
func TestConfirmReviewSucceedsAfterUpgrade(t *testing.T) {
	f := newReviewFixture(t)
	review := f.addReview(t, 4, false)

	_, err := f.svc.ConfirmReview(nil, review.ID, f.proID)
	require.ErrorIs(t, err, apperrors.ErrSubscriptionRequired)

	f.activateSubscription(t)

	resp, err := f.svc.ConfirmReview(nil, review.ID, f.proID)
	require.NoError(t, err)
	assert.True(t, resp.IsConfirmed)

	pro, _ := f.pros.FindByID(nil, f.proID)
	assert.Equal(t, 4.0, pro.Ranking)
}

func TestConfirmReviewUpdatesRanking(t *testing.T) {
	f := newReviewFixture(t)
	f.activateSubscription(t)

	first := f.addReview(t, 5, false)
	resp, err := f.svc.ConfirmReview(nil, first.ID, f.proID)
	require.NoError(t, err)
	assert.True(t, resp.IsConfirmed)

	pro, _ := f.pros.FindByID(nil, f.proID)
	assert.Equal(t, 5.0, pro.Ranking)

	// A second confirmation recomputes the mean over confirmed reviews only.
	second := f.addReview(t, 2, false)
	f.addReview(t, 1, false) // never confirmed, never counted
	_, err = f.svc.ConfirmReview(nil, second.ID, f.proID)
	require.NoError(t, err)

	pro, _ = f.pros.FindByID(nil, f.proID)
	assert.Equal(t, 3.5, pro.Ranking)
}

func TestConfirmReviewGuards(t *testing.T) {
	f := newReviewFixture(t)
	f.activateSubscription(t)
	review := f.addReview(t, 4, true)

	_, err := f.svc.ConfirmReview(nil, review.ID, f.proID)
	assert.ErrorIs(t, err, apperrors.ErrReviewAlreadyConfirmed)

	_, err = f.svc.ConfirmReview(nil, review.ID, "someone-else")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	_, err = f.svc.ConfirmReview(nil, "missing", f.proID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestReplyToReviewUpdatesClientRanking(t *testing.T) {
	f := newReviewFixture(t)
	review := f.addReview(t, 5, true)

	resp, err := f.svc.ReplyToReview(nil, review.ID, f.proID, &dto.ReplyToReviewRequest{
		Comment:      "Grazie!",
		ClientRating: 4,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Reply)
	assert.Equal(t, 4, resp.Reply.ClientRating)

	// First counter-rating: (5.0*0 + 4) / 1.
	client, _ := f.clients.FindByID(nil, f.clientID)
	assert.Equal(t, 4.0, client.Ranking)
	assert.Equal(t, 1, client.ReviewCount)

	// Second reply from another review averages in.
	second := f.addReview(t, 3, true)
	_, err = f.svc.ReplyToReview(nil, second.ID, f.proID, &dto.ReplyToReviewRequest{
		Comment:      "Cliente puntuale",
		ClientRating: 5,
	})
	require.NoError(t, err)

	client, _ = f.clients.FindByID(nil, f.clientID)
	assert.Equal(t, 4.5, client.Ranking)
	assert.Equal(t, 2, client.ReviewCount)
}

func TestReplyToReviewOnlyOnce(t *testing.T) {
	f := newReviewFixture(t)
	review := f.addReview(t, 5, true)

	_, err := f.svc.ReplyToReview(nil, review.ID, f.proID, &dto.ReplyToReviewRequest{Comment: "ok", ClientRating: 5})
	require.NoError(t, err)

	_, err = f.svc.ReplyToReview(nil, review.ID, f.proID, &dto.ReplyToReviewRequest{Comment: "ancora", ClientRating: 1})
	assert.ErrorIs(t, err, apperrors.ErrReviewAlreadyReplied)
}

func TestGetProfessionalReviewsVisibility(t *testing.T) {
	f := newReviewFixture(t)
	f.addReview(t, 5, true)
	f.addReview(t, 2, false)

	public, err := f.svc.GetProfessionalReviews(nil, f.proID, false)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	own, err := f.svc.GetProfessionalReviews(nil, f.proID, true)
	require.NoError(t, err)
	assert.Len(t, own, 2)
}
