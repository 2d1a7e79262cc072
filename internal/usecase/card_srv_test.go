package usecase

import (
	"context"
	"testing"
	"time"

	"agcf-voyage/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListUserCards(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepository(store)
	service := NewCardService(repo, testConfig(), zap.NewNop())
	userID := uuid.New()

	valid := addCard(store, userID, "30", time.Now().AddDate(1, 0, 0))
	addCard(store, userID, "50", time.Now().AddDate(0, 0, -1))
	addCard(store, uuid.New(), "25", time.Now().AddDate(1, 0, 0))

	cards, err := service.ListUserCards(context.Background(), userID)
	require.NoError(t, err)

	// Expired cards and other users' cards are filtered out.
	require.Len(t, cards, 1)
	assert.Equal(t, valid.ID, cards[0].ID)
	assert.Equal(t, "Carte Jeune", cards[0].Name)
	assert.Equal(t, "30.00", cards[0].Percentage)
	assert.True(t, cards[0].UsableToday)
}

func TestListUserCardsReportsDailyCap(t *testing.T) {
	f := newReservationFixture(t, 10)
	store := f.store
	repo := newFakeRepository(store)
	cardSvc := NewCardService(repo, testConfig(), zap.NewNop())

	card := addCard(store, f.userID, "30", time.Now().AddDate(1, 0, 0))

	for i := 0; i < 2; i++ {
		req := f.createReq(1)
		req.CardID = card.ID.String()
		_, err := f.service.Create(context.Background(), f.userID, f.email, req)
		require.NoError(t, err)
	}

	cards, err := cardSvc.ListUserCards(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, cards, 1)
	assert.False(t, cards[0].UsableToday)
}

func TestQuoteDoesNotCommit(t *testing.T) {
	f := newReservationFixture(t, 10)
	card := addCard(f.store, f.userID, "30", time.Now().AddDate(1, 0, 0))

	quote, err := f.service.Quote(context.Background(), f.userID, &request.QuoteRequest{
		TrainID: f.train.ID.String(),
		Seats:   2,
		CardID:  card.ID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "133.00", quote.TotalPrice)
	assert.True(t, quote.CardApplied)
	assert.False(t, quote.CardDowngraded)

	// Quoting never debits seats or burns a card use.
	assert.Equal(t, 10, f.seatsLeft())
	quote2, err := f.service.Quote(context.Background(), f.userID, &request.QuoteRequest{
		TrainID: f.train.ID.String(),
		Seats:   2,
		CardID:  card.ID.String(),
	})
	require.NoError(t, err)
	assert.True(t, quote2.CardApplied)
}

func TestQuoteUnknownTrain(t *testing.T) {
	f := newReservationFixture(t, 10)

	_, err := f.service.Quote(context.Background(), f.userID, &request.QuoteRequest{
		TrainID: uuid.New().String(),
		Seats:   1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
