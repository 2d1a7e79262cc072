package usecase

import (
	"context"
	"testing"
	"time"

	"agcf-voyage/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func catalogFixture(t *testing.T) (*fakeStore, CatalogService) {
	t.Helper()

	store := newFakeStore()
	repo := newFakeRepository(store)
	return store, NewCatalogService(repo, testConfig(), zap.NewNop())
}

func TestListStations(t *testing.T) {
	store, service := catalogFixture(t)

	addStation(store, "Casa Voyageurs", "Casablanca")
	addStation(store, "Rabat Ville", "Rabat")

	stations, err := service.ListStations(context.Background())
	require.NoError(t, err)
	assert.Len(t, stations, 2)
}

func TestGetTrain(t *testing.T) {
	store, service := catalogFixture(t)

	casa := addStation(store, "Casa Voyageurs", "Casablanca")
	rabat := addStation(store, "Rabat Ville", "Rabat")
	kenitra := addStation(store, "Kenitra", "Kenitra")
	tanger := addStation(store, "Tanger", "Tanger")

	train := addTrain(store, casa, tanger, 80, "95.00")
	addStop(store, train, rabat, 1)
	addStop(store, train, kenitra, 2)

	detail, err := service.GetTrain(context.Background(), train.ID)
	require.NoError(t, err)

	assert.Equal(t, "Casa Voyageurs", detail.Origin)
	assert.Equal(t, "Tanger", detail.Destination)
	assert.Equal(t, "2h30", detail.Duration)

	// Full path, endpoints included, in travel order.
	require.Len(t, detail.Path, 4)
	assert.Equal(t, "Casa Voyageurs", detail.Path[0].Name)
	assert.Equal(t, "Rabat Ville", detail.Path[1].Name)
	assert.Equal(t, "Kenitra", detail.Path[2].Name)
	assert.Equal(t, "Tanger", detail.Path[3].Name)
	assert.Equal(t, 0, detail.Path[0].Position)
	assert.Equal(t, 3, detail.Path[3].Position)
}

func TestGetTrainUnknown(t *testing.T) {
	_, service := catalogFixture(t)

	_, err := service.GetTrain(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivePromotions(t *testing.T) {
	store, service := catalogFixture(t)

	addPromotion := func(title string, startOffset, endOffset int, active bool) {
		store.promotions = append(store.promotions, &entity.Promotion{
			ID:          uuid.New(),
			Title:       title,
			DiscountPct: decimal.NewFromInt(20),
			StartDate:   time.Now().AddDate(0, 0, startOffset),
			EndDate:     time.Now().AddDate(0, 0, endOffset),
			Active:      active,
			PromoCode:   "ETE2026",
		})
	}
	addPromotion("Summer fares", -5, 5, true)
	addPromotion("Expired offer", -30, -10, true)
	addPromotion("Disabled offer", -5, 5, false)

	promotions, err := service.ActivePromotions(context.Background())
	require.NoError(t, err)

	require.Len(t, promotions, 1)
	assert.Equal(t, "Summer fares", promotions[0].Title)
	assert.Equal(t, "20.00", promotions[0].DiscountPct)
}
