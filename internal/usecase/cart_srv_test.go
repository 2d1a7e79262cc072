package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/internal/dto/request"
	"agcf-voyage/internal/dto/response"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cartFixture struct {
	store   *fakeStore
	service CartService
	train   *entity.Train
	userID  uuid.UUID
	email   string
	key     string
}

func newCartFixture(t *testing.T, seats int) *cartFixture {
	t.Helper()

	store := newFakeStore()
	repo := newFakeRepository(store)
	dispatcher := &fakeDispatcher{}
	config := testConfig()
	logger := zap.NewNop()

	reservations := NewReservationService(repo, dispatcher, config, logger)

	casa := addStation(store, "Casa Voyageurs", "Casablanca")
	marrakech := addStation(store, "Marrakech", "Marrakech")
	train := addTrain(store, casa, marrakech, seats, "110.00")

	return &cartFixture{
		store:   store,
		service: NewCartService(repo, reservations, config, logger),
		train:   train,
		userID:  uuid.New(),
		email:   "traveler@example.com",
		key:     "cart-" + uuid.New().String()[:8],
	}
}

func (f *cartFixture) addReq(train *entity.Train, seats int) *request.AddCartEntryRequest {
	return &request.AddCartEntryRequest{
		TrainID:    train.ID.String(),
		TravelDate: futureDate(7),
		Seats:      seats,
	}
}

func TestCartAdd(t *testing.T) {
	f := newCartFixture(t, 10)

	cart, err := f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 2))
	require.NoError(t, err)

	require.Len(t, cart.Entries, 1)
	assert.Equal(t, "220.00", cart.Entries[0].TotalPrice)
	assert.Equal(t, "220.00", cart.Total)

	// Staging does not touch inventory.
	assert.Equal(t, 10, f.store.trains[f.train.ID].SeatsAvailable)

	cart, err = f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 1))
	require.NoError(t, err)
	require.Len(t, cart.Entries, 2)
	assert.Equal(t, "330.00", cart.Total)
}

func TestCartAddRejections(t *testing.T) {
	t.Run("missing cart key", func(t *testing.T) {
		f := newCartFixture(t, 10)
		_, err := f.service.Add(context.Background(), "", f.userID, f.addReq(f.train, 1))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inactive train", func(t *testing.T) {
		f := newCartFixture(t, 10)
		f.store.trains[f.train.ID].Active = false
		_, err := f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 1))
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("over capacity", func(t *testing.T) {
		f := newCartFixture(t, 3)
		_, err := f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 5))
		assert.ErrorIs(t, err, ErrCapacity)
	})

	t.Run("past travel date", func(t *testing.T) {
		f := newCartFixture(t, 10)
		req := f.addReq(f.train, 1)
		req.TravelDate = "2020-01-01"
		_, err := f.service.Add(context.Background(), f.key, f.userID, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCartRemove(t *testing.T) {
	f := newCartFixture(t, 10)

	_, err := f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 1))
	require.NoError(t, err)
	_, err = f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 2))
	require.NoError(t, err)

	cart, err := f.service.Remove(context.Background(), f.key, 0)
	require.NoError(t, err)
	require.Len(t, cart.Entries, 1)
	assert.Equal(t, 2, cart.Entries[0].Seats)

	t.Run("index out of range", func(t *testing.T) {
		_, err := f.service.Remove(context.Background(), f.key, 5)
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.service.Remove(context.Background(), f.key, -1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCartKeysAreIsolated(t *testing.T) {
	f := newCartFixture(t, 10)

	_, err := f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 1))
	require.NoError(t, err)

	other, err := f.service.Items(context.Background(), "another-key")
	require.NoError(t, err)
	assert.Empty(t, other.Entries)
}

func TestCartCheckout(t *testing.T) {
	f := newCartFixture(t, 10)

	_, err := f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 2))
	require.NoError(t, err)
	_, err = f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 3))
	require.NoError(t, err)

	out, err := f.service.Checkout(context.Background(), f.key, f.userID, f.email)
	require.NoError(t, err)

	assert.Len(t, out.Created, 2)
	assert.Empty(t, out.Failed)
	assert.Equal(t, 5, f.store.trains[f.train.ID].SeatsAvailable)

	// Each booking got its own reservation and code.
	assert.NotEqual(t, out.Created[0].Code, out.Created[1].Code)

	cart, err := f.service.Items(context.Background(), f.key)
	require.NoError(t, err)
	assert.Empty(t, cart.Entries)
}

func TestCartCheckoutPartialSuccess(t *testing.T) {
	f := newCartFixture(t, 4)

	// The second entry no longer fits once the first books.
	_, err := f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 3))
	require.NoError(t, err)
	_, err = f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 2))
	require.NoError(t, err)

	out, err := f.service.Checkout(context.Background(), f.key, f.userID, f.email)
	require.NoError(t, err)

	require.Len(t, out.Created, 1)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, 1, out.Failed[0].Index)
	assert.Equal(t, 1, f.store.trains[f.train.ID].SeatsAvailable)

	// The failed entry stays in the cart for a retry.
	cart, err := f.service.Items(context.Background(), f.key)
	require.NoError(t, err)
	require.Len(t, cart.Entries, 1)
	assert.Equal(t, 2, cart.Entries[0].Seats)
}

func TestCartConcurrentCheckoutBooksOnce(t *testing.T) {
	f := newCartFixture(t, 10)

	_, err := f.service.Add(context.Background(), f.key, f.userID, f.addReq(f.train, 2))
	require.NoError(t, err)

	var wg sync.WaitGroup
	outs := make(chan *response.CheckoutResponse, 2)
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.service.Checkout(context.Background(), f.key, f.userID, f.email)
			if err != nil {
				errs <- err
				return
			}
			outs <- out
		}()
	}
	wg.Wait()
	close(outs)
	close(errs)

	booked := 0
	for out := range outs {
		booked += len(out.Created)
	}
	emptyErrs := 0
	for err := range errs {
		assert.ErrorIs(t, err, ErrInvalidInput)
		emptyErrs++
	}

	// The entry books exactly once; the loser finds the cart empty.
	assert.Equal(t, 1, booked)
	assert.Equal(t, 1, emptyErrs)
	assert.Equal(t, 8, f.store.trains[f.train.ID].SeatsAvailable)
}

func TestCartCheckoutEmpty(t *testing.T) {
	f := newCartFixture(t, 10)

	_, err := f.service.Checkout(context.Background(), f.key, f.userID, f.email)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCartCheckoutRepricesCard(t *testing.T) {
	f := newCartFixture(t, 10)
	card := addCard(f.store, f.userID, "50", time.Now().AddDate(1, 0, 0))

	req := f.addReq(f.train, 1)
	req.CardID = card.ID.String()

	cart, err := f.service.Add(context.Background(), f.key, f.userID, req)
	require.NoError(t, err)
	assert.Equal(t, "55.00", cart.Entries[0].TotalPrice)

	// The card expires between staging and checkout; the booking still
	// lands, at full price.
	f.store.cards[card.ID].ExpirationDate = time.Now().AddDate(0, 0, -1)

	out, err := f.service.Checkout(context.Background(), f.key, f.userID, f.email)
	require.NoError(t, err)

	require.Len(t, out.Created, 1)
	assert.True(t, out.Created[0].CardDowngraded)
	assert.Equal(t, "110.00", out.Created[0].TotalPrice)
}
