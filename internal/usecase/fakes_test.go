package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"agcf-voyage/internal/data/entity"
	"agcf-voyage/internal/data/repository"
	"agcf-voyage/pkg/ticket"
	"agcf-voyage/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore backs in-memory implementations of the repository
// interfaces. Row-level locking is modeled the way the database does
// it: LockByID and LockByIDForUser take a per-row mutex that is held
// until the transaction finishes, while plain reads and writes only
// take the short store mutex. Writes land immediately and are
// journaled, a failed transaction undoes them in reverse order.
type fakeStore struct {
	mu sync.Mutex

	stations     map[uuid.UUID]*entity.Station
	trains       map[uuid.UUID]*entity.Train
	stops        map[uuid.UUID][]*entity.TrainStop
	maintenance  []*entity.MaintenanceWindow
	delays       []*entity.TrainDelay
	cards        map[uuid.UUID]*entity.UserDiscountCard
	reservations map[uuid.UUID]*entity.Reservation
	passengers   map[uuid.UUID][]*entity.Passenger
	promotions   []*entity.Promotion

	rowLocks map[uuid.UUID]*sync.Mutex
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stations:     make(map[uuid.UUID]*entity.Station),
		trains:       make(map[uuid.UUID]*entity.Train),
		stops:        make(map[uuid.UUID][]*entity.TrainStop),
		cards:        make(map[uuid.UUID]*entity.UserDiscountCard),
		reservations: make(map[uuid.UUID]*entity.Reservation),
		passengers:   make(map[uuid.UUID][]*entity.Passenger),
		rowLocks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *fakeStore) rowLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.rowLocks[id]
	if !ok {
		m = &sync.Mutex{}
		s.rowLocks[id] = m
	}
	return m
}

// fakeTx tracks the row locks held and the undo journal of one
// transaction. Outside a transaction the pointer is nil: locking is a
// no-op and writes are final.
type fakeTx struct {
	s    *fakeStore
	held map[uuid.UUID]*sync.Mutex
	undo []func()
}

func (tx *fakeTx) lockRow(id uuid.UUID) {
	if tx == nil {
		return
	}
	if _, ok := tx.held[id]; ok {
		return
	}
	m := tx.s.rowLock(id)
	m.Lock()
	tx.held[id] = m
}

func (tx *fakeTx) onRollback(fn func()) {
	if tx != nil {
		tx.undo = append(tx.undo, fn)
	}
}

func (tx *fakeTx) finish(failed bool) {
	if failed {
		tx.s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		tx.s.mu.Unlock()
	}
	for _, m := range tx.held {
		m.Unlock()
	}
}

func newFakeRepository(s *fakeStore) *repository.Repository {
	repo := newFakeSet(s, nil)
	repo.WithTx = func(ctx context.Context, fn func(r *repository.Repository) error) error {
		tx := &fakeTx{s: s, held: make(map[uuid.UUID]*sync.Mutex)}
		txRepo := newFakeSet(s, tx)
		txRepo.WithTx = func(ctx context.Context, nested func(r *repository.Repository) error) error {
			return nested(txRepo)
		}

		err := fn(txRepo)
		tx.finish(err != nil)
		return err
	}
	return repo
}

func newFakeSet(s *fakeStore, tx *fakeTx) *repository.Repository {
	return &repository.Repository{
		Station:     &fakeStationRepo{s},
		Train:       &fakeTrainRepo{s, tx},
		Stop:        &fakeStopRepo{s},
		Maintenance: &fakeMaintenanceRepo{s},
		Delay:       &fakeDelayRepo{s},
		Card:        &fakeCardRepo{s, tx},
		Reservation: &fakeReservationRepo{s, tx},
		Passenger:   &fakePassengerRepo{s, tx},
		Promotion:   &fakePromotionRepo{s},
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			SearchPageSize:  10,
			CardDailyLimit:  2,
			CodeLength:      8,
			CodeMaxAttempts: 5,
			HistoryPageSize: 10,
		},
	}
}

// ---- station ----

type fakeStationRepo struct{ s *fakeStore }

func (f *fakeStationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Station, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.stations[id], nil
}

func (f *fakeStationRepo) FindAll(_ context.Context) ([]*entity.Station, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	out := make([]*entity.Station, 0, len(f.s.stations))
	for _, st := range f.s.stations {
		out = append(out, st)
	}
	return out, nil
}

// ---- train ----

type fakeTrainRepo struct {
	s  *fakeStore
	tx *fakeTx
}

func (f *fakeTrainRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Train, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if t, ok := f.s.trains[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeTrainRepo) LockByID(ctx context.Context, id uuid.UUID) (*entity.Train, error) {
	f.tx.lockRow(id)
	return f.FindByID(ctx, id)
}

func (f *fakeTrainRepo) FindByRoute(_ context.Context, originID, destinationID uuid.UUID) ([]*entity.Train, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.Train
	for _, t := range f.s.trains {
		if t.OriginID == originID && t.DestinationID == destinationID && t.Active {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTrainRepo) DebitSeats(_ context.Context, id uuid.UUID, seats int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	t, ok := f.s.trains[id]
	if !ok || t.SeatsAvailable < seats {
		return repository.ErrInsufficientSeats
	}
	t.SeatsAvailable -= seats
	f.tx.onRollback(func() { t.SeatsAvailable += seats })
	return nil
}

func (f *fakeTrainRepo) CreditSeats(_ context.Context, id uuid.UUID, seats int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if t, ok := f.s.trains[id]; ok {
		t.SeatsAvailable += seats
		f.tx.onRollback(func() { t.SeatsAvailable -= seats })
	}
	return nil
}

// ---- stops ----

type fakeStopRepo struct{ s *fakeStore }

func (f *fakeStopRepo) FindByTrainID(_ context.Context, trainID uuid.UUID) ([]*entity.TrainStop, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.stops[trainID], nil
}

// ---- maintenance ----

type fakeMaintenanceRepo struct{ s *fakeStore }

func (f *fakeMaintenanceRepo) Create(_ context.Context, w *entity.MaintenanceWindow) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.maintenance = append(f.s.maintenance, w)
	return nil
}

func (f *fakeMaintenanceRepo) IsUnderMaintenance(_ context.Context, trainID uuid.UUID, date time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, w := range f.s.maintenance {
		blocking := w.Status == entity.MaintenanceStatusPlanned || w.Status == entity.MaintenanceStatusInProgress
		if w.TrainID == trainID && blocking && !date.Before(w.StartDate) && !date.After(w.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMaintenanceRepo) FindByTrainID(_ context.Context, trainID uuid.UUID) ([]*entity.MaintenanceWindow, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.MaintenanceWindow
	for _, w := range f.s.maintenance {
		if w.TrainID == trainID {
			out = append(out, w)
		}
	}
	return out, nil
}

// ---- delays ----

type fakeDelayRepo struct{ s *fakeStore }

func (f *fakeDelayRepo) Create(_ context.Context, d *entity.TrainDelay) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, existing := range f.s.delays {
		if existing.TrainID == d.TrainID && utils.SameDay(existing.TravelDate, d.TravelDate) {
			return repository.ErrDuplicate
		}
	}
	f.s.delays = append(f.s.delays, d)
	return nil
}

func (f *fakeDelayRepo) FindByTrainAndDate(_ context.Context, trainID uuid.UUID, date time.Time) (*entity.TrainDelay, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	for _, d := range f.s.delays {
		if d.TrainID == trainID && utils.SameDay(d.TravelDate, date) {
			return d, nil
		}
	}
	return nil, nil
}

// ---- cards ----

type fakeCardRepo struct {
	s  *fakeStore
	tx *fakeTx
}

func (f *fakeCardRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*entity.UserDiscountCard, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if c, ok := f.s.cards[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, nil
}

func (f *fakeCardRepo) LockByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.UserDiscountCard, error) {
	f.tx.lockRow(id)
	return f.FindByIDForUser(ctx, id, userID)
}

func (f *fakeCardRepo) FindValidByUserID(_ context.Context, userID uuid.UUID, onDay time.Time) ([]*entity.UserDiscountCard, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.UserDiscountCard
	for _, c := range f.s.cards {
		if c.UserID == userID && !c.ExpirationDate.Before(onDay) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ---- reservations ----

type fakeReservationRepo struct {
	s  *fakeStore
	tx *fakeTx
}

func (f *fakeReservationRepo) Create(_ context.Context, res *entity.Reservation) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	cp := *res
	f.s.reservations[res.ID] = &cp
	f.tx.onRollback(func() { delete(f.s.reservations, res.ID) })
	return nil
}

func (f *fakeReservationRepo) FindByCode(_ context.Context, code string) (*entity.Reservation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.findByCodeLocked(code), nil
}

func (f *fakeReservationRepo) findByCodeLocked(code string) *entity.Reservation {
	for _, res := range f.s.reservations {
		if strings.EqualFold(res.Code, code) {
			cp := *res
			return &cp
		}
	}
	return nil
}

func (f *fakeReservationRepo) FindByCodeAndEmail(_ context.Context, code, email string) (*entity.Reservation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	res := f.findByCodeLocked(code)
	if res == nil || !strings.EqualFold(res.UserEmail, email) {
		return nil, nil
	}
	return res, nil
}

func (f *fakeReservationRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var all []*entity.Reservation
	for _, res := range f.s.reservations {
		if res.UserID == userID {
			cp := *res
			all = append(all, &cp)
		}
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeReservationRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var count int64
	for _, res := range f.s.reservations {
		if res.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) CodeExists(_ context.Context, code string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.findByCodeLocked(code) != nil, nil
}

func (f *fakeReservationRepo) CountByCardOnDay(_ context.Context, cardID uuid.UUID, day time.Time) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	count := 0
	for _, res := range f.s.reservations {
		if res.CardID != nil && *res.CardID == cardID &&
			utils.SameDay(res.CreatedAt, day) &&
			res.Status != entity.ReservationStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) Confirm(_ context.Context, id uuid.UUID, method entity.PaymentMethod, paidAt time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	res, ok := f.s.reservations[id]
	if !ok || res.Status != entity.ReservationStatusPending {
		return false, nil
	}
	res.Status = entity.ReservationStatusConfirmed
	res.PaymentMethod = &method
	res.PaidAt = &paidAt
	return true, nil
}

func (f *fakeReservationRepo) MarkCancelled(_ context.Context, id uuid.UUID) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	res, ok := f.s.reservations[id]
	if !ok || !res.Active() {
		return false, nil
	}
	prev := res.Status
	res.Status = entity.ReservationStatusCancelled
	f.tx.onRollback(func() { res.Status = prev })
	return true, nil
}

func (f *fakeReservationRepo) FindConfirmedByTrainAndDate(_ context.Context, trainID uuid.UUID, date time.Time) ([]*entity.Reservation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.Reservation
	for _, res := range f.s.reservations {
		if res.TrainID == trainID && utils.SameDay(res.TravelDate, date) && res.Status == entity.ReservationStatusConfirmed {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- passengers ----

type fakePassengerRepo struct {
	s  *fakeStore
	tx *fakeTx
}

func (f *fakePassengerRepo) ReplaceForReservation(_ context.Context, reservationID uuid.UUID, passengers []*entity.Passenger) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	prev := f.s.passengers[reservationID]
	f.s.passengers[reservationID] = passengers
	f.tx.onRollback(func() { f.s.passengers[reservationID] = prev })
	return nil
}

func (f *fakePassengerRepo) FindByReservationID(_ context.Context, reservationID uuid.UUID) ([]*entity.Passenger, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.passengers[reservationID], nil
}

// ---- promotions ----

type fakePromotionRepo struct{ s *fakeStore }

func (f *fakePromotionRepo) FindActive(_ context.Context, onDay time.Time) ([]*entity.Promotion, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var out []*entity.Promotion
	for _, p := range f.s.promotions {
		if p.Active && !onDay.Before(p.StartDate) && !onDay.After(p.EndDate) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- dispatcher ----

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []ticket.Kind
	fail bool
}

func (d *fakeDispatcher) GenerateAndSend(_ context.Context, _ *entity.Reservation, kind ticket.Kind) error {
	if d.fail {
		return errDispatchDown
	}
	d.mu.Lock()
	d.sent = append(d.sent, kind)
	d.mu.Unlock()
	return nil
}

// ---- builders ----

func addStation(s *fakeStore, name, city string) *entity.Station {
	st := &entity.Station{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		City:       city,
		Code:       strings.ToUpper(name[:3]),
	}
	s.stations[st.ID] = st
	return st
}

func addTrain(s *fakeStore, origin, destination *entity.Station, seats int, price string) *entity.Train {
	basePrice, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	t := &entity.Train{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Number:         "TGV-" + strings.ToUpper(uuid.New().String()[:4]),
		OriginID:       origin.ID,
		DestinationID:  destination.ID,
		DepartureTime:  time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		ArrivalTime:    time.Date(0, 1, 1, 11, 30, 0, 0, time.UTC),
		DurationMin:    150,
		Class:          entity.FareClassSecond,
		BasePrice:      basePrice,
		SeatsAvailable: seats,
		CarCount:       8,
		Active:         true,
	}
	s.trains[t.ID] = t
	return t
}

func addStop(s *fakeStore, train *entity.Train, station *entity.Station, position int) {
	s.stops[train.ID] = append(s.stops[train.ID], &entity.TrainStop{
		ID:        uuid.New(),
		TrainID:   train.ID,
		StationID: station.ID,
		Position:  position,
	})
}

func addCard(s *fakeStore, userID uuid.UUID, percentage string, expiration time.Time) *entity.UserDiscountCard {
	pct, err := decimal.NewFromString(percentage)
	if err != nil {
		panic(err)
	}
	c := &entity.UserDiscountCard{
		ID:             uuid.New(),
		UserID:         userID,
		CardTypeID:     uuid.New(),
		CardNumber:     "CR-" + uuid.New().String()[:8],
		ExpirationDate: expiration,
		AddedAt:        time.Now(),
		Type: entity.DiscountCardType{
			Kind:       "youth",
			Name:       "Carte Jeune",
			Percentage: pct,
			Active:     true,
		},
	}
	c.Type.ID = c.CardTypeID
	s.cards[c.ID] = c
	return c
}

var errDispatchDown = errors.New("smtp unreachable")
