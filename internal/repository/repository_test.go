package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/skyway-booking/internal/model"
	"github.com/iliyamo/skyway-booking/internal/seatmap"
)

func TestCatalogRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo(0)

	all, err := repo.ListDestinations(ctx, DestinationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	islands, err := repo.ListDestinations(ctx, DestinationFilter{Category: "Island"})
	require.NoError(t, err)
	assert.Len(t, islands, 2)

	popular := true
	featured, err := repo.ListDestinations(ctx, DestinationFilter{Popular: &popular})
	require.NoError(t, err)
	assert.Len(t, featured, 3)

	flights, err := repo.ListFlights(ctx)
	require.NoError(t, err)
	require.Len(t, flights, 3)

	// Mutating the returned slice must not leak into the repo.
	flights[0].Price = 1
	f, err := repo.GetFlight(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1299, f.Price)

	_, err = repo.GetFlight(ctx, 99)
	assert.ErrorIs(t, err, ErrFlightNotFound)

	// Two instances never share data.
	other := NewCatalogRepo(0)
	other.flights[0].Price = 5
	f, _ = repo.GetFlight(ctx, 1)
	assert.Equal(t, 1299, f.Price)
}

func TestCatalogRepo_Hotels(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo(0)

	all, err := repo.ListHotels(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "The Tokyo Palace", all[0].Name)
	assert.Equal(t, 450, all[0].PricePerNight)

	kyoto, err := repo.ListHotels(ctx, " kyoto ")
	require.NoError(t, err)
	require.Len(t, kyoto, 1)
	assert.Equal(t, "Kyoto Serenity Inn", kyoto[0].Name)

	japan, err := repo.ListHotels(ctx, "Japan")
	require.NoError(t, err)
	assert.Len(t, japan, 3)

	none, err := repo.ListHotels(ctx, "Lisbon")
	require.NoError(t, err)
	assert.Empty(t, none)

	// Returned amenities are copies.
	all[0].Amenities[0] = "casino"
	again, _ := repo.ListHotels(ctx, "tokyo")
	assert.Equal(t, "wifi", again[0].Amenities[0])

	slow := NewCatalogRepo(time.Hour)
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = slow.ListHotels(cancelled, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogRepo_LatencyHonoursContext(t *testing.T) {
	repo := NewCatalogRepo(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.ListFlights(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func newBooking(seats ...string) model.NewBooking {
	nb := model.NewBooking{
		BookingType:   "flight",
		FlightID:      1,
		Destination:   "Tokyo",
		DepartureCity: "New York",
		DepartureDate: "2026-10-17",
		Passengers:    len(seats),
		Class:         "economy",
		TotalPrice:    1299 * len(seats),
	}
	for i, s := range seats {
		nb.PassengerDetails = append(nb.PassengerDetails, model.PassengerDetail{Name: "Passenger " + string(rune('1'+i)), Seat: s})
	}
	return nb
}

func TestMemoryBookingRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo(0)
	base := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := repo.Create(ctx, newBooking("12C"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, model.BookingConfirmed, first.Status)

	second, err := repo.Create(ctx, newBooking("1A", "1B"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.ID)
	assert.Equal(t, []string{"1A", "1B"}, second.SeatIDs())

	newest, err := repo.List(ctx, SortNewestFirst)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, uint64(2), newest[0].ID)

	inserted, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), inserted[0].ID)

	// Separate instances are isolated.
	empty, err := NewMemoryBookingRepo(0).List(ctx, SortNewestFirst)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBookingRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("flight", sqlmock.AnyArg(), "Tokyo", "New York", "2026-10-17", 2, "economy", 2598, model.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WithArgs(sqlmock.AnyArg(), 0, "Passenger 1", "12C", sqlmock.AnyArg(), 1, "Passenger 2", "12D").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("SELECT status, created_at FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"status", "created_at"}).AddRow("confirmed", created))
	mock.ExpectCommit()

	repo := NewBookingRepo(db)
	b, err := repo.Create(context.Background(), newBooking("12C", "12D"))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), b.ID)
	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, created, b.CreatedDate)
	assert.Equal(t, []string{"12C", "12D"}, b.SeatIDs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_CreateRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err = NewBookingRepo(db).Create(context.Background(), newBooking("5A"))
	assert.EqualError(t, err, "boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t1 := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	cols := []string{"id", "booking_type", "flight_id", "destination", "departure_city", "departure_date", "passengers", "class", "total_price", "status", "created_at"}
	mock.ExpectQuery("SELECT id, booking_type .* ORDER BY created_at DESC, id DESC").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "flight", 2, "Tokyo", "New York", "2026-10-18", 1, "business", 2999, "confirmed", t2).
			AddRow(1, "flight", 1, "Tokyo", "New York", "2026-10-17", 2, "economy", 2598, "confirmed", t1))
	mock.ExpectQuery("FROM booking_passengers").
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "name", "seat"}).
			AddRow(1, "Passenger 1", "12C").
			AddRow(1, "Passenger 2", "12D").
			AddRow(2, "Passenger 1", "1A"))

	out, err := NewBookingRepo(db).List(context.Background(), SortNewestFirst)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, uint64(2), out[0].ID)
	assert.Equal(t, []string{"1A"}, out[0].SeatIDs())
	assert.Equal(t, []string{"12C", "12D"}, out[1].SeatIDs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_ListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, booking_type .* ORDER BY id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	out, err := NewBookingRepo(db).List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func testSession(id string, expires time.Time) model.SeatSession {
	return model.SeatSession{
		ID:        id,
		Flight:    model.Flight{ID: 1, Price: 1299},
		Seats:     seatmap.Generate(seatmap.NewSeededSource(1)),
		ExpiresAt: expires,
	}
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }

	sess := testSession("s1", now.Add(30*time.Minute))
	require.NoError(t, store.Create(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.Seats, got.Seats)

	free := firstAvailable(t, sess.Seats)
	updated, err := store.Update(ctx, "s1", func(s *model.SeatSession) error {
		s.Selection = s.Selection.Toggle(free)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{free.ID}, updated.Selection.IDs())

	// A failing update saves nothing.
	_, err = store.Update(ctx, "s1", func(s *model.SeatSession) error {
		s.Selection = seatmap.Selection{}
		return errors.New("nope")
	})
	require.Error(t, err)
	got, _ = store.Get(ctx, "s1")
	assert.Equal(t, []string{free.ID}, got.Selection.IDs())

	_, err = store.Update(ctx, "missing", func(*model.SeatSession) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Create(ctx, testSession("old", now.Add(time.Minute))))
	now = now.Add(2 * time.Minute)

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, store.sessions)
}

func TestSessionEncoding(t *testing.T) {
	sess := testSession("enc", time.Date(2026, 10, 17, 12, 30, 0, 0, time.UTC))
	a := firstAvailable(t, sess.Seats)
	sess.Selection = seatmap.NewSelection(a)

	bs, err := encodeSession(sess)
	require.NoError(t, err)
	got, err := decodeSession(bs)
	require.NoError(t, err)

	assert.Equal(t, sess.Seats, got.Seats)
	assert.Equal(t, sess.Selection.IDs(), got.Selection.IDs())
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))
}

func TestRedisSessionStore_TTL(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := NewRedisSessionStore(nil, "")
	store.now = func() time.Time { return now }

	assert.Equal(t, "seatsession:abc", store.key("abc"))
	assert.Equal(t, 10*time.Minute, store.ttl(model.SeatSession{ExpiresAt: now.Add(10 * time.Minute)}))
	assert.Equal(t, time.Millisecond, store.ttl(model.SeatSession{ExpiresAt: now.Add(-time.Minute)}))
	assert.Equal(t, time.Duration(0), store.ttl(model.SeatSession{}))
}

func firstAvailable(t *testing.T, inv seatmap.Inventory) seatmap.Seat {
	t.Helper()
	for _, s := range inv {
		if s.Available {
			return s
		}
	}
	t.Fatal("no available seat in inventory")
	return seatmap.Seat{}
}
