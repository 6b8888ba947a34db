package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/skyway-booking/internal/model"
)

// SortNewestFirst orders bookings by creation time, newest first.
const SortNewestFirst = "-created_date"

// MemoryBookingRepo is the mock booking backend. Bookings live only as long
// as the instance. Create waits twice as long as List, mirroring the
// demo API.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings []model.Booking
	latency  time.Duration
	now      func() time.Time
}

// NewMemoryBookingRepo returns an empty in-memory booking store.
func NewMemoryBookingRepo(latency time.Duration) *MemoryBookingRepo {
	return &MemoryBookingRepo{latency: latency, now: func() time.Time { return time.Now().UTC() }}
}

// Create stores b as a confirmed booking. IDs are assigned sequentially
// starting at 1.
func (r *MemoryBookingRepo) Create(ctx context.Context, b model.NewBooking) (model.Booking, error) {
	if err := wait(ctx, 2*r.latency); err != nil {
		return model.Booking{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := model.Booking{
		ID:          uint64(len(r.bookings) + 1),
		NewBooking:  b,
		Status:      model.BookingConfirmed,
		CreatedDate: r.now(),
	}
	rec.PassengerDetails = append([]model.PassengerDetail(nil), b.PassengerDetails...)
	r.bookings = append(r.bookings, rec)
	return rec, nil
}

// List returns all bookings. SortNewestFirst sorts by creation time
// descending; any other value keeps insertion order.
func (r *MemoryBookingRepo) List(ctx context.Context, sortBy string) ([]model.Booking, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}
	r.mu.Lock()
	out := make([]model.Booking, len(r.bookings))
	copy(out, r.bookings)
	r.mu.Unlock()
	if sortBy == SortNewestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].CreatedDate.Equal(out[j].CreatedDate) {
				return out[i].ID > out[j].ID
			}
			return out[i].CreatedDate.After(out[j].CreatedDate)
		})
	}
	return out, nil
}

// BookingRepo persists bookings in MySQL. Passenger rows live in
// booking_passengers and keep their selection order through the position
// column. All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts the booking and its passengers in one transaction and
// reads the stored row back to pick up status and created_at defaults.
func (r *BookingRepo) Create(ctx context.Context, b model.NewBooking) (model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const ins = `INSERT INTO bookings (booking_type, flight_id, destination, departure_city, departure_date, passengers, class, total_price, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		b.BookingType, b.FlightID, b.Destination, b.DepartureCity, b.DepartureDate,
		b.Passengers, b.Class, b.TotalPrice, model.BookingConfirmed)
	if err != nil {
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}

	if len(b.PassengerDetails) > 0 {
		query := `INSERT INTO booking_passengers (booking_id, position, name, seat) VALUES `
		args := make([]interface{}, 0, len(b.PassengerDetails)*4)
		for i, p := range b.PassengerDetails {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?)"
			args = append(args, id, i, p.Name, p.Seat)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return model.Booking{}, err
		}
	}

	rec := model.Booking{ID: uint64(id), NewBooking: b}
	const sel = `SELECT status, created_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, id).Scan(&rec.Status, &rec.CreatedDate); err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return rec, nil
}

// List returns all bookings with their passengers. SortNewestFirst orders by
// created_at descending; anything else orders by id.
func (r *BookingRepo) List(ctx context.Context, sortBy string) ([]model.Booking, error) {
	order := "id ASC"
	if sortBy == SortNewestFirst {
		order = "created_at DESC, id DESC"
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_type, flight_id, destination, departure_city, departure_date, passengers, class, total_price, status, created_at FROM bookings ORDER BY `+order)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	index := make(map[uint64]int)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.BookingType, &b.FlightID, &b.Destination, &b.DepartureCity,
			&b.DepartureDate, &b.Passengers, &b.Class, &b.TotalPrice, &b.Status, &b.CreatedDate); err != nil {
			return nil, err
		}
		b.PassengerDetails = []model.PassengerDetail{}
		index[b.ID] = len(out)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []model.Booking{}, nil
	}

	ids := make([]interface{}, 0, len(out))
	for _, b := range out {
		ids = append(ids, b.ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	prow, err := r.db.QueryContext(ctx,
		`SELECT booking_id, name, seat FROM booking_passengers WHERE booking_id IN (`+placeholders+`) ORDER BY booking_id, position`, ids...)
	if err != nil {
		return nil, err
	}
	defer prow.Close()
	for prow.Next() {
		var (
			bookingID uint64
			p         model.PassengerDetail
		)
		if err := prow.Scan(&bookingID, &p.Name, &p.Seat); err != nil {
			return nil, err
		}
		if i, ok := index[bookingID]; ok {
			out[i].PassengerDetails = append(out[i].PassengerDetails, p)
		}
	}
	return out, prow.Err()
}
