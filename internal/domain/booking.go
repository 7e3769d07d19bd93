package domain

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingCurrency        = "INR"

	// TicketPrefix is the stable prefix of every QR ticket payload.
	TicketPrefix = "cineflow"
)

// Booking is the persisted record of a confirmed purchase. It is created
// exactly once per confirm and immutable afterwards.
type Booking struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ShowtimeID  uuid.UUID
	TotalAmount decimal.Decimal
	Currency    string
	Status      string
	CreatedAt   time.Time
}

// TicketPayload is what the QR code on the digital ticket encodes.
func (b Booking) TicketPayload() string {
	return fmt.Sprintf("%s:%s", TicketPrefix, b.ID)
}

// BookingSeat is one reserved seat of a booking, carrying the price honored
// from the selection. At most one row may exist per (showtime, seat label)
// across all bookings; the database enforces that.
type BookingSeat struct {
	BookingID  uuid.UUID
	ShowtimeID uuid.UUID
	SeatLabel  string
	Price      decimal.Decimal
}

// Selection is a candidate seat set priced at selection time. It is owned by
// the caller (held in the session store) until confirmed, and its per-seat
// prices are honored through to the final booking even if the base price
// changes mid-session.
type Selection struct {
	ID              uuid.UUID
	ShowtimeID      uuid.UUID
	Seats           []string
	SeatPrices      map[string]decimal.Decimal
	MovieTitle      string
	PosterURL       string
	ShowtimeDisplay string
	City            string
	CinemaName      string
	Auditorium      string
	Total           decimal.Decimal
}

// NewSelection prices the given seats against the showtime's base price and
// tier layout. Seats are de-duplicated and kept sorted for stable display.
func NewSelection(showtimeID uuid.UUID, seats []string, basePrice decimal.Decimal, config TierConfig) Selection {
	unique := make(map[string]struct{}, len(seats))
	deduped := make([]string, 0, len(seats))

	for _, seat := range seats {
		if _, ok := unique[seat]; ok {
			continue
		}
		unique[seat] = struct{}{}
		deduped = append(deduped, seat)
	}
	sort.Strings(deduped)

	seatPrices := make(map[string]decimal.Decimal, len(deduped))
	for _, seat := range deduped {
		seatPrices[seat] = PriceForSeat(seat, basePrice, config)
	}

	total, _ := TotalForSeats(deduped, seatPrices)

	return Selection{
		ID:         uuid.New(),
		ShowtimeID: showtimeID,
		Seats:      deduped,
		SeatPrices: seatPrices,
		Total:      total,
	}
}

// Complete reports whether the selection carries everything a confirm needs.
func (s *Selection) Complete() bool {
	return s != nil &&
		len(s.Seats) > 0 &&
		s.ShowtimeID != uuid.Nil &&
		s.City != "" &&
		s.CinemaName != ""
}

// BookingSummary is one row of a user's booking history, denormalized for
// display.
type BookingSummary struct {
	BookingID    uuid.UUID
	MovieTitle   string
	PosterURL    string
	ShowtimeDate time.Time
	City         string
	CinemaName   string
	Auditorium   string
	SeatLabels   []string
	TotalAmount  decimal.Decimal
	Currency     string
	Status       string
	CreatedAt    time.Time
}

type BookingRepository interface {
	// Create inserts the booking row and fills in the server-generated ID
	// and creation timestamp.
	Create(ctx context.Context, booking *Booking) error

	// InsertSeats persists all seats as one atomic batch: if any seat is
	// already taken for its showtime, no row is written and
	// ErrSeatAlreadyReserved is returned.
	InsertSeats(ctx context.Context, seats []BookingSeat) error

	// Delete removes a booking row by id. Used as the compensating step
	// when seat persistence fails after the booking row was created.
	Delete(ctx context.Context, bookingID uuid.UUID) error

	SeatLabelsByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]string, error)
	GetSummariesByUserId(ctx context.Context, userID uuid.UUID, pagination Pagination) ([]BookingSummary, *Metadata, error)
	GetByIdAndUserId(ctx context.Context, bookingID, userID uuid.UUID) (*BookingSummary, error)
}

// SeatChangeFeed is the per-showtime push channel for booking seat changes.
// Subscribers get a nudge whenever seats for the showtime change and refetch
// on their own; the feed carries no seat data and is never a lock.
type SeatChangeFeed interface {
	// Subscribe registers onChange for the showtime and returns a release
	// function. Callers must release on teardown to avoid leaked listeners.
	Subscribe(ctx context.Context, showtimeID uuid.UUID, onChange func()) (func(), error)

	// Publish signals that the showtime's reserved seats changed.
	Publish(ctx context.Context, showtimeID uuid.UUID) error
}
