// Package booking turns a priced seat selection into a persisted booking
// with its seat rows, rolling the booking back when seat persistence fails.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Engine orchestrates a single confirm attempt: validate, persist the
// booking row, persist the seat batch, and compensate by deleting the
// booking if the batch fails. It takes no seat locks; two users racing for
// the same seat are decided solely by the database's uniqueness constraint.
type Engine struct {
	bookings domain.BookingRepository
	feed     domain.SeatChangeFeed
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}

	confirmCounter       metric.Int64Counter
	partialCommitCounter metric.Int64Counter
	priceFallbackCounter metric.Int64Counter
}

func NewEngine(bookings domain.BookingRepository, feed domain.SeatChangeFeed, logger *slog.Logger) *Engine {
	meter := otel.Meter("cineflow/booking")

	confirmCounter, _ := meter.Int64Counter("booking.confirm",
		metric.WithDescription("Confirm attempts by outcome"))
	partialCommitCounter, _ := meter.Int64Counter("booking.partial_commit",
		metric.WithDescription("Bookings left without seats after a failed compensating delete"))
	priceFallbackCounter, _ := meter.Int64Counter("booking.price_fallback",
		metric.WithDescription("Seats priced at the default because the selection price map missed them"))

	return &Engine{
		bookings:             bookings,
		feed:                 feed,
		logger:               logger,
		inFlight:             make(map[uuid.UUID]struct{}),
		confirmCounter:       confirmCounter,
		partialCommitCounter: partialCommitCounter,
		priceFallbackCounter: priceFallbackCounter,
	}
}

// InFlight reports whether a confirm attempt is currently running for the
// selection. Callers use it to disable re-submission.
func (e *Engine) InFlight(selectionID uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.inFlight[selectionID]

	return ok
}

func (e *Engine) begin(selectionID uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.inFlight[selectionID]; ok {
		return false
	}
	e.inFlight[selectionID] = struct{}{}

	return true
}

func (e *Engine) end(selectionID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.inFlight, selectionID)
}

// Confirm persists the selection as a booking owned by userID and returns
// the stored record, including its server-generated id and timestamp.
//
// The booking row is written before the seat rows; if the seat batch fails,
// the booking row is deleted again so a successful return is the only way a
// booking with seats comes to exist. The compensating delete is attempted
// once; if it also fails, the resulting PartialCommitError marks an
// inconsistency that needs out-of-band cleanup.
func (e *Engine) Confirm(ctx context.Context, userID uuid.UUID, sel *domain.Selection) (*domain.Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	if !sel.Complete() {
		return nil, domain.ErrInvalidSelection
	}

	if !e.begin(sel.ID) {
		return nil, domain.ErrConfirmInFlight
	}
	defer e.end(sel.ID)

	bk := &domain.Booking{
		UserID:      userID,
		ShowtimeID:  sel.ShowtimeID,
		TotalAmount: sel.Total,
		Currency:    domain.BookingCurrency,
		Status:      domain.BookingStatusConfirmed,
	}

	err := e.bookings.Create(ctx, bk)
	if err != nil {
		e.count(ctx, "failed")
		return nil, fmt.Errorf("persisting booking: %w", err)
	}

	err = e.bookings.InsertSeats(ctx, e.seatRows(ctx, bk, sel))
	if err != nil {
		return nil, e.rollback(ctx, bk, err)
	}

	if pubErr := e.feed.Publish(ctx, sel.ShowtimeID); pubErr != nil {
		// Advisory channel only; the booking is already durable.
		e.logger.Warn("failed to publish seat change", "showtime_id", sel.ShowtimeID, "error", pubErr)
	}

	e.count(ctx, "confirmed")

	return bk, nil
}

func (e *Engine) seatRows(ctx context.Context, bk *domain.Booking, sel *domain.Selection) []domain.BookingSeat {
	seats := make([]domain.BookingSeat, 0, len(sel.Seats))

	for _, label := range sel.Seats {
		price, ok := sel.SeatPrices[label]
		if !ok {
			// The price map should cover every selected seat; a miss means
			// it was built incompletely upstream.
			price = domain.DefaultSeatPrice
			e.logger.Warn("seat missing from selection price map, charging default",
				"selection_id", sel.ID, "seat", label)
			e.priceFallbackCounter.Add(ctx, 1)
		}

		seats = append(seats, domain.BookingSeat{
			BookingID:  bk.ID,
			ShowtimeID: sel.ShowtimeID,
			SeatLabel:  label,
			Price:      price,
		})
	}

	return seats
}

func (e *Engine) rollback(ctx context.Context, bk *domain.Booking, seatErr error) error {
	delErr := e.bookings.Delete(ctx, bk.ID)
	if delErr != nil {
		e.logger.Error("compensating delete failed, booking left without seats",
			"booking_id", bk.ID, "seat_error", seatErr, "delete_error", delErr)
		e.partialCommitCounter.Add(ctx, 1)
		e.count(ctx, "partial_commit")

		return &domain.PartialCommitError{BookingID: bk.ID, SeatErr: seatErr, DeleteErr: delErr}
	}

	if errors.Is(seatErr, domain.ErrSeatAlreadyReserved) {
		e.count(ctx, "seat_conflict")
		return seatErr
	}

	e.count(ctx, "failed")

	return fmt.Errorf("persisting seats: %w", seatErr)
}

func (e *Engine) count(ctx context.Context, outcome string) {
	e.confirmCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
