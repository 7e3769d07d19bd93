package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrCityAlreadyExists   = errors.New("city already exists")
	ErrNotAuthenticated    = errors.New("authentication required to confirm a booking")
	ErrInvalidSelection    = errors.New("selection is missing seats or showtime context")
	ErrSeatAlreadyReserved = errors.New("seat(s) are already reserved")
	ErrConfirmInFlight     = errors.New("a confirmation is already in progress for this selection")
	ErrSelectionNotFound   = errors.New("selection not found or has expired")
	ErrPaymentDeclined     = errors.New("payment was declined")
)

// PartialCommitError reports a booking row that survived a failed seat insert
// because the compensating delete also failed. It needs out-of-band cleanup,
// so it must stay distinguishable from an ordinary seat conflict.
type PartialCommitError struct {
	BookingID uuid.UUID
	SeatErr   error
	DeleteErr error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf(
		"booking %s has no seats and could not be deleted: seat insert: %v, delete: %v",
		e.BookingID, e.SeatErr, e.DeleteErr,
	)
}

func (e *PartialCommitError) Unwrap() error {
	return e.SeatErr
}
