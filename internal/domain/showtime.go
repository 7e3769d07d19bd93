package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Showtime is read-only reference data for the booking core: it supplies the
// base price for tier pricing and the display strings captured into a
// selection.
type Showtime struct {
	ID         uuid.UUID
	MovieID    uuid.UUID
	CinemaID   uuid.UUID
	Auditorium string
	StartsAt   time.Time
	BasePrice  decimal.Decimal

	MovieTitle string
	PosterUrl  string
	CinemaName string
	City       string
}

type ShowtimeRepository interface {
	GetById(ctx context.Context, id uuid.UUID) (*Showtime, error)
	GetByMovieAndCinema(ctx context.Context, movieID, cinemaID uuid.UUID) ([]*Showtime, error)
	Create(ctx context.Context, showtime *Showtime) error
}
