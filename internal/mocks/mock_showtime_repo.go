package mocks

import (
	"context"

	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/google/uuid"
)

type MockShowtimeRepo struct {
	domain.ShowtimeRepository
	GetByIdFunc             func(ctx context.Context, id uuid.UUID) (*domain.Showtime, error)
	GetByMovieAndCinemaFunc func(ctx context.Context, movieID, cinemaID uuid.UUID) ([]*domain.Showtime, error)
	CreateFunc              func(ctx context.Context, showtime *domain.Showtime) error
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Showtime, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowtimeRepo) GetByMovieAndCinema(ctx context.Context, movieID, cinemaID uuid.UUID) ([]*domain.Showtime, error) {
	return m.GetByMovieAndCinemaFunc(ctx, movieID, cinemaID)
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) error {
	return m.CreateFunc(ctx, showtime)
}
