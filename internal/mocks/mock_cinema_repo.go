package mocks

import (
	"context"

	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/google/uuid"
)

type MockCinemaRepo struct {
	domain.CinemaRepository
	GetCitiesFunc  func(ctx context.Context) ([]domain.City, error)
	GetByCityFunc  func(ctx context.Context, city string) ([]*domain.Cinema, error)
	GetByIdFunc    func(ctx context.Context, id uuid.UUID) (*domain.Cinema, error)
	CreateCityFunc func(ctx context.Context, city *domain.City) error
	CreateFunc     func(ctx context.Context, cinema *domain.Cinema) error
}

func (m *MockCinemaRepo) GetCities(ctx context.Context) ([]domain.City, error) {
	return m.GetCitiesFunc(ctx)
}

func (m *MockCinemaRepo) GetByCity(ctx context.Context, city string) ([]*domain.Cinema, error) {
	return m.GetByCityFunc(ctx, city)
}

func (m *MockCinemaRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Cinema, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockCinemaRepo) CreateCity(ctx context.Context, city *domain.City) error {
	return m.CreateCityFunc(ctx, city)
}

func (m *MockCinemaRepo) Create(ctx context.Context, cinema *domain.Cinema) error {
	return m.CreateFunc(ctx, cinema)
}
