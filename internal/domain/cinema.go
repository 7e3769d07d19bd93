package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type City struct {
	ID   uuid.UUID
	Name string
}

type Cinema struct {
	ID        uuid.UUID
	Name      string
	City      string
	Address   string
	CreatedAt time.Time
}

type CinemaRepository interface {
	GetCities(ctx context.Context) ([]City, error)
	GetByCity(ctx context.Context, city string) ([]*Cinema, error)
	GetById(ctx context.Context, id uuid.UUID) (*Cinema, error)
	CreateCity(ctx context.Context, city *City) error
	Create(ctx context.Context, cinema *Cinema) error
}
