package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID
	Title       string
	Description string
	Genres      []string
	ReleaseYear int
	Duration    int
	PosterUrl   string
	TrailerUrl  string
	Director    string
	CastMembers []string
	AgeRating   string
	Rating      float64
	CreatedAt   time.Time
}

type MovieRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id uuid.UUID) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}
