package repository

import (
	"context"
	"errors"

	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Showtime, error) {
	query := `
		SELECT
			s.id,
			s.movie_id,
			s.cinema_id,
			s.auditorium,
			s.starts_at,
			s.base_price,
			m.title,
			COALESCE(m.poster_url, ''),
			c.name,
			c.city
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		JOIN cinemas c ON s.cinema_id = c.id
		WHERE s.id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.CinemaID,
		&showtime.Auditorium,
		&showtime.StartsAt,
		&showtime.BasePrice,
		&showtime.MovieTitle,
		&showtime.PosterUrl,
		&showtime.CinemaName,
		&showtime.City,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) GetByMovieAndCinema(
	ctx context.Context,
	movieID,
	cinemaID uuid.UUID) ([]*domain.Showtime, error) {

	query := `
		SELECT
			s.id,
			s.movie_id,
			s.cinema_id,
			s.auditorium,
			s.starts_at,
			s.base_price,
			m.title,
			COALESCE(m.poster_url, ''),
			c.name,
			c.city
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		JOIN cinemas c ON s.cinema_id = c.id
		WHERE s.movie_id = $1 AND s.cinema_id = $2
		ORDER BY s.starts_at ASC
	`

	rows, err := p.db.Query(ctx, query, movieID, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]*domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err = rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.CinemaID,
			&showtime.Auditorium,
			&showtime.StartsAt,
			&showtime.BasePrice,
			&showtime.MovieTitle,
			&showtime.PosterUrl,
			&showtime.CinemaName,
			&showtime.City,
		)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, &showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, cinema_id, auditorium, starts_at, base_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return p.db.QueryRow(ctx,
		query,
		showtime.MovieID,
		showtime.CinemaID,
		showtime.Auditorium,
		showtime.StartsAt,
		showtime.BasePrice).Scan(&showtime.ID)
}
