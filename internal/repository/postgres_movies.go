package repository

import (
	"context"
	"errors"

	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id,
			title,
			COALESCE(description, ''),
			COALESCE(genres, '{}'),
			COALESCE(release_year, 0),
			COALESCE(duration, 0),
			COALESCE(poster_url, ''),
			COALESCE(trailer_url, ''),
			COALESCE(director, ''),
			COALESCE(cast_members, '{}'),
			COALESCE(age_rating, ''),
			COALESCE(rating, 0),
			created_at
		FROM movies
		ORDER BY title ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	movies := make([]*domain.Movie, 0)
	totalRecords := 0

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Genres,
			&movie.ReleaseYear,
			&movie.Duration,
			&movie.PosterUrl,
			&movie.TrailerUrl,
			&movie.Director,
			&movie.CastMembers,
			&movie.AgeRating,
			&movie.Rating,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	query := `
		SELECT
			id,
			title,
			COALESCE(description, ''),
			COALESCE(genres, '{}'),
			COALESCE(release_year, 0),
			COALESCE(duration, 0),
			COALESCE(poster_url, ''),
			COALESCE(trailer_url, ''),
			COALESCE(director, ''),
			COALESCE(cast_members, '{}'),
			COALESCE(age_rating, ''),
			COALESCE(rating, 0),
			created_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genres,
		&movie.ReleaseYear,
		&movie.Duration,
		&movie.PosterUrl,
		&movie.TrailerUrl,
		&movie.Director,
		&movie.CastMembers,
		&movie.AgeRating,
		&movie.Rating,
		&movie.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, description, genres, release_year, duration, poster_url,
			trailer_url, director, cast_members, age_rating, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	return p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Description,
		movie.Genres,
		movie.ReleaseYear,
		movie.Duration,
		movie.PosterUrl,
		movie.TrailerUrl,
		movie.Director,
		movie.CastMembers,
		movie.AgeRating,
		movie.Rating).Scan(&movie.ID, &movie.CreatedAt)
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
