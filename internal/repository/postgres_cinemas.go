package repository

import (
	"context"
	"errors"

	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCinemaRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCinemaRepository(db *pgxpool.Pool) *PostgresCinemaRepository {
	return &PostgresCinemaRepository{
		db: db,
	}
}

func (p *PostgresCinemaRepository) GetCities(ctx context.Context) ([]domain.City, error) {
	query := `
		SELECT id, name
		FROM cities
		ORDER BY name ASC
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)

	for rows.Next() {
		var city domain.City

		if err = rows.Scan(&city.ID, &city.Name); err != nil {
			return nil, err
		}

		cities = append(cities, city)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cities, nil
}

func (p *PostgresCinemaRepository) GetByCity(ctx context.Context, city string) ([]*domain.Cinema, error) {
	query := `
		SELECT id, name, city, COALESCE(address, ''), created_at
		FROM cinemas
		WHERE city = $1
		ORDER BY name ASC
	`

	rows, err := p.db.Query(ctx, query, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cinemas := make([]*domain.Cinema, 0)

	for rows.Next() {
		var cinema domain.Cinema

		err = rows.Scan(&cinema.ID, &cinema.Name, &cinema.City, &cinema.Address, &cinema.CreatedAt)
		if err != nil {
			return nil, err
		}

		cinemas = append(cinemas, &cinema)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cinemas, nil
}

func (p *PostgresCinemaRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Cinema, error) {
	query := `
		SELECT id, name, city, COALESCE(address, ''), created_at
		FROM cinemas
		WHERE id = $1
	`

	var cinema domain.Cinema

	err := p.db.QueryRow(ctx, query, id).Scan(
		&cinema.ID,
		&cinema.Name,
		&cinema.City,
		&cinema.Address,
		&cinema.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &cinema, nil
}

func (p *PostgresCinemaRepository) CreateCity(ctx context.Context, city *domain.City) error {
	query := `
		INSERT INTO cities (name)
		VALUES ($1)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, city.Name).Scan(&city.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrCityAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresCinemaRepository) Create(ctx context.Context, cinema *domain.Cinema) error {
	query := `
		INSERT INTO cinemas (name, city, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return p.db.QueryRow(ctx,
		query,
		cinema.Name,
		cinema.City,
		cinema.Address).Scan(&cinema.ID, &cinema.CreatedAt)
}
