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

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (user_id, showtime_id, total_amount, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(ctx,
		query,
		booking.UserID,
		booking.ShowtimeID,
		booking.TotalAmount,
		booking.Currency,
		booking.Status).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		return err
	}

	return nil
}

// InsertSeats writes the whole seat batch as one COPY inside a transaction,
// so the (showtime_id, seat_label) uniqueness constraint is evaluated across
// the batch as a unit: one taken seat fails the lot and no row survives.
func (p *PostgresBookingRepository) InsertSeats(ctx context.Context, seats []domain.BookingSeat) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		rows := make([][]any, 0, len(seats))
		for _, seat := range seats {
			rows = append(rows, []any{
				seat.BookingID,
				seat.ShowtimeID,
				seat.SeatLabel,
				seat.Price,
			})
		}

		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "showtime_id", "seat_label", "price"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatAlreadyReserved
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) Delete(ctx context.Context, bookingID uuid.UUID) error {
	_, err := p.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)

	return err
}

func (p *PostgresBookingRepository) SeatLabelsByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	query := `
		SELECT seat_label
		FROM booking_seats
		WHERE showtime_id = $1
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatLabels := make([]string, 0)

	for rows.Next() {
		var seatLabel string

		if err = rows.Scan(&seatLabel); err != nil {
			return nil, err
		}

		seatLabels = append(seatLabels, seatLabel)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seatLabels, nil
}

func (p *PostgresBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userID uuid.UUID,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			m.title,
			COALESCE(m.poster_url, ''),
			s.starts_at,
			c.city,
			c.name,
			s.auditorium,
			(
				SELECT COALESCE(array_agg(bs.seat_label ORDER BY bs.seat_label), '{}')
				FROM booking_seats bs
				WHERE bs.booking_id = b.id
			),
			b.total_amount,
			b.currency,
			b.status,
			b.created_at
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN cinemas c ON s.cinema_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.BookingSummary

		err = rows.Scan(
			&totalRecords,
			&booking.BookingID,
			&booking.MovieTitle,
			&booking.PosterURL,
			&booking.ShowtimeDate,
			&booking.City,
			&booking.CinemaName,
			&booking.Auditorium,
			&booking.SeatLabels,
			&booking.TotalAmount,
			&booking.Currency,
			&booking.Status,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) GetByIdAndUserId(
	ctx context.Context,
	bookingID,
	userID uuid.UUID) (*domain.BookingSummary, error) {

	query := `
		SELECT
			b.id,
			m.title,
			COALESCE(m.poster_url, ''),
			s.starts_at,
			c.city,
			c.name,
			s.auditorium,
			(
				SELECT COALESCE(array_agg(bs.seat_label ORDER BY bs.seat_label), '{}')
				FROM booking_seats bs
				WHERE bs.booking_id = b.id
			),
			b.total_amount,
			b.currency,
			b.status,
			b.created_at
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN cinemas c ON s.cinema_id = c.id
		WHERE b.id = $1 AND b.user_id = $2
	`

	var booking domain.BookingSummary

	err := p.db.QueryRow(ctx, query, bookingID, userID).Scan(
		&booking.BookingID,
		&booking.MovieTitle,
		&booking.PosterURL,
		&booking.ShowtimeDate,
		&booking.City,
		&booking.CinemaName,
		&booking.Auditorium,
		&booking.SeatLabels,
		&booking.TotalAmount,
		&booking.Currency,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
