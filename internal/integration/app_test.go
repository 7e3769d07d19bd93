package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Behramm10/Cine-Flow/internal/app"
	"github.com/Behramm10/Cine-Flow/internal/mailer"
	"github.com/Behramm10/Cine-Flow/internal/payment"
	"github.com/Behramm10/Cine-Flow/internal/repository"
	appvalidator "github.com/Behramm10/Cine-Flow/internal/validator"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient redis.UniversalClient
	Mailer      *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	userRepo := repository.NewPostgresUserRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	cinemaRepo := repository.NewPostgresCinemaRepository(db)
	showtimeRepo := repository.NewPostgresShowtimeRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	seatFeed := repository.NewRedisSeatFeed(redisClient, logger)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		userRepo,
		movieRepo,
		cinemaRepo,
		showtimeRepo,
		bookingRepo,
		seatFeed,
		payment.NewSimulatedProvider(0),
	)

	return &TestApp{
		App:         application,
		DB:          db,
		RedisClient: redisClient,
		Mailer:      mockMailer,
	}, nil
}
