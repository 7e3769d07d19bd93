package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSeatFeed carries per-showtime seat change notifications over Redis
// pub/sub. Messages are bare nudges: subscribers refetch the reserved set
// themselves, so a dropped message costs freshness, never correctness.
type RedisSeatFeed struct {
	client redis.UniversalClient
	logger *slog.Logger
}

func NewRedisSeatFeed(client redis.UniversalClient, logger *slog.Logger) *RedisSeatFeed {
	return &RedisSeatFeed{
		client: client,
		logger: logger,
	}
}

func seatChannel(showtimeID uuid.UUID) string {
	return fmt.Sprintf("seat_changes:%s", showtimeID)
}

func (f *RedisSeatFeed) Publish(ctx context.Context, showtimeID uuid.UUID) error {
	return f.client.Publish(ctx, seatChannel(showtimeID), "changed").Err()
}

func (f *RedisSeatFeed) Subscribe(ctx context.Context, showtimeID uuid.UUID, onChange func()) (func(), error) {
	sub := f.client.Subscribe(ctx, seatChannel(showtimeID))

	// Force the subscription onto the wire before returning, so callers
	// never miss changes that land right after Subscribe.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	go func() {
		for range sub.Channel() {
			onChange()
		}
	}()

	return func() {
		if err := sub.Close(); err != nil {
			f.logger.Warn("failed to close seat change subscription",
				"showtime_id", showtimeID, "error", err)
		}
	}, nil
}
