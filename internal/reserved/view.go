// Package reserved maintains the set of seats unavailable for selection on a
// showtime: a deterministic house-held baseline merged with the live seat
// rows of confirmed bookings.
package reserved

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Behramm10/Cine-Flow/internal/domain"
	"github.com/google/uuid"
)

// ReservationReader is the slice of the booking store the view needs.
type ReservationReader interface {
	SeatLabelsByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]string, error)
}

// View merges the baseline reserved set with the live overlay for one
// showtime. The overlay is advisory only: it narrows what the user can pick,
// it never reserves anything. The view is safe for concurrent use; feed
// callbacks arrive on their own goroutine.
type View struct {
	showtimeID uuid.UUID
	reader     ReservationReader
	feed       domain.SeatChangeFeed
	logger     *slog.Logger

	baseline map[string]struct{}

	mu       sync.RWMutex
	overlay  map[string]struct{}
	degraded bool

	unsubscribe func()
	onUpdate    func()
}

// Option configures a View.
type Option func(*View)

// WithUpdateFunc registers a callback invoked after every overlay refresh,
// including the initial one. Used by streaming consumers.
func WithUpdateFunc(fn func()) Option {
	return func(v *View) {
		v.onUpdate = fn
	}
}

// NewView builds the view for a showtime. A nil showtime id yields an empty
// view that never subscribes and reserves nothing.
func NewView(
	showtimeID uuid.UUID,
	reader ReservationReader,
	feed domain.SeatChangeFeed,
	logger *slog.Logger,
	opts ...Option,
) *View {
	v := &View{
		showtimeID: showtimeID,
		reader:     reader,
		feed:       feed,
		logger:     logger,
		baseline:   make(map[string]struct{}),
		overlay:    make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(v)
	}

	if showtimeID != uuid.Nil {
		for _, label := range domain.BaselineReservedSeats(showtimeID.String()) {
			v.baseline[label] = struct{}{}
		}
	}

	return v
}

// Start performs the initial overlay fetch and subscribes to the showtime's
// change feed. A fetch failure leaves the view usable in baseline-only mode
// and is returned for the caller to surface; the view does not retry on its
// own. Callers must Close the view when they stop observing the showtime.
func (v *View) Start(ctx context.Context) error {
	if v.showtimeID == uuid.Nil {
		return nil
	}

	unsubscribe, err := v.feed.Subscribe(ctx, v.showtimeID, func() {
		v.refresh(context.Background())
	})
	if err != nil {
		return fmt.Errorf("subscribing to seat changes: %w", err)
	}
	v.unsubscribe = unsubscribe

	labels, err := v.reader.SeatLabelsByShowtime(ctx, v.showtimeID)
	if err != nil {
		v.mu.Lock()
		v.degraded = true
		v.mu.Unlock()

		return fmt.Errorf("fetching reserved seats: %w", err)
	}

	v.setOverlay(labels)

	return nil
}

func (v *View) refresh(ctx context.Context) {
	labels, err := v.reader.SeatLabelsByShowtime(ctx, v.showtimeID)
	if err != nil {
		// Keep serving the previous overlay rather than blocking selection.
		v.logger.Warn("failed to refresh reserved seats", "showtime_id", v.showtimeID, "error", err)
		return
	}

	v.setOverlay(labels)
}

func (v *View) setOverlay(labels []string) {
	overlay := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		overlay[label] = struct{}{}
	}

	v.mu.Lock()
	v.overlay = overlay
	v.degraded = false
	v.mu.Unlock()

	if v.onUpdate != nil {
		v.onUpdate()
	}
}

// IsReserved reports whether the seat is unavailable for new selection.
func (v *View) IsReserved(seatLabel string) bool {
	if _, ok := v.baseline[seatLabel]; ok {
		return true
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	_, ok := v.overlay[seatLabel]

	return ok
}

// Reserved returns the combined reserved set, sorted.
func (v *View) Reserved() []string {
	v.mu.RLock()
	labels := make([]string, 0, len(v.baseline)+len(v.overlay))
	for label := range v.baseline {
		labels = append(labels, label)
	}
	for label := range v.overlay {
		if _, ok := v.baseline[label]; !ok {
			labels = append(labels, label)
		}
	}
	v.mu.RUnlock()

	sort.Strings(labels)

	return labels
}

// Degraded reports whether the view is serving baseline-only data because
// the initial fetch failed.
func (v *View) Degraded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.degraded
}

// Close releases the feed subscription. Safe to call on a never-started or
// already-closed view.
func (v *View) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}
