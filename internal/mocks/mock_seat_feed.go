package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockSeatFeed is an in-memory seat change feed. Publish synchronously
// invokes every subscriber registered for the showtime.
type MockSeatFeed struct {
	mu          sync.Mutex
	subscribers map[uuid.UUID][]func()
	released    int

	SubscribeErr error
	PublishErr   error
}

func NewMockSeatFeed() *MockSeatFeed {
	return &MockSeatFeed{
		subscribers: make(map[uuid.UUID][]func()),
	}
}

func (f *MockSeatFeed) Subscribe(ctx context.Context, showtimeID uuid.UUID, onChange func()) (func(), error) {
	if f.SubscribeErr != nil {
		return nil, f.SubscribeErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.subscribers[showtimeID] = append(f.subscribers[showtimeID], onChange)

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.released++
	}, nil
}

func (f *MockSeatFeed) Publish(ctx context.Context, showtimeID uuid.UUID) error {
	if f.PublishErr != nil {
		return f.PublishErr
	}

	f.mu.Lock()
	callbacks := append([]func(){}, f.subscribers[showtimeID]...)
	f.mu.Unlock()

	for _, onChange := range callbacks {
		onChange()
	}

	return nil
}

func (f *MockSeatFeed) Released() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.released
}

func (f *MockSeatFeed) SubscriberCount(showtimeID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.subscribers[showtimeID])
}
