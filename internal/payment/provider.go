package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Behramm10/Cine-Flow/internal/domain"
)

// Result is the outcome of a charge attempt.
type Result struct {
	Reference string
	ChargedAt time.Time
}

// Provider authorizes a payment before a booking is confirmed. A nil error
// means the charge went through; a declined charge surfaces as
// domain.ErrPaymentDeclined.
type Provider interface {
	Charge(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, currency string) (*Result, error)
}

// SimulatedProvider stands in for a real gateway. It approves every charge
// after a short artificial processing delay, mirroring what a redirect to an
// external checkout page would feel like.
type SimulatedProvider struct {
	Delay time.Duration
}

func NewSimulatedProvider(delay time.Duration) *SimulatedProvider {
	return &SimulatedProvider{Delay: delay}
}

func (p *SimulatedProvider) Charge(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
	currency string) (*Result, error) {

	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	if !amount.IsPositive() {
		return nil, fmt.Errorf("charge amount must be positive, got %s", amount)
	}

	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &Result{
		Reference: fmt.Sprintf("sim_%s", uuid.New()),
		ChargedAt: time.Now(),
	}, nil
}
