package workers

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
)

//go:generate mockgen -source=expiry.go -destination=expiry_mock_test.go -package=workers

// SystemActor is recorded as the actor of worker-driven order changes.
const SystemActor = "system"

// OrderSweeper expires overdue orders.
type OrderSweeper interface {
	SweepExpired(ctx context.Context, limit int, actor string) (int, error)
}

// ExpirySweeper periodically expires orders whose payment window passed.
type ExpirySweeper struct {
	orders   OrderSweeper
	interval time.Duration
	batch    int
}

func NewExpirySweeper(orders OrderSweeper, interval time.Duration, batch int) *ExpirySweeper {
	if batch <= 0 {
		batch = 100
	}
	return &ExpirySweeper{
		orders:   orders,
		interval: interval,
		batch:    batch,
	}
}

// Run sweeps on every tick until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep expires overdue orders batch by batch until a batch comes back short.
func (s *ExpirySweeper) Sweep(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := s.orders.SweepExpired(ctx, s.batch, SystemActor)
		total += n
		if err != nil {
			logger.Log.Errorw("failed to sweep expired orders", "expired", total, "error", err)
			break
		}
		if n < s.batch {
			break
		}
	}
	if total > 0 {
		logger.Log.Infow("expired overdue orders", "count", total)
	}
	return total
}
