package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mkoval/rpmarket/internal/domain/model"
	"github.com/mkoval/rpmarket/internal/domain/repository"
)

// OrderStore exposes the subset of order persistence required by the worker.
type OrderStore interface {
	SelectExpiredTimers(ctx context.Context, now time.Time, limit int) ([]model.Order, error)
	Update(ctx context.Context, orderID int64, update repository.OrderUpdate) (*model.Order, error)
}

// TimerProcessor finalizes confirmation countdowns server-side. Orders whose
// TimerEndsAt has passed are claimed in batches and flagged unread so the
// owner notices the state change; clients only render the countdown.
type TimerProcessor struct {
	orders       OrderStore
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewTimerProcessor constructs the timer expiry worker pool.
func NewTimerProcessor(orders OrderStore, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *TimerProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &TimerProcessor{
		orders:       orders,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *TimerProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *TimerProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *TimerProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *TimerProcessor) fetchAndDispatch(ctx context.Context) {
	// Claiming also clears the timer, so a crash between claim and
	// finalize cannot re-fire the expiry.
	orders, err := p.orders.SelectExpiredTimers(ctx, time.Now(), p.batchSize)
	if err != nil {
		p.logger.Error("fetch expired timers failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *TimerProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleExpiry(ctx, order)
		}
	}
}

func (p *TimerProcessor) handleExpiry(ctx context.Context, order model.Order) {
	unread := false
	if _, err := p.orders.Update(ctx, order.ID, repository.OrderUpdate{Viewed: &unread}); err != nil {
		p.logger.Error("finalize expired timer failed",
			slog.String("order", order.PublicID),
			slog.String("error", err.Error()))
		return
	}
	p.logger.Info("confirmation timer expired",
		slog.String("order", order.PublicID),
		slog.Int64("user_id", order.UserID))
}
