package itemdata

import (
	"context"
	"log/slog"
	"sync"
)

// Refresher serializes catalog enrichment refreshes. Starting a new refresh
// aborts the in-flight one, so a stale response can never overwrite the
// result of a newer request.
type Refresher struct {
	client Client
	logger *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	results []Result
}

// NewRefresher constructs a refresher over the game-data client.
func NewRefresher(client Client, logger *slog.Logger) *Refresher {
	return &Refresher{client: client, logger: logger}
}

// Refresh fetches details for the given products, superseding any refresh
// still in flight. It returns the per-item results of this refresh.
func (r *Refresher) Refresh(ctx context.Context, productIDs []int64) []Result {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	results := FetchAll(runCtx, r.client, productIDs)

	r.mu.Lock()
	defer r.mu.Unlock()
	if runCtx.Err() != nil {
		// Superseded mid-flight: keep the newer refresh's snapshot.
		return results
	}
	r.results = results
	for _, res := range results {
		if res.Err != nil {
			r.logger.Warn("item detail fetch failed",
				slog.Int64("product_id", res.ProductID),
				slog.String("error", res.Err.Error()))
		}
	}
	return results
}

// Snapshot returns the last completed refresh.
func (r *Refresher) Snapshot() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results
}

// Stop aborts any in-flight refresh.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
