package monitor

import (
	"context"
	"time"

	"github.com/vietddude/sentinel/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// HeightFetcher fetches the current block height of one endpoint.
type HeightFetcher interface {
	Name() string
	FetchHeight(ctx context.Context) domain.HeightResult
}

// Collector queries the local and remote endpoints for one polling cycle.
type Collector struct {
	local  HeightFetcher
	remote HeightFetcher
}

// NewCollector creates a collector over the two endpoints.
func NewCollector(local, remote HeightFetcher) *Collector {
	return &Collector{local: local, remote: remote}
}

// Collect runs both height queries concurrently and returns a complete
// snapshot. Query failures are folded into the snapshot; Collect itself
// never fails. Both queries settle (or time out) before it returns.
func (c *Collector) Collect(ctx context.Context) domain.Snapshot {
	var snap domain.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.Local = c.local.FetchHeight(gctx)
		return nil
	})
	g.Go(func() error {
		snap.Remote = c.remote.FetchHeight(gctx)
		return nil
	})
	_ = g.Wait()

	snap.ObservedAt = time.Now()
	return snap
}
