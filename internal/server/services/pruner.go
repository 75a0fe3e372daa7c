package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/clock"
	"github.com/dmitrijs2005/tokengate/internal/logging"
)

// Prunable is implemented by every token store.
type Prunable interface {
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}

type PruneTarget struct {
	Name  string
	Store Prunable
}

// Pruner deletes rows that expired before now on a fixed interval, off the
// request path.
type Pruner struct {
	targets  []PruneTarget
	interval time.Duration
	clk      clock.Clock
	log      logging.Logger
}

func NewPruner(interval time.Duration, clk clock.Clock, log logging.Logger, targets ...PruneTarget) *Pruner {
	return &Pruner{targets: targets, interval: interval, clk: clk, log: log}
}

// PruneOnce runs every target once and returns the total removed. A failing
// target does not stop the others.
func (p *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	const op = "services.Pruner.PruneOnce"

	before := p.clk.Now()
	var (
		total int64
		errs  []error
	)
	for _, t := range p.targets {
		n, err := t.Store.PruneExpired(ctx, before)
		if err != nil {
			p.log.Error(ctx, "prune failed", "op", op, "store", t.Name, logging.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
			continue
		}
		total += n
		if n > 0 {
			p.log.Debug(ctx, "pruned expired tokens", "op", op, "store", t.Name, "count", n)
		}
	}
	return total, errors.Join(errs...)
}

// Run prunes every interval until ctx is cancelled.
func (p *Pruner) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info(ctx, "pruner started", "interval", p.interval.String())
	for {
		select {
		case <-ctx.Done():
			p.log.Info(ctx, "pruner stopped")
			return
		case <-ticker.C:
			_, _ = p.PruneOnce(ctx)
		}
	}
}
