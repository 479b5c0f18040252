// Package engine is the orchestration boundary: it wires an ingestion.Source
// to an arb.World and republishes the resulting arb.WorldUpdates, with the
// logging and lifecycle shape of chains/ethereum/client.go's Client/Dial.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/defistate/arb-engine/arb"
	"github.com/defistate/arb-engine/catalogue"
	"github.com/defistate/arb-engine/ingestion"
	"github.com/prometheus/client_golang/prometheus"
)

// Logger defines a standard interface for structured, leveled logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Driver owns a World, drives it from a reserve-update Source, and
// republishes the resulting WorldUpdates on a buffered channel. Its
// lifecycle is bound to the context passed to New.
type Driver struct {
	world   *arb.World
	source  ingestion.Source
	logger  Logger
	metrics *metrics

	updatesCh chan *arb.WorldUpdate
	errCh     chan error

	ctx context.Context
	wg  sync.WaitGroup
}

// Option configures the Driver before its world is built. The interface
// method is unexported to prevent external modification after New.
type Option interface {
	apply(*config)
}

type config struct {
	maxCycleDepth int
}

type funcOption func(*config)

func (f funcOption) apply(c *config) {
	f(c)
}

func newOption(f func(*config)) Option {
	return funcOption(f)
}

// WithMaxCycleDepth overrides arb.DefaultMaxCycleDepth for the world built
// from the initial pool snapshot.
func WithMaxCycleDepth(depth int) Option {
	return newOption(func(c *config) {
		c.maxCycleDepth = depth
	})
}

// New constructs a Driver over an initial pool snapshot, a reserve-update
// source, a logger, and a metrics registry, then starts its processing
// loop bound to ctx.
func New(
	ctx context.Context,
	initialPools []catalogue.Pool,
	source ingestion.Source,
	logger Logger,
	registry prometheus.Registerer,
	opts ...Option,
) (*Driver, error) {
	if source == nil {
		return nil, fmt.Errorf("engine: source is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("engine: logger is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("engine: registry is required")
	}

	cfg := config{maxCycleDepth: arb.DefaultMaxCycleDepth}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	world := arb.NewWorldWithDepth(catalogue.ToArbPools(initialPools), cfg.maxCycleDepth)

	d := &Driver{
		world:     world,
		source:    source,
		logger:    logger,
		metrics:   newMetrics(registry),
		updatesCh: make(chan *arb.WorldUpdate, 1),
		errCh:     make(chan error, 1),
	}

	d.ctx = ctx
	d.wg.Add(1)
	go d.loop()

	d.logger.Info("driver started",
		"tokens", len(d.world.TokenVec),
		"swaps", len(d.world.SwapVec),
		"cycles", len(d.world.CycleVec),
	)
	return d, nil
}

// Updates returns a read-only channel of WorldUpdates, one per processed
// reserve-update batch. Delivery is best-effort: a slow consumer sees the
// most recent update dropped in favor of the newest one, never a pile-up.
func (d *Driver) Updates() <-chan *arb.WorldUpdate {
	return d.updatesCh
}

// Err returns a read-only channel for receiving fatal (unrecoverable)
// errors. The channel is closed when the driver shuts down.
func (d *Driver) Err() <-chan error {
	return d.errCh
}

func (d *Driver) loop() {
	defer d.wg.Done()
	defer func() {
		close(d.updatesCh)
		close(d.errCh)
		d.logger.Info("driver stopped")
	}()

	for {
		select {
		case <-d.ctx.Done():
			return

		case err, ok := <-d.source.Err():
			if !ok {
				return
			}
			d.logger.Error("fatal ingestion error", "error", err)
			select {
			case d.errCh <- err:
			case <-d.ctx.Done():
			}
			return

		case batch, ok := <-d.source.Updates():
			if !ok {
				d.logger.Error("upstream update channel closed")
				return
			}

			update := d.applyBatch(batch)

			select {
			case d.updatesCh <- update:
			case <-d.ctx.Done():
				return
			default:
				d.logger.Warn("update buffer full, discarding stale update")
				select {
				case <-d.updatesCh:
				default:
				}
				d.updatesCh <- update
			}
		}
	}
}

func (d *Driver) applyBatch(batch ingestion.Batch) *arb.WorldUpdate {
	start := time.Now()

	pools := make([]arb.Pool, 0, len(batch))
	for _, u := range batch {
		if !u.HasReserves() {
			pools = append(pools, arb.NewPool(u.PoolID, u.Token0ID, u.Token1ID))
			continue
		}
		pools = append(pools, arb.NewReservedPool(u.PoolID, u.Token0ID, u.Token1ID, u.Reserve0, u.Reserve1))
	}

	update := d.world.Update(pools)
	duration := time.Since(start)

	d.metrics.updatesProcessed.Inc()
	d.metrics.cyclesTouched.Add(float64(len(update.Cycles())))
	d.metrics.updateDuration.Observe(duration.Seconds())

	profitable := 0
	if update.HasAllReserves() {
		cycles, err := update.ProfitableCycles()
		if err != nil {
			d.logger.Warn("failed to compute profitable cycles", "error", err)
		} else {
			profitable = len(cycles)
			d.metrics.profitableFound.Add(float64(profitable))
		}
	}

	d.logger.Debug("reserve update applied",
		"pools", len(batch),
		"cycles_touched", len(update.Cycles()),
		"profitable_cycles", profitable,
		"duration_ms", duration.Milliseconds(),
	)

	return update
}
