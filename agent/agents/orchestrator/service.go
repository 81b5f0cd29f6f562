package orchestrator

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
	"github.com/tanpawarit/Agentic-Enrichment-Grid/agent/grid"
	logx "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/logger"
)

// Option customizes Orchestrator.
type Option func(*Orchestrator)

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithAttemptIDs(next func() string) Option {
	return func(o *Orchestrator) {
		if next != nil {
			o.newAttemptID = next
		}
	}
}

// Orchestrator fans eligible cells out to the enricher and commits each result
// back to the grid under the attempt that produced it.
type Orchestrator struct {
	store    grid.Store
	enricher contractx.Enricher
	cfg      Config

	sem *semaphore.Weighted
	wg  sync.WaitGroup

	newAttemptID func() string
	logger       zerolog.Logger
}

func New(
	store grid.Store,
	enricher contractx.Enricher,
	cfg Config,
	opts ...Option,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("grid store is required")
	}
	if enricher == nil {
		return nil, errors.New("enricher is required")
	}

	cfg = cfg.normalized()
	limit := int64(cfg.MaxConcurrency)
	if limit <= 0 {
		limit = math.MaxInt64
	}

	o := &Orchestrator{
		store:        store,
		enricher:     enricher,
		cfg:          cfg,
		sem:          semaphore.NewWeighted(limit),
		newAttemptID: uuid.NewString,
		logger:       logx.Component("orchestrator"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o, nil
}

// TriggerEnrichment schedules one unit per Empty or Failed cell and returns how
// many were scheduled. It does not wait for them; watch the grid or call Wait.
// Units outlive ctx cancellation but keep its values.
func (o *Orchestrator) TriggerEnrichment(ctx context.Context) int {
	snap := o.store.Snapshot()
	unitCtx := context.WithoutCancel(ctx)

	eligible := snap.Eligible()
	scheduled := 0
	for _, key := range eligible {
		attempt := o.newAttemptID()
		if err := o.store.BeginAttempt(key, attempt); err != nil {
			// Another trigger or an edit got there first.
			o.logger.Debug().Err(err).Str("target", key.Target).Str("field", key.Field).Msg("cell skipped")
			continue
		}

		key := key
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			o.runUnit(unitCtx, snap, key, attempt)
		}()
		scheduled++
	}

	o.logger.Info().Int("scheduled", scheduled).Int("eligible", len(eligible)).Msg("enrichment triggered")
	return scheduled
}

// Wait blocks until every unit scheduled so far has committed, or ctx is done.
func (o *Orchestrator) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
