package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
	"github.com/tanpawarit/Agentic-Enrichment-Grid/agent/grid"
)

// runUnit enriches one cell. Examples come from the snapshot taken at trigger
// time, never from cells resolved by sibling units.
func (o *Orchestrator) runUnit(ctx context.Context, snap grid.Snapshot, key grid.Key, attempt string) {
	logger := o.logger.With().
		Str("target", key.Target).
		Str("field", key.Field).
		Str("attempt", attempt).
		Logger()
	ctx = logger.WithContext(ctx)

	if err := o.sem.Acquire(ctx, 1); err != nil {
		o.commit(logger, o.store.FailAttempt(key, attempt, grid.Failure{
			Kind:   grid.FailureRetryable,
			Reason: err.Error(),
		}))
		return
	}
	defer o.sem.Release(1)

	req := contractx.EnrichmentRequest{
		Label:    snap.Label,
		Target:   key.Target,
		Field:    key.Field,
		Examples: snap.Examples(key.Field, key.Target, o.cfg.ExampleLimit),
	}

	res, tries, err := o.enrichWithRetry(ctx, logger, req)
	if err != nil {
		failure := o.classify(err, tries)
		logger.Warn().Err(err).
			Str("kind", string(failure.Kind)).
			Int("tries", tries).
			Msg("cell failed")
		o.commit(logger, o.store.FailAttempt(key, attempt, failure))
		return
	}

	logger.Info().
		Str("thread_id", res.ThreadID).
		Str("run_id", res.RunID).
		Bool("has_output", res.HasOutput).
		Msg("cell resolved")
	o.commit(logger, o.store.CompleteAttempt(key, attempt, res.Value))
}

func (o *Orchestrator) enrichWithRetry(
	ctx context.Context,
	logger zerolog.Logger,
	req contractx.EnrichmentRequest,
) (contractx.EnrichmentResult, int, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.cfg.InitialBackoff
	policy.MaxInterval = o.cfg.MaxBackoff
	policy.MaxElapsedTime = 0

	var (
		res   contractx.EnrichmentResult
		tries int
	)
	operation := func() error {
		tries++

		attemptCtx := ctx
		if o.cfg.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, o.cfg.AttemptTimeout)
			defer cancel()
		}

		out, err := o.enricher.Enrich(attemptCtx, req)
		if err != nil {
			if !contractx.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		res = out
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.Debug().Err(err).Int("try", tries).Dur("backoff", wait).Msg("retrying enrichment")
	}

	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(o.cfg.MaxRetries)), ctx),
		notify,
	)
	if err != nil {
		return contractx.EnrichmentResult{}, tries, err
	}
	return res, tries, nil
}

func (o *Orchestrator) classify(err error, tries int) grid.Failure {
	failure := grid.Failure{Reason: err.Error(), Tries: tries}
	switch {
	case !contractx.IsRetryable(err):
		failure.Kind = grid.FailurePermanent
	case o.cfg.MaxRetries > 0:
		failure.Kind = grid.FailureRetriesExhausted
	default:
		failure.Kind = grid.FailureRetryable
	}
	return failure
}

// commit logs the outcome of a grid write. Losing to an edit or an axis removal
// is expected and only logged at debug.
func (o *Orchestrator) commit(logger zerolog.Logger, err error) {
	switch {
	case err == nil:
	case errors.Is(err, grid.ErrStaleAttempt),
		errors.Is(err, grid.ErrTargetNotFound),
		errors.Is(err, grid.ErrFieldNotFound):
		logger.Debug().Err(err).Msg("result discarded")
	default:
		logger.Error().Err(err).Msg("commit failed")
	}
}
