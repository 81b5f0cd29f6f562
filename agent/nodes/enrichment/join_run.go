package enrichmentnode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
	langgraphx "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/langgraph"
)

// JoinRun blocks until the run finishes. The join body is not used; only the
// status matters.
func JoinRun(
	ctx context.Context,
	in *GraphState,
	client contractx.WorkflowClient,
) (*GraphState, error) {
	if in == nil || in.ThreadID == "" || in.RunID == "" {
		return nil, fmt.Errorf("%w: run is missing", contractx.ErrValidation)
	}

	if err := client.JoinRun(ctx, in.ThreadID, in.RunID); err != nil {
		var statusErr *langgraphx.StatusError
		if errors.As(err, &statusErr) {
			zerolog.Ctx(ctx).Warn().
				Str("thread_id", in.ThreadID).
				Str("run_id", in.RunID).
				Int("status", statusErr.StatusCode).
				Msg("join run failed")
		}
		return nil, stepError("join_run", err)
	}

	return in, nil
}
