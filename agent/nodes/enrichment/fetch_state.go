package enrichmentnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
)

func FetchState(
	ctx context.Context,
	in *GraphState,
	client contractx.WorkflowClient,
) (*GraphState, error) {
	if in == nil || in.ThreadID == "" {
		return nil, fmt.Errorf("%w: thread is missing", contractx.ErrValidation)
	}

	state, err := client.GetState(ctx, in.ThreadID)
	if err != nil {
		return nil, stepError("fetch_state", err)
	}

	in.Output, in.HasOutput = state.Output()
	return in, nil
}
