package enrichmentnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
)

func CreateThread(
	ctx context.Context,
	in *GraphState,
	client contractx.WorkflowClient,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	thread, err := client.CreateThread(ctx)
	if err != nil {
		return nil, stepError("create_thread", err)
	}

	in.ThreadID = thread.ThreadID
	return in, nil
}
