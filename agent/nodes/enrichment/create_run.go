package enrichmentnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
	langgraphx "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/langgraph"
)

// CreateRun starts the agent with the subject keyed by the grid label, the field
// to infer and the examples sampled from other rows.
func CreateRun(
	ctx context.Context,
	in *GraphState,
	client contractx.WorkflowClient,
) (*GraphState, error) {
	if in == nil || in.ThreadID == "" {
		return nil, fmt.Errorf("%w: thread is missing", contractx.ErrValidation)
	}

	run, err := client.CreateRun(ctx, in.ThreadID, BuildRunInput(in.Request))
	if err != nil {
		return nil, stepError("create_run", err)
	}

	in.RunID = run.RunID
	in.RunStatus = run.Status
	return in, nil
}

func BuildRunInput(req contractx.EnrichmentRequest) langgraphx.RunInput {
	examples := req.Examples
	if examples == nil {
		examples = []string{}
	}
	return langgraphx.RunInput{
		InputInfo: map[string]string{req.Label: req.Target},
		Target:    req.Field,
		Examples:  examples,
	}
}
