package contract

import (
	"context"

	langgraphx "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/langgraph"
)

// Enricher infers one cell value through the remote workflow.
type Enricher interface {
	Enrich(ctx context.Context, req EnrichmentRequest) (EnrichmentResult, error)
}

// WorkflowClient is the thread/run surface of the remote workflow service.
type WorkflowClient interface {
	CreateThread(ctx context.Context) (langgraphx.Thread, error)
	CreateRun(ctx context.Context, threadID string, input langgraphx.RunInput) (langgraphx.Run, error)
	JoinRun(ctx context.Context, threadID, runID string) error
	GetState(ctx context.Context, threadID string) (langgraphx.ThreadState, error)
}

var _ WorkflowClient = (*langgraphx.Client)(nil)
