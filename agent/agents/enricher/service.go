package enricher

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
	nodex "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/nodes/enrichment"
)

var (
	ErrInvalidTarget = nodex.ErrInvalidTarget
	ErrInvalidField  = nodex.ErrInvalidField
	ErrInvalidLabel  = nodex.ErrInvalidLabel
)

// Enricher runs the thread/run protocol for one cell: create a thread, start a
// run, join it and read the output from the thread state.
type Enricher struct {
	client      contractx.WorkflowClient
	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

var _ contractx.Enricher = (*Enricher)(nil)

func New(client contractx.WorkflowClient) (*Enricher, error) {
	if client == nil {
		return nil, errors.New("workflow client is required")
	}

	e := &Enricher{client: client}

	graphRunner, err := e.compileEnrichGraph(context.Background())
	if err != nil {
		return nil, err
	}
	e.graphRunner = graphRunner

	return e, nil
}

func (e *Enricher) Enrich(ctx context.Context, req contractx.EnrichmentRequest) (contractx.EnrichmentResult, error) {
	out, err := e.graphRunner.Invoke(ctx, nodex.GraphInput{Request: req})
	if err != nil {
		return contractx.EnrichmentResult{}, err
	}
	return out.Result, nil
}
