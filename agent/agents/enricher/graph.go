package enricher

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/nodes/enrichment"
)

func (e *Enricher) compileEnrichGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("create_thread",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CreateThread(ctx, in, e.client)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node create_thread: %w", err)
	}

	if err := graph.AddLambdaNode("create_run",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CreateRun(ctx, in, e.client)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node create_run: %w", err)
	}

	if err := graph.AddLambdaNode("join_run",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.JoinRun(ctx, in, e.client)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node join_run: %w", err)
	}

	if err := graph.AddLambdaNode("fetch_state",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.FetchState(ctx, in, e.client)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node fetch_state: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_value",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeValue(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_value: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "create_thread"},
		{"create_thread", "create_run"},
		{"create_run", "join_run"},
		{"join_run", "fetch_state"},
		{"fetch_state", "finalize_value"},
		{"finalize_value", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("enricher.enrich"))
	if err != nil {
		return nil, fmt.Errorf("compile enricher graph: %w", err)
	}
	return runner, nil
}
