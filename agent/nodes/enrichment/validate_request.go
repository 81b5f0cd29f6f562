package enrichmentnode

import (
	"errors"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
)

var (
	ErrInvalidTarget = errors.New("target is empty")
	ErrInvalidField  = errors.New("field is empty")
	ErrInvalidLabel  = errors.New("label is empty")
)

type GraphInput struct {
	Request contractx.EnrichmentRequest
}

type GraphOutput struct {
	Result contractx.EnrichmentResult
}

// GraphState is threaded through the protocol steps. Each step fills in what the
// next one needs.
type GraphState struct {
	Request contractx.EnrichmentRequest

	ThreadID  string
	RunID     string
	RunStatus string

	Output    string
	HasOutput bool
}

func ValidateRequest(in GraphInput) (*GraphState, error) {
	req := in.Request

	req.Label = strings.TrimSpace(req.Label)
	if req.Label == "" {
		return nil, fmt.Errorf("%w: %w", contractx.ErrValidation, ErrInvalidLabel)
	}
	req.Target = strings.TrimSpace(req.Target)
	if req.Target == "" {
		return nil, fmt.Errorf("%w: %w", contractx.ErrValidation, ErrInvalidTarget)
	}
	req.Field = strings.TrimSpace(req.Field)
	if req.Field == "" {
		return nil, fmt.Errorf("%w: %w", contractx.ErrValidation, ErrInvalidField)
	}
	if req.Examples == nil {
		req.Examples = []string{}
	}

	return &GraphState{Request: req}, nil
}

func stepError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", contractx.ErrEnrichmentStep, step, err)
}
