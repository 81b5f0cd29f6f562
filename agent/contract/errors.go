package contract

import (
	"errors"

	langgraphx "github.com/tanpawarit/Agentic-Enrichment-Grid/pkg/langgraph"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrEnrichmentStep = errors.New("enrichment step failed")
)

// IsRetryable reports whether repeating the whole enrichment may succeed.
func IsRetryable(err error) bool {
	return langgraphx.IsRetryable(err)
}
