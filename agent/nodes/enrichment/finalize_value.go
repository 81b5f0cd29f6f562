package enrichmentnode

import (
	"fmt"

	contractx "github.com/tanpawarit/Agentic-Enrichment-Grid/agent/contract"
)

func FinalizeValue(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	value := contractx.NoDataValue
	if in.HasOutput {
		value = TruncateValue(in.Output)
	}

	return GraphOutput{
		Result: contractx.EnrichmentResult{
			Value:     value,
			ThreadID:  in.ThreadID,
			RunID:     in.RunID,
			HasOutput: in.HasOutput,
		},
	}, nil
}

// TruncateValue keeps the first MaxValueRunes runes and marks the cut.
func TruncateValue(value string) string {
	runes := []rune(value)
	if len(runes) <= contractx.MaxValueRunes {
		return value
	}
	return string(runes[:contractx.MaxValueRunes]) + contractx.EllipsisMarker
}
