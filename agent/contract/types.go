package contract

const (
	// NoDataValue resolves a cell whose run finished without an output.
	NoDataValue = "No data"

	MaxValueRunes  = 30
	EllipsisMarker = "..."
)

type EnrichmentRequest struct {
	Label    string   `json:"label"`
	Target   string   `json:"target"`
	Field    string   `json:"field"`
	Examples []string `json:"examples"`
}

type EnrichmentResult struct {
	Value    string `json:"value"`
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
	// HasOutput is false when the run produced no output and Value is NoDataValue.
	HasOutput bool `json:"has_output"`
}
