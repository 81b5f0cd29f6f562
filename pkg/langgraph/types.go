package langgraph

import (
	"bytes"
	"encoding/json"
)

type Thread struct {
	ThreadID string `json:"thread_id"`
}

type Run struct {
	RunID    string `json:"run_id"`
	ThreadID string `json:"thread_id,omitempty"`
	Status   string `json:"status,omitempty"`
}

// RunInput is the agent input for one enrichment: the subject keyed by the grid
// label, the field to infer and few-shot examples.
type RunInput struct {
	InputInfo map[string]string `json:"input_info"`
	Target    string            `json:"target"`
	Examples  []string          `json:"examples"`
}

type createThreadRequest struct {
	Metadata map[string]any `json:"metadata"`
}

type createRunRequest struct {
	AssistantID string   `json:"assistant_id"`
	Input       RunInput `json:"input"`
}

type ThreadState struct {
	Values map[string]json.RawMessage `json:"values"`
}

// Output returns values.output. A missing or null output reports false; a
// non-string output is returned as its compact JSON text.
func (s ThreadState) Output() (string, bool) {
	raw, ok := s.Values["output"]
	if !ok {
		return "", false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, true
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw), true
	}
	return compact.String(), true
}
