package flowdef

import (
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeWorkflowLenient decodes a workflow document, repairing the JSON
// first if a strict decode fails. Workflow documents that pass through LLM
// tooling frequently arrive with trailing commas, unquoted keys or stray
// prose; a repaired decode is still subject to the normal discriminator
// checks, so a structurally invalid graph is rejected either way.
func DecodeWorkflowLenient(data []byte) (*Workflow, error) {
	w, strictErr := DecodeWorkflow(data)
	if strictErr == nil {
		return w, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return nil, fmt.Errorf("decoding workflow document (repair also failed: %v): %w", repairErr, strictErr)
	}
	return DecodeWorkflow([]byte(repaired))
}
