package element

import "encoding/json"

// BatchElementRequest is one element in a mixed batch. Config carries the
// type-specific fields and is decoded into the variant request by the
// orchestrator.
type BatchElementRequest struct {
	ElementType Type            `json:"element_type" binding:"required"`
	ElementID   string          `json:"element_id" binding:"required"`
	Context     Context         `json:"context" binding:"required"`
	Position    GridPosition    `json:"position" binding:"required"`
	Config      json.RawMessage `json:"config"`
}

type BatchGenerateRequest struct {
	Elements []BatchElementRequest `json:"elements" binding:"required"`
	Parallel *bool                 `json:"parallel,omitempty"`
}

type BatchElementResult struct {
	ElementID   string       `json:"element_id"`
	ElementType Type         `json:"element_type"`
	Success     bool         `json:"success"`
	Result      interface{}  `json:"result,omitempty"`
	Error       *ErrorDetail `json:"error,omitempty"`
}

type BatchGenerateResponse struct {
	Success   bool                 `json:"success"`
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Results   []BatchElementResult `json:"results"`
}
