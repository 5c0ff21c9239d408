package element

var DiagramTypes = map[string]bool{
	"flowchart": true, "sequence": true, "class": true, "state": true,
	"er": true, "gantt": true, "userjourney": true, "gitgraph": true,
	"mindmap": true, "pie": true, "timeline": true,
}

var DiagramDirections = map[string]bool{
	"TB": true, "BT": true, "LR": true, "RL": true,
}

var DiagramThemes = map[string]bool{
	"default": true, "dark": true, "forest": true, "neutral": true, "base": true,
}

var DiagramComplexities = map[string]bool{
	"simple": true, "moderate": true, "detailed": true,
}

// Diagram job states. The generation leg polls until a terminal state or the
// deadline, whichever comes first.
type JobState string

const (
	JobSubmitted  JobState = "submitted"
	JobPending    JobState = "pending"
	JobProcessing JobState = "processing"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
	JobTimedOut   JobState = "timed_out"
)

// Terminal reports whether polling should stop at this state.
func (s JobState) Terminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobTimedOut
}

type DiagramGenerateRequest struct {
	ElementID   string       `json:"element_id" binding:"required"`
	Context     Context      `json:"context" binding:"required"`
	Position    GridPosition `json:"position" binding:"required"`
	Prompt      string       `json:"prompt"`
	DiagramType string       `json:"diagram_type" binding:"required"`
	Direction   string       `json:"direction"`
	Theme       string       `json:"theme"`
	Complexity  string       `json:"complexity"`
	// Existing Mermaid code to render, bypassing AI generation.
	MermaidCode string `json:"mermaid_code,omitempty"`
}

type DiagramGenerateResponse struct {
	Success        bool         `json:"success"`
	ElementID      string       `json:"element_id"`
	JobID          string       `json:"job_id,omitempty"`
	MermaidCode    string       `json:"mermaid_code,omitempty"`
	SVGContent     string       `json:"svg_content,omitempty"`
	DiagramType    string       `json:"diagram_type,omitempty"`
	Error          *ErrorDetail `json:"error,omitempty"`
	Injected       *bool        `json:"injected,omitempty"`
	InjectionError string       `json:"injection_error,omitempty"`
}

type DiagramStatusResponse struct {
	JobID       string   `json:"job_id"`
	Status      JobState `json:"status"`
	Progress    *int     `json:"progress,omitempty"`
	MermaidCode string   `json:"mermaid_code,omitempty"`
	SVGContent  string   `json:"svg_content,omitempty"`
	Error       string   `json:"error,omitempty"`
}
