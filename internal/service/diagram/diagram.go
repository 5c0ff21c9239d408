// Package diagram is the client for the diagram backend, the only async one:
// generation submits a job, then polls status until a terminal state or the
// polling deadline.
package diagram

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/grid"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/httpclient"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/backend"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

const metadataTimeout = 10 * time.Second

// PollConfig bounds the status polling loop. Interval is the base delay
// between polls; transient poll failures back off exponentially up to
// MaxInterval. Timeout is the hard ceiling on the whole loop.
type PollConfig struct {
	Timeout     time.Duration
	Interval    time.Duration
	MaxInterval time.Duration
}

type Client struct {
	http      *httpclient.Client
	baseURL   string
	log       *logger.Logger
	poll      PollConfig
	pxPerUnit int

	mu    sync.Mutex
	types json.RawMessage
}

func NewClient(baseURL string, timeout time.Duration, poll PollConfig, pxPerUnit int, log *logger.Logger) *Client {
	return &Client{
		http:      httpclient.New(httpclient.Options{Timeout: timeout}),
		baseURL:   baseURL,
		log:       log,
		poll:      poll,
		pxPerUnit: pxPerUnit,
	}
}

// Result is a completed diagram generation.
type Result struct {
	JobID       string
	MermaidCode string
	SVGContent  string
}

// BuildGenerateBody adapts a frontend request into the backend's snake_case
// schema: content instead of prompt, a theme object, and pixel constraints
// derived from the converted grid dimensions. Brand colors from the context
// override the default theme colors.
func BuildGenerateBody(req *element.DiagramGenerateRequest, dims grid.Dimensions, pxPerUnit int) map[string]interface{} {
	maxWidth, maxHeight := grid.PixelConstraints(dims, pxPerUnit)

	style := req.Theme
	if style == "" {
		style = "professional"
	}
	theme := map[string]interface{}{
		"primaryColor":    "#3B82F6",
		"colorScheme":     "complementary",
		"backgroundColor": "#FFFFFF",
		"textColor":       "#1F2937",
		"fontFamily":      "Inter, system-ui, sans-serif",
		"style":           style,
		"useSmartTheming": true,
	}
	if len(req.Context.BrandColors) > 0 {
		theme["primaryColor"] = req.Context.BrandColors[0]
		if len(req.Context.BrandColors) > 1 {
			theme["secondaryColor"] = req.Context.BrandColors[1]
		}
	}

	complexity := req.Complexity
	if complexity == "" {
		complexity = "moderate"
	}
	constraints := map[string]interface{}{
		"maxWidth":         maxWidth,
		"maxHeight":        maxHeight,
		"orientation":      grid.Orientation(dims),
		"complexity":       complexity,
		"aspectRatio":      grid.AspectRatio(dims),
		"animationEnabled": false,
	}

	content := req.Prompt
	if req.MermaidCode != "" {
		content = fmt.Sprintf("%s\n\nMermaid code:\n%s", req.Prompt, req.MermaidCode)
	}

	return map[string]interface{}{
		"content":        content,
		"diagram_type":   strings.ReplaceAll(strings.ToLower(req.DiagramType), "-", "_"),
		"data_points":    []interface{}{},
		"theme":          theme,
		"constraints":    constraints,
		"correlation_id": req.ElementID,
		"session_id":     req.Context.PresentationID,
		"user_id":        req.Context.SlideID,
	}
}

// Submit posts a generation job. When the backend answers synchronously with
// content instead of a jobId, the direct result is returned and no polling is
// needed.
func (c *Client) Submit(ctx context.Context, req *element.DiagramGenerateRequest, dims grid.Dimensions) (jobID string, direct *Result, err error) {
	c.log.Info("submitting diagram job", "element_id", req.ElementID, "diagram_type", req.DiagramType)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/diagram/generate", BuildGenerateBody(req, dims, c.pxPerUnit))
	if err != nil {
		return "", nil, err
	}
	if !backend.Succeeded(body) {
		return "", nil, backend.Failure(body)
	}

	parsed := gjson.ParseBytes(body)
	if id := parsed.Get("jobId").String(); id != "" {
		return id, nil, nil
	}
	if mermaid, svg := parsed.Get("mermaidCode").String(), parsed.Get("svgContent").String(); mermaid != "" || svg != "" {
		return "", &Result{MermaidCode: mermaid, SVGContent: svg}, nil
	}
	return "", nil, apperrors.New(apperrors.CodeAIServiceError, "diagram backend returned neither jobId nor content")
}

// Status fetches the state of a submitted job.
func (c *Client) Status(ctx context.Context, jobID string) (*element.DiagramStatusResponse, error) {
	body, err := backend.Get(ctx, c.http, c.baseURL+"/api/ai/diagram/status/"+jobID)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	status := &element.DiagramStatusResponse{
		JobID:       jobID,
		Status:      element.JobState(parsed.Get("status").String()),
		MermaidCode: parsed.Get("mermaidCode").String(),
		SVGContent:  parsed.Get("svgContent").String(),
		Error:       parsed.Get("error").String(),
	}
	if p := parsed.Get("progress"); p.Exists() {
		progress := int(p.Int())
		status.Progress = &progress
	}
	return status, nil
}

// Generate submits a job and polls until completion, failure, or the polling
// deadline. Transient poll errors back off exponentially and do not abort the
// loop; non-retryable errors do.
func (c *Client) Generate(ctx context.Context, req *element.DiagramGenerateRequest, dims grid.Dimensions) (*Result, error) {
	jobID, direct, err := c.Submit(ctx, req, dims)
	if err != nil {
		return nil, err
	}
	if direct != nil {
		return direct, nil
	}

	ctx, cancel := context.WithDeadline(ctx, time.Now().Add(c.poll.Timeout))
	defer cancel()

	interval := c.poll.Interval
	for {
		select {
		case <-ctx.Done():
			return nil, c.pollDeadline(jobID)
		case <-time.After(interval):
		}

		status, err := c.Status(ctx, jobID)
		if err != nil {
			if appErr, ok := err.(*apperrors.AppError); ok && appErr.Retryable() {
				c.log.Warn("diagram status poll failed, backing off", "job_id", jobID, "error", err)
				interval = minDuration(interval*2, c.poll.MaxInterval)
				continue
			}
			return nil, err
		}

		switch status.Status {
		case element.JobCompleted:
			c.log.Info("diagram job completed", "job_id", jobID)
			return &Result{JobID: jobID, MermaidCode: status.MermaidCode, SVGContent: status.SVGContent}, nil
		case element.JobFailed, element.JobTimedOut:
			msg := status.Error
			if msg == "" {
				msg = "diagram generation failed"
			}
			return nil, apperrors.New(apperrors.CodeAIServiceError, msg)
		case element.JobPending, element.JobProcessing, element.JobSubmitted:
			interval = c.poll.Interval
		default:
			c.log.Warn("unknown diagram job status", "job_id", jobID, "status", status.Status)
			interval = c.poll.Interval
		}
	}
}

func (c *Client) pollDeadline(jobID string) error {
	c.log.Error("diagram polling deadline exceeded", "job_id", jobID, "timeout", c.poll.Timeout)
	return apperrors.New(apperrors.CodeAIServiceError,
		fmt.Sprintf("diagram generation did not finish within %s", c.poll.Timeout))
}

// Types returns the supported diagram types catalog, cached after the first
// successful fetch, with a static fallback.
func (c *Client) Types(ctx context.Context) json.RawMessage {
	c.mu.Lock()
	if c.types != nil {
		cached := c.types
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	body, err := backend.Get(ctx, c.http, c.baseURL+"/api/ai/diagram/types")
	if err != nil {
		c.log.Warn("falling back to default diagram types", "error", err)
		return defaultTypes
	}

	c.mu.Lock()
	c.types = body
	c.mu.Unlock()
	return body
}

func (c *Client) ClearCache() {
	c.mu.Lock()
	c.types = nil
	c.mu.Unlock()
	c.log.Info("diagram metadata cache cleared")
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

var defaultTypes = json.RawMessage(`{
  "success": true,
  "types": [
    {"type": "flowchart", "name": "Flowchart", "description": "Process flows and decision trees", "minGridWidth": 3, "minGridHeight": 2, "supportsDirection": true},
    {"type": "sequence", "name": "Sequence Diagram", "description": "API interactions and message flows", "minGridWidth": 4, "minGridHeight": 3, "supportsDirection": false},
    {"type": "class", "name": "Class Diagram", "description": "UML class relationships", "minGridWidth": 4, "minGridHeight": 3, "supportsDirection": true},
    {"type": "state", "name": "State Diagram", "description": "State machines and transitions", "minGridWidth": 3, "minGridHeight": 3, "supportsDirection": true},
    {"type": "er", "name": "ER Diagram", "description": "Entity-relationship database schemas", "minGridWidth": 4, "minGridHeight": 3, "supportsDirection": false},
    {"type": "gantt", "name": "Gantt Chart", "description": "Project timelines and schedules", "minGridWidth": 6, "minGridHeight": 2, "supportsDirection": false},
    {"type": "userjourney", "name": "User Journey", "description": "UX flows and user experiences", "minGridWidth": 4, "minGridHeight": 2, "supportsDirection": false},
    {"type": "gitgraph", "name": "Git Graph", "description": "Git branch and merge visualizations", "minGridWidth": 4, "minGridHeight": 2, "supportsDirection": true},
    {"type": "mindmap", "name": "Mind Map", "description": "Ideas and concept hierarchies", "minGridWidth": 4, "minGridHeight": 4, "supportsDirection": false},
    {"type": "pie", "name": "Pie Chart", "description": "Proportional data visualization", "minGridWidth": 3, "minGridHeight": 3, "supportsDirection": false},
    {"type": "timeline", "name": "Timeline", "description": "Chronological events", "minGridWidth": 5, "minGridHeight": 2, "supportsDirection": false}
  ],
  "_fallback": true
}`)

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}
