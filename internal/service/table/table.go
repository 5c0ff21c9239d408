// Package table is the client for the table backend: generation,
// transformation, and analysis of HTML tables. The preset catalog is static;
// the backend does not expose a metadata endpoint for it.
package table

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/grid"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/httpclient"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/backend"
)

type Client struct {
	http    *httpclient.Client
	baseURL string
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		http:    httpclient.New(httpclient.Options{Timeout: timeout}),
		baseURL: baseURL,
		log:     log,
	}
}

// GenerateResult is the outcome of table generation or transformation.
type GenerateResult struct {
	HTMLContent string
	Columns     *int
	Rows        *int
}

// AnalyzeResult is the outcome of table analysis.
type AnalyzeResult struct {
	Summary         string
	Statistics      map[string]interface{}
	Trends          []string
	Recommendations []string
}

func slideContext(ctx element.Context) map[string]interface{} {
	out := map[string]interface{}{
		"presentationTitle": ctx.PresentationTitle,
		"slideIndex":        ctx.SlideIndex,
		"slideCount":        ctx.SlideCount,
	}
	if ctx.SlideTitle != "" {
		out["slideTitle"] = ctx.SlideTitle
	}
	return out
}

// BuildGenerateBody adapts a generation request; columns, rows and data go on
// the wire only when set, so the backend decides the shape otherwise.
func BuildGenerateBody(req *element.TableGenerateRequest, dims grid.Dimensions) map[string]interface{} {
	preset := req.Preset
	if preset == "" {
		preset = "professional"
	}
	hasHeader := true
	if req.HasHeader != nil {
		hasHeader = *req.HasHeader
	}

	body := map[string]interface{}{
		"prompt":         req.Prompt,
		"presentationId": req.Context.PresentationID,
		"slideId":        req.Context.SlideID,
		"elementId":      req.ElementID,
		"context":        slideContext(req.Context),
		"constraints": map[string]interface{}{
			"gridWidth":  dims.Width,
			"gridHeight": dims.Height,
		},
		"preset":    preset,
		"hasHeader": hasHeader,
	}
	if req.Columns != nil {
		body["columns"] = *req.Columns
	}
	if req.Rows != nil {
		body["rows"] = *req.Rows
	}
	if len(req.Data) > 0 {
		body["data"] = req.Data
	}
	return body
}

func (c *Client) Generate(ctx context.Context, req *element.TableGenerateRequest, dims grid.Dimensions) (*GenerateResult, error) {
	c.log.Info("generating table", "element_id", req.ElementID, "preset", req.Preset)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/table/generate", BuildGenerateBody(req, dims))
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(body) {
		return nil, backend.Failure(body)
	}
	return parseTableResult(body), nil
}

// BuildTransformBody adapts a transformation request; the options object
// carries only the fields relevant to the chosen transformation.
func BuildTransformBody(req *element.TableTransformRequest, dims grid.Dimensions) map[string]interface{} {
	body := map[string]interface{}{
		"sourceContent":  req.SourceContent,
		"transformation": req.Transformation,
		"presentationId": req.Context.PresentationID,
		"slideId":        req.Context.SlideID,
		"elementId":      req.ElementID,
		"context":        slideContext(req.Context),
		"constraints": map[string]interface{}{
			"gridWidth":  dims.Width,
			"gridHeight": dims.Height,
		},
	}
	if opts := transformOptions(req.Options); len(opts) > 0 {
		body["options"] = opts
	}
	return body
}

func transformOptions(o *element.TableTransformOptions) map[string]interface{} {
	if o == nil {
		return nil
	}
	opts := map[string]interface{}{}
	if o.Content != "" {
		opts["content"] = o.Content
	}
	if o.Position != nil {
		opts["position"] = *o.Position
	}
	if o.ColumnIndex != nil {
		opts["columnIndex"] = *o.ColumnIndex
	}
	if o.RowIndex != nil {
		opts["rowIndex"] = *o.RowIndex
	}
	if o.SortColumn != nil {
		opts["sortColumn"] = *o.SortColumn
	}
	if o.SortDirection != "" {
		opts["sortDirection"] = o.SortDirection
	}
	if o.SummarizeType != "" {
		opts["summarizeType"] = o.SummarizeType
	}
	if len(o.SummarizeColumns) > 0 {
		opts["summarizeColumns"] = o.SummarizeColumns
	}
	if o.FocusArea != "" {
		opts["focusArea"] = o.FocusArea
	}
	if len(o.Cells) > 0 {
		opts["cells"] = o.Cells
	}
	if o.SplitCount != nil {
		opts["splitCount"] = *o.SplitCount
	}
	return opts
}

func (c *Client) Transform(ctx context.Context, req *element.TableTransformRequest, dims grid.Dimensions) (*GenerateResult, error) {
	c.log.Info("transforming table", "element_id", req.ElementID, "transformation", req.Transformation)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/table/transform", BuildTransformBody(req, dims))
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(body) {
		return nil, backend.Failure(body)
	}
	return parseTableResult(body), nil
}

func (c *Client) Analyze(ctx context.Context, req *element.TableAnalyzeRequest) (*AnalyzeResult, error) {
	analysisType := req.AnalysisType
	if analysisType == "" {
		analysisType = "summary"
	}
	c.log.Info("analyzing table", "element_id", req.ElementID, "analysis_type", analysisType)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/table/analyze", map[string]interface{}{
		"sourceContent": req.SourceContent,
		"elementId":     req.ElementID,
		"context":       slideContext(req.Context),
		"analysisType":  analysisType,
	})
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(body) {
		return nil, backend.Failure(body)
	}

	parsed := gjson.ParseBytes(body)
	data := parsed.Get("data")
	result := &AnalyzeResult{
		Summary: pick(data, parsed, "summary").String(),
	}
	if stats := pick(data, parsed, "statistics"); stats.IsObject() {
		_ = json.Unmarshal([]byte(stats.Raw), &result.Statistics)
	}
	for _, v := range pick(data, parsed, "trends").Array() {
		result.Trends = append(result.Trends, v.String())
	}
	for _, v := range pick(data, parsed, "recommendations").Array() {
		result.Recommendations = append(result.Recommendations, v.String())
	}
	return result, nil
}

// Presets returns the static style preset catalog.
func (c *Client) Presets() json.RawMessage {
	return defaultPresets
}

func parseTableResult(body []byte) *GenerateResult {
	parsed := gjson.ParseBytes(body)
	data := parsed.Get("data")

	result := &GenerateResult{}
	for _, p := range []string{"htmlContent", "html_content"} {
		if v := data.Get(p); v.Str != "" {
			result.HTMLContent = v.Str
			break
		}
	}
	if result.HTMLContent == "" {
		result.HTMLContent = parsed.Get("htmlContent").String()
	}
	if v := pick(data, parsed, "columns"); v.Exists() {
		n := int(v.Int())
		result.Columns = &n
	}
	if v := pick(data, parsed, "rows"); v.Exists() {
		n := int(v.Int())
		result.Rows = &n
	}
	return result
}

// pick prefers the data envelope, falling back to the top level.
func pick(data, top gjson.Result, path string) gjson.Result {
	if v := data.Get(path); v.Exists() {
		return v
	}
	return top.Get(path)
}

var defaultPresets = json.RawMessage(`{
  "success": true,
  "presets": [
    {"name": "minimal", "description": "Clean design with minimal borders"},
    {"name": "bordered", "description": "Full cell borders for clarity"},
    {"name": "striped", "description": "Alternating row colors for readability"},
    {"name": "modern", "description": "Contemporary design with subtle styling"},
    {"name": "professional", "description": "Corporate-appropriate styling"},
    {"name": "colorful", "description": "Vibrant colors for engagement"}
  ],
  "defaultPreset": "professional"
}`)

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}
