// Package infographic is the client for the illustrator backend. Template
// types render as HTML, dynamic types as SVG; both take constraints on the
// backend's 32x18 grid, scaled up from the converted 12x8 dimensions.
package infographic

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/grid"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/httpclient"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/backend"
)

const metadataTimeout = 10 * time.Second

type Client struct {
	http    *httpclient.Client
	baseURL string
	log     *logger.Logger

	mu    sync.Mutex
	types json.RawMessage
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		http:    httpclient.New(httpclient.Options{Timeout: timeout}),
		baseURL: baseURL,
		log:     log,
	}
}

// Result is the generation outcome handed back to the pipeline.
type Result struct {
	HTMLContent   string
	SVGContent    string
	GeneratorType string
	ItemCount     *int
}

// GeneratorFor reports which generator renders an infographic type.
func GeneratorFor(infographicType string) string {
	if element.InfographicTemplateTypes[infographicType] {
		return "template"
	}
	return "svg"
}

// BuildGenerateBody adapts a frontend request into the illustrator schema:
// the type discriminator is named type, and constraints are scaled to the
// backend's 32x18 grid.
func BuildGenerateBody(req *element.InfographicGenerateRequest, dims grid.Dimensions) map[string]interface{} {
	scaled := grid.ScaleInfographic(dims)

	ctx := map[string]interface{}{
		"presentationTitle": req.Context.PresentationTitle,
		"slideIndex":        req.Context.SlideIndex,
	}
	if req.Context.PresentationTheme != "" {
		ctx["presentationTheme"] = req.Context.PresentationTheme
	}
	if req.Context.SlideTitle != "" {
		ctx["slideTitle"] = req.Context.SlideTitle
	}
	if len(req.Context.BrandColors) > 0 {
		ctx["brandColors"] = req.Context.BrandColors
	}
	if req.Context.Industry != "" {
		ctx["industry"] = req.Context.Industry
	}

	colorScheme := req.ColorScheme
	if colorScheme == "" {
		colorScheme = "professional"
	}
	iconStyle := req.IconStyle
	if iconStyle == "" {
		iconStyle = "outlined"
	}

	contentOptions := map[string]interface{}{
		"includeIcons":        true,
		"includeDescriptions": true,
		"includeNumbers":      false,
	}
	if req.ItemCount != nil {
		contentOptions["itemCount"] = *req.ItemCount
	}

	return map[string]interface{}{
		"prompt":         req.Prompt,
		"type":           req.InfographicType,
		"presentationId": req.Context.PresentationID,
		"slideId":        req.Context.SlideID,
		"elementId":      req.ElementID,
		"context":        ctx,
		"constraints": map[string]interface{}{
			"gridWidth":  scaled.Width,
			"gridHeight": scaled.Height,
		},
		"style": map[string]interface{}{
			"colorScheme": colorScheme,
			"iconStyle":   iconStyle,
			"density":     "balanced",
			"orientation": "auto",
		},
		"contentOptions": contentOptions,
	}
}

func (c *Client) Generate(ctx context.Context, req *element.InfographicGenerateRequest, dims grid.Dimensions) (*Result, error) {
	c.log.Info("generating infographic", "element_id", req.ElementID, "infographic_type", req.InfographicType)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/illustrator/generate", BuildGenerateBody(req, dims))
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(body) {
		return nil, backend.Failure(body)
	}

	parsed := gjson.ParseBytes(body)
	data := parsed.Get("data")

	result := &Result{
		HTMLContent:   firstStr(data, parsed, "htmlContent", "html_content"),
		SVGContent:    firstStr(data, parsed, "svgContent", "svg_content"),
		GeneratorType: GeneratorFor(req.InfographicType),
	}
	if v := pick(data, parsed, "itemCount", "item_count"); v.Exists() {
		n := int(v.Int())
		result.ItemCount = &n
	}
	return result, nil
}

// Types returns the infographic type catalog, cached after the first
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

	body, err := backend.Get(ctx, c.http, c.baseURL+"/api/ai/illustrator/types")
	if err != nil {
		c.log.Warn("falling back to default infographic types", "error", err)
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
	c.log.Info("infographic metadata cache cleared")
}

func firstStr(data, top gjson.Result, paths ...string) string {
	if v := pick(data, top, paths...); v.Exists() && v.Str != "" {
		return v.Str
	}
	return ""
}

func pick(data, top gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := data.Get(p); v.Exists() {
			return v
		}
	}
	if len(paths) > 0 {
		if v := top.Get(paths[0]); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

var defaultTypes = json.RawMessage(`{
  "success": true,
  "types": [
    {"type": "pyramid", "name": "Pyramid", "description": "Hierarchical pyramid visualization", "generator": "template", "minGridWidth": 6, "minGridHeight": 4, "minItems": 3, "maxItems": 6, "supportsIcons": true},
    {"type": "funnel", "name": "Funnel", "description": "Funnel conversion flow", "generator": "template", "minGridWidth": 6, "minGridHeight": 4, "minItems": 3, "maxItems": 6, "supportsIcons": true},
    {"type": "concentric_circles", "name": "Concentric Circles", "description": "Nested circles for layered concepts", "generator": "template", "minGridWidth": 6, "minGridHeight": 6, "minItems": 2, "maxItems": 5, "supportsIcons": false},
    {"type": "concept_spread", "name": "Concept Spread", "description": "Spread layout for related concepts", "generator": "template", "minGridWidth": 8, "minGridHeight": 4, "minItems": 3, "maxItems": 6, "supportsIcons": true},
    {"type": "venn", "name": "Venn Diagram", "description": "Overlapping circles for relationships", "generator": "template", "minGridWidth": 6, "minGridHeight": 4, "minItems": 2, "maxItems": 4, "supportsIcons": false},
    {"type": "comparison", "name": "Comparison", "description": "Side-by-side comparison", "generator": "template", "minGridWidth": 8, "minGridHeight": 4, "minItems": 2, "maxItems": 2, "supportsIcons": true},
    {"type": "timeline", "name": "Timeline", "description": "Chronological events visualization", "generator": "svg", "minGridWidth": 8, "minGridHeight": 3, "minItems": 3, "maxItems": 10, "supportsIcons": true},
    {"type": "process", "name": "Process", "description": "Step-by-step process flow", "generator": "svg", "minGridWidth": 6, "minGridHeight": 3, "minItems": 3, "maxItems": 8, "supportsIcons": true},
    {"type": "statistics", "name": "Statistics", "description": "Key statistics and metrics", "generator": "svg", "minGridWidth": 4, "minGridHeight": 3, "minItems": 2, "maxItems": 8, "supportsIcons": true},
    {"type": "hierarchy", "name": "Hierarchy", "description": "Organizational hierarchy tree", "generator": "svg", "minGridWidth": 6, "minGridHeight": 4, "minItems": 3, "maxItems": 15, "supportsIcons": false},
    {"type": "list", "name": "List", "description": "Styled list with icons", "generator": "svg", "minGridWidth": 4, "minGridHeight": 4, "minItems": 3, "maxItems": 12, "supportsIcons": true},
    {"type": "cycle", "name": "Cycle", "description": "Circular cycle diagram", "generator": "svg", "minGridWidth": 6, "minGridHeight": 6, "minItems": 3, "maxItems": 8, "supportsIcons": true},
    {"type": "matrix", "name": "Matrix", "description": "2x2 or 3x3 matrix grid", "generator": "svg", "minGridWidth": 6, "minGridHeight": 6, "minItems": 4, "maxItems": 4, "supportsIcons": false},
    {"type": "roadmap", "name": "Roadmap", "description": "Project or product roadmap", "generator": "svg", "minGridWidth": 8, "minGridHeight": 4, "minItems": 3, "maxItems": 8, "supportsIcons": true}
  ],
  "colorSchemes": ["professional", "vibrant", "pastel", "monochrome", "warm", "cool"],
  "iconStyles": ["outlined", "filled", "duotone", "minimal"],
  "_fallback": true
}`)

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}
