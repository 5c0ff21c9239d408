// Package chart is the client for the chart backend. It adapts orchestrator
// requests into the backend's camelCase schema, dispatches generation, and
// caches the constraints and palettes metadata with static fallbacks for when
// the backend is unreachable.
package chart

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
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

const metadataTimeout = 10 * time.Second

type Client struct {
	http    *httpclient.Client
	baseURL string
	log     *logger.Logger

	mu          sync.Mutex
	constraints json.RawMessage
	palettes    json.RawMessage
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
	ChartConfig  map[string]interface{}
	RawData      map[string]interface{}
	Metadata     *element.ChartMetadata
	Insights     *element.ChartInsights
	GenerationID string
}

// BuildGenerateBody adapts a frontend request plus converted dimensions into
// the backend's wire schema. Data and generateData are mutually exclusive:
// provided data wins.
func BuildGenerateBody(req *element.ChartGenerateRequest, dims grid.Dimensions) map[string]interface{} {
	ctx := map[string]interface{}{
		"presentationTitle": req.Context.PresentationTitle,
		"slideIndex":        req.Context.SlideIndex,
	}
	if req.Context.SlideTitle != "" {
		ctx["slideTitle"] = req.Context.SlideTitle
	}
	if req.Context.Industry != "" {
		ctx["industry"] = req.Context.Industry
	}
	if req.Context.TimeFrame != "" {
		ctx["timeFrame"] = req.Context.TimeFrame
	}

	showLegend := true
	if req.ShowLegend != nil {
		showLegend = *req.ShowLegend
	}
	style := map[string]interface{}{
		"palette":        req.Palette,
		"showLegend":     showLegend,
		"showDataLabels": req.ShowDataLabels,
	}
	if req.LegendPosition != "" {
		style["legendPosition"] = req.LegendPosition
	}

	body := map[string]interface{}{
		"prompt":         req.Prompt,
		"chartType":      req.ChartType,
		"presentationId": req.Context.PresentationID,
		"slideId":        req.Context.SlideID,
		"elementId":      req.ElementID,
		"context":        ctx,
		"constraints": map[string]interface{}{
			"gridWidth":  dims.Width,
			"gridHeight": dims.Height,
		},
		"style": style,
	}

	if len(req.Data) > 0 {
		points := make([]map[string]interface{}, 0, len(req.Data))
		for _, d := range req.Data {
			points = append(points, map[string]interface{}{"label": d.Label, "value": d.Value})
		}
		body["data"] = points
	} else {
		body["generateData"] = req.GenerateData
	}

	if req.XLabel != "" || req.YLabel != "" || req.Stacked {
		axes := map[string]interface{}{}
		if req.XLabel != "" {
			axes["xLabel"] = req.XLabel
		}
		if req.YLabel != "" {
			axes["yLabel"] = req.YLabel
		}
		if req.Stacked {
			axes["stacked"] = true
		}
		body["axes"] = axes
	}

	return body
}

func (c *Client) Generate(ctx context.Context, req *element.ChartGenerateRequest, dims grid.Dimensions) (*Result, error) {
	c.log.Info("generating chart", "element_id", req.ElementID, "chart_type", req.ChartType)

	respBody, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/chart/generate", BuildGenerateBody(req, dims))
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(respBody) {
		return nil, backend.Failure(respBody)
	}

	data := gjson.GetBytes(respBody, "data")
	result := &Result{
		GenerationID: data.Get("generationId").String(),
	}
	if cfg := data.Get("chartConfig"); cfg.IsObject() {
		if err := json.Unmarshal([]byte(cfg.Raw), &result.ChartConfig); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeAIServiceError, "malformed chartConfig in backend response")
		}
	}
	if raw := data.Get("rawData"); raw.IsObject() {
		_ = json.Unmarshal([]byte(raw.Raw), &result.RawData)
	}
	if meta := data.Get("metadata"); meta.IsObject() {
		result.Metadata = &element.ChartMetadata{
			ChartType:      meta.Get("chartType").String(),
			DataPointCount: int(meta.Get("dataPointCount").Int()),
			DatasetCount:   int(meta.Get("datasetCount").Int()),
			SuggestedTitle: meta.Get("suggestedTitle").String(),
		}
		if result.Metadata.ChartType == "" {
			result.Metadata.ChartType = req.ChartType
		}
		if result.Metadata.DatasetCount == 0 {
			result.Metadata.DatasetCount = 1
		}
		if dr := meta.Get("dataRange"); dr.IsObject() {
			result.Metadata.DataRange = map[string]float64{}
			dr.ForEach(func(k, v gjson.Result) bool {
				result.Metadata.DataRange[k.String()] = v.Float()
				return true
			})
		}
	}
	if ins := data.Get("insights"); ins.IsObject() {
		insights := &element.ChartInsights{Trend: ins.Get("trend").String()}
		for _, o := range ins.Get("outliers").Array() {
			insights.Outliers = append(insights.Outliers, int(o.Int()))
		}
		for _, h := range ins.Get("highlights").Array() {
			insights.Highlights = append(insights.Highlights, h.String())
		}
		result.Insights = insights
	}

	return result, nil
}

// Constraints returns the backend's grid constraints document, cached after
// the first successful fetch. The static fallback keeps the frontend working
// when the backend is down.
func (c *Client) Constraints(ctx context.Context) json.RawMessage {
	c.mu.Lock()
	if c.constraints != nil {
		cached := c.constraints
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	body, err := backend.Get(ctx, c.http, c.baseURL+"/api/ai/chart/constraints")
	if err != nil {
		c.log.Warn("falling back to default chart constraints", "error", err)
		return defaultConstraints
	}

	c.mu.Lock()
	c.constraints = body
	c.mu.Unlock()
	return body
}

// Palettes returns the backend's palette catalog, cached like Constraints.
func (c *Client) Palettes(ctx context.Context) json.RawMessage {
	c.mu.Lock()
	if c.palettes != nil {
		cached := c.palettes
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	body, err := backend.Get(ctx, c.http, c.baseURL+"/api/ai/chart/palettes")
	if err != nil {
		c.log.Warn("falling back to default chart palettes", "error", err)
		return defaultPalettes
	}

	c.mu.Lock()
	c.palettes = body
	c.mu.Unlock()
	return body
}

func (c *Client) ClearCache() {
	c.mu.Lock()
	c.constraints = nil
	c.palettes = nil
	c.mu.Unlock()
	c.log.Info("chart metadata cache cleared")
}

var defaultConstraints = json.RawMessage(`{
  "success": true,
  "minimumGridSizes": {
    "bar": {"width": 3, "height": 3},
    "line": {"width": 3, "height": 2},
    "pie": {"width": 3, "height": 3},
    "doughnut": {"width": 3, "height": 3},
    "area": {"width": 3, "height": 2},
    "scatter": {"width": 4, "height": 3},
    "radar": {"width": 4, "height": 4},
    "polarArea": {"width": 3, "height": 3}
  },
  "dataLimits": {
    "bar": {"small": 4, "medium": 8, "large": 15},
    "line": {"small": 6, "medium": 12, "large": 24},
    "pie": {"small": 4, "medium": 6, "large": 8}
  },
  "gridRanges": {
    "width": {"min": 1, "max": 12},
    "height": {"min": 1, "max": 8}
  },
  "sizeThresholds": {
    "small": "area <= 16",
    "medium": "16 < area <= 48",
    "large": "area > 48"
  },
  "_fallback": true
}`)

var defaultPalettes = json.RawMessage(`{
  "success": true,
  "palettes": [
    {"name": "default", "colors": ["#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#EC4899", "#06B6D4", "#84CC16"], "colorCount": 8},
    {"name": "professional", "colors": ["#1E3A5F", "#2D5A87", "#3D7AAF", "#4D9AD7", "#5DBAFF", "#0D9488", "#14B8A6", "#2DD4BF"], "colorCount": 8},
    {"name": "vibrant", "colors": ["#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57", "#FF9FF3", "#54A0FF", "#5F27CD"], "colorCount": 8},
    {"name": "pastel", "colors": ["#A8D8EA", "#AA96DA", "#FCBAD3", "#FFFFD2", "#B5EAD7", "#C7CEEA", "#FFB7B2", "#FFDAC1"], "colorCount": 8},
    {"name": "monochrome", "colors": ["#111827", "#374151", "#4B5563", "#6B7280", "#9CA3AF", "#D1D5DB", "#E5E7EB", "#F3F4F6"], "colorCount": 8}
  ],
  "defaultPalette": "default",
  "_fallback": true
}`)

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}
