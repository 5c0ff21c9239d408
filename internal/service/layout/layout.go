// Package layout is the client for the Layout Service. After a successful
// generation the orchestrator injects the content directly into the target
// slide, so the frontend never has to relay it.
//
// Injection is an upsert: the element is matched by id in the slide's
// per-type array, updated in place if present and appended if not, then the
// whole array is written back with created_by attribution.
package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/httpclient"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/backend"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

// Element array names in the Layout Service slide schema. Tables share the
// text box array; they are stored as HTML.
const (
	ArrayCharts       = "charts"
	ArrayDiagrams     = "diagrams"
	ArrayTextBoxes    = "text_boxes"
	ArrayImages       = "images"
	ArrayInfographics = "infographics"
)

type Client struct {
	rest *resty.Client
	log  *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{rest: rest, log: log}
}

// GetPresentation fetches a presentation document.
func (c *Client) GetPresentation(ctx context.Context, presentationID string) (map[string]interface{}, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		Get("/api/presentations/" + presentationID)
	if err != nil {
		return nil, httpclient.Classify(err)
	}
	if resp.IsError() {
		return nil, backend.StatusError(resp.StatusCode(), resp.Body())
	}

	var presentation map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &presentation); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "malformed presentation document")
	}
	return presentation, nil
}

// GetSlide fetches one slide by zero-based index.
func (c *Client) GetSlide(ctx context.Context, presentationID string, slideIndex int) (map[string]interface{}, error) {
	presentation, err := c.GetPresentation(ctx, presentationID)
	if err != nil {
		return nil, err
	}

	slides, _ := presentation["slides"].([]interface{})
	if slideIndex < 0 || slideIndex >= len(slides) {
		return nil, apperrors.New(apperrors.CodeInvalidRequest,
			fmt.Sprintf("slide index %d out of range (0-%d)", slideIndex, len(slides)-1))
	}
	slide, ok := slides[slideIndex].(map[string]interface{})
	if !ok {
		return nil, apperrors.New(apperrors.CodeInternal, "malformed slide document")
	}
	return slide, nil
}

// UpdateSlide writes updated fields to a slide, attributing the write via the
// created_by query parameter.
func (c *Client) UpdateSlide(ctx context.Context, presentationID string, slideIndex int, updates map[string]interface{}, createdBy string) error {
	c.log.Info("updating slide", "presentation_id", presentationID, "slide_index", slideIndex, "created_by", createdBy)

	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("created_by", createdBy).
		SetBody(updates).
		Put(fmt.Sprintf("/api/presentations/%s/slides/%d", presentationID, slideIndex))
	if err != nil {
		return httpclient.Classify(err)
	}
	if resp.IsError() {
		return backend.StatusError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// UpdateElement upserts one element in a slide's array and writes the array
// back. Repeating the same injection overwrites the element in place, so
// retried generations never duplicate content.
func (c *Client) UpdateElement(ctx context.Context, presentationID string, slideIndex int, arrayName, elementID string, content map[string]interface{}, createdBy string) error {
	slide, err := c.GetSlide(ctx, presentationID, slideIndex)
	if err != nil {
		return err
	}

	elements, _ := slide[arrayName].([]interface{})
	found := false
	for i, raw := range elements {
		el, ok := raw.(map[string]interface{})
		if !ok || el["id"] != elementID {
			continue
		}
		for k, v := range content {
			el[k] = v
		}
		elements[i] = el
		found = true
		break
	}
	if !found {
		el := map[string]interface{}{"id": elementID}
		for k, v := range content {
			el[k] = v
		}
		elements = append(elements, el)
	}

	return c.UpdateSlide(ctx, presentationID, slideIndex, map[string]interface{}{arrayName: elements}, createdBy)
}

func (c *Client) InjectChart(ctx context.Context, presentationID string, slideIndex int, elementID string, chartConfig map[string]interface{}, chartType string) error {
	content := map[string]interface{}{}
	if chartConfig != nil {
		content["chart_config"] = chartConfig
	}
	if chartType != "" {
		content["chart_type"] = chartType
	}
	return c.UpdateElement(ctx, presentationID, slideIndex, ArrayCharts, elementID, content, "orchestrator-chart")
}

func (c *Client) InjectDiagram(ctx context.Context, presentationID string, slideIndex int, elementID, svgContent, mermaidCode, diagramType string) error {
	content := map[string]interface{}{}
	if svgContent != "" {
		content["svg_content"] = svgContent
	}
	if mermaidCode != "" {
		content["mermaid_code"] = mermaidCode
	}
	if diagramType != "" {
		content["diagram_type"] = diagramType
	}
	return c.UpdateElement(ctx, presentationID, slideIndex, ArrayDiagrams, elementID, content, "orchestrator-diagram")
}

func (c *Client) InjectText(ctx context.Context, presentationID string, slideIndex int, elementID, htmlContent string) error {
	return c.UpdateElement(ctx, presentationID, slideIndex, ArrayTextBoxes, elementID,
		map[string]interface{}{"content": htmlContent}, "orchestrator-text")
}

// InjectTable stores a table as HTML in the text box array.
func (c *Client) InjectTable(ctx context.Context, presentationID string, slideIndex int, elementID, htmlContent string) error {
	return c.UpdateElement(ctx, presentationID, slideIndex, ArrayTextBoxes, elementID,
		map[string]interface{}{"content": htmlContent}, "orchestrator-table")
}

func (c *Client) InjectImage(ctx context.Context, presentationID string, slideIndex int, elementID, imageURL, imageBase64, altText string) error {
	content := map[string]interface{}{}
	switch {
	case imageURL != "":
		content["image_url"] = imageURL
	case imageBase64 != "":
		if !strings.HasPrefix(imageBase64, "data:") {
			imageBase64 = "data:image/png;base64," + imageBase64
		}
		content["image_url"] = imageBase64
	}
	if altText != "" {
		content["alt_text"] = altText
	}
	return c.UpdateElement(ctx, presentationID, slideIndex, ArrayImages, elementID, content, "orchestrator-image")
}

// InjectInfographic stores both render formats in svg_content; the Layout
// Service renders HTML and SVG from the same field.
func (c *Client) InjectInfographic(ctx context.Context, presentationID string, slideIndex int, elementID, svgContent, htmlContent, infographicType string) error {
	content := map[string]interface{}{}
	if svgContent != "" {
		content["svg_content"] = svgContent
	}
	if htmlContent != "" {
		content["svg_content"] = htmlContent
	}
	if infographicType != "" {
		content["infographic_type"] = infographicType
	}
	return c.UpdateElement(ctx, presentationID, slideIndex, ArrayInfographics, elementID, content, "orchestrator-infographic")
}

// HealthCheck reports whether the Layout Service answers its health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := c.rest.R().SetContext(ctx).Get("/health")
	if err != nil {
		return httpclient.Classify(err)
	}
	if resp.IsError() {
		return backend.StatusError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// BaseURL reports the configured Layout Service address.
func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}
