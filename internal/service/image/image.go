// Package image is the client for the image backend. Image generation runs
// on a longer timeout than the other backends and is metered: every
// presentation has a credit allowance consumed per quality tier.
package image

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

const (
	metadataTimeout = 10 * time.Second

	// Credit allowance granted to presentations the backend has not seen.
	defaultCreditAllowance = 100
)

type Client struct {
	http    *httpclient.Client
	meta    *httpclient.Client
	baseURL string
	log     *logger.Logger

	mu     sync.Mutex
	styles json.RawMessage
}

// NewClient builds an image client. timeout applies to generation; metadata
// calls use their own shorter timeout.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		http:    httpclient.New(httpclient.Options{Timeout: timeout}),
		meta:    httpclient.New(httpclient.Options{Timeout: metadataTimeout}),
		baseURL: baseURL,
		log:     log,
	}
}

// Result is the generation outcome handed back to the pipeline.
type Result struct {
	ImageURL         string
	ImageBase64      string
	AltText          string
	Width            *int
	Height           *int
	CreditsUsed      *int
	CreditsRemaining *int
	SeedUsed         *int64
}

// CreditCost returns the credit price of a quality tier; unknown tiers price
// as standard.
func CreditCost(quality string) int {
	if q, ok := element.ImageQualities[quality]; ok {
		return q.Credits
	}
	return element.ImageQualities["standard"].Credits
}

// BuildGenerateBody adapts a frontend request into the backend schema with
// its config and options objects.
func BuildGenerateBody(req *element.ImageGenerateRequest, dims grid.Dimensions) map[string]interface{} {
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

	style := req.Style
	if style == "" {
		style = "realistic"
	}
	quality := req.Quality
	if quality == "" {
		quality = "standard"
	}
	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}

	body := map[string]interface{}{
		"prompt":         req.Prompt,
		"presentationId": req.Context.PresentationID,
		"slideId":        req.Context.SlideID,
		"elementId":      req.ElementID,
		"context":        ctx,
		"config": map[string]interface{}{
			"style":       style,
			"aspectRatio": aspectRatio,
			"quality":     quality,
		},
		"constraints": map[string]interface{}{
			"gridWidth":  dims.Width,
			"gridHeight": dims.Height,
		},
	}

	options := map[string]interface{}{}
	if req.NegativePrompt != "" {
		options["negativePrompt"] = req.NegativePrompt
	}
	if req.Seed != nil {
		options["seed"] = *req.Seed
	}
	if len(options) > 0 {
		body["options"] = options
	}
	return body
}

func (c *Client) Generate(ctx context.Context, req *element.ImageGenerateRequest, dims grid.Dimensions) (*Result, error) {
	c.log.Info("generating image", "element_id", req.ElementID, "style", req.Style, "quality", req.Quality)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/image/generate", BuildGenerateBody(req, dims))
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(body) {
		return nil, backend.Failure(body)
	}

	parsed := gjson.ParseBytes(body)
	data := parsed.Get("data")

	result := &Result{
		ImageURL:    firstStr(data, parsed, "imageUrl", "image_url"),
		ImageBase64: firstStr(data, parsed, "imageBase64", "image_base64"),
		AltText:     firstStr(data, parsed, "altText", "alt_text"),
	}
	if result.AltText == "" && req.Prompt != "" {
		alt := req.Prompt
		if len(alt) > 100 {
			alt = alt[:100]
		}
		result.AltText = alt
	}
	result.Width = intField(data, parsed, "width")
	result.Height = intField(data, parsed, "height")
	result.CreditsUsed = intField(data, parsed, "creditsUsed", "credits_used")
	result.CreditsRemaining = intField(data, parsed, "creditsRemaining", "credits_remaining")
	if v := pick(data, parsed, "seedUsed", "seed_used"); v.Exists() {
		seed := v.Int()
		result.SeedUsed = &seed
	}
	return result, nil
}

// Styles returns the style and quality catalog, cached after the first
// successful fetch, with a static fallback.
func (c *Client) Styles(ctx context.Context) json.RawMessage {
	c.mu.Lock()
	if c.styles != nil {
		cached := c.styles
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	body, err := backend.Get(ctx, c.meta, c.baseURL+"/api/ai/image/styles")
	if err != nil {
		c.log.Warn("falling back to default image styles", "error", err)
		return defaultStyles
	}

	c.mu.Lock()
	c.styles = body
	c.mu.Unlock()
	return body
}

// Credits returns the credit balance for a presentation. Presentations the
// backend has never billed get the default allowance.
func (c *Client) Credits(ctx context.Context, presentationID string) (json.RawMessage, error) {
	body, err := backend.Get(ctx, c.meta, c.baseURL+"/api/ai/image/credits/"+presentationID)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeInvalidRequest) {
			return freshCredits(presentationID), nil
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) ClearCache() {
	c.mu.Lock()
	c.styles = nil
	c.mu.Unlock()
	c.log.Info("image metadata cache cleared")
}

func freshCredits(presentationID string) json.RawMessage {
	payload, _ := json.Marshal(map[string]interface{}{
		"success":        true,
		"presentationId": presentationID,
		"used":           0,
		"remaining":      defaultCreditAllowance,
		"total":          defaultCreditAllowance,
		"qualityCosts": map[string]int{
			"draft":    element.ImageQualities["draft"].Credits,
			"standard": element.ImageQualities["standard"].Credits,
			"high":     element.ImageQualities["high"].Credits,
			"ultra":    element.ImageQualities["ultra"].Credits,
		},
	})
	return payload
}

func firstStr(data, top gjson.Result, paths ...string) string {
	if v := pick(data, top, paths...); v.Exists() && v.Str != "" {
		return v.Str
	}
	return ""
}

func intField(data, top gjson.Result, paths ...string) *int {
	if v := pick(data, top, paths...); v.Exists() {
		n := int(v.Int())
		return &n
	}
	return nil
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

var defaultStyles = json.RawMessage(`{
  "success": true,
  "styles": [
    {"style": "realistic", "name": "Realistic", "description": "Photo-realistic imagery", "bestFor": ["Business", "Corporate", "Marketing"]},
    {"style": "illustration", "name": "Illustration", "description": "Hand-drawn illustration style", "bestFor": ["Educational", "Storytelling", "Children's content"]},
    {"style": "abstract", "name": "Abstract", "description": "Abstract and artistic imagery", "bestFor": ["Creative", "Art", "Conceptual"]},
    {"style": "minimal", "name": "Minimal", "description": "Clean, minimalist design", "bestFor": ["Tech", "Startup", "Modern presentations"]},
    {"style": "photo", "name": "Photo", "description": "High-quality photography style", "bestFor": ["Marketing", "Advertising", "Product showcases"]}
  ],
  "qualities": [
    {"quality": "draft", "resolution": "512px", "credits": 1},
    {"quality": "standard", "resolution": "1024px", "credits": 2},
    {"quality": "high", "resolution": "1536px", "credits": 4},
    {"quality": "ultra", "resolution": "2048px", "credits": 8}
  ],
  "defaultStyle": "realistic",
  "defaultQuality": "standard",
  "_fallback": true
}`)

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}
