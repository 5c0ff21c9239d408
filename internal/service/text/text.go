// Package text is the client for the text backend: generation, content
// transformation, and auto-fitting text to a container. Constraints are
// cached per grid size with an area-based estimate as fallback.
package text

import (
	"context"
	"encoding/json"
	"fmt"
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

	mu          sync.Mutex
	constraints map[string]json.RawMessage
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		http:        httpclient.New(httpclient.Options{Timeout: timeout}),
		baseURL:     baseURL,
		log:         log,
		constraints: map[string]json.RawMessage{},
	}
}

// GenerateResult is the outcome of text generation.
type GenerateResult struct {
	HTMLContent    string
	PlainText      string
	WordCount      *int
	CharacterCount *int
}

// TransformResult is the outcome of a text transformation.
type TransformResult struct {
	HTMLContent string
	WordCount   *int
}

// AutofitResult is the outcome of fitting text to its container.
type AutofitResult struct {
	HTMLContent         string
	OriginalLength      *int
	FittedLength        *int
	ReductionPercentage *float64
}

func slideContext(ctx element.Context) map[string]interface{} {
	out := map[string]interface{}{
		"presentationTitle": ctx.PresentationTitle,
		"slideIndex":        ctx.SlideIndex,
		"slideCount":        ctx.SlideCount,
	}
	if ctx.PresentationTheme != "" {
		out["presentationTheme"] = ctx.PresentationTheme
	}
	if ctx.SlideTitle != "" {
		out["slideTitle"] = ctx.SlideTitle
	}
	return out
}

func gridConstraints(dims grid.Dimensions) map[string]interface{} {
	return map[string]interface{}{
		"gridWidth":  dims.Width,
		"gridHeight": dims.Height,
	}
}

// BuildGenerateBody adapts a generation request into the backend schema with
// its options object. Tone, format and language are defaulted here so the
// wire body is always complete.
func BuildGenerateBody(req *element.TextGenerateRequest, dims grid.Dimensions) map[string]interface{} {
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	format := req.Format
	if format == "" {
		format = "paragraph"
	}
	language := req.Language
	if language == "" {
		language = "en"
	}
	options := map[string]interface{}{
		"tone":     tone,
		"format":   format,
		"language": language,
	}
	if req.MaxWords != nil {
		options["maxWords"] = *req.MaxWords
	}

	return map[string]interface{}{
		"prompt":         req.Prompt,
		"presentationId": req.Context.PresentationID,
		"slideId":        req.Context.SlideID,
		"elementId":      req.ElementID,
		"context":        slideContext(req.Context),
		"constraints":    gridConstraints(dims),
		"options":        options,
	}
}

func (c *Client) Generate(ctx context.Context, req *element.TextGenerateRequest, dims grid.Dimensions) (*GenerateResult, error) {
	c.log.Info("generating text", "element_id", req.ElementID, "format", req.Format)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/text/generate", BuildGenerateBody(req, dims))
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(body) {
		return nil, backend.Failure(body)
	}

	data := gjson.GetBytes(body, "data")
	return &GenerateResult{
		HTMLContent:    firstString(data, gjson.ParseBytes(body), "htmlContent", "html_content"),
		PlainText:      firstString(data, gjson.Result{}, "plainText", "plain_text"),
		WordCount:      intField(data, "wordCount", "word_count"),
		CharacterCount: intField(data, "characterCount", "character_count"),
	}, nil
}

// BuildTransformBody adapts a transformation request. The options object is
// only sent when a target language or intensity is set.
func BuildTransformBody(req *element.TextTransformRequest, dims grid.Dimensions) map[string]interface{} {
	body := map[string]interface{}{
		"sourceContent":  req.SourceContent,
		"transformation": req.Transformation,
		"presentationId": req.Context.PresentationID,
		"slideId":        req.Context.SlideID,
		"elementId":      req.ElementID,
		"context":        slideContext(req.Context),
		"constraints":    gridConstraints(dims),
	}

	options := map[string]interface{}{}
	if req.TargetLanguage != "" {
		options["targetLanguage"] = req.TargetLanguage
	}
	if req.Intensity != nil {
		options["intensity"] = *req.Intensity
	}
	if len(options) > 0 {
		body["options"] = options
	}
	return body
}

func (c *Client) Transform(ctx context.Context, req *element.TextTransformRequest, dims grid.Dimensions) (*TransformResult, error) {
	c.log.Info("transforming text", "element_id", req.ElementID, "transformation", req.Transformation)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/text/transform", BuildTransformBody(req, dims))
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(body) {
		return nil, backend.Failure(body)
	}

	data := gjson.GetBytes(body, "data")
	return &TransformResult{
		HTMLContent: firstString(data, gjson.ParseBytes(body), "htmlContent", "html_content"),
		WordCount:   intField(data, "wordCount", "word_count"),
	}, nil
}

// BuildAutofitBody adapts an autofit request. The backend's autofit schema
// diverges from the other text operations: content instead of sourceContent
// and targetFit instead of constraints.
func BuildAutofitBody(req *element.TextAutofitRequest, dims grid.Dimensions) map[string]interface{} {
	targetFit := gridConstraints(dims)
	if req.TargetCharacters != nil {
		targetFit["maxCharacters"] = *req.TargetCharacters
	}

	preserve := true
	if req.PreserveStructure != nil {
		preserve = *req.PreserveStructure
	}

	return map[string]interface{}{
		"content":            req.SourceContent,
		"presentationId":     req.Context.PresentationID,
		"slideId":            req.Context.SlideID,
		"elementId":          req.ElementID,
		"targetFit":          targetFit,
		"strategy":           "smart_condense",
		"preserveFormatting": preserve,
	}
}

func (c *Client) Autofit(ctx context.Context, req *element.TextAutofitRequest, dims grid.Dimensions) (*AutofitResult, error) {
	c.log.Info("auto-fitting text", "element_id", req.ElementID)

	body, err := backend.PostJSON(ctx, c.http, c.baseURL+"/api/ai/text/autofit", BuildAutofitBody(req, dims))
	if err != nil {
		return nil, err
	}
	if !backend.Succeeded(body) {
		return nil, backend.Failure(body)
	}

	data := gjson.GetBytes(body, "data")
	return &AutofitResult{
		HTMLContent:         firstString(data, gjson.ParseBytes(body), "htmlContent", "html_content"),
		OriginalLength:      intField(data, "originalLength", "original_length"),
		FittedLength:        intField(data, "fittedLength", "fitted_length"),
		ReductionPercentage: floatField(data, "reductionPercentage", "reduction_percentage"),
	}, nil
}

// Constraints returns the character and line limits for a grid size, cached
// per size. The fallback estimates from area: ~50 characters per grid unit
// and 3 lines per row.
func (c *Client) Constraints(ctx context.Context, width, height int) json.RawMessage {
	key := fmt.Sprintf("%dx%d", width, height)

	c.mu.Lock()
	if cached, ok := c.constraints[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	body, err := backend.Get(ctx, c.http, fmt.Sprintf("%s/api/ai/constraints/%d/%d", c.baseURL, width, height))
	if err != nil {
		c.log.Warn("falling back to estimated text constraints", "size", key, "error", err)
		return fallbackConstraints(width, height)
	}

	c.mu.Lock()
	c.constraints[key] = body
	c.mu.Unlock()
	return body
}

func (c *Client) ClearCache() {
	c.mu.Lock()
	c.constraints = map[string]json.RawMessage{}
	c.mu.Unlock()
	c.log.Info("text metadata cache cleared")
}

func fallbackConstraints(width, height int) json.RawMessage {
	area := width * height
	fontSize := "12px"
	if area > 20 {
		fontSize = "16px"
	} else if area > 10 {
		fontSize = "14px"
	}
	maxBullets := height * 2
	if maxBullets > 10 {
		maxBullets = 10
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"success":             true,
		"gridWidth":           width,
		"gridHeight":          height,
		"maxCharacters":       area * 50,
		"maxLines":            height * 3,
		"recommendedFontSize": fontSize,
		"maxBullets":          maxBullets,
		"_fallback":           true,
	})
	return payload
}

// firstString checks the data object paths first, then a top-level fallback
// for backends that skip the data envelope.
func firstString(data, top gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := data.Get(p); v.Exists() && v.Str != "" {
			return v.Str
		}
	}
	if len(paths) > 0 && top.Exists() {
		if v := top.Get(paths[0]); v.Exists() && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

func intField(data gjson.Result, paths ...string) *int {
	for _, p := range paths {
		if v := data.Get(p); v.Exists() {
			n := int(v.Int())
			return &n
		}
	}
	return nil
}

func floatField(data gjson.Result, paths ...string) *float64 {
	for _, p := range paths {
		if v := data.Get(p); v.Exists() {
			f := v.Float()
			return &f
		}
	}
	return nil
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}
