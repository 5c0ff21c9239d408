package text

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/grid"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
)

func testContext() element.Context {
	return element.Context{
		PresentationID:    "pres-1",
		PresentationTitle: "Roadmap",
		SlideID:           "slide-2",
		SlideIndex:        1,
		SlideCount:        12,
		SlideTitle:        "H2 Goals",
	}
}

func TestBuildGenerateBodyDefaults(t *testing.T) {
	req := &element.TextGenerateRequest{
		ElementID: "el-1",
		Context:   testContext(),
		Prompt:    "summarize goals",
	}
	body := BuildGenerateBody(req, grid.Dimensions{Width: 6, Height: 2})

	options := body["options"].(map[string]interface{})
	assert.Equal(t, "professional", options["tone"])
	assert.Equal(t, "paragraph", options["format"])
	assert.Equal(t, "en", options["language"])
	_, hasMaxWords := options["maxWords"]
	assert.False(t, hasMaxWords)

	ctx := body["context"].(map[string]interface{})
	assert.Equal(t, 12, ctx["slideCount"])
	assert.Equal(t, "H2 Goals", ctx["slideTitle"])

	constraints := body["constraints"].(map[string]interface{})
	assert.Equal(t, 6, constraints["gridWidth"])
	assert.Equal(t, 2, constraints["gridHeight"])
}

func TestBuildTransformBodyOmitsEmptyOptions(t *testing.T) {
	req := &element.TextTransformRequest{
		ElementID:      "el-2",
		Context:        testContext(),
		SourceContent:  "<p>hello</p>",
		Transformation: "condense",
	}
	body := BuildTransformBody(req, grid.Dimensions{Width: 4, Height: 2})
	_, hasOptions := body["options"]
	assert.False(t, hasOptions)

	intensity := 0.7
	req.TargetLanguage = "de"
	req.Intensity = &intensity
	body = BuildTransformBody(req, grid.Dimensions{Width: 4, Height: 2})
	options := body["options"].(map[string]interface{})
	assert.Equal(t, "de", options["targetLanguage"])
	assert.Equal(t, 0.7, options["intensity"])
}

func TestBuildAutofitBody(t *testing.T) {
	target := 200
	req := &element.TextAutofitRequest{
		ElementID:        "el-3",
		Context:          testContext(),
		SourceContent:    "<p>long text</p>",
		TargetCharacters: &target,
	}
	body := BuildAutofitBody(req, grid.Dimensions{Width: 4, Height: 2})

	assert.Equal(t, "<p>long text</p>", body["content"])
	assert.Equal(t, "smart_condense", body["strategy"])
	assert.Equal(t, true, body["preserveFormatting"])

	targetFit := body["targetFit"].(map[string]interface{})
	assert.Equal(t, 200, targetFit["maxCharacters"])
	assert.Equal(t, 4, targetFit["gridWidth"])
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/text/generate", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "el-1", body["elementId"])
		w.Write([]byte(`{
			"success": true,
			"data": {"htmlContent": "<p>done</p>", "plainText": "done", "wordCount": 1, "characterCount": 4}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Generate(context.Background(), &element.TextGenerateRequest{
		ElementID: "el-1",
		Context:   testContext(),
		Prompt:    "hi",
	}, grid.Dimensions{Width: 6, Height: 2})
	require.NoError(t, err)

	assert.Equal(t, "<p>done</p>", result.HTMLContent)
	assert.Equal(t, "done", result.PlainText)
	require.NotNil(t, result.WordCount)
	assert.Equal(t, 1, *result.WordCount)
}

func TestGenerateToleratesSnakeCaseData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"html_content": "<p>alt</p>", "word_count": 3}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Generate(context.Background(), &element.TextGenerateRequest{
		ElementID: "el-1", Context: testContext(),
	}, grid.Dimensions{Width: 6, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, "<p>alt</p>", result.HTMLContent)
	require.NotNil(t, result.WordCount)
	assert.Equal(t, 3, *result.WordCount)
}

func TestAutofit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/text/autofit", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": {"htmlContent": "<p>fit</p>", "originalLength": 400, "fittedLength": 180, "reductionPercentage": 55.0}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Autofit(context.Background(), &element.TextAutofitRequest{
		ElementID: "el-3", Context: testContext(), SourceContent: "<p>x</p>",
	}, grid.Dimensions{Width: 4, Height: 2})
	require.NoError(t, err)

	assert.Equal(t, "<p>fit</p>", result.HTMLContent)
	require.NotNil(t, result.ReductionPercentage)
	assert.Equal(t, 55.0, *result.ReductionPercentage)
}

func TestConstraintsCachedPerSize(t *testing.T) {
	calls := map[string]int{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls[r.URL.Path]++
		w.Write([]byte(`{"success": true, "maxCharacters": 300}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	c.Constraints(context.Background(), 6, 2)
	c.Constraints(context.Background(), 6, 2)
	c.Constraints(context.Background(), 4, 4)

	assert.Equal(t, 1, calls["/api/ai/constraints/6/2"])
	assert.Equal(t, 1, calls["/api/ai/constraints/4/4"])
}

func TestConstraintsFallbackEstimates(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 1*time.Second, logger.Nop())
	body := gjson.ParseBytes(c.Constraints(context.Background(), 6, 4))

	assert.True(t, body.Get("_fallback").Bool())
	assert.Equal(t, int64(1200), body.Get("maxCharacters").Int())
	assert.Equal(t, int64(12), body.Get("maxLines").Int())
	assert.Equal(t, "16px", body.Get("recommendedFontSize").String())
	assert.Equal(t, int64(8), body.Get("maxBullets").Int())
}
