package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/grid"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

func testRequest() *element.ImageGenerateRequest {
	return &element.ImageGenerateRequest{
		ElementID: "el-1",
		Context: element.Context{
			PresentationID:    "pres-1",
			PresentationTitle: "Launch Deck",
			SlideID:           "slide-1",
			BrandColors:       []string{"#FF0000"},
		},
		Position: element.GridPosition{GridRow: "2/10", GridColumn: "3/15"},
		Prompt:   "rocket over city skyline",
	}
}

func TestBuildGenerateBodyDefaults(t *testing.T) {
	body := BuildGenerateBody(testRequest(), grid.Dimensions{Width: 6, Height: 5})

	config := body["config"].(map[string]interface{})
	assert.Equal(t, "realistic", config["style"])
	assert.Equal(t, "standard", config["quality"])
	assert.Equal(t, "16:9", config["aspectRatio"])

	ctx := body["context"].(map[string]interface{})
	assert.Equal(t, []string{"#FF0000"}, ctx["brandColors"])

	_, hasOptions := body["options"]
	assert.False(t, hasOptions)
}

func TestBuildGenerateBodyOptions(t *testing.T) {
	seed := int64(1234)
	req := testRequest()
	req.NegativePrompt = "no text"
	req.Seed = &seed
	req.Quality = "high"

	body := BuildGenerateBody(req, grid.Dimensions{Width: 6, Height: 5})

	options := body["options"].(map[string]interface{})
	assert.Equal(t, "no text", options["negativePrompt"])
	assert.Equal(t, seed, options["seed"])
	assert.Equal(t, "high", body["config"].(map[string]interface{})["quality"])
}

func TestCreditCost(t *testing.T) {
	assert.Equal(t, 1, CreditCost("draft"))
	assert.Equal(t, 8, CreditCost("ultra"))
	assert.Equal(t, 2, CreditCost("nonsense"))
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/image/generate", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": {
				"imageUrl": "https://cdn.example.com/img.png",
				"altText": "a rocket",
				"width": 1024, "height": 576,
				"creditsUsed": 2, "creditsRemaining": 98,
				"seedUsed": 777
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Generate(context.Background(), testRequest(), grid.Dimensions{Width: 6, Height: 5})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/img.png", result.ImageURL)
	assert.Equal(t, "a rocket", result.AltText)
	require.NotNil(t, result.CreditsRemaining)
	assert.Equal(t, 98, *result.CreditsRemaining)
	require.NotNil(t, result.SeedUsed)
	assert.Equal(t, int64(777), *result.SeedUsed)
}

func TestGenerateAltTextFallsBackToPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"imageUrl": "https://x/img.png"}}`))
	}))
	defer srv.Close()

	req := testRequest()
	req.Prompt = strings.Repeat("long ", 40)

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Generate(context.Background(), req, grid.Dimensions{Width: 6, Height: 5})
	require.NoError(t, err)
	assert.Len(t, result.AltText, 100)
}

func TestGenerateCreditsExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"message": "no credits left"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	_, err := c.Generate(context.Background(), testRequest(), grid.Dimensions{Width: 6, Height: 5})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeCreditsExhausted))
	assert.False(t, err.(*apperrors.AppError).Retryable())
}

func TestCreditsUnknownPresentationGetsAllowance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	body, err := c.Credits(context.Background(), "brand-new")
	require.NoError(t, err)

	parsed := gjson.ParseBytes(body)
	assert.Equal(t, int64(100), parsed.Get("remaining").Int())
	assert.Equal(t, int64(0), parsed.Get("used").Int())
	assert.Equal(t, int64(4), parsed.Get("qualityCosts.high").Int())
}

func TestStylesFallback(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, logger.Nop())
	parsed := gjson.ParseBytes(c.Styles(context.Background()))

	assert.True(t, parsed.Get("_fallback").Bool())
	assert.Len(t, parsed.Get("styles").Array(), 5)
	assert.Equal(t, "standard", parsed.Get("defaultQuality").String())
}
