package infographic

import (
	"context"
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

func testRequest() *element.InfographicGenerateRequest {
	return &element.InfographicGenerateRequest{
		ElementID: "el-1",
		Context: element.Context{
			PresentationID:    "pres-1",
			PresentationTitle: "Sales Funnel",
			SlideID:           "slide-6",
			Industry:          "saas",
		},
		Position:        element.GridPosition{GridRow: "2/12", GridColumn: "3/17"},
		Prompt:          "lead conversion stages",
		InfographicType: "funnel",
	}
}

func TestBuildGenerateBodyScalesConstraints(t *testing.T) {
	body := BuildGenerateBody(testRequest(), grid.Dimensions{Width: 7, Height: 5})

	assert.Equal(t, "funnel", body["type"])

	constraints := body["constraints"].(map[string]interface{})
	assert.Equal(t, 18, constraints["gridWidth"])
	assert.Equal(t, 11, constraints["gridHeight"])

	style := body["style"].(map[string]interface{})
	assert.Equal(t, "professional", style["colorScheme"])
	assert.Equal(t, "outlined", style["iconStyle"])
	assert.Equal(t, "balanced", style["density"])
	assert.Equal(t, "auto", style["orientation"])

	content := body["contentOptions"].(map[string]interface{})
	assert.Equal(t, true, content["includeIcons"])
	assert.Equal(t, false, content["includeNumbers"])
	_, hasItemCount := content["itemCount"]
	assert.False(t, hasItemCount)

	ctx := body["context"].(map[string]interface{})
	assert.Equal(t, "saas", ctx["industry"])
}

func TestBuildGenerateBodyItemCount(t *testing.T) {
	n := 4
	req := testRequest()
	req.ItemCount = &n
	req.ColorScheme = "warm"

	body := BuildGenerateBody(req, grid.Dimensions{Width: 6, Height: 4})
	content := body["contentOptions"].(map[string]interface{})
	assert.Equal(t, 4, content["itemCount"])
	assert.Equal(t, "warm", body["style"].(map[string]interface{})["colorScheme"])
}

func TestGeneratorFor(t *testing.T) {
	assert.Equal(t, "template", GeneratorFor("pyramid"))
	assert.Equal(t, "template", GeneratorFor("venn"))
	assert.Equal(t, "svg", GeneratorFor("timeline"))
	assert.Equal(t, "svg", GeneratorFor("matrix"))
}

func TestGenerateTemplateType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/illustrator/generate", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"htmlContent": "<div>funnel</div>", "itemCount": 4}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Generate(context.Background(), testRequest(), grid.Dimensions{Width: 7, Height: 5})
	require.NoError(t, err)

	assert.Equal(t, "<div>funnel</div>", result.HTMLContent)
	assert.Empty(t, result.SVGContent)
	assert.Equal(t, "template", result.GeneratorType)
	require.NotNil(t, result.ItemCount)
	assert.Equal(t, 4, *result.ItemCount)
}

func TestGenerateDynamicType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"svg_content": "<svg>timeline</svg>"}}`))
	}))
	defer srv.Close()

	req := testRequest()
	req.InfographicType = "timeline"

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Generate(context.Background(), req, grid.Dimensions{Width: 8, Height: 3})
	require.NoError(t, err)

	assert.Equal(t, "<svg>timeline</svg>", result.SVGContent)
	assert.Equal(t, "svg", result.GeneratorType)
}

func TestTypesFallback(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, logger.Nop())
	parsed := gjson.ParseBytes(c.Types(context.Background()))

	assert.True(t, parsed.Get("_fallback").Bool())
	assert.Len(t, parsed.Get("types").Array(), 14)
	assert.Len(t, parsed.Get("colorSchemes").Array(), 6)
}
