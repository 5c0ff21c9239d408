package table

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
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

func testContext() element.Context {
	return element.Context{
		PresentationID:    "pres-1",
		PresentationTitle: "Budget",
		SlideID:           "slide-4",
		SlideCount:        8,
	}
}

func TestBuildGenerateBodyDefaults(t *testing.T) {
	req := &element.TableGenerateRequest{
		ElementID: "el-1",
		Context:   testContext(),
		Prompt:    "cost breakdown",
	}
	body := BuildGenerateBody(req, grid.Dimensions{Width: 8, Height: 4})

	assert.Equal(t, "professional", body["preset"])
	assert.Equal(t, true, body["hasHeader"])
	_, hasColumns := body["columns"]
	assert.False(t, hasColumns)
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestBuildGenerateBodyExplicitShape(t *testing.T) {
	cols, rows := 4, 6
	noHeader := false
	req := &element.TableGenerateRequest{
		ElementID: "el-1",
		Context:   testContext(),
		Preset:    "striped",
		Columns:   &cols,
		Rows:      &rows,
		HasHeader: &noHeader,
		Data:      [][]string{{"a", "b"}},
	}
	body := BuildGenerateBody(req, grid.Dimensions{Width: 8, Height: 4})

	assert.Equal(t, "striped", body["preset"])
	assert.Equal(t, false, body["hasHeader"])
	assert.Equal(t, 4, body["columns"])
	assert.Equal(t, 6, body["rows"])
	assert.Equal(t, [][]string{{"a", "b"}}, body["data"])
}

func TestBuildTransformBodyOptions(t *testing.T) {
	sortCol := 2
	req := &element.TableTransformRequest{
		ElementID:      "el-2",
		Context:        testContext(),
		SourceContent:  "<table></table>",
		Transformation: "sort",
		Options: &element.TableTransformOptions{
			SortColumn:    &sortCol,
			SortDirection: "desc",
		},
	}
	body := BuildTransformBody(req, grid.Dimensions{Width: 8, Height: 4})

	options := body["options"].(map[string]interface{})
	assert.Equal(t, 2, options["sortColumn"])
	assert.Equal(t, "desc", options["sortDirection"])
	_, hasRowIndex := options["rowIndex"]
	assert.False(t, hasRowIndex)

	req.Options = nil
	body = BuildTransformBody(req, grid.Dimensions{Width: 8, Height: 4})
	_, hasOptions := body["options"]
	assert.False(t, hasOptions)
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/table/generate", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"htmlContent": "<table><tr><td>x</td></tr></table>", "columns": 3, "rows": 5}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Generate(context.Background(), &element.TableGenerateRequest{
		ElementID: "el-1", Context: testContext(), Prompt: "costs",
	}, grid.Dimensions{Width: 8, Height: 4})
	require.NoError(t, err)

	assert.Contains(t, result.HTMLContent, "<table>")
	require.NotNil(t, result.Columns)
	assert.Equal(t, 3, *result.Columns)
	require.NotNil(t, result.Rows)
	assert.Equal(t, 5, *result.Rows)
}

func TestGenerateBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "too many requests"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	_, err := c.Generate(context.Background(), &element.TableGenerateRequest{
		ElementID: "el-1", Context: testContext(),
	}, grid.Dimensions{Width: 8, Height: 4})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeRateLimited))
}

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/table/analyze", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": {
				"summary": "costs trend up",
				"statistics": {"mean": 42.5},
				"trends": ["upward"],
				"recommendations": ["cut travel"]
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, logger.Nop())
	result, err := c.Analyze(context.Background(), &element.TableAnalyzeRequest{
		ElementID: "el-3", Context: testContext(), SourceContent: "<table></table>",
	})
	require.NoError(t, err)

	assert.Equal(t, "costs trend up", result.Summary)
	assert.Equal(t, 42.5, result.Statistics["mean"])
	assert.Equal(t, []string{"upward"}, result.Trends)
	assert.Equal(t, []string{"cut travel"}, result.Recommendations)
}

func TestPresets(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, logger.Nop())
	parsed := gjson.ParseBytes(c.Presets())

	assert.Equal(t, "professional", parsed.Get("defaultPreset").String())
	assert.Len(t, parsed.Get("presets").Array(), 6)
}
