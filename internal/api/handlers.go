package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/orchestrator"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

type Handler struct {
	svc *orchestrator.Service
	log *logger.Logger
}

func NewHandler(svc *orchestrator.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// badRequest reports a JSON binding failure in the same envelope shape the
// pipelines use, so clients parse one error format.
func badRequest(c *gin.Context, err error) {
	appErr := apperrors.New(apperrors.CodeInvalidRequest, err.Error())
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   element.FromAppError(appErr),
	})
}

func (h *Handler) GenerateChart(c *gin.Context) {
	var req element.ChartGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.GenerateChart(c.Request.Context(), &req))
}

func (h *Handler) ValidateChart(c *gin.Context) {
	var req element.ChartGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.ValidateChart(&req))
}

func (h *Handler) GenerateDiagram(c *gin.Context) {
	var req element.DiagramGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.GenerateDiagram(c.Request.Context(), &req))
}

func (h *Handler) DiagramStatus(c *gin.Context) {
	status, err := h.svc.Diagrams.Status(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   element.FromAppError(err),
		})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) GenerateText(c *gin.Context) {
	var req element.TextGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.GenerateText(c.Request.Context(), &req))
}

func (h *Handler) TransformText(c *gin.Context) {
	var req element.TextTransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.TransformText(c.Request.Context(), &req))
}

func (h *Handler) AutofitText(c *gin.Context) {
	var req element.TextAutofitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.AutofitText(c.Request.Context(), &req))
}

func (h *Handler) GenerateTable(c *gin.Context) {
	var req element.TableGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.GenerateTable(c.Request.Context(), &req))
}

func (h *Handler) TransformTable(c *gin.Context) {
	var req element.TableTransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.TransformTable(c.Request.Context(), &req))
}

func (h *Handler) AnalyzeTable(c *gin.Context) {
	var req element.TableAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.AnalyzeTable(c.Request.Context(), &req))
}

func (h *Handler) GenerateImage(c *gin.Context) {
	var req element.ImageGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.GenerateImage(c.Request.Context(), &req))
}

func (h *Handler) GenerateInfographic(c *gin.Context) {
	var req element.InfographicGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.GenerateInfographic(c.Request.Context(), &req))
}

func (h *Handler) GenerateBatch(c *gin.Context) {
	var req element.BatchGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Elements) == 0 {
		badRequest(c, apperrors.New(apperrors.CodeInvalidRequest, "elements must not be empty"))
		return
	}
	c.JSON(http.StatusOK, h.svc.GenerateBatch(c.Request.Context(), &req))
}

// Metadata endpoints relay the backend document verbatim, falling back to
// the static catalogs when the backend is unreachable.

func (h *Handler) ChartConstraints(c *gin.Context) {
	rawJSON(c, h.svc.Charts.Constraints(c.Request.Context()))
}

func (h *Handler) ChartPalettes(c *gin.Context) {
	rawJSON(c, h.svc.Charts.Palettes(c.Request.Context()))
}

func (h *Handler) DiagramTypes(c *gin.Context) {
	rawJSON(c, h.svc.Diagrams.Types(c.Request.Context()))
}

func (h *Handler) TextConstraints(c *gin.Context) {
	width, err := strconv.Atoi(c.Param("width"))
	if err != nil || width < 1 || width > 12 {
		badRequest(c, apperrors.New(apperrors.CodeInvalidRequest, "width must be 1-12"))
		return
	}
	height, err := strconv.Atoi(c.Param("height"))
	if err != nil || height < 1 || height > 8 {
		badRequest(c, apperrors.New(apperrors.CodeInvalidRequest, "height must be 1-8"))
		return
	}
	rawJSON(c, h.svc.Texts.Constraints(c.Request.Context(), width, height))
}

func (h *Handler) TablePresets(c *gin.Context) {
	rawJSON(c, h.svc.Tables.Presets())
}

func (h *Handler) ImageStyles(c *gin.Context) {
	rawJSON(c, h.svc.Images.Styles(c.Request.Context()))
}

func (h *Handler) ImageCredits(c *gin.Context) {
	doc, err := h.svc.Images.Credits(c.Request.Context(), c.Param("presentation_id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   element.FromAppError(err),
		})
		return
	}
	rawJSON(c, doc)
}

func (h *Handler) InfographicTypes(c *gin.Context) {
	rawJSON(c, h.svc.Infographics.Types(c.Request.Context()))
}

// ClearCache drops one client's cached metadata, or all of them for the
// batch scope.
func (h *Handler) ClearCache(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch scope {
		case "chart":
			h.svc.Charts.ClearCache()
		case "diagram":
			h.svc.Diagrams.ClearCache()
		case "text":
			h.svc.Texts.ClearCache()
		case "image":
			h.svc.Images.ClearCache()
		case "infographic":
			h.svc.Infographics.ClearCache()
		default:
			h.svc.ClearCaches()
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cleared": scope})
	}
}

func (h *Handler) Health(c *gin.Context) {
	layoutStatus := "up"
	if err := h.svc.Layout.HealthCheck(c.Request.Context()); err != nil {
		layoutStatus = "down"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "visual-elements-orchestrator",
		"layout":  layoutStatus,
		"backends": gin.H{
			"chart":       h.svc.Charts.BaseURL(),
			"diagram":     h.svc.Diagrams.BaseURL(),
			"text":        h.svc.Texts.BaseURL(),
			"table":       h.svc.Tables.BaseURL(),
			"image":       h.svc.Images.BaseURL(),
			"infographic": h.svc.Infographics.BaseURL(),
			"layout":      h.svc.Layout.BaseURL(),
		},
	})
}

func rawJSON(c *gin.Context, doc json.RawMessage) {
	c.Data(http.StatusOK, "application/json", doc)
}
