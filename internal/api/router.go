package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/config"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/limiter"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/orchestrator"
)

func NewRouter(svc *orchestrator.Service, cfg *config.Config, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(log))

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, requestIDHeader)
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	handler := NewHandler(svc, log)
	genLimit := generationLimit(limiter.NewKeyed(cfg.Limiter.GenerationPerMinute))
	metaLimit := metadataLimit(limiter.NewGlobal(cfg.Limiter.MetadataPerMinute))

	r.GET("/health", handler.Health)
	r.GET("/", catalog)

	gen := r.Group("/api/generate")
	{
		gen.POST("/chart", genLimit, handler.GenerateChart)
		gen.POST("/chart/validate", handler.ValidateChart)
		gen.GET("/chart/constraints", metaLimit, handler.ChartConstraints)
		gen.GET("/chart/palettes", metaLimit, handler.ChartPalettes)
		gen.POST("/chart/clear-cache", handler.ClearCache("chart"))

		gen.POST("/diagram", genLimit, handler.GenerateDiagram)
		gen.GET("/diagram/status/:job_id", handler.DiagramStatus)
		gen.GET("/diagram/types", metaLimit, handler.DiagramTypes)
		gen.POST("/diagram/clear-cache", handler.ClearCache("diagram"))

		gen.POST("/text", genLimit, handler.GenerateText)
		gen.POST("/text/transform", genLimit, handler.TransformText)
		gen.POST("/text/autofit", genLimit, handler.AutofitText)
		gen.GET("/text/constraints/:width/:height", metaLimit, handler.TextConstraints)
		gen.POST("/text/clear-cache", handler.ClearCache("text"))

		gen.POST("/table", genLimit, handler.GenerateTable)
		gen.POST("/table/transform", genLimit, handler.TransformTable)
		gen.POST("/table/analyze", genLimit, handler.AnalyzeTable)
		gen.GET("/table/presets", metaLimit, handler.TablePresets)

		gen.POST("/image", genLimit, handler.GenerateImage)
		gen.GET("/image/styles", metaLimit, handler.ImageStyles)
		gen.GET("/image/credits/:presentation_id", metaLimit, handler.ImageCredits)
		gen.POST("/image/clear-cache", handler.ClearCache("image"))

		gen.POST("/infographic", genLimit, handler.GenerateInfographic)
		gen.GET("/infographic/types", metaLimit, handler.InfographicTypes)
		gen.POST("/infographic/clear-cache", handler.ClearCache("infographic"))

		gen.POST("/batch", genLimit, handler.GenerateBatch)
		gen.POST("/clear-cache", handler.ClearCache("all"))
	}

	return r
}

// catalog lists the API surface so the root URL doubles as documentation.
func catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "visual-elements-orchestrator",
		"endpoints": gin.H{
			"chart": []string{
				"POST /api/generate/chart",
				"POST /api/generate/chart/validate",
				"GET /api/generate/chart/constraints",
				"GET /api/generate/chart/palettes",
			},
			"diagram": []string{
				"POST /api/generate/diagram",
				"GET /api/generate/diagram/status/{job_id}",
				"GET /api/generate/diagram/types",
			},
			"text": []string{
				"POST /api/generate/text",
				"POST /api/generate/text/transform",
				"POST /api/generate/text/autofit",
				"GET /api/generate/text/constraints/{width}/{height}",
			},
			"table": []string{
				"POST /api/generate/table",
				"POST /api/generate/table/transform",
				"POST /api/generate/table/analyze",
				"GET /api/generate/table/presets",
			},
			"image": []string{
				"POST /api/generate/image",
				"GET /api/generate/image/styles",
				"GET /api/generate/image/credits/{presentation_id}",
			},
			"infographic": []string{
				"POST /api/generate/infographic",
				"GET /api/generate/infographic/types",
			},
			"batch":  []string{"POST /api/generate/batch"},
			"health": []string{"GET /health"},
		},
	})
}
