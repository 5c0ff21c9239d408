package element

// Chart types supported by the chart backend.
const (
	ChartBar       = "bar"
	ChartLine      = "line"
	ChartPie       = "pie"
	ChartDoughnut  = "doughnut"
	ChartArea      = "area"
	ChartScatter   = "scatter"
	ChartRadar     = "radar"
	ChartPolarArea = "polarArea"
	ChartBubble    = "bubble"
	ChartTreemap   = "treemap"
)

var ChartTypes = map[string]bool{
	ChartBar: true, ChartLine: true, ChartPie: true, ChartDoughnut: true,
	ChartArea: true, ChartScatter: true, ChartRadar: true,
	ChartPolarArea: true, ChartBubble: true, ChartTreemap: true,
}

var ChartPalettes = map[string]bool{
	"default": true, "professional": true, "vibrant": true, "pastel": true,
	"monochrome": true, "sequential": true, "diverging": true, "categorical": true,
}

type ChartDataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type ChartGenerateRequest struct {
	ElementID      string           `json:"element_id" binding:"required"`
	Context        Context          `json:"context" binding:"required"`
	Position       GridPosition     `json:"position" binding:"required"`
	Prompt         string           `json:"prompt"`
	ChartType      string           `json:"chart_type" binding:"required"`
	Palette        string           `json:"palette"`
	Data           []ChartDataPoint `json:"data,omitempty"`
	GenerateData   bool             `json:"generate_data"`
	ShowLegend     *bool            `json:"show_legend,omitempty"`
	ShowDataLabels bool             `json:"show_data_labels"`
	LegendPosition string           `json:"legend_position,omitempty"`
	XLabel         string           `json:"x_label,omitempty"`
	YLabel         string           `json:"y_label,omitempty"`
	Stacked        bool             `json:"stacked"`
}

type ChartMetadata struct {
	ChartType      string             `json:"chart_type"`
	DataPointCount int                `json:"data_point_count"`
	DatasetCount   int                `json:"dataset_count"`
	SuggestedTitle string             `json:"suggested_title,omitempty"`
	DataRange      map[string]float64 `json:"data_range,omitempty"`
}

type ChartInsights struct {
	Trend      string   `json:"trend,omitempty"`
	Outliers   []int    `json:"outliers,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

type ChartGenerateResponse struct {
	Success        bool                   `json:"success"`
	ElementID      string                 `json:"element_id"`
	ChartConfig    map[string]interface{} `json:"chart_config,omitempty"`
	RawData        map[string]interface{} `json:"raw_data,omitempty"`
	Metadata       *ChartMetadata         `json:"metadata,omitempty"`
	Insights       *ChartInsights         `json:"insights,omitempty"`
	GenerationID   string                 `json:"generation_id,omitempty"`
	Error          *ErrorDetail           `json:"error,omitempty"`
	Injected       *bool                  `json:"injected,omitempty"`
	InjectionError string                 `json:"injection_error,omitempty"`
}

// ChartValidateResponse is the dry-run validation result.
type ChartValidateResponse struct {
	Valid          bool           `json:"valid"`
	GridDimensions map[string]int `json:"grid_dimensions,omitempty"`
	ChartType      string         `json:"chart_type,omitempty"`
	Palette        string         `json:"palette,omitempty"`
	HasData        bool           `json:"has_data"`
	GenerateData   bool           `json:"generate_data"`
	Error          *ErrorDetail   `json:"error,omitempty"`
}
