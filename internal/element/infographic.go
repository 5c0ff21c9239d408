package element

// Infographic types split across two generators: template types render as
// HTML, dynamic types as SVG.
var InfographicTemplateTypes = map[string]bool{
	"pyramid": true, "funnel": true, "concentric_circles": true,
	"concept_spread": true, "venn": true, "comparison": true,
}

var InfographicDynamicTypes = map[string]bool{
	"timeline": true, "process": true, "statistics": true, "hierarchy": true,
	"list": true, "cycle": true, "matrix": true, "roadmap": true,
}

func ValidInfographicType(t string) bool {
	return InfographicTemplateTypes[t] || InfographicDynamicTypes[t]
}

var InfographicColorSchemes = map[string]bool{
	"professional": true, "vibrant": true, "pastel": true,
	"monochrome": true, "warm": true, "cool": true,
}

var InfographicIconStyles = map[string]bool{
	"outlined": true, "filled": true, "duotone": true, "minimal": true,
}

type InfographicGenerateRequest struct {
	ElementID       string                   `json:"element_id" binding:"required"`
	Context         Context                  `json:"context" binding:"required"`
	Position        GridPosition             `json:"position" binding:"required"`
	Prompt          string                   `json:"prompt"`
	InfographicType string                   `json:"infographic_type" binding:"required"`
	ColorScheme     string                   `json:"color_scheme"`
	IconStyle       string                   `json:"icon_style"`
	ItemCount       *int                     `json:"item_count,omitempty"`
	Items           []map[string]interface{} `json:"items,omitempty"`
	GenerateData    bool                     `json:"generate_data"`
}

type InfographicGenerateResponse struct {
	Success            bool         `json:"success"`
	ElementID          string       `json:"element_id"`
	HTMLContent        string       `json:"html_content,omitempty"`
	SVGContent         string       `json:"svg_content,omitempty"`
	GeneratorType      string       `json:"generator_type,omitempty"`
	InfographicType    string       `json:"infographic_type,omitempty"`
	ItemCount          *int         `json:"item_count,omitempty"`
	ColorSchemeApplied string       `json:"color_scheme_applied,omitempty"`
	Error              *ErrorDetail `json:"error,omitempty"`
	Injected           *bool        `json:"injected,omitempty"`
	InjectionError     string       `json:"injection_error,omitempty"`
}
