package element

var ImageStyles = map[string]bool{
	"realistic": true, "illustration": true, "abstract": true,
	"minimal": true, "photo": true,
}

var ImageAspectRatios = map[string]bool{
	"1:1": true, "16:9": true, "9:16": true, "21:9": true, "4:3": true,
}

// Quality tiers with their resolution and credit cost.
var ImageQualities = map[string]struct {
	Resolution int
	Credits    int
}{
	"draft":    {512, 1},
	"standard": {1024, 2},
	"high":     {1536, 4},
	"ultra":    {2048, 8},
}

type ImageGenerateRequest struct {
	ElementID      string       `json:"element_id" binding:"required"`
	Context        Context      `json:"context" binding:"required"`
	Position       GridPosition `json:"position" binding:"required"`
	Prompt         string       `json:"prompt"`
	Style          string       `json:"style"`
	Quality        string       `json:"quality"`
	AspectRatio    string       `json:"aspect_ratio"`
	NegativePrompt string       `json:"negative_prompt,omitempty"`
	Seed           *int64       `json:"seed,omitempty"`
}

type ImageGenerateResponse struct {
	Success          bool         `json:"success"`
	ElementID        string       `json:"element_id"`
	ImageURL         string       `json:"image_url,omitempty"`
	ImageBase64      string       `json:"image_base64,omitempty"`
	AltText          string       `json:"alt_text,omitempty"`
	Width            *int         `json:"width,omitempty"`
	Height           *int         `json:"height,omitempty"`
	StyleApplied     string       `json:"style_applied,omitempty"`
	QualityApplied   string       `json:"quality_applied,omitempty"`
	CreditsUsed      *int         `json:"credits_used,omitempty"`
	CreditsRemaining *int         `json:"credits_remaining,omitempty"`
	SeedUsed         *int64       `json:"seed_used,omitempty"`
	Error            *ErrorDetail `json:"error,omitempty"`
	Injected         *bool        `json:"injected,omitempty"`
	InjectionError   string       `json:"injection_error,omitempty"`
}
