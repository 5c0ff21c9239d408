package element

var TextTones = map[string]bool{
	"professional": true, "conversational": true, "academic": true,
	"persuasive": true, "casual": true, "technical": true,
}

var TextFormats = map[string]bool{
	"paragraph": true, "bullets": true, "numbered": true,
	"headline": true, "quote": true, "mixed": true,
}

var TextTransformations = map[string]bool{
	"expand": true, "condense": true, "simplify": true, "formalize": true,
	"casualize": true, "bulletize": true, "paragraphize": true,
	"rephrase": true, "proofread": true, "translate": true,
}

type TextGenerateRequest struct {
	ElementID string       `json:"element_id" binding:"required"`
	Context   Context      `json:"context" binding:"required"`
	Position  GridPosition `json:"position" binding:"required"`
	Prompt    string       `json:"prompt"`
	Tone      string       `json:"tone"`
	Format    string       `json:"format"`
	MaxWords  *int         `json:"max_words,omitempty"`
	Language  string       `json:"language"`
}

type TextGenerateResponse struct {
	Success        bool         `json:"success"`
	ElementID      string       `json:"element_id"`
	HTMLContent    string       `json:"html_content,omitempty"`
	PlainText      string       `json:"plain_text,omitempty"`
	WordCount      *int         `json:"word_count,omitempty"`
	CharacterCount *int         `json:"character_count,omitempty"`
	Error          *ErrorDetail `json:"error,omitempty"`
	Injected       *bool        `json:"injected,omitempty"`
	InjectionError string       `json:"injection_error,omitempty"`
}

type TextTransformRequest struct {
	ElementID      string       `json:"element_id" binding:"required"`
	Context        Context      `json:"context" binding:"required"`
	Position       GridPosition `json:"position" binding:"required"`
	SourceContent  string       `json:"source_content" binding:"required"`
	Transformation string       `json:"transformation" binding:"required"`
	TargetLanguage string       `json:"target_language,omitempty"`
	Intensity      *float64     `json:"intensity,omitempty"`
}

type TextTransformResponse struct {
	Success               bool         `json:"success"`
	ElementID             string       `json:"element_id"`
	HTMLContent           string       `json:"html_content,omitempty"`
	TransformationApplied string       `json:"transformation_applied,omitempty"`
	WordCount             *int         `json:"word_count,omitempty"`
	Error                 *ErrorDetail `json:"error,omitempty"`
	Injected              *bool        `json:"injected,omitempty"`
	InjectionError        string       `json:"injection_error,omitempty"`
}

type TextAutofitRequest struct {
	ElementID         string       `json:"element_id" binding:"required"`
	Context           Context      `json:"context" binding:"required"`
	Position          GridPosition `json:"position" binding:"required"`
	SourceContent     string       `json:"source_content" binding:"required"`
	TargetCharacters  *int         `json:"target_characters,omitempty"`
	PreserveStructure *bool        `json:"preserve_structure,omitempty"`
}

type TextAutofitResponse struct {
	Success             bool         `json:"success"`
	ElementID           string       `json:"element_id"`
	HTMLContent         string       `json:"html_content,omitempty"`
	OriginalLength      *int         `json:"original_length,omitempty"`
	FittedLength        *int         `json:"fitted_length,omitempty"`
	ReductionPercentage *float64     `json:"reduction_percentage,omitempty"`
	Error               *ErrorDetail `json:"error,omitempty"`
	Injected            *bool        `json:"injected,omitempty"`
	InjectionError      string       `json:"injection_error,omitempty"`
}
