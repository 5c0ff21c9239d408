// Package element defines the orchestrator-facing contract: the shared
// context and position types, the six request variants, and the response
// envelopes returned to the frontend. Backend-native wire bodies never appear
// here; each service package builds its own.
package element

import (
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

// Type identifies one of the six element variants.
type Type string

const (
	TypeChart       Type = "chart"
	TypeDiagram     Type = "diagram"
	TypeText        Type = "text"
	TypeTable       Type = "table"
	TypeImage       Type = "image"
	TypeInfographic Type = "infographic"
)

// Context identifies the target slide and carries generation context.
// Immutable once received.
type Context struct {
	PresentationID    string   `json:"presentation_id" binding:"required"`
	PresentationTitle string   `json:"presentation_title" binding:"required"`
	SlideID           string   `json:"slide_id" binding:"required"`
	SlideIndex        int      `json:"slide_index"`
	SlideCount        int      `json:"slide_count"`
	SlideTitle        string   `json:"slide_title,omitempty"`
	Industry          string   `json:"industry,omitempty"`
	TimeFrame         string   `json:"time_frame,omitempty"`
	PresentationTheme string   `json:"presentation_theme,omitempty"`
	BrandColors       []string `json:"brand_colors,omitempty"`
}

// Validate checks the required fields beyond what JSON binding enforces.
// SlideCount is optional at the frontend boundary but required downstream, so
// it is defaulted rather than rejected.
func (c *Context) Validate() error {
	if c.PresentationID == "" || c.PresentationTitle == "" || c.SlideID == "" {
		return apperrors.New(apperrors.CodeInvalidRequest,
			"presentation_id, presentation_title and slide_id are required")
	}
	if c.SlideIndex < 0 {
		return apperrors.New(apperrors.CodeInvalidRequest, "slide_index must be >= 0")
	}
	if c.SlideCount < 1 {
		c.SlideCount = 1
	}
	return nil
}

// GridPosition is a CSS-grid span on the Layout Service's 24x14 grid, each
// value a "start/end" pair of 1-indexed integers with end > start.
type GridPosition struct {
	GridRow    string `json:"grid_row" binding:"required"`
	GridColumn string `json:"grid_column" binding:"required"`
}

// ErrorDetail is the canonical error shape returned to the frontend.
type ErrorDetail struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	Suggestion string `json:"suggestion,omitempty"`
}

// FromAppError converts an internal error into the wire shape. Anything that
// is not an AppError is reported as INTERNAL_ERROR, never silently dropped.
func FromAppError(err error) *ErrorDetail {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return &ErrorDetail{
			Code:       appErr.Code,
			Message:    appErr.Message,
			Retryable:  appErr.Retryable(),
			Suggestion: appErr.Suggestion,
		}
	}
	return &ErrorDetail{
		Code:      apperrors.CodeInternal,
		Message:   err.Error(),
		Retryable: false,
	}
}
