package element

var TablePresets = map[string]bool{
	"minimal": true, "bordered": true, "striped": true,
	"modern": true, "professional": true, "colorful": true,
}

var TableTransformations = map[string]bool{
	"add_column": true, "add_row": true, "remove_column": true,
	"remove_row": true, "sort": true, "summarize": true, "transpose": true,
	"expand": true, "merge_cells": true, "split_column": true,
}

type TableGenerateRequest struct {
	ElementID string       `json:"element_id" binding:"required"`
	Context   Context      `json:"context" binding:"required"`
	Position  GridPosition `json:"position" binding:"required"`
	Prompt    string       `json:"prompt"`
	Preset    string       `json:"preset"`
	Columns   *int         `json:"columns,omitempty"`
	Rows      *int         `json:"rows,omitempty"`
	HasHeader *bool        `json:"has_header,omitempty"`
	Data      [][]string   `json:"data,omitempty"`
}

type TableGenerateResponse struct {
	Success        bool         `json:"success"`
	ElementID      string       `json:"element_id"`
	HTMLContent    string       `json:"html_content,omitempty"`
	Columns        *int         `json:"columns,omitempty"`
	Rows           *int         `json:"rows,omitempty"`
	PresetApplied  string       `json:"preset_applied,omitempty"`
	Error          *ErrorDetail `json:"error,omitempty"`
	Injected       *bool        `json:"injected,omitempty"`
	InjectionError string       `json:"injection_error,omitempty"`
}

// TableTransformOptions carries the per-transformation parameters; only the
// fields relevant to the chosen transformation are set.
type TableTransformOptions struct {
	Content          string           `json:"content,omitempty"`
	Position         *int             `json:"position,omitempty"`
	ColumnIndex      *int             `json:"column_index,omitempty"`
	RowIndex         *int             `json:"row_index,omitempty"`
	SortColumn       *int             `json:"sort_column,omitempty"`
	SortDirection    string           `json:"sort_direction,omitempty"`
	SummarizeType    string           `json:"summarize_type,omitempty"`
	SummarizeColumns []int            `json:"summarize_columns,omitempty"`
	FocusArea        string           `json:"focus_area,omitempty"`
	Cells            []map[string]int `json:"cells,omitempty"`
	SplitCount       *int             `json:"split_count,omitempty"`
}

type TableTransformRequest struct {
	ElementID      string                 `json:"element_id" binding:"required"`
	Context        Context                `json:"context" binding:"required"`
	Position       GridPosition           `json:"position" binding:"required"`
	SourceContent  string                 `json:"source_content" binding:"required"`
	Transformation string                 `json:"transformation" binding:"required"`
	Options        *TableTransformOptions `json:"options,omitempty"`
}

type TableTransformResponse struct {
	Success               bool         `json:"success"`
	ElementID             string       `json:"element_id"`
	HTMLContent           string       `json:"html_content,omitempty"`
	TransformationApplied string       `json:"transformation_applied,omitempty"`
	Columns               *int         `json:"columns,omitempty"`
	Rows                  *int         `json:"rows,omitempty"`
	Error                 *ErrorDetail `json:"error,omitempty"`
	Injected              *bool        `json:"injected,omitempty"`
	InjectionError        string       `json:"injection_error,omitempty"`
}

type TableAnalyzeRequest struct {
	ElementID     string  `json:"element_id" binding:"required"`
	Context       Context `json:"context" binding:"required"`
	SourceContent string  `json:"source_content" binding:"required"`
	AnalysisType  string  `json:"analysis_type"`
}

type TableAnalyzeResponse struct {
	Success         bool                   `json:"success"`
	ElementID       string                 `json:"element_id"`
	Summary         string                 `json:"summary,omitempty"`
	Statistics      map[string]interface{} `json:"statistics,omitempty"`
	Trends          []string               `json:"trends,omitempty"`
	Recommendations []string               `json:"recommendations,omitempty"`
	Error           *ErrorDetail           `json:"error,omitempty"`
}
