package orchestrator

import (
	"context"
	"fmt"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
)

func validateTableRequest(req *element.TableGenerateRequest) error {
	if req.Preset != "" && !element.TablePresets[req.Preset] {
		return invalid(fmt.Sprintf("unsupported preset %q", req.Preset))
	}
	if req.Columns != nil && (*req.Columns < 1 || *req.Columns > 10) {
		return invalid("columns must be between 1 and 10")
	}
	if req.Rows != nil && (*req.Rows < 1 || *req.Rows > 20) {
		return invalid("rows must be between 1 and 20")
	}
	return nil
}

// GenerateTable has no minimum size; tables share the text backend and the
// text_boxes slide array.
func (s *Service) GenerateTable(ctx context.Context, req *element.TableGenerateRequest) *element.TableGenerateResponse {
	resp := &element.TableGenerateResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeTable, "")
	if err == nil {
		err = validateTableRequest(req)
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Tables.Generate(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.HTMLContent = result.HTMLContent
	resp.Columns = result.Columns
	resp.Rows = result.Rows
	resp.PresetApplied = req.Preset
	if resp.PresetApplied == "" {
		resp.PresetApplied = "professional"
	}

	if result.HTMLContent != "" {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectTable(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.HTMLContent)
		})
	}
	return resp
}

// TransformTable applies a structural transformation to existing table HTML.
func (s *Service) TransformTable(ctx context.Context, req *element.TableTransformRequest) *element.TableTransformResponse {
	resp := &element.TableTransformResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeTable, "")
	if err == nil && !element.TableTransformations[req.Transformation] {
		err = invalid(fmt.Sprintf("unsupported transformation %q", req.Transformation))
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Tables.Transform(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.HTMLContent = result.HTMLContent
	resp.TransformationApplied = req.Transformation
	resp.Columns = result.Columns
	resp.Rows = result.Rows

	if result.HTMLContent != "" {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectTable(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.HTMLContent)
		})
	}
	return resp
}

// AnalyzeTable is read-only: no grid position and no injection.
func (s *Service) AnalyzeTable(ctx context.Context, req *element.TableAnalyzeRequest) *element.TableAnalyzeResponse {
	resp := &element.TableAnalyzeResponse{ElementID: req.ElementID}

	if err := req.Context.Validate(); err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Tables.Analyze(ctx, req)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.Summary = result.Summary
	resp.Statistics = result.Statistics
	resp.Trends = result.Trends
	resp.Recommendations = result.Recommendations
	return resp
}
