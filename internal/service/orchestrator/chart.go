package orchestrator

import (
	"context"
	"fmt"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

func validateChartRequest(req *element.ChartGenerateRequest) error {
	if !element.ChartTypes[req.ChartType] {
		return invalid(fmt.Sprintf("unsupported chart_type %q", req.ChartType))
	}
	if req.Palette != "" && !element.ChartPalettes[req.Palette] {
		return invalid(fmt.Sprintf("unsupported palette %q", req.Palette))
	}
	return nil
}

// GenerateChart runs the full chart pipeline. A request must carry data or
// opt into AI data generation; neither is a MISSING_DATA failure before any
// backend call is made.
func (s *Service) GenerateChart(ctx context.Context, req *element.ChartGenerateRequest) *element.ChartGenerateResponse {
	resp := &element.ChartGenerateResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeChart, req.ChartType)
	if err == nil {
		err = validateChartRequest(req)
	}
	if err == nil && len(req.Data) == 0 && !req.GenerateData {
		err = apperrors.New(apperrors.CodeMissingData,
			"chart request has no data and generate_data is false").
			WithSuggestion("Provide data points or set generate_data to true.")
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Charts.Generate(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.ChartConfig = result.ChartConfig
	resp.RawData = result.RawData
	resp.Metadata = result.Metadata
	resp.Insights = result.Insights
	resp.GenerationID = result.GenerationID

	if len(result.ChartConfig) > 0 {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectChart(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.ChartConfig, req.ChartType)
		})
	}
	return resp
}

// ValidateChart is the dry run: the same checks as GenerateChart up to and
// including the data requirement, with no backend call.
func (s *Service) ValidateChart(req *element.ChartGenerateRequest) *element.ChartValidateResponse {
	resp := &element.ChartValidateResponse{
		ChartType:    req.ChartType,
		Palette:      req.Palette,
		HasData:      len(req.Data) > 0,
		GenerateData: req.GenerateData,
	}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeChart, req.ChartType)
	if err == nil {
		err = validateChartRequest(req)
	}
	if err == nil && !resp.HasData && !req.GenerateData {
		err = apperrors.New(apperrors.CodeMissingData,
			"chart request has no data and generate_data is false").
			WithSuggestion("Provide data points or set generate_data to true.")
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Valid = true
	resp.GridDimensions = map[string]int{"width": dims.Width, "height": dims.Height}
	if resp.Palette == "" {
		resp.Palette = "default"
	}
	return resp
}
