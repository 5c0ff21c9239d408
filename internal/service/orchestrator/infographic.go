package orchestrator

import (
	"context"
	"fmt"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/infographic"
)

func validateInfographicRequest(req *element.InfographicGenerateRequest) error {
	if !element.ValidInfographicType(req.InfographicType) {
		return invalid(fmt.Sprintf("unsupported infographic_type %q", req.InfographicType))
	}
	if req.ColorScheme != "" && !element.InfographicColorSchemes[req.ColorScheme] {
		return invalid(fmt.Sprintf("unsupported color_scheme %q", req.ColorScheme))
	}
	if req.IconStyle != "" && !element.InfographicIconStyles[req.IconStyle] {
		return invalid(fmt.Sprintf("unsupported icon_style %q", req.IconStyle))
	}
	if req.ItemCount != nil && (*req.ItemCount < 1 || *req.ItemCount > 12) {
		return invalid("item_count must be between 1 and 12")
	}
	return nil
}

// GenerateInfographic enforces the largest per-type minimums of any element
// family; the backend renders on its own denser grid.
func (s *Service) GenerateInfographic(ctx context.Context, req *element.InfographicGenerateRequest) *element.InfographicGenerateResponse {
	resp := &element.InfographicGenerateResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeInfographic, req.InfographicType)
	if err == nil {
		err = validateInfographicRequest(req)
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Infographics.Generate(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.HTMLContent = result.HTMLContent
	resp.SVGContent = result.SVGContent
	resp.GeneratorType = result.GeneratorType
	if resp.GeneratorType == "" {
		resp.GeneratorType = infographic.GeneratorFor(req.InfographicType)
	}
	resp.InfographicType = req.InfographicType
	resp.ItemCount = result.ItemCount
	resp.ColorSchemeApplied = req.ColorScheme
	if resp.ColorSchemeApplied == "" {
		resp.ColorSchemeApplied = "professional"
	}

	if result.SVGContent != "" || result.HTMLContent != "" {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectInfographic(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.SVGContent, result.HTMLContent, req.InfographicType)
		})
	}
	return resp
}
