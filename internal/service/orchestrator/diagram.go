package orchestrator

import (
	"context"
	"fmt"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
)

func validateDiagramRequest(req *element.DiagramGenerateRequest) error {
	if !element.DiagramTypes[req.DiagramType] {
		return invalid(fmt.Sprintf("unsupported diagram_type %q", req.DiagramType))
	}
	if req.Direction != "" && !element.DiagramDirections[req.Direction] {
		return invalid(fmt.Sprintf("unsupported direction %q", req.Direction))
	}
	if req.Theme != "" && !element.DiagramThemes[req.Theme] {
		return invalid(fmt.Sprintf("unsupported theme %q", req.Theme))
	}
	if req.Complexity != "" && !element.DiagramComplexities[req.Complexity] {
		return invalid(fmt.Sprintf("unsupported complexity %q", req.Complexity))
	}
	return nil
}

// GenerateDiagram runs the async diagram pipeline: submit, poll to a
// terminal state, then inject whatever content the job produced.
func (s *Service) GenerateDiagram(ctx context.Context, req *element.DiagramGenerateRequest) *element.DiagramGenerateResponse {
	resp := &element.DiagramGenerateResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeDiagram, req.DiagramType)
	if err == nil {
		err = validateDiagramRequest(req)
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Diagrams.Generate(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.JobID = result.JobID
	resp.MermaidCode = result.MermaidCode
	resp.SVGContent = result.SVGContent
	resp.DiagramType = req.DiagramType

	if result.SVGContent != "" || result.MermaidCode != "" {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectDiagram(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.SVGContent, result.MermaidCode, req.DiagramType)
		})
	}
	return resp
}
