package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
)

// GenerateBatch fans a mixed batch out to the per-type pipelines. Elements
// run concurrently unless parallel is explicitly false; results keep the
// request order regardless.
func (s *Service) GenerateBatch(ctx context.Context, req *element.BatchGenerateRequest) *element.BatchGenerateResponse {
	resp := &element.BatchGenerateResponse{
		Total:   len(req.Elements),
		Results: make([]element.BatchElementResult, len(req.Elements)),
	}

	parallel := req.Parallel == nil || *req.Parallel
	if parallel {
		var wg sync.WaitGroup
		for i := range req.Elements {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				resp.Results[i] = s.generateOne(ctx, &req.Elements[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range req.Elements {
			resp.Results[i] = s.generateOne(ctx, &req.Elements[i])
		}
	}

	for _, r := range resp.Results {
		if r.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	resp.Success = resp.Failed == 0
	return resp
}

// generateOne decodes the type-specific config and runs the matching
// pipeline. The common fields always come from the batch element, never from
// the config blob.
func (s *Service) generateOne(ctx context.Context, el *element.BatchElementRequest) element.BatchElementResult {
	out := element.BatchElementResult{
		ElementID:   el.ElementID,
		ElementType: el.ElementType,
	}

	fail := func(err error) element.BatchElementResult {
		out.Error = element.FromAppError(err)
		return out
	}

	switch el.ElementType {
	case element.TypeChart:
		var req element.ChartGenerateRequest
		if err := decodeConfig(el, &req); err != nil {
			return fail(err)
		}
		r := s.GenerateChart(ctx, &req)
		out.Success, out.Result, out.Error = r.Success, r, r.Error
	case element.TypeDiagram:
		var req element.DiagramGenerateRequest
		if err := decodeConfig(el, &req); err != nil {
			return fail(err)
		}
		r := s.GenerateDiagram(ctx, &req)
		out.Success, out.Result, out.Error = r.Success, r, r.Error
	case element.TypeText:
		var req element.TextGenerateRequest
		if err := decodeConfig(el, &req); err != nil {
			return fail(err)
		}
		r := s.GenerateText(ctx, &req)
		out.Success, out.Result, out.Error = r.Success, r, r.Error
	case element.TypeTable:
		var req element.TableGenerateRequest
		if err := decodeConfig(el, &req); err != nil {
			return fail(err)
		}
		r := s.GenerateTable(ctx, &req)
		out.Success, out.Result, out.Error = r.Success, r, r.Error
	case element.TypeImage:
		var req element.ImageGenerateRequest
		if err := decodeConfig(el, &req); err != nil {
			return fail(err)
		}
		r := s.GenerateImage(ctx, &req)
		out.Success, out.Result, out.Error = r.Success, r, r.Error
	case element.TypeInfographic:
		var req element.InfographicGenerateRequest
		if err := decodeConfig(el, &req); err != nil {
			return fail(err)
		}
		r := s.GenerateInfographic(ctx, &req)
		out.Success, out.Result, out.Error = r.Success, r, r.Error
	default:
		return fail(invalid(fmt.Sprintf("unsupported element_type %q", el.ElementType)))
	}
	return out
}

// decodeConfig unmarshals the config blob into the variant request, then
// overwrites the common fields with the batch element's values.
func decodeConfig(el *element.BatchElementRequest, into interface{}) error {
	if len(el.Config) > 0 {
		if err := json.Unmarshal(el.Config, into); err != nil {
			return invalid(fmt.Sprintf("invalid config for element %s: %v", el.ElementID, err))
		}
	}

	switch req := into.(type) {
	case *element.ChartGenerateRequest:
		req.ElementID, req.Context, req.Position = el.ElementID, el.Context, el.Position
	case *element.DiagramGenerateRequest:
		req.ElementID, req.Context, req.Position = el.ElementID, el.Context, el.Position
	case *element.TextGenerateRequest:
		req.ElementID, req.Context, req.Position = el.ElementID, el.Context, el.Position
	case *element.TableGenerateRequest:
		req.ElementID, req.Context, req.Position = el.ElementID, el.Context, el.Position
	case *element.ImageGenerateRequest:
		req.ElementID, req.Context, req.Position = el.ElementID, el.Context, el.Position
	case *element.InfographicGenerateRequest:
		req.ElementID, req.Context, req.Position = el.ElementID, el.Context, el.Position
	}
	return nil
}
