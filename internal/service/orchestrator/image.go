package orchestrator

import (
	"context"
	"fmt"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
)

func validateImageRequest(req *element.ImageGenerateRequest) error {
	if req.Style != "" && !element.ImageStyles[req.Style] {
		return invalid(fmt.Sprintf("unsupported style %q", req.Style))
	}
	if req.AspectRatio != "" && !element.ImageAspectRatios[req.AspectRatio] {
		return invalid(fmt.Sprintf("unsupported aspect_ratio %q", req.AspectRatio))
	}
	if req.Quality != "" {
		if _, ok := element.ImageQualities[req.Quality]; !ok {
			return invalid(fmt.Sprintf("unsupported quality %q", req.Quality))
		}
	}
	if req.Prompt == "" {
		return invalid("prompt is required for image generation")
	}
	return nil
}

// GenerateImage has no minimum size. Credit accounting is the backend's;
// the pipeline only relays CREDITS_EXHAUSTED failures.
func (s *Service) GenerateImage(ctx context.Context, req *element.ImageGenerateRequest) *element.ImageGenerateResponse {
	resp := &element.ImageGenerateResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeImage, "")
	if err == nil {
		err = validateImageRequest(req)
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Images.Generate(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.ImageURL = result.ImageURL
	resp.ImageBase64 = result.ImageBase64
	resp.AltText = result.AltText
	resp.Width = result.Width
	resp.Height = result.Height
	resp.CreditsUsed = result.CreditsUsed
	resp.CreditsRemaining = result.CreditsRemaining
	resp.SeedUsed = result.SeedUsed
	resp.StyleApplied = req.Style
	if resp.StyleApplied == "" {
		resp.StyleApplied = "realistic"
	}
	resp.QualityApplied = req.Quality
	if resp.QualityApplied == "" {
		resp.QualityApplied = "standard"
	}

	if result.ImageURL != "" || result.ImageBase64 != "" {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectImage(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.ImageURL, result.ImageBase64, result.AltText)
		})
	}
	return resp
}
