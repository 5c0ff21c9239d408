package orchestrator

import (
	"context"
	"fmt"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
)

func validateTextRequest(req *element.TextGenerateRequest) error {
	if req.Tone != "" && !element.TextTones[req.Tone] {
		return invalid(fmt.Sprintf("unsupported tone %q", req.Tone))
	}
	if req.Format != "" && !element.TextFormats[req.Format] {
		return invalid(fmt.Sprintf("unsupported format %q", req.Format))
	}
	if req.MaxWords != nil && *req.MaxWords < 1 {
		return invalid("max_words must be >= 1")
	}
	return nil
}

// GenerateText has no minimum size: any valid span can hold text.
func (s *Service) GenerateText(ctx context.Context, req *element.TextGenerateRequest) *element.TextGenerateResponse {
	resp := &element.TextGenerateResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeText, "")
	if err == nil {
		err = validateTextRequest(req)
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Texts.Generate(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.HTMLContent = result.HTMLContent
	resp.PlainText = result.PlainText
	resp.WordCount = result.WordCount
	resp.CharacterCount = result.CharacterCount

	if result.HTMLContent != "" {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectText(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.HTMLContent)
		})
	}
	return resp
}

// TransformText rewrites existing content and re-injects the result into the
// same text box.
func (s *Service) TransformText(ctx context.Context, req *element.TextTransformRequest) *element.TextTransformResponse {
	resp := &element.TextTransformResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeText, "")
	if err == nil && !element.TextTransformations[req.Transformation] {
		err = invalid(fmt.Sprintf("unsupported transformation %q", req.Transformation))
	}
	if err == nil && req.Transformation == "translate" && req.TargetLanguage == "" {
		err = invalid("target_language is required for translate")
	}
	if err == nil && req.Intensity != nil && (*req.Intensity < 0 || *req.Intensity > 1) {
		err = invalid("intensity must be between 0 and 1")
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Texts.Transform(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.HTMLContent = result.HTMLContent
	resp.TransformationApplied = req.Transformation
	resp.WordCount = result.WordCount

	if result.HTMLContent != "" {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectText(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.HTMLContent)
		})
	}
	return resp
}

// AutofitText condenses content to fit its container's character budget.
func (s *Service) AutofitText(ctx context.Context, req *element.TextAutofitRequest) *element.TextAutofitResponse {
	resp := &element.TextAutofitResponse{ElementID: req.ElementID}

	dims, err := s.prepare(&req.Context, req.Position, element.TypeText, "")
	if err == nil && req.TargetCharacters != nil && *req.TargetCharacters < 1 {
		err = invalid("target_characters must be >= 1")
	}
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	result, err := s.Texts.Autofit(ctx, req, dims)
	if err != nil {
		resp.Error = element.FromAppError(err)
		return resp
	}

	resp.Success = true
	resp.HTMLContent = result.HTMLContent
	resp.OriginalLength = result.OriginalLength
	resp.FittedLength = result.FittedLength
	resp.ReductionPercentage = result.ReductionPercentage

	if result.HTMLContent != "" {
		resp.Injected, resp.InjectionError = s.inject(req.ElementID, func() error {
			return s.Layout.InjectText(ctx, req.Context.PresentationID, req.Context.SlideIndex,
				req.ElementID, result.HTMLContent)
		})
	}
	return resp
}
