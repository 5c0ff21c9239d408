// Package orchestrator runs the generation pipeline shared by all element
// types: validate the request, convert the grid position, dispatch to the
// backend, inject the content into the Layout Service, and assemble the
// frontend response.
//
// The pipeline never surfaces Go errors to handlers. Every outcome is a
// response envelope; failures carry the canonical error detail, and a failed
// injection after a successful generation keeps success true.
package orchestrator

import (
	"time"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/grid"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/config"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/infra/logger"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/chart"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/diagram"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/image"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/infographic"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/layout"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/table"
	"github.com/Pramod-Potti-Krishnan/elementor/internal/service/text"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

type Service struct {
	Charts       *chart.Client
	Diagrams     *diagram.Client
	Texts        *text.Client
	Tables       *table.Client
	Images       *image.Client
	Infographics *infographic.Client
	Layout       *layout.Client

	log *logger.Logger
}

// New wires the service from explicit clients. Tests point the clients at
// stub servers.
func New(charts *chart.Client, diagrams *diagram.Client, texts *text.Client, tables *table.Client, images *image.Client, infographics *infographic.Client, layoutClient *layout.Client, log *logger.Logger) *Service {
	return &Service{
		Charts:       charts,
		Diagrams:     diagrams,
		Texts:        texts,
		Tables:       tables,
		Images:       images,
		Infographics: infographics,
		Layout:       layoutClient,
		log:          log,
	}
}

// FromConfig builds the service with one client per configured backend.
func FromConfig(cfg *config.Config, log *logger.Logger) *Service {
	timeout := secs(cfg.Services.TimeoutSeconds)
	poll := diagram.PollConfig{
		Timeout:     secs(cfg.Polling.TimeoutSeconds),
		Interval:    secs(cfg.Polling.IntervalSeconds),
		MaxInterval: secs(cfg.Polling.MaxIntervalSeconds),
	}

	return New(
		chart.NewClient(cfg.Services.ChartURL, timeout, log),
		diagram.NewClient(cfg.Services.DiagramURL, timeout, poll, cfg.Grid.PxPerUnit, log),
		text.NewClient(cfg.Services.TextTableURL, timeout, log),
		table.NewClient(cfg.Services.TextTableURL, timeout, log),
		image.NewClient(cfg.Services.ImageURL, secs(cfg.Services.ImageTimeout), log),
		infographic.NewClient(cfg.Services.InfographicURL, timeout, log),
		layout.NewClient(cfg.Services.LayoutURL, timeout, log),
		log,
	)
}

func secs(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// prepare runs the shared front half of every generation pipeline: context
// validation, grid conversion, and the per-type minimum size check.
func (s *Service) prepare(ctx *element.Context, pos element.GridPosition, elementType element.Type, subtype string) (grid.Dimensions, error) {
	if err := ctx.Validate(); err != nil {
		return grid.Dimensions{}, err
	}
	dims, err := grid.Convert(pos)
	if err != nil {
		return grid.Dimensions{}, err
	}
	if err := grid.ValidateMinimum(dims, elementType, subtype); err != nil {
		return grid.Dimensions{}, err
	}
	return dims, nil
}

// ClearCaches drops every cached metadata document.
func (s *Service) ClearCaches() {
	s.Charts.ClearCache()
	s.Diagrams.ClearCache()
	s.Texts.ClearCache()
	s.Images.ClearCache()
	s.Infographics.ClearCache()
}

func boolPtr(b bool) *bool {
	return &b
}

func invalid(message string) error {
	return apperrors.New(apperrors.CodeInvalidRequest, message)
}

// inject runs fn and folds the outcome into the injected flag pair shared by
// all response envelopes. Generation already succeeded at this point, so an
// injection failure is reported but does not fail the request.
func (s *Service) inject(elementID string, fn func() error) (*bool, string) {
	if err := fn(); err != nil {
		s.log.Warn("content injection failed", "element_id", elementID, "error", err)
		return boolPtr(false), err.Error()
	}
	return boolPtr(true), ""
}
