package grid

import (
	"fmt"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

// Minimum converted dimensions per element subtype. Unknown subtypes fall
// back to a conservative default so new backend types do not get rejected.
var (
	chartMinimums = map[string]Dimensions{
		element.ChartBar:       {Width: 3, Height: 3},
		element.ChartLine:      {Width: 3, Height: 2},
		element.ChartPie:       {Width: 3, Height: 3},
		element.ChartDoughnut:  {Width: 3, Height: 3},
		element.ChartArea:      {Width: 3, Height: 2},
		element.ChartScatter:   {Width: 4, Height: 3},
		element.ChartRadar:     {Width: 4, Height: 4},
		element.ChartPolarArea: {Width: 3, Height: 3},
	}

	diagramMinimums = map[string]Dimensions{
		"flowchart":   {Width: 3, Height: 2},
		"sequence":    {Width: 4, Height: 3},
		"class":       {Width: 4, Height: 3},
		"state":       {Width: 3, Height: 3},
		"er":          {Width: 4, Height: 3},
		"gantt":       {Width: 6, Height: 2},
		"userjourney": {Width: 4, Height: 2},
		"gitgraph":    {Width: 4, Height: 2},
		"pie":         {Width: 3, Height: 3},
		"mindmap":     {Width: 4, Height: 4},
		"timeline":    {Width: 5, Height: 2},
	}

	infographicMinimums = map[string]Dimensions{
		"pyramid":            {Width: 6, Height: 4},
		"funnel":             {Width: 6, Height: 4},
		"concentric_circles": {Width: 6, Height: 6},
		"concept_spread":     {Width: 8, Height: 4},
		"venn":               {Width: 6, Height: 4},
		"comparison":         {Width: 8, Height: 4},
		"timeline":           {Width: 8, Height: 3},
		"process":            {Width: 6, Height: 3},
		"statistics":         {Width: 4, Height: 3},
		"hierarchy":          {Width: 6, Height: 4},
		"list":               {Width: 4, Height: 4},
		"cycle":              {Width: 6, Height: 6},
		"matrix":             {Width: 6, Height: 6},
		"roadmap":            {Width: 8, Height: 4},
	}
)

// MinimumFor returns the minimum converted dimensions required for an element
// type and subtype. Text, table and image elements have no minimum.
func MinimumFor(elementType element.Type, subtype string) (Dimensions, bool) {
	switch elementType {
	case element.TypeChart:
		if min, ok := chartMinimums[subtype]; ok {
			return min, true
		}
		return Dimensions{Width: 3, Height: 3}, true
	case element.TypeDiagram:
		if min, ok := diagramMinimums[subtype]; ok {
			return min, true
		}
		return Dimensions{Width: 3, Height: 3}, true
	case element.TypeInfographic:
		if min, ok := infographicMinimums[subtype]; ok {
			return min, true
		}
		return Dimensions{Width: 6, Height: 4}, true
	default:
		return Dimensions{}, false
	}
}

// ValidateMinimum checks converted dimensions against the minimum for the
// element subtype and returns a GRID_TOO_SMALL error when they fall short.
func ValidateMinimum(d Dimensions, elementType element.Type, subtype string) error {
	min, ok := MinimumFor(elementType, subtype)
	if !ok {
		return nil
	}
	if d.Width >= min.Width && d.Height >= min.Height {
		return nil
	}
	err := apperrors.New(apperrors.CodeGridTooSmall, fmt.Sprintf(
		"grid size %dx%d is too small for %s %s, minimum is %dx%d",
		d.Width, d.Height, subtype, elementType, min.Width, min.Height))
	return err.WithSuggestion(fmt.Sprintf(
		"Resize the %s element to at least %dx%d grid units.",
		elementType, min.Width, min.Height))
}
