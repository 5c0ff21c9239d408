// Package grid converts Layout Service grid positions into backend-native
// coordinate systems.
//
// The Layout Service addresses slides on a 24-column x 14-row CSS grid. The
// chart, text, table and image backends use a 12x8 grid, the infographic
// backend a 32x18 grid, and the diagram backend pixel caps. All conversions
// round half up and floor at 1 unit.
package grid

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/Pramod-Potti-Krishnan/elementor/internal/element"
	apperrors "github.com/Pramod-Potti-Krishnan/elementor/pkg/errors"
)

const (
	// Layout Service grid.
	LayoutColumns = 24
	LayoutRows    = 14

	// 12x8 family (chart, text, table, image).
	AIColumns = 12
	AIRows    = 8

	// 32x18 family (infographic).
	InfographicColumns = 32
	InfographicRows    = 18
)

var gridValueRe = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)

// ParseValue parses a CSS grid value like "4/14" or "4 / 14" into start and
// end integers, requiring end > start.
func ParseValue(value string) (start, end int, err error) {
	m := gridValueRe.FindStringSubmatch(value)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid grid value: %q", value)
	}
	start, _ = strconv.Atoi(m[1])
	end, _ = strconv.Atoi(m[2])
	if end <= start || start < 1 {
		return 0, 0, fmt.Errorf("invalid grid span: %q", value)
	}
	return start, end, nil
}

// Spans returns the row and column spans of a position.
func Spans(pos element.GridPosition) (rowSpan, colSpan int, err error) {
	rowStart, rowEnd, err := ParseValue(pos.GridRow)
	if err != nil {
		return 0, 0, apperrors.Wrap(err, apperrors.CodeInvalidRequest, "grid_row is not a valid start/end pair")
	}
	colStart, colEnd, err := ParseValue(pos.GridColumn)
	if err != nil {
		return 0, 0, apperrors.Wrap(err, apperrors.CodeInvalidRequest, "grid_column is not a valid start/end pair")
	}
	return rowEnd - rowStart, colEnd - colStart, nil
}

// Dimensions is a converted width/height pair in a backend's grid units.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) Area() int {
	return d.Width * d.Height
}

// Convert maps a Layout position onto the 12x8 grid:
// width = round(colSpan/2), height = round(rowSpan*8/14), clamped to range.
func Convert(pos element.GridPosition) (Dimensions, error) {
	rowSpan, colSpan, err := Spans(pos)
	if err != nil {
		return Dimensions{}, err
	}
	width := roundHalfUp(float64(colSpan) / 2)
	height := roundHalfUp(float64(rowSpan) * float64(AIRows) / float64(LayoutRows))
	return Dimensions{
		Width:  clamp(width, 1, AIColumns),
		Height: clamp(height, 1, AIRows),
	}, nil
}

// ScaleInfographic scales 12x8 dimensions up to the infographic backend's
// 32x18 grid. Fractions truncate toward zero, matching the backend's own
// scaling.
func ScaleInfographic(d Dimensions) Dimensions {
	return Dimensions{
		Width:  clamp(d.Width*InfographicColumns/AIColumns, 1, InfographicColumns),
		Height: clamp(d.Height*InfographicRows/AIRows, 1, InfographicRows),
	}
}

// PixelConstraints maps 12x8 dimensions to the diagram backend's pixel caps.
func PixelConstraints(d Dimensions, pxPerUnit int) (maxWidth, maxHeight int) {
	if pxPerUnit < 1 {
		pxPerUnit = 1
	}
	return d.Width * pxPerUnit, d.Height * pxPerUnit
}

// SizeCategory classifies a converted area the way the chart backend sizes
// its data limits: small <= 16, medium <= 48, large beyond.
func SizeCategory(d Dimensions) string {
	switch area := d.Area(); {
	case area <= 16:
		return "small"
	case area <= 48:
		return "medium"
	default:
		return "large"
	}
}

// AspectRatio reduces width:height by their gcd, e.g. 8x6 -> "4:3".
func AspectRatio(d Dimensions) string {
	g := gcd(d.Width, d.Height)
	if g == 0 {
		return "1:1"
	}
	return fmt.Sprintf("%d:%d", d.Width/g, d.Height/g)
}

// Orientation is landscape when wider than tall, portrait otherwise.
func Orientation(d Dimensions) string {
	if d.Width > d.Height {
		return "landscape"
	}
	return "portrait"
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
