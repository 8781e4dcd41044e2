package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/foodweb/internal/dynamo"
)

type Point struct{ X, Y float64 }

// Portrait is the projection of a trajectory onto two compartments.
type Portrait struct {
	XIndex, YIndex int
	Points         []Point
}

func NewPortrait(result *dynamo.Result, xIdx, yIdx int) (*Portrait, error) {
	if result == nil || len(result.States) == 0 {
		return nil, fmt.Errorf("phase portrait: empty trajectory")
	}
	dim := len(result.States[0])
	if xIdx < 0 || xIdx >= dim || yIdx < 0 || yIdx >= dim {
		return nil, fmt.Errorf("%w: axes (%d, %d) outside state of size %d", dynamo.ErrDimensionMismatch, xIdx, yIdx, dim)
	}

	portrait := &Portrait{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, len(result.States)),
	}
	for i, x := range result.States {
		portrait.Points[i] = Point{X: x[xIdx], Y: x[yIdx]}
	}
	return portrait, nil
}

// ASCII draws the portrait on a width x height character canvas with 10%
// padding. The start is marked 'o' and the end '*'.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(pt Point) (int, int, bool) {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		return row, col, row >= 0 && row < height && col >= 0 && col < width
	}
	plot := func(pt Point, r rune) {
		if row, col, ok := cell(pt); ok {
			canvas[row][col] = r
		}
	}

	// Zero axes, where visible.
	if minX <= 0 && maxX >= 0 {
		_, col, _ := cell(Point{})
		for row := range canvas {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row, _, _ := cell(Point{})
		for col := range canvas[row] {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, pt := range p.Points {
		plot(pt, '•')
	}
	plot(p.Points[0], 'o')
	plot(p.Points[len(p.Points)-1], '*')

	var sb strings.Builder
	for _, r := range canvas {
		sb.WriteString(strings.TrimRight(string(r), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
