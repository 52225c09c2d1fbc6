// Package viz renders trajectories in the terminal: asciigraph time
// series, a braille phase portrait, and a live bubbletea animation.
package viz

import (
	"math"
	"strings"
)

// Braille cells pack 2x4 sub-pixels per character, unicode offset 0x2800.
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune

	// Data window mapped onto the sub-pixel grid.
	minX, maxX, minY, maxY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		maxX:   1,
		maxY:   1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// SetWindow maps the data rectangle onto the canvas. Degenerate ranges
// are widened so a constant series still renders.
func (c *Canvas) SetWindow(minX, maxX, minY, maxY float64) {
	if maxX-minX == 0 {
		maxX = minX + 1
	}
	if maxY-minY == 0 {
		maxY = minY + 1
	}
	c.minX, c.maxX = minX, maxX
	c.minY, c.maxY = minY, maxY
}

// Set lights a sub-pixel. Coordinates run over (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= brailleDots[y%4][x%2]
}

// Plot lights the sub-pixel nearest to the data point (x, y) under the
// current window. The y axis grows upward.
func (c *Canvas) Plot(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	px := int((x - c.minX) / (c.maxX - c.minX) * float64(c.Width*2-1))
	py := int((1 - (y-c.minY)/(c.maxY-c.minY)) * float64(c.Height*4-1))
	c.Set(px, py)
}

// PlotLine draws a segment between two data points.
func (c *Canvas) PlotLine(x0, y0, x1, y1 float64) {
	if math.IsNaN(x0) || math.IsNaN(y0) || math.IsNaN(x1) || math.IsNaN(y1) {
		return
	}
	toPx := func(x, y float64) (int, int) {
		px := int((x - c.minX) / (c.maxX - c.minX) * float64(c.Width*2-1))
		py := int((1 - (y-c.minY)/(c.maxY-c.minY)) * float64(c.Height*4-1))
		return px, py
	}
	ax, ay := toPx(x0, y0)
	bx, by := toPx(x1, y1)
	c.line(ax, ay, bx, by)
}

// line is Bresenham on the sub-pixel grid.
func (c *Canvas) line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Mark draws a small cross at a data point, for equilibria and initial
// conditions.
func (c *Canvas) Mark(x, y float64) {
	px := int((x - c.minX) / (c.maxX - c.minX) * float64(c.Width*2-1))
	py := int((1 - (y-c.minY)/(c.maxY-c.minY)) * float64(c.Height*4-1))
	for d := -2; d <= 2; d++ {
		c.Set(px+d, py)
		c.Set(px, py+d)
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
