// Package insights derives mood statistics from journal entries.
package insights

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisSeparator     = " │ "
	axisLabelWidth    = 1 // widest score label
)

// PlotTrend draws the daily scores as a braille line chart on the fixed 1-5
// scale. Days without entries break the line. width counts chart cells and
// excludes the axis.
func PlotTrend(w io.Writer, points []DayPoint, width, height int) error {
	if len(points) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	cells := makeCells(height, width)
	dotsX := width * 2
	dotsY := height * 4
	prevX, prevY := -1, -1
	for i, p := range points {
		if p.Value == nil {
			prevX, prevY = -1, -1
			continue
		}
		px := dotColumn(i, len(points), dotsX)
		py := valueToRow(*p.Value, minScore, maxScore, dotsY)
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(x, y int) {
				setBrailleDot(cells, x, y)
			})
		} else {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}

	labels := makeAxisLabels(height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisLabelWidth, labels[y], axisSeparator))
		for x := 0; x < width; x++ {
			row.WriteRune(brailleFromMask(cells[y][x]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(row.String(), string(brailleFromMask(0)))); err != nil {
			return err
		}
	}
	pad := strings.Repeat(" ", axisLabelWidth+len([]rune(axisSeparator)))
	first, last := points[0].Label, points[len(points)-1].Label
	gap := max(1, width-len(first)-len(last))
	_, err := fmt.Fprintf(w, "%s%s%s%s\n", pad, first, strings.Repeat(" ", gap), last)
	return err
}

// PlotWidthFor returns the chart width that fits totalWidth columns.
func PlotWidthFor(totalWidth int) int {
	return max(minPlotWidth, totalWidth-axisLabelWidth-len([]rune(axisSeparator)))
}

func dotColumn(i, n, dots int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) * float64(dots-1) / float64(n-1)))
}

func makeAxisLabels(height int) []string {
	labels := make([]string, height)
	labels[0] = "5"
	if height > 2 {
		labels[height/2] = "3"
	}
	if height > 1 {
		labels[height-1] = "1"
	}
	return labels
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	return min(max(row, 0), height-1)
}

// drawLine walks the Bresenham line between two dots.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func setBrailleDot(cells [][]uint8, x, y int) {
	cellY, cellX := y/4, x/2
	if y < 0 || x < 0 || cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

// brailleDotMask maps a dot inside a 2x4 cell to its Unicode bit.
func brailleDotMask(x, y int) uint8 {
	masks := [2][4]uint8{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	return masks[x][y]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
