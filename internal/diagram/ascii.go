package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/shoring/internal/grid"
	"github.com/alexiusacademia/shoring/internal/strut"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Glyphs used for each strut group on the character canvas
var glyphs = map[strut.Group]rune{
	strut.Vertical:    '|',
	strut.HorizontalX: '=',
	strut.HorizontalY: '-',
}

const nodeGlyph = '+'

// cellAspect is the height/width ratio of a terminal character cell
const cellAspect = 2.0

// DrawASCII rasterises the projected struts onto a character canvas of
// width columns. Nearer struts overwrite farther ones.
func DrawASCII(scene Scene, width int) string {
	segs := scene.project()
	if len(segs) == 0 || width < 2 {
		return ""
	}

	minX, minY, maxX, maxY := extent(segs)
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}

	scale := float64(width-1) / spanX
	height := int(math.Round(spanY*scale/cellAspect)) + 1

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	toCell := func(x, y float64) (int, int) {
		col := int(math.Round((x - minX) * scale))
		row := height - 1 - int(math.Round((y-minY)*scale/cellAspect))
		return col, row
	}

	put := func(col, row int, r rune) {
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = r
		}
	}

	// segs are ordered far to near
	for _, s := range segs {
		c1, r1 := toCell(s.x1, s.y1)
		c2, r2 := toCell(s.x2, s.y2)
		g := glyphs[s.strut.Group]

		steps := max(abs(c2-c1), abs(r2-r1))
		for i := 0; i <= steps; i++ {
			t := 0.0
			if steps > 0 {
				t = float64(i) / float64(steps)
			}
			col := c1 + int(math.Round(t*float64(c2-c1)))
			row := r1 + int(math.Round(t*float64(r2-r1)))
			put(col, row, g)
		}
		put(c1, r1, nodeGlyph)
		put(c2, r2, nodeGlyph)
	}

	var sb strings.Builder
	if scene.Title != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", scene.Title))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", len([]rune(scene.Title)))))
	}
	sb.WriteString(fmt.Sprintf("  %s view, %s projection\n\n", scene.View.Camera, scene.View.Projection))
	for _, row := range canvas {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// DrawLegend lists each strut group with its glyph, colour and opacity.
// The colour swatch is styled for terminals that support it.
func DrawLegend(style strut.Style) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	for _, g := range strut.Groups {
		look := style.Appearance(g)
		hex := fmt.Sprintf("#%02X%02X%02X", look.Color.R, look.Color.G, look.Color.B)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("███")
		sb.WriteString(fmt.Sprintf("  %s %c %-13s %s  opacity %.1f  r = %.1f mm\n",
			swatch, glyphs[g], g, hex, look.Opacity, style.RadiusFor(g)))
	}
	sb.WriteString(fmt.Sprintf("   %c  node (strut end)\n", nodeGlyph))

	return sb.String()
}

// DrawSpacingProfile charts the spacing increments of each axis
func DrawSpacingProfile(c grid.Coordinates) string {
	var sb strings.Builder

	colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green}
	for i, a := range []grid.Axis{grid.AxisX, grid.AxisY, grid.AxisZ} {
		spacings := increments(c.Axis(a))
		if len(spacings) == 0 {
			continue
		}
		// a single bay still needs two samples to draw a line
		if len(spacings) == 1 {
			spacings = append(spacings, spacings[0])
		}

		sb.WriteString("\n")
		sb.WriteString(asciigraph.Plot(spacings,
			asciigraph.Height(6),
			asciigraph.Precision(0),
			asciigraph.SeriesColors(colors[i]),
			asciigraph.Caption(fmt.Sprintf("%s spacing (mm)", a))))
		sb.WriteString("\n")
	}

	return sb.String()
}

func increments(coords []float64) []float64 {
	if len(coords) < 2 {
		return nil
	}
	out := make([]float64, len(coords)-1)
	for i := range out {
		out[i] = coords[i+1] - coords[i]
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
