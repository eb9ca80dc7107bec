// Package chart renders the category breakdown as bar and pie chart PNGs.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"runtime"

	"github.com/fogleman/gg"

	"cdash/internal/report"
)

// Chart styling constants
const (
	marginX      = 40.0
	marginY      = 30.0
	titleFontSz  = 28
	labelFontSz  = 18
	barGap       = 14.0
	minBarHeight = 22.0
	legendSwatch = 18.0
)

// Light theme colors
var (
	bgColor    = color.RGBA{R: 245, G: 247, B: 250, A: 255} // Light gray bg
	titleColor = color.RGBA{R: 30, G: 41, B: 59, A: 255}    // Dark slate
	textColor  = color.RGBA{R: 30, G: 41, B: 59, A: 255}
	axisColor  = color.RGBA{R: 203, G: 213, B: 225, A: 255} // Slate border
	mutedColor = color.RGBA{R: 100, G: 116, B: 139, A: 255}
)

// palette is a viridis-like ramp cycled across categories.
var palette = []color.RGBA{
	{R: 68, G: 1, B: 84, A: 255},
	{R: 65, G: 68, B: 135, A: 255},
	{R: 42, G: 120, B: 142, A: 255},
	{R: 34, G: 168, B: 132, A: 255},
	{R: 122, G: 209, B: 81, A: 255},
	{R: 253, G: 231, B: 37, A: 255},
}

// paletteColor returns the color for the i-th category, cycling the palette.
func paletteColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// findFont locates a font file across Linux and Windows paths.
func findFont(bold bool) string {
	var candidates []string
	if runtime.GOOS == "windows" {
		winRoot := os.Getenv("WINDIR")
		if winRoot == "" {
			winRoot = `C:\Windows`
		}
		if bold {
			candidates = []string{
				winRoot + `\Fonts\arialbd.ttf`,
				winRoot + `\Fonts\Arial Bold.ttf`,
			}
		} else {
			candidates = []string{
				winRoot + `\Fonts\arial.ttf`,
				winRoot + `\Fonts\Arial.ttf`,
			}
		}
	} else {
		if bold {
			candidates = []string{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
				"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
			}
		} else {
			candidates = []string{
				"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
				"/usr/share/fonts/TTF/DejaVuSans.ttf",
			}
		}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFace loads a system font at the given size, keeping gg's built-in
// face when no font file is available (CI containers, scratch images).
func loadFace(dc *gg.Context, bold bool, size float64) {
	if path := findFont(bold); path != "" {
		_ = dc.LoadFontFace(path, size)
	}
}

// BarChart renders a horizontal bar chart of complaint percentage by
// category, sorted the way the report sorts (count descending).
func BarChart(rep report.Report, width, height int) ([]byte, error) {
	if len(rep.Stats) == 0 {
		return placeholder(width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()

	loadFace(dc, true, titleFontSz)
	dc.SetColor(titleColor)
	dc.DrawStringAnchored("Complaints Percentage by Category", float64(width)/2, marginY, 0.5, 0.5)

	loadFace(dc, false, labelFontSz)

	// Widest category label determines where bars start
	maxLabel := 0.0
	for _, stat := range rep.Stats {
		if w, _ := dc.MeasureString(stat.Category); w > maxLabel {
			maxLabel = w
		}
	}

	plotLeft := marginX + maxLabel + 16
	plotRight := float64(width) - marginX - 80 // room for percentage labels
	plotTop := marginY * 2.2
	plotBottom := float64(height) - marginY

	// Axis
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	dc.DrawLine(plotLeft, plotTop, plotLeft, plotBottom)
	dc.Stroke()

	maxPct := rep.Stats[0].Percentage
	for _, stat := range rep.Stats {
		if stat.Percentage > maxPct {
			maxPct = stat.Percentage
		}
	}
	if maxPct <= 0 {
		maxPct = 1
	}

	rows := float64(len(rep.Stats))
	barHeight := (plotBottom - plotTop - barGap*(rows+1)) / rows
	if barHeight < minBarHeight {
		barHeight = minBarHeight
	}

	y := plotTop + barGap
	for i, stat := range rep.Stats {
		barWidth := (stat.Percentage / maxPct) * (plotRight - plotLeft)

		dc.SetColor(paletteColor(i))
		dc.DrawRectangle(plotLeft, y, barWidth, barHeight)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(stat.Category, plotLeft-8, y+barHeight/2, 1, 0.5)
		dc.DrawStringAnchored(formatPercent(stat.Percentage), plotLeft+barWidth+8, y+barHeight/2, 0, 0.5)

		y += barHeight + barGap
	}

	return encodeImage(dc.Image())
}

// PieChart renders the category count distribution as a pie with a legend.
func PieChart(rep report.Report, width, height int) ([]byte, error) {
	if len(rep.Stats) == 0 || rep.Summary.Total == 0 {
		return placeholder(width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()

	loadFace(dc, true, titleFontSz)
	dc.SetColor(titleColor)
	dc.DrawStringAnchored("Category Distribution", float64(width)/2, marginY, 0.5, 0.5)

	cx := float64(width) * 0.38
	cy := float64(height)/2 + marginY/2
	radius := math.Min(float64(width)*0.30, float64(height)*0.38)

	// Start at 12 o'clock, clockwise
	angle := -math.Pi / 2
	total := float64(rep.Summary.Total)
	for i, stat := range rep.Stats {
		sweep := (float64(stat.Count) / total) * 2 * math.Pi

		dc.SetColor(paletteColor(i))
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, angle+sweep)
		dc.ClosePath()
		dc.Fill()

		// Percentage label just outside the wedge midpoint
		mid := angle + sweep/2
		lx := cx + math.Cos(mid)*(radius+26)
		ly := cy + math.Sin(mid)*(radius+26)
		loadFace(dc, false, labelFontSz)
		dc.SetColor(textColor)
		dc.DrawStringAnchored(formatPercent(stat.Percentage), lx, ly, 0.5, 0.5)

		angle += sweep
	}

	// Legend
	loadFace(dc, false, labelFontSz)
	lx := float64(width) * 0.72
	ly := float64(height)*0.5 - float64(len(rep.Stats))*14
	for i, stat := range rep.Stats {
		dc.SetColor(paletteColor(i))
		dc.DrawRectangle(lx, ly, legendSwatch, legendSwatch)
		dc.Fill()

		dc.SetColor(textColor)
		label := fmt.Sprintf("%s (%d)", stat.Category, stat.Count)
		dc.DrawStringAnchored(label, lx+legendSwatch+8, ly+legendSwatch/2, 0, 0.5)

		ly += legendSwatch + 10
	}

	return encodeImage(dc.Image())
}

// placeholder renders a "no data" image for empty filtered sets so the
// dashboard never shows a broken image.
func placeholder(width, height int) ([]byte, error) {
	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()

	loadFace(dc, false, titleFontSz)
	dc.SetColor(mutedColor)
	dc.DrawStringAnchored("No complaints in the selected range", float64(width)/2, float64(height)/2, 0.5, 0.5)

	return encodeImage(dc.Image())
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func encodeImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
