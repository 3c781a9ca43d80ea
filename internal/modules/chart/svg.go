package chart

import (
	"bytes"
	"fmt"
)

// RenderDescription is the output of one render pass: a standalone SVG
// document plus the parameters it was rendered with.
type RenderDescription struct {
	SVG         string  `json:"svg"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Variant     Variant `json:"variant"`
	SeriesCount int     `json:"series_count"`
}

// Frame is the resolved pixel size of the chart render area
type Frame struct {
	Width  float64
	Height float64
}

// Chart layout constants
const (
	marginTop    = 16.0
	marginRight  = 16.0
	marginBottom = 28.0
	marginLeft   = 52.0

	backgroundColor = "#0b0f17"
	gridColor       = "#1f2937"
	axisTextColor   = "#94a3b8"
	zeroLineColor   = "#94a3b8"
)

// Render produces the SVG for the projected series under the given plan
// and frame. Pure with respect to the series: the same rows yield the
// same geometry for every plan, only the visual treatment changes.
// Empty rows or botIDs produce a valid empty frame (axes and zero line),
// never an error.
func Render(rows []SeriesRow, botIDs []string, plan RenderPlan, frame Frame, palette []string) RenderDescription {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	w, h := frame.Width, frame.Height
	innerW := w - marginLeft - marginRight
	innerH := h - marginTop - marginBottom

	yMin, yMax := valueExtent(rows, botIDs)
	tMin, tMax := timeExtent(rows)

	x := linearScale{domainMin: float64(tMin), domainMax: float64(tMax), rangeMin: 0, rangeMax: innerW}
	y := linearScale{domainMin: yMin, domainMax: yMax, rangeMin: innerH, rangeMax: 0}

	var b bytes.Buffer
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`, w, h, w, h)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, backgroundColor)

	writeDefs(&b, plan, botIDs, palette)

	fmt.Fprintf(&b, `<g transform="translate(%.0f,%.0f)">`, marginLeft, marginTop)

	yTickValues := yTicks(yMin, yMax, 5)
	writeGrid(&b, plan, yTickValues, y, innerW)
	writeZeroLine(&b, y, innerW)
	writeSeries(&b, rows, botIDs, plan, x, y, innerH, palette)
	writeAxes(&b, rows, yTickValues, x, y, innerW, innerH)

	b.WriteString(`</g></svg>`)

	return RenderDescription{
		SVG:         b.String(),
		Width:       w,
		Height:      h,
		Variant:     plan.Variant(),
		SeriesCount: len(botIDs),
	}
}

// writeDefs emits the <defs> block: per-series fill gradients for the
// split-area plan and the shared glow filter for the neon plan. Other
// plans need no defs.
func writeDefs(b *bytes.Buffer, plan RenderPlan, botIDs []string, palette []string) {
	switch p := plan.(type) {
	case SplitAreaPlan:
		b.WriteString(`<defs>`)
		for i := range botIDs {
			color := palette[i%len(palette)]
			// Gradient anchored at the series line: strongest at the line,
			// fading to transparent toward the frame bottom.
			fmt.Fprintf(b, `<linearGradient id="%s-%d" x1="0" y1="0" x2="0" y2="1">`, p.GradientIDPrefix, i)
			fmt.Fprintf(b, `<stop offset="0%%" stop-color="%s" stop-opacity="0.35"/>`, color)
			fmt.Fprintf(b, `<stop offset="100%%" stop-color="%s" stop-opacity="0"/>`, color)
			b.WriteString(`</linearGradient>`)
		}
		b.WriteString(`</defs>`)
	case NeonPlan:
		b.WriteString(`<defs>`)
		fmt.Fprintf(b, `<filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`, p.FilterID)
		b.WriteString(`<feGaussianBlur in="SourceGraphic" stdDeviation="4" result="blur"/>`)
		b.WriteString(`<feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge>`)
		b.WriteString(`</filter></defs>`)
	}
}

// writeGrid emits horizontal gridlines per the plan's grid style
func writeGrid(b *bytes.Buffer, plan RenderPlan, ticks []float64, y linearScale, innerW float64) {
	var attrs string
	switch plan.grid() {
	case gridNone:
		return
	case gridDashed:
		attrs = fmt.Sprintf(`stroke="%s" stroke-dasharray="4 4"`, gridColor)
	case gridSolidFaint:
		attrs = fmt.Sprintf(`stroke="%s" stroke-opacity="0.6"`, gridColor)
	}

	for _, tick := range ticks {
		py := y.scale(tick)
		fmt.Fprintf(b, `<line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" %s/>`, py, innerW, py, attrs)
	}
}

// writeZeroLine emits the shared low-opacity reference line at value 0
func writeZeroLine(b *bytes.Buffer, y linearScale, innerW float64) {
	py := y.scale(0)
	fmt.Fprintf(b, `<line x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="0.35"/>`,
		py, innerW, py, zeroLineColor)
}

// segment is a run of consecutive rows where the series has a value
type segment struct {
	xs, ys []float64
}

// seriesSegments splits one bot's series into contiguous segments,
// breaking at rows where the bot has no value (gap, not zero).
func seriesSegments(rows []SeriesRow, botID string, x, y linearScale) []segment {
	var segs []segment
	var cur segment
	for _, row := range rows {
		v, ok := row.Values[botID]
		if !ok {
			if len(cur.xs) > 0 {
				segs = append(segs, cur)
				cur = segment{}
			}
			continue
		}
		cur.xs = append(cur.xs, x.scale(float64(row.Timestamp)))
		cur.ys = append(cur.ys, y.scale(v))
	}
	if len(cur.xs) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// writeSeries emits each bot's stroke (and fill, for split-area) without
// point markers. Fills are per-series and independent: each area runs from
// its own line to the frame bottom, overlapping other series freely.
func writeSeries(b *bytes.Buffer, rows []SeriesRow, botIDs []string, plan RenderPlan, x, y linearScale, innerH float64, palette []string) {
	stroke := plan.strokeWidth()

	for i, botID := range botIDs {
		color := palette[i%len(palette)]
		segs := seriesSegments(rows, botID, x, y)
		if len(segs) == 0 {
			continue
		}

		if p, ok := plan.(SplitAreaPlan); ok {
			for _, seg := range segs {
				fmt.Fprintf(b, `<path d="%s" fill="url(#%s-%d)" stroke="none"/>`,
					areaPath(seg, innerH), p.GradientIDPrefix, i)
			}
		}

		var filter string
		if p, ok := plan.(NeonPlan); ok {
			filter = fmt.Sprintf(` filter="url(#%s)"`, p.FilterID)
		}

		for _, seg := range segs {
			fmt.Fprintf(b, `<path d="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round" stroke-linecap="round"%s/>`,
				linePath(seg), color, stroke, filter)
		}
	}
}

// linePath builds an SVG path for one segment's stroke
func linePath(seg segment) string {
	var b bytes.Buffer
	for i := range seg.xs {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.2f %.2f", cmd, seg.xs[i], seg.ys[i])
	}
	return b.String()
}

// areaPath builds a closed SVG path from the segment's line down to the
// frame bottom
func areaPath(seg segment, innerH float64) string {
	var b bytes.Buffer
	b.WriteString(linePath(seg))
	fmt.Fprintf(&b, "L%.2f %.2f", seg.xs[len(seg.xs)-1], innerH)
	fmt.Fprintf(&b, "L%.2f %.2f", seg.xs[0], innerH)
	b.WriteString("Z")
	return b.String()
}

// writeAxes emits the X (HH:MM) and Y ($value) tick labels
func writeAxes(b *bytes.Buffer, rows []SeriesRow, yTickValues []float64, x, y linearScale, innerW, innerH float64) {
	for _, tick := range yTickValues {
		py := y.scale(tick)
		fmt.Fprintf(b, `<text x="-8" y="%.2f" fill="%s" font-family="monospace" font-size="10" text-anchor="end" dominant-baseline="middle">%s</text>`,
			py, axisTextColor, formatAxisUSD(tick))
	}

	for _, ts := range xTicks(rows, 6) {
		px := x.scale(float64(ts))
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-family="monospace" font-size="10" text-anchor="middle">%s</text>`,
			px, innerH+18, axisTextColor, FormatClock(ts))
	}
}

// formatAxisUSD renders a Y tick as a whole-dollar label
func formatAxisUSD(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.0f", -v)
	}
	return fmt.Sprintf("$%.0f", v)
}
