package chart

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// linearScale maps a data domain onto a pixel range
type linearScale struct {
	domainMin, domainMax float64
	rangeMin, rangeMax   float64
}

func (s linearScale) scale(v float64) float64 {
	span := s.domainMax - s.domainMin
	if span == 0 {
		return (s.rangeMin + s.rangeMax) / 2
	}
	return s.rangeMin + (v-s.domainMin)/span*(s.rangeMax-s.rangeMin)
}

// valueExtent collects the min/max over all present series values. The y
// domain always spans zero so the reference line stays inside the frame.
// Returns [-1, 1] when no values exist (empty-but-valid frame).
func valueExtent(rows []SeriesRow, botIDs []string) (float64, float64) {
	var values []float64
	for _, row := range rows {
		for _, id := range botIDs {
			if v, ok := row.Values[id]; ok {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return -1, 1
	}

	lo := math.Min(floats.Min(values), 0)
	hi := math.Max(floats.Max(values), 0)
	if lo == hi {
		// Flat series pinned at zero; give the frame some vertical room.
		return -1, 1
	}

	// 5% headroom so strokes don't touch the frame edges
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

// timeExtent returns the first and last timestamps in given order.
// Out-of-order input maps through unchanged, producing the documented
// visually-backwards chart rather than a corrected one.
func timeExtent(rows []SeriesRow) (int64, int64) {
	if len(rows) == 0 {
		return 0, 1
	}
	first := rows[0].Timestamp
	last := rows[len(rows)-1].Timestamp
	if first == last {
		return first, first + 1
	}
	return first, last
}

// yTicks places n evenly spaced tick values across the domain
func yTicks(domainMin, domainMax float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	ticks := make([]float64, n)
	step := (domainMax - domainMin) / float64(n-1)
	for i := range ticks {
		ticks[i] = domainMin + float64(i)*step
	}
	return ticks
}

// xTicks picks up to n row timestamps for axis labels, first and last
// always included
func xTicks(rows []SeriesRow, n int) []int64 {
	if len(rows) == 0 || n < 2 {
		return nil
	}
	if len(rows) <= n {
		ticks := make([]int64, len(rows))
		for i, row := range rows {
			ticks[i] = row.Timestamp
		}
		return ticks
	}

	ticks := make([]int64, 0, n)
	step := float64(len(rows)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		idx := int(math.Round(float64(i) * step))
		ticks = append(ticks, rows[idx].Timestamp)
	}
	return ticks
}
