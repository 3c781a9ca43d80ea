package chart

import "fmt"

// Variant names one of the four visual presentation pipelines. Switching
// variant never mutates or resamples the projected series.
type Variant string

const (
	VariantMinimal   Variant = "minimal"
	VariantGridded   Variant = "gridded"
	VariantSplitArea Variant = "splitArea"
	VariantNeon      Variant = "neon"
)

// ParseVariant maps a query string to a Variant. Empty means the default
// (minimal); anything else unknown is an error.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", string(VariantMinimal):
		return VariantMinimal, nil
	case string(VariantGridded):
		return VariantGridded, nil
	case string(VariantSplitArea):
		return VariantSplitArea, nil
	case string(VariantNeon):
		return VariantNeon, nil
	default:
		return "", fmt.Errorf("unknown variant: %q", s)
	}
}

// gridStyle describes the horizontal gridline treatment of a plan
type gridStyle int

const (
	gridNone gridStyle = iota
	gridDashed
	gridSolidFaint
)

// RenderPlan is the tagged presentation plan for one render pass. Each
// case carries only the parameters its pipeline needs; the renderer
// dispatches on the concrete type exactly once.
type RenderPlan interface {
	Variant() Variant
	strokeWidth() float64
	grid() gridStyle
}

// MinimalPlan renders plain 1.5px lines with no grid
type MinimalPlan struct{}

func (MinimalPlan) Variant() Variant     { return VariantMinimal }
func (MinimalPlan) strokeWidth() float64 { return 1.5 }
func (MinimalPlan) grid() gridStyle      { return gridNone }

// GriddedPlan renders 1.5px lines over dashed horizontal gridlines
type GriddedPlan struct{}

func (GriddedPlan) Variant() Variant     { return VariantGridded }
func (GriddedPlan) strokeWidth() float64 { return 1.5 }
func (GriddedPlan) grid() gridStyle      { return gridDashed }

// SplitAreaPlan renders filled areas, one independent fade-to-transparent
// gradient per series anchored at that series' line. Overlap between
// series is expected and not corrected.
type SplitAreaPlan struct {
	// GradientIDPrefix namespaces the per-series <linearGradient> ids so
	// multiple charts can coexist in one document.
	GradientIDPrefix string
}

func (SplitAreaPlan) Variant() Variant     { return VariantSplitArea }
func (SplitAreaPlan) strokeWidth() float64 { return 1.5 }
func (SplitAreaPlan) grid() gridStyle      { return gridDashed }

// NeonPlan renders 2.5px lines with a blur+merge glow filter per stroke
// over solid faint horizontal gridlines
type NeonPlan struct {
	// FilterID is the id of the shared glow <filter> definition.
	FilterID string
}

func (NeonPlan) Variant() Variant     { return VariantNeon }
func (NeonPlan) strokeWidth() float64 { return 2.5 }
func (NeonPlan) grid() gridStyle      { return gridSolidFaint }

// PlanFor builds the RenderPlan for a variant
func PlanFor(v Variant) RenderPlan {
	switch v {
	case VariantGridded:
		return GriddedPlan{}
	case VariantSplitArea:
		return SplitAreaPlan{GradientIDPrefix: "pnl-fill"}
	case VariantNeon:
		return NeonPlan{FilterID: "pnl-glow"}
	default:
		return MinimalPlan{}
	}
}
