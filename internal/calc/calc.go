// Package calc contains the pure calculation functions that turn catalog
// ranges and user geometry into derived cutting parameters. Everything here
// is stateless; validation of inputs happens in the flow before these
// functions run.
package calc

import (
	"fmt"
	"math"

	"github.com/cnckit/cutmode/pkg/catalog"
	"github.com/cnckit/cutmode/pkg/domain"
)

// Mean returns the arithmetic mean of a catalog range, the "recommended"
// value inside the interval.
func Mean(r catalog.Range) float64 {
	return (r.Min + r.Max) / 2
}

// SpindleSpeed derives the rotational speed (rpm) from a surface cutting
// speed (m/min) and tool diameter (mm): n = 1000*v / (pi*d).
func SpindleSpeed(speed, diameter float64) float64 {
	return 1000 * speed / (math.Pi * diameter)
}

// FeedRate derives the linear feed (mm/min) from the per-revolution feed and
// spindle speed.
func FeedRate(feed, spindleSpeed float64) float64 {
	return feed * spindleSpeed
}

// CylindricalWidth is the engagement width of a cylindrical end mill.
func CylindricalWidth(diameter float64) float64 {
	return 0.5 * diameter
}

// BallNoseWidth is the chord width a ball-nose cutter engages at the given
// depth of cut: 2*sqrt(ap*(d-ap)). The depth must satisfy 0 <= ap <= d or
// the square root argument goes negative; out-of-domain inputs return
// domain.ErrOutOfDomain instead of NaN.
func BallNoseWidth(diameter, depth float64) (float64, error) {
	if depth < 0 || depth > diameter {
		return 0, fmt.Errorf("%w: ball-nose depth of cut %v outside [0, %v]", domain.ErrOutOfDomain, depth, diameter)
	}
	return 2 * math.Sqrt(depth*(diameter-depth)), nil
}

// Overlap returns the recommended radial stepover as a percentage of the
// cutter diameter, stepped down as the depth-of-cut-to-diameter ratio grows.
// All thresholds are inclusive on the upper bound. ok is false beyond two
// diameters, where no recommendation exists.
func Overlap(diameter, depth float64) (percent float64, ok bool) {
	switch {
	case depth <= 0.3*diameter:
		return 100, true
	case depth <= 0.5*diameter:
		return 70, true
	case depth <= 0.7*diameter:
		return 50, true
	case depth <= diameter:
		return 30, true
	case depth <= 2*diameter:
		return 10, true
	default:
		return 0, false
	}
}

// PassWidth converts an overlap percentage into the reported cutting width
// for the entered diameter.
func PassWidth(percent, diameter float64) float64 {
	return percent * diameter / 100
}

// Derive assembles the full recommendation for a completed selection.
// Quantities whose inputs are unknown on the chosen path (spindle speed
// without a diameter, widths outside milling) are left nil.
func Derive(entry catalog.Entry, sel domain.Selection) domain.Recommendation {
	rec := domain.Recommendation{
		Speed: Mean(entry.Speed),
		Feed:  Mean(entry.Feed),
	}
	// Drilling carries no recommended depth; only the turning paths report one.
	if entry.Depth != nil && sel.Operation != domain.OpDrilling {
		d := Mean(*entry.Depth)
		rec.Depth = &d
	}
	if sel.Diameter != nil {
		n := SpindleSpeed(rec.Speed, *sel.Diameter)
		rec.SpindleSpeed = &n
		fr := FeedRate(rec.Feed, n)
		rec.FeedRate = &fr
	}
	if sel.Operation == domain.OpMilling && sel.Diameter != nil && sel.DepthOfCut != nil {
		switch sel.ToolSubtype {
		case catalog.SubtypeCylindrical:
			w := CylindricalWidth(*sel.Diameter)
			rec.CuttingWidth = &w
		case catalog.SubtypeBall:
			// The flow rejects out-of-domain depths before reaching here.
			if w, err := BallNoseWidth(*sel.Diameter, *sel.DepthOfCut); err == nil {
				rec.CuttingWidth = &w
			}
		}
		if p, ok := Overlap(*sel.Diameter, *sel.DepthOfCut); ok {
			rec.OverlapPercent = &p
			pw := PassWidth(p, *sel.Diameter)
			rec.PassWidth = &pw
		}
	}
	return rec
}
