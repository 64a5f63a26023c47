package masking

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/magic-edit-mcp/internal/raster"
)

// OutsideThreshold is the mask level below which a pixel counts as "outside
// the selection" for boundary checking. A small nonzero threshold separates
// truly untouched pixels from the lightly feathered fringe.
const OutsideThreshold = 8

// BoundaryReport describes how faithfully the external generator preserved
// the image outside the selection.
//
// The report is advisory observability data, not a correctness gate:
// Composite already discards out-of-mask changes unconditionally, so a
// violation here means "the generator's output was corrected client-side",
// never "the edit is wrong".
type BoundaryReport struct {
	// Violated is true if at least one pixel outside the selection changed
	// by more than the tolerance.
	Violated bool `json:"violated"`

	// MaxDelta is the largest per-channel absolute difference observed on
	// any pixel outside the selection, whether or not it exceeded the
	// tolerance.
	MaxDelta int `json:"max_delta"`

	// ViolatingPixelCount is the number of outside pixels whose maximum
	// channel delta exceeded the tolerance.
	ViolatingPixelCount int `json:"violating_pixel_count"`

	// OutsidePixelCount is the number of pixels checked (mask below
	// OutsideThreshold).
	OutsidePixelCount int `json:"outside_pixel_count"`

	// MaxDeltaLab is the CIE-Lab distance of the most perceptually distant
	// violating pixel, 0 if there were none. Channel deltas treat all
	// channels alike; this figure indicates how visible the worst violation
	// would have been.
	MaxDeltaLab float64 `json:"max_delta_lab"`
}

// CheckBoundary measures how much the fill image differs from the base image
// outside the selection. For every pixel where the mask is below
// OutsideThreshold it computes the per-channel absolute difference between
// base and fill; a pixel whose maximum channel delta exceeds the tolerance
// counts as violating.
//
// The check is always safe to skip and must never gate whether compositing
// proceeds. A detected violation is expected, recoverable input from an
// untrusted generator and is reported as data, not as an error.
//
// Tolerance must be in [0, 255]; anything else fails with
// ErrInvalidParameter. Dimension mismatches fail with ErrDimensionMismatch.
func CheckBoundary(base, fill *raster.Buffer, mask *raster.Mask, tolerance int) (*BoundaryReport, error) {
	if tolerance < 0 || tolerance > 255 {
		return nil, fmt.Errorf("%w: tolerance must be in [0, 255], got %d", raster.ErrInvalidParameter, tolerance)
	}
	if !base.SameSize(fill) {
		return nil, fmt.Errorf("%w: base is %dx%d but fill is %dx%d",
			raster.ErrDimensionMismatch, base.Width, base.Height, fill.Width, fill.Height)
	}
	if !mask.Matches(base) {
		return nil, fmt.Errorf("%w: base is %dx%d but mask is %dx%d",
			raster.ErrDimensionMismatch, base.Width, base.Height, mask.Width, mask.Height)
	}

	report := &BoundaryReport{}
	for i, m := range mask.Pix {
		if m >= OutsideThreshold {
			continue
		}
		report.OutsidePixelCount++

		p := i * 4
		delta := 0
		for c := 0; c < 4; c++ {
			d := int(base.Pix[p+c]) - int(fill.Pix[p+c])
			if d < 0 {
				d = -d
			}
			if d > delta {
				delta = d
			}
		}
		if delta > report.MaxDelta {
			report.MaxDelta = delta
		}
		if delta > tolerance {
			report.ViolatingPixelCount++
			if lab := labDistance(base.Pix[p:p+3], fill.Pix[p:p+3]); lab > report.MaxDeltaLab {
				report.MaxDeltaLab = lab
			}
		}
	}
	report.Violated = report.ViolatingPixelCount > 0
	return report, nil
}

// labDistance returns the CIE-Lab distance between two RGB triples.
func labDistance(a, b []uint8) float64 {
	ca := colorful.Color{R: float64(a[0]) / 255, G: float64(a[1]) / 255, B: float64(a[2]) / 255}
	cb := colorful.Color{R: float64(b[0]) / 255, G: float64(b[1]) / 255, B: float64(b[2]) / 255}
	return ca.DistanceLab(cb)
}
