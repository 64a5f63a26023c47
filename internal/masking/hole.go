package masking

import (
	"fmt"

	"github.com/ironsheep/magic-edit-mcp/internal/raster"
)

// CutHole produces the "transmit" version of the base image: RGB is copied
// unchanged, and alpha is multiplicatively reduced in proportion to mask
// strength:
//
//	alpha' = round(alpha * (255 - mask) / 255)
//
// Fully masked pixels become fully transparent; unmasked pixels keep their
// original alpha. The reduction is multiplicative rather than a hard cut so
// that the transparency gradient exactly matches a feathered mask, giving the
// downstream consumer a continuous hint about blend confidence at the
// boundary.
//
// Dimension mismatch between base and mask fails with ErrDimensionMismatch;
// inputs are never silently resized.
func CutHole(base *raster.Buffer, mask *raster.Mask) (*raster.Buffer, error) {
	if !mask.Matches(base) {
		return nil, fmt.Errorf("%w: base is %dx%d but mask is %dx%d",
			raster.ErrDimensionMismatch, base.Width, base.Height, mask.Width, mask.Height)
	}

	out := raster.NewBuffer(base.Width, base.Height)
	for i, m := range mask.Pix {
		p := i * 4
		out.Pix[p] = base.Pix[p]
		out.Pix[p+1] = base.Pix[p+1]
		out.Pix[p+2] = base.Pix[p+2]

		a := int(base.Pix[p+3])
		out.Pix[p+3] = uint8((a*(255-int(m)) + 127) / 255)
	}
	return out, nil
}
