package masking

import (
	"fmt"

	"github.com/ironsheep/magic-edit-mcp/internal/raster"
)

// Composite blends an externally produced fill image onto the base image
// using the mask as the per-pixel blend weight:
//
//	out = (base*(255-m) + fill*m + 127) / 255
//
// applied independently to each of the R, G, B, A channels in integer
// arithmetic. The +127 bias rounds to nearest and makes three identities
// exact:
//
//   - at m == 0 the output byte equals base, bit for bit, regardless of what
//     fill contains;
//   - at m == 255 the output byte equals fill;
//   - blending a value with itself returns that value unchanged.
//
// The first identity is the system's hard containment guarantee: the fill
// comes from an untrusted external generator, and even if it rewrites the
// entire image, pixels outside the feathered selection are mathematically
// unaffected. An all-zero mask therefore returns base unchanged, and
// compositing a result again with the same fill and mask is a no-op.
//
// All three operands must share identical dimensions; fill is never resampled
// here. If the external generator returned a differently sized image, resize
// it with raster.ResizeToMatch before calling.
func Composite(base, fill *raster.Buffer, mask *raster.Mask) (*raster.Buffer, error) {
	if !base.SameSize(fill) {
		return nil, fmt.Errorf("%w: base is %dx%d but fill is %dx%d",
			raster.ErrDimensionMismatch, base.Width, base.Height, fill.Width, fill.Height)
	}
	if !mask.Matches(base) {
		return nil, fmt.Errorf("%w: base is %dx%d but mask is %dx%d",
			raster.ErrDimensionMismatch, base.Width, base.Height, mask.Width, mask.Height)
	}

	out := raster.NewBuffer(base.Width, base.Height)
	for i, m := range mask.Pix {
		w := int(m)
		inv := 255 - w
		p := i * 4
		for c := 0; c < 4; c++ {
			out.Pix[p+c] = uint8((int(base.Pix[p+c])*inv + int(fill.Pix[p+c])*w + 127) / 255)
		}
	}
	return out, nil
}
