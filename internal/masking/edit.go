package masking

import (
	"fmt"

	"github.com/ironsheep/magic-edit-mcp/internal/raster"
)

// FeatherStyle selects the blur kernel used to soften the selection edge.
type FeatherStyle string

const (
	// FeatherStyleBox is the default separable box blur (see Feather).
	FeatherStyleBox FeatherStyle = "box"

	// FeatherStyleGaussian uses a gaussian kernel for a smoother falloff
	// (see FeatherGaussian).
	FeatherStyleGaussian FeatherStyle = "gaussian"
)

// Edit represents one masked-edit request: a base image, a selection, and the
// feathered mask derived from them.
//
// An Edit is the explicit per-request object that replaces any "edit in
// flight" global: the caller creates one Edit per request, sends HoleImage's
// output to the external generator, and applies the generator's response with
// Apply. The Edit holds no I/O and no shared state; abandoning it before
// Apply leaves nothing to cancel or clean up. Callers wanting to serialize
// requests per image session do so by holding at most one live Edit.
type Edit struct {
	base      *raster.Buffer
	feathered *raster.Mask
}

// NewEdit validates the inputs and feathers the selection once, using the box
// kernel. The raw mask is typically binary (0 or 255) as painted by the user;
// radius controls how wide the soft transition band becomes.
//
// Errors: ErrDimensionMismatch if base and mask differ in size,
// ErrInvalidParameter if radius is negative.
func NewEdit(base *raster.Buffer, mask *raster.Mask, radius int) (*Edit, error) {
	return NewEditStyled(base, mask, radius, FeatherStyleBox)
}

// NewEditStyled is NewEdit with an explicit feather style.
func NewEditStyled(base *raster.Buffer, mask *raster.Mask, radius int, style FeatherStyle) (*Edit, error) {
	if !mask.Matches(base) {
		return nil, fmt.Errorf("%w: base is %dx%d but mask is %dx%d",
			raster.ErrDimensionMismatch, base.Width, base.Height, mask.Width, mask.Height)
	}

	var feathered *raster.Mask
	var err error
	switch style {
	case FeatherStyleBox:
		feathered, err = Feather(mask, radius)
	case FeatherStyleGaussian:
		feathered, err = FeatherGaussian(mask, radius)
	default:
		return nil, fmt.Errorf("%w: unknown feather style %q", raster.ErrInvalidParameter, style)
	}
	if err != nil {
		return nil, err
	}

	return &Edit{base: base, feathered: feathered}, nil
}

// FeatheredMask returns a copy of the soft-edged mask derived from the
// selection.
func (e *Edit) FeatheredMask() *raster.Mask {
	return e.feathered.Clone()
}

// MaskEmpty reports whether the feathered selection is entirely zero. When it
// is, Apply returns the base unchanged, so callers can skip the round trip to
// the external generator.
func (e *Edit) MaskEmpty() bool {
	return e.feathered.Empty()
}

// HoleImage returns the transmit image for the external generator: the base
// with its alpha cut out under the feathered selection. Dimensions were
// validated at construction, so this cannot fail.
func (e *Edit) HoleImage() *raster.Buffer {
	out, err := CutHole(e.base, e.feathered)
	if err != nil {
		// Unreachable: dimensions are fixed at NewEdit.
		panic(err)
	}
	return out
}

// Result is the output of applying a fill to an edit: the final image plus
// the advisory boundary report.
type Result struct {
	// Image is the composited output. Pixels outside the feathered selection
	// are bit-identical to the base image.
	Image *raster.Buffer

	// Report describes whether the generator changed anything outside the
	// selection. Metadata only; the containment in Image holds regardless.
	Report *BoundaryReport
}

// Apply blends the externally generated fill into the base image through the
// feathered mask and reports on boundary behavior. The fill must already
// match the base's dimensions; resize it with raster.ResizeToMatch first if
// the generator returned a different size.
func (e *Edit) Apply(fill *raster.Buffer, tolerance int) (*Result, error) {
	report, err := CheckBoundary(e.base, fill, e.feathered, tolerance)
	if err != nil {
		return nil, err
	}
	img, err := Composite(e.base, fill, e.feathered)
	if err != nil {
		return nil, err
	}
	return &Result{Image: img, Report: report}, nil
}
