package masking

import (
	"errors"
	"testing"

	"github.com/ironsheep/magic-edit-mcp/internal/raster"
)

func TestNewEdit_DimensionMismatch(t *testing.T) {
	base := solidBuffer(4, 4, 0, 0, 0, 255)
	_, err := NewEdit(base, raster.NewMask(3, 3), 1)
	if !errors.Is(err, raster.ErrDimensionMismatch) {
		t.Errorf("error should wrap ErrDimensionMismatch, got %v", err)
	}
}

func TestNewEdit_NegativeRadius(t *testing.T) {
	base := solidBuffer(4, 4, 0, 0, 0, 255)
	_, err := NewEdit(base, raster.NewMask(4, 4), -3)
	if !errors.Is(err, raster.ErrInvalidParameter) {
		t.Errorf("error should wrap ErrInvalidParameter, got %v", err)
	}
}

func TestNewEditStyled_UnknownStyle(t *testing.T) {
	base := solidBuffer(4, 4, 0, 0, 0, 255)
	_, err := NewEditStyled(base, raster.NewMask(4, 4), 1, FeatherStyle("median"))
	if !errors.Is(err, raster.ErrInvalidParameter) {
		t.Errorf("error should wrap ErrInvalidParameter, got %v", err)
	}
}

func TestEdit_MaskEmpty(t *testing.T) {
	base := solidBuffer(4, 4, 0, 0, 0, 255)

	edit, err := NewEdit(base, raster.NewMask(4, 4), 2)
	if err != nil {
		t.Fatalf("NewEdit failed: %v", err)
	}
	if !edit.MaskEmpty() {
		t.Error("all-zero selection should report empty")
	}

	edit, err = NewEdit(base, blockMask(4, 4, 1, 1, 2, 2), 0)
	if err != nil {
		t.Fatalf("NewEdit failed: %v", err)
	}
	if edit.MaskEmpty() {
		t.Error("nonzero selection should not report empty")
	}
}

func TestEdit_FeatheredMaskIsCopy(t *testing.T) {
	base := solidBuffer(4, 4, 0, 0, 0, 255)
	edit, err := NewEdit(base, blockMask(4, 4, 0, 0, 2, 2), 0)
	if err != nil {
		t.Fatalf("NewEdit failed: %v", err)
	}

	m1 := edit.FeatheredMask()
	m1.Pix[0] = 0
	m2 := edit.FeatheredMask()
	if m2.Pix[0] != 255 {
		t.Error("FeatheredMask should return an independent copy")
	}
}

// TestEdit_WorkedExample walks the documented end-to-end scenario: a 4x4
// all-zero base, a selection covering the top-left 2x2 block, feather radius
// 1, and a solid white fill. The fully masked corner becomes exactly white,
// the unmasked bottom-right 2x2 stays exactly (0,0,0,0), and the transition
// band takes intermediate gray/alpha values equal to the feathered mask.
func TestEdit_WorkedExample(t *testing.T) {
	base := solidBuffer(4, 4, 0, 0, 0, 0)
	fill := solidBuffer(4, 4, 255, 255, 255, 255)

	edit, err := NewEdit(base, blockMask(4, 4, 0, 0, 2, 2), 1)
	if err != nil {
		t.Fatalf("NewEdit failed: %v", err)
	}

	feathered := edit.FeatheredMask()
	wantMask := []uint8{
		255, 170, 85, 0,
		170, 113, 57, 0,
		85, 57, 28, 0,
		0, 0, 0, 0,
	}
	for i, w := range wantMask {
		if feathered.Pix[i] != w {
			t.Errorf("feathered mask pixel (%d,%d): got %d, want %d", i%4, i/4, feathered.Pix[i], w)
		}
	}

	result, err := edit.Apply(fill, 10)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// With a black transparent base and white opaque fill, every output
	// channel equals the feathered mask weight.
	for i, w := range wantMask {
		p := i * 4
		for c := 0; c < 4; c++ {
			if result.Image.Pix[p+c] != w {
				t.Errorf("output pixel (%d,%d) channel %d: got %d, want %d",
					i%4, i/4, c, result.Image.Pix[p+c], w)
			}
		}
	}

	// The solid white fill rewrote the whole frame, so the pixels outside
	// the feathered selection were corrected client-side.
	if !result.Report.Violated {
		t.Error("report should flag the out-of-mask rewrite")
	}
}

func TestEdit_HoleImage(t *testing.T) {
	base := solidBuffer(4, 4, 9, 8, 7, 255)
	edit, err := NewEdit(base, blockMask(4, 4, 0, 0, 2, 2), 0)
	if err != nil {
		t.Fatalf("NewEdit failed: %v", err)
	}

	hole := edit.HoleImage()
	for i := 0; i < 16; i++ {
		p := i * 4
		inSelection := i%4 < 2 && i/4 < 2
		wantAlpha := uint8(255)
		if inSelection {
			wantAlpha = 0
		}
		if hole.Pix[p+3] != wantAlpha {
			t.Errorf("pixel (%d,%d): alpha got %d, want %d", i%4, i/4, hole.Pix[p+3], wantAlpha)
		}
		if hole.Pix[p] != 9 || hole.Pix[p+1] != 8 || hole.Pix[p+2] != 7 {
			t.Errorf("pixel (%d,%d): RGB changed", i%4, i/4)
		}
	}
}

func TestEdit_ApplyEnforcesContainment(t *testing.T) {
	// Even a hostile fill that rewrites everything cannot touch pixels where
	// the feathered mask is zero.
	base := patternBuffer(10, 10)
	fill := solidBuffer(10, 10, 255, 255, 255, 255)

	edit, err := NewEdit(base, blockMask(10, 10, 1, 1, 4, 4), 1)
	if err != nil {
		t.Fatalf("NewEdit failed: %v", err)
	}

	result, err := edit.Apply(fill, 10)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	feathered := edit.FeatheredMask()
	for i, m := range feathered.Pix {
		if m != 0 {
			continue
		}
		p := i * 4
		for c := 0; c < 4; c++ {
			if result.Image.Pix[p+c] != base.Pix[p+c] {
				t.Errorf("pixel (%d,%d) channel %d changed despite zero mask weight", i%10, i/10, c)
			}
		}
	}

	if !result.Report.Violated {
		t.Error("rewriting the whole frame should be reported")
	}
	if result.Report.ViolatingPixelCount == 0 {
		t.Error("ViolatingPixelCount should be nonzero")
	}
}

func TestEdit_ApplyDimensionMismatch(t *testing.T) {
	base := solidBuffer(4, 4, 0, 0, 0, 255)
	edit, err := NewEdit(base, blockMask(4, 4, 0, 0, 2, 2), 1)
	if err != nil {
		t.Fatalf("NewEdit failed: %v", err)
	}

	_, err = edit.Apply(raster.NewBuffer(8, 8), 10)
	if !errors.Is(err, raster.ErrDimensionMismatch) {
		t.Errorf("error should wrap ErrDimensionMismatch, got %v", err)
	}
}

func TestEdit_GaussianStyle(t *testing.T) {
	base := solidBuffer(12, 12, 0, 0, 0, 255)
	edit, err := NewEditStyled(base, blockMask(12, 12, 3, 3, 9, 9), 2, FeatherStyleGaussian)
	if err != nil {
		t.Fatalf("NewEditStyled failed: %v", err)
	}
	feathered := edit.FeatheredMask()
	if feathered.Empty() {
		t.Fatal("gaussian feathered mask should not be empty")
	}
	if v := feathered.Pix[6*12+6]; v < 200 {
		t.Errorf("selection center should stay strong, got %d", v)
	}
}
