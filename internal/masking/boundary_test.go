package masking

import (
	"errors"
	"testing"

	"github.com/ironsheep/magic-edit-mcp/internal/raster"
)

func TestCheckBoundary_CleanFill(t *testing.T) {
	base := patternBuffer(8, 8)
	fill := base.Clone()
	mask := blockMask(8, 8, 2, 2, 6, 6)

	report, err := CheckBoundary(base, fill, mask, 10)
	if err != nil {
		t.Fatalf("CheckBoundary failed: %v", err)
	}

	if report.Violated {
		t.Error("identical fill should not violate")
	}
	if report.MaxDelta != 0 {
		t.Errorf("MaxDelta: got %d, want 0", report.MaxDelta)
	}
	if report.ViolatingPixelCount != 0 {
		t.Errorf("ViolatingPixelCount: got %d, want 0", report.ViolatingPixelCount)
	}
	if report.OutsidePixelCount != 64-16 {
		t.Errorf("OutsidePixelCount: got %d, want 48", report.OutsidePixelCount)
	}
}

func TestCheckBoundary_SingleViolatingPixel(t *testing.T) {
	base := solidBuffer(8, 8, 40, 40, 40, 255)
	mask := blockMask(8, 8, 0, 0, 4, 4)

	// Copy base everywhere, then push one pixel outside the mask to a far
	// color.
	fill := base.Clone()
	p := (7*8 + 7) * 4
	fill.Pix[p] = 255
	fill.Pix[p+1] = 0
	fill.Pix[p+2] = 0

	report, err := CheckBoundary(base, fill, mask, 10)
	if err != nil {
		t.Fatalf("CheckBoundary failed: %v", err)
	}

	if !report.Violated {
		t.Error("expected a violation")
	}
	if report.ViolatingPixelCount != 1 {
		t.Errorf("ViolatingPixelCount: got %d, want 1", report.ViolatingPixelCount)
	}
	if report.MaxDelta != 215 {
		t.Errorf("MaxDelta: got %d, want 215", report.MaxDelta)
	}
	if report.MaxDeltaLab <= 0 {
		t.Errorf("MaxDeltaLab should be positive for a red-vs-gray violation, got %f", report.MaxDeltaLab)
	}
}

func TestCheckBoundary_InsideChangesIgnored(t *testing.T) {
	base := solidBuffer(8, 8, 0, 0, 0, 255)
	mask := blockMask(8, 8, 0, 0, 4, 4)

	// The generator may rewrite the inside of the selection freely.
	fill := base.Clone()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := (y*8 + x) * 4
			fill.Pix[p] = 255
			fill.Pix[p+1] = 255
			fill.Pix[p+2] = 255
		}
	}

	report, err := CheckBoundary(base, fill, mask, 10)
	if err != nil {
		t.Fatalf("CheckBoundary failed: %v", err)
	}
	if report.Violated {
		t.Error("changes inside the selection must not count as violations")
	}
}

func TestCheckBoundary_OutsideThreshold(t *testing.T) {
	// mask < OutsideThreshold is outside; mask >= OutsideThreshold is the
	// feathered fringe and is exempt.
	base := solidBuffer(2, 1, 0, 0, 0, 255)
	fill := solidBuffer(2, 1, 100, 0, 0, 255)
	mask := newTestMask(t, 2, 1, []uint8{OutsideThreshold - 1, OutsideThreshold})

	report, err := CheckBoundary(base, fill, mask, 10)
	if err != nil {
		t.Fatalf("CheckBoundary failed: %v", err)
	}
	if report.OutsidePixelCount != 1 {
		t.Errorf("OutsidePixelCount: got %d, want 1", report.OutsidePixelCount)
	}
	if report.ViolatingPixelCount != 1 {
		t.Errorf("ViolatingPixelCount: got %d, want 1", report.ViolatingPixelCount)
	}
}

func TestCheckBoundary_ToleranceBoundary(t *testing.T) {
	base := solidBuffer(1, 1, 0, 0, 0, 255)
	fill := solidBuffer(1, 1, 10, 0, 0, 255)
	mask := raster.NewMask(1, 1)

	tests := []struct {
		name      string
		tolerance int
		violated  bool
	}{
		{"delta above tolerance", 9, true},
		{"delta equal to tolerance", 10, false},
		{"delta below tolerance", 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := CheckBoundary(base, fill, mask, tt.tolerance)
			if err != nil {
				t.Fatalf("CheckBoundary failed: %v", err)
			}
			if report.Violated != tt.violated {
				t.Errorf("Violated: got %v, want %v", report.Violated, tt.violated)
			}
		})
	}
}

func TestCheckBoundary_AlphaDeltaCounts(t *testing.T) {
	base := solidBuffer(1, 1, 50, 50, 50, 255)
	fill := solidBuffer(1, 1, 50, 50, 50, 100)
	mask := raster.NewMask(1, 1)

	report, err := CheckBoundary(base, fill, mask, 10)
	if err != nil {
		t.Fatalf("CheckBoundary failed: %v", err)
	}
	if !report.Violated {
		t.Error("alpha-only change outside the selection should violate")
	}
	if report.MaxDelta != 155 {
		t.Errorf("MaxDelta: got %d, want 155", report.MaxDelta)
	}
}

func TestCheckBoundary_InvalidTolerance(t *testing.T) {
	base := solidBuffer(2, 2, 0, 0, 0, 255)
	mask := raster.NewMask(2, 2)

	for _, tolerance := range []int{-1, 256} {
		_, err := CheckBoundary(base, base.Clone(), mask, tolerance)
		if err == nil {
			t.Fatalf("CheckBoundary should fail for tolerance %d", tolerance)
		}
		if !errors.Is(err, raster.ErrInvalidParameter) {
			t.Errorf("tolerance %d: error should wrap ErrInvalidParameter, got %v", tolerance, err)
		}
	}
}

func TestCheckBoundary_DimensionMismatch(t *testing.T) {
	base := solidBuffer(4, 4, 0, 0, 0, 255)
	_, err := CheckBoundary(base, raster.NewBuffer(3, 3), raster.NewMask(4, 4), 10)
	if !errors.Is(err, raster.ErrDimensionMismatch) {
		t.Errorf("error should wrap ErrDimensionMismatch, got %v", err)
	}
	_, err = CheckBoundary(base, raster.NewBuffer(4, 4), raster.NewMask(2, 2), 10)
	if !errors.Is(err, raster.ErrDimensionMismatch) {
		t.Errorf("error should wrap ErrDimensionMismatch, got %v", err)
	}
}
