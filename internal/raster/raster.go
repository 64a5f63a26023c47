package raster

import (
	"errors"
)

// Sentinel errors for precondition violations. These are programmer errors in
// the calling code, not transient conditions: they are raised synchronously,
// never retried, and should be surfaced loudly. Use errors.Is to test for them.
var (
	// ErrInvalidParameter indicates an out-of-range scalar argument, such as a
	// negative feather radius or a tolerance outside [0, 255].
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch indicates that two operands passed to the same call
	// have different width/height. Operands are never silently resized; callers
	// must align their inputs (see ResizeToMatch) before invoking an operation.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyMask indicates a selection mask that is entirely zero. This is a
	// warning-level condition: compositing with an empty mask still succeeds
	// (it returns the base unchanged), but callers may want to skip the round
	// trip to the external generator when they detect it.
	ErrEmptyMask = errors.New("selection mask is empty")
)

// Buffer is a rectangular grid of 8-bit-per-channel RGBA pixels.
//
// Pix is row-major with no padding: the pixel at (x, y) starts at
// Pix[(y*Width+x)*4], with channels in R, G, B, A order. Alpha is
// non-premultiplied so that 8-bit channel values round-trip exactly through
// the image codec (see FromImage / ToImage).
//
// Invariant: len(Pix) == Width*Height*4.
//
// Every pipeline operation returns a freshly allocated Buffer and never
// mutates its inputs. The caller owns everything returned; nothing is retained
// across calls.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a zeroed Width x Height RGBA buffer.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Clone returns a deep copy of the buffer. The copy shares no storage with
// the original.
func (b *Buffer) Clone() *Buffer {
	out := NewBuffer(b.Width, b.Height)
	copy(out.Pix, b.Pix)
	return out
}

// SameSize reports whether b and other have identical dimensions.
func (b *Buffer) SameSize(other *Buffer) bool {
	return b.Width == other.Width && b.Height == other.Height
}

// Mask is a single-channel 8-bit selection mask paired with a Buffer of the
// same dimensions. 0 means "definitely outside the selection", 255 means
// "definitely inside". A raw freehand selection is effectively binary;
// feathering produces the continuous in-between values.
//
// Invariant: len(Pix) == Width*Height.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask allocates a zeroed Width x Height mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.Width, m.Height)
	copy(out.Pix, m.Pix)
	return out
}

// Empty reports whether every sample in the mask is zero. Compositing with an
// empty mask is a no-op; callers can use this to short-circuit the round trip
// to the external generator (see ErrEmptyMask).
func (m *Mask) Empty() bool {
	for _, v := range m.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Matches reports whether the mask has the same dimensions as the buffer.
func (m *Mask) Matches(b *Buffer) bool {
	return m.Width == b.Width && m.Height == b.Height
}
