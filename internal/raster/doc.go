// Package raster provides the value types and codec utilities shared by the
// masked-compositing pipeline.
//
// The two value types are Buffer (RGBA8, row-major, non-premultiplied alpha)
// and Mask (single-channel 8-bit intensity). Both are plain, ownership-clear
// slices of bytes: there is no hidden drawing context, no global state, and
// every operation in the pipeline allocates and returns a fresh value rather
// than mutating its input.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward. The pixel at (x, y) of a
// Buffer starts at Pix[(y*Width+x)*4]; of a Mask, at Pix[y*Width+x].
//
// # Alpha Representation
//
// Buffers carry non-premultiplied alpha. Conversions to and from image.Image
// go through image.NRGBA so that 8-bit channel values survive a decode/encode
// round trip bit-exactly. This matters because the compositor's containment
// guarantee is stated in terms of exact byte equality.
//
// # Error Handling
//
// Precondition violations are reported through the sentinel errors
// ErrInvalidParameter, ErrDimensionMismatch, and ErrEmptyMask, wrapped with
// context. They are deterministic programmer errors, not transient
// conditions, and are never retried inside this module.
//
// # Caching
//
// The Cache type is safe for concurrent use and stores decoded buffers and
// masks by file path, mirroring how the server reuses inputs across multiple
// tool calls.
package raster
