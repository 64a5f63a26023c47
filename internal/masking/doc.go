// Package masking implements the masked-compositing pipeline behind the
// magic-edit workflow: painting a selection over a photo and having an
// external generative model fill that region.
//
// Four stages form a linear pipeline, each a pure function over raster
// buffers:
//
//  1. Feather turns the hard-edged user selection into a soft-edged blend
//     mask (separable box blur; FeatherGaussian offers a gaussian variant).
//  2. CutHole derives the "transmit" image sent to the external generator:
//     the base image with alpha reduced under the selection.
//  3. Composite blends the generator's returned fill back onto the base,
//     using the feathered mask as the only determinant of how much fill is
//     visible at each pixel.
//  4. CheckBoundary measures whether the generator changed anything outside
//     the selection. Its output is advisory logging data only.
//
// The Edit type bundles one request's worth of pipeline state (base,
// feathered mask) so callers don't re-derive the mask between stages.
//
// # Trust Model
//
// The external generator is untrusted: it may return an image that differs
// from the base anywhere, not just inside the requested region. Containment
// is enforced unconditionally by Composite's arithmetic, where a mask weight
// of zero reproduces the base byte exactly. CheckBoundary exists so the
// caller can log whether the generator respected the boundary or had to be
// corrected client-side; it never gates compositing.
//
// # Purity
//
// All stages are synchronous, deterministic, and allocation-bounded. Inputs
// are never mutated; every stage returns a freshly allocated buffer. Stages
// may run concurrently across independent requests, but within one request
// they are strictly sequential. The only asynchronous work in the workflow,
// the round trip to the generator, happens between CutHole and Composite and
// belongs entirely to the caller.
package masking
