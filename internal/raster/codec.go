package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"

	"github.com/disintegration/imaging"
)

// FromImage converts any image.Image into a Buffer.
//
// The conversion goes through image.NRGBA (non-premultiplied alpha) so that
// 8-bit channel values are preserved exactly; converting through the
// premultiplied image.RGBA would lose low bits wherever alpha < 255.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != width*4 || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	buf := NewBuffer(width, height)
	copy(buf.Pix, nrgba.Pix)
	return buf
}

// ToImage converts the buffer into a freshly allocated *image.NRGBA.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// MaskFromImage converts any image.Image into a single-channel Mask using
// ITU-R BT.601 luminance (the same weighting the standard library's
// color.GrayModel applies). A grayscale selection PNG converts losslessly.
func MaskFromImage(img image.Image) *Mask {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	mask := NewMask(width, height)
	if gray, ok := img.(*image.Gray); ok && gray.Stride == width && bounds.Min == (image.Point{}) {
		copy(mask.Pix, gray.Pix)
		return mask
	}

	grayImg := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(grayImg, grayImg.Bounds(), img, bounds.Min, draw.Src)
	copy(mask.Pix, grayImg.Pix)
	return mask
}

// ToImage converts the mask into a freshly allocated *image.Gray.
func (m *Mask) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	copy(img.Pix, m.Pix)
	return img
}

// DecodeBase64 decodes a base64-encoded image (PNG, JPEG, or GIF) into a
// Buffer.
func DecodeBase64(data string) (*Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image data: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// MaskFromBase64 decodes a base64-encoded image into a single-channel Mask.
func MaskFromBase64(data string) (*Mask, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 mask data: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode mask image: %w", err)
	}
	return MaskFromImage(img), nil
}

// ImageResult contains an encoded image ready to return to an MCP client.
//
// PNG is used as the interchange encoding because it is lossless: the pixel
// values a client decodes are bit-identical to the buffer that produced them.
type ImageResult struct {
	// Width of the encoded image in pixels.
	Width int `json:"width"`

	// Height of the encoded image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// EncodeResult encodes the buffer as a base64 PNG result.
func (b *Buffer) EncodeResult() (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.ToImage()); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &ImageResult{
		Width:       b.Width,
		Height:      b.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EncodeResult encodes the mask as a grayscale base64 PNG result.
func (m *Mask) EncodeResult() (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m.ToImage()); err != nil {
		return nil, fmt.Errorf("failed to encode mask: %w", err)
	}
	return &ImageResult{
		Width:       m.Width,
		Height:      m.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// ResizeToMatch resamples the buffer to the given dimensions using Lanczos
// filtering and returns a new buffer. If the buffer already matches, a plain
// copy is returned.
//
// This is a caller-side utility: the compositing operations themselves never
// resample. When the external generator returns an image whose size differs
// from the base, the caller resizes it with this function before compositing.
func ResizeToMatch(b *Buffer, width, height int) *Buffer {
	if b.Width == width && b.Height == height {
		return b.Clone()
	}
	resized := imaging.Resize(b.ToImage(), width, height, imaging.Lanczos)
	return FromImage(resized)
}
