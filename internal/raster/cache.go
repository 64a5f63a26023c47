package raster

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
)

// Cache provides thread-safe caching of decoded buffers and masks to avoid
// redundant disk reads.
//
// Entries are keyed by the exact path string used to load them. Different
// paths to the same file (relative vs absolute) result in separate entries.
// Buffers and masks are cached independently because the same file can be
// read either way.
//
// Cached entries remain in memory until explicitly removed via Evict or
// Clear. For long-running processes handling many images, consider periodic
// cleanup to prevent unbounded memory growth.
//
// Note that cached buffers are shared between callers: treat them as
// read-only and Clone before modifying. Pipeline operations never mutate
// their inputs, so passing cached buffers straight into the pipeline is safe.
type Cache struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer
	masks   map[string]*Mask
}

// NewCache creates and initializes a new empty cache.
func NewCache() *Cache {
	return &Cache{
		buffers: make(map[string]*Buffer),
		masks:   make(map[string]*Mask),
	}
}

// LoadBuffer retrieves an image from the cache or decodes it from disk if not
// cached. Supported formats are PNG, JPEG, and GIF.
func (c *Cache) LoadBuffer(path string) (*Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	buf := FromImage(img)

	c.mu.Lock()
	c.buffers[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// LoadMask retrieves a selection mask from the cache or decodes it from disk
// if not cached. Color images are converted to single-channel intensity.
func (c *Cache) LoadMask(path string) (*Mask, error) {
	c.mu.RLock()
	if mask, ok := c.masks[path]; ok {
		c.mu.RUnlock()
		return mask, nil
	}
	c.mu.RUnlock()

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	mask := MaskFromImage(img)

	c.mu.Lock()
	c.masks[path] = mask
	c.mu.Unlock()

	return mask, nil
}

// Clear removes all entries from the cache, freeing the associated memory.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*Buffer)
	c.masks = make(map[string]*Mask)
	c.mu.Unlock()
}

// Evict removes a specific path from the cache. If the path is not cached,
// this method does nothing.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	delete(c.masks, path)
	c.mu.Unlock()
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// HasAlpha indicates whether any pixel has alpha below 255.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and returns metadata about
// it: dimensions, format, transparency, and file size.
func LoadImageInfo(cache *Cache, path string) (*ImageInfo, error) {
	buf, err := cache.LoadBuffer(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] != 255 {
			hasAlpha = true
			break
		}
	}

	return &ImageInfo{
		Width:         buf.Width,
		Height:        buf.Height,
		Format:        format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional
// metadata. The image is loaded into the cache if not already present.
func GetDimensions(cache *Cache, path string) (*DimensionsResult, error) {
	buf, err := cache.LoadBuffer(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Width: buf.Width, Height: buf.Height}, nil
}
