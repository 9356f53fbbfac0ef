package imaging

import (
	"fmt"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultFrameCacheSize is the number of decoded frames a FrameCache keeps
// when no explicit capacity is given.
const DefaultFrameCacheSize = 16

// LoadFrame decodes an image file into a Frame.
//
// Supported formats are PNG, JPEG, GIF and WebP. JPEG EXIF orientation is
// applied so the frame is upright.
func LoadFrame(path string) (*Frame, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load frame: %w", err)
	}
	return FromImage(img)
}

// FrameCache keeps recently decoded frames so repeated requests for the same
// file skip disk reads and decoding.
//
// The cache holds at most its capacity; when full, the oldest entry is
// evicted. Frames are immutable, so a cached frame can be handed to many
// goroutines at once.
//
// FrameCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewFrameCache(8)
//	frame, err := cache.Load("/path/to/frame.jpg")
//	if err != nil {
//	    return err
//	}
//	cache.Evict("/path/to/frame.jpg") // Optional: free memory
type FrameCache struct {
	mu       sync.RWMutex
	capacity int
	frames   map[string]*Frame
	order    []string
}

// NewFrameCache creates an empty cache holding up to capacity frames.
// A capacity below 1 selects DefaultFrameCacheSize.
func NewFrameCache(capacity int) *FrameCache {
	if capacity < 1 {
		capacity = DefaultFrameCacheSize
	}
	return &FrameCache{
		capacity: capacity,
		frames:   make(map[string]*Frame),
	}
}

// Load returns the cached frame for path, decoding the file on a miss.
//
// The path string is the cache key; different spellings of the same file are
// cached separately.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image format
func (c *FrameCache) Load(path string) (*Frame, error) {
	c.mu.RLock()
	if f, ok := c.frames[path]; ok {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	f, err := LoadFrame(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.frames[path]; ok {
		return cached, nil
	}
	for len(c.order) >= c.capacity {
		delete(c.frames, c.order[0])
		c.order = c.order[1:]
	}
	c.frames[path] = f
	c.order = append(c.order, path)

	return f, nil
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.frames)
}

// Clear removes all frames from the cache.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	c.frames = make(map[string]*Frame)
	c.order = nil
	c.mu.Unlock()
}

// Evict removes the frame cached under path. Unknown paths are ignored.
func (c *FrameCache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.frames[path]; !ok {
		return
	}
	delete(c.frames, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
