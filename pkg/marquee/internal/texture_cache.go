package internal

const defaultMaxCacheSize = 32

// TextureCache keeps recently released textures by file path so that a
// scrolling list reloading the same artwork does not decode it again.
// Entries are taken out on reuse; the oldest is released when full.
type TextureCache struct {
	textures map[string]*texture
	order    []string // oldest first
	maxSize  int
	release  func(*texture)
}

func NewTextureCache(release func(*texture)) *TextureCache {
	return NewTextureCacheWithSize(defaultMaxCacheSize, release)
}

func NewTextureCacheWithSize(maxSize int, release func(*texture)) *TextureCache {
	return &TextureCache{
		textures: make(map[string]*texture),
		order:    make([]string, 0, maxSize),
		maxSize:  maxSize,
		release:  release,
	}
}

// Take removes and returns the texture cached for key, or nil.
func (c *TextureCache) Take(key string) *texture {
	t, exists := c.textures[key]
	if !exists {
		return nil
	}
	delete(c.textures, key)
	c.remove(key)
	return t
}

// Put caches t under key. A texture already cached under the same key is
// released.
func (c *TextureCache) Put(key string, t *texture) {
	if c.maxSize <= 0 {
		c.release(t)
		return
	}
	if old, exists := c.textures[key]; exists {
		if old != t {
			c.release(old)
		}
		c.textures[key] = t
		c.remove(key)
		c.order = append(c.order, key)
		return
	}

	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}

	c.textures[key] = t
	c.order = append(c.order, key)
}

func (c *TextureCache) Len() int {
	return len(c.order)
}

func (c *TextureCache) remove(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *TextureCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]

	if t, exists := c.textures[oldest]; exists {
		c.release(t)
		delete(c.textures, oldest)
	}
}

// Destroy releases every cached texture.
func (c *TextureCache) Destroy() {
	for _, t := range c.textures {
		c.release(t)
	}
	c.textures = make(map[string]*texture)
	c.order = c.order[:0]
}
