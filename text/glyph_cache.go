package text

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
)

// KeyKind selects the identity space of a GlyphKey.
type KeyKind uint8

const (
	// KeyRune keys identify a glyph by its source codepoint.
	KeyRune KeyKind = iota

	// KeyGlyph keys identify a glyph by a shaper-provided glyph id.
	KeyGlyph
)

// GlyphKey identifies one rasterized glyph image.
// Rune keys and glyph-id keys never collide, even for equal ID values.
type GlyphKey struct {
	Kind  KeyKind
	ID    uint32
	Face  Face
	Size  int
	Color color.RGBA
}

// String returns a short description for diagnostics.
func (k GlyphKey) String() string {
	name := "<nil>"
	if k.Face != nil {
		name = k.Face.Name()
	}
	if k.Kind == KeyGlyph {
		return fmt.Sprintf("gid %d@%s/%d", k.ID, name, k.Size)
	}
	return fmt.Sprintf("U+%04X@%s/%d", k.ID, name, k.Size)
}

// CachedGlyph is a rasterized glyph owned by a GlyphCache.
type CachedGlyph struct {
	// Image is nil for blank glyphs such as spaces.
	Image Image

	// Left and Top locate the image relative to the pen on the baseline.
	// Top points up.
	Left, Top int

	// Generation is the cache generation the glyph was created in.
	Generation uint64
}

// cacheEntry is the cache slot of one key.
type cacheEntry struct {
	glyph CachedGlyph
	err   error

	// ready is closed once rasterization finished.
	ready chan struct{}

	// The fields below are guarded by GlyphCache.mu.
	done     bool
	refs     int
	retired  bool
	disposed bool
}

// CacheStats is a snapshot of GlyphCache statistics.
type CacheStats struct {
	Hits           uint64
	Misses         uint64
	Rasterizations uint64
	Disposals      uint64
}

// GlyphCache maps glyph keys to rasterized images and rasterizes on miss.
//
// Each key is rasterized at most once between purges. Concurrent misses
// on the same key wait for the first caller; distinct keys rasterize in
// parallel. The cache is safe for concurrent use.
//
// Images are disposed only by Purge. Entries obtained through a Pass stay
// valid until the pass ends, even across a Purge.
type GlyphCache struct {
	factory ImageFactory

	mu         sync.Mutex
	entries    map[GlyphKey]*cacheEntry
	generation uint64

	hits           atomic.Uint64
	misses         atomic.Uint64
	rasterizations atomic.Uint64
	disposals      atomic.Uint64
}

// NewGlyphCache creates an empty cache uploading images through factory.
func NewGlyphCache(factory ImageFactory) (*GlyphCache, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	return &GlyphCache{
		factory: factory,
		entries: make(map[GlyphKey]*cacheEntry),
	}, nil
}

// GetOrRasterize returns the cached glyph for key, rasterizing it on miss.
//
// The result is not pinned: a concurrent Purge may dispose its image. Use
// a Pass when the image must outlive possible purges.
func (c *GlyphCache) GetOrRasterize(key GlyphKey) (*CachedGlyph, error) {
	return c.get(key, nil)
}

// get looks up or rasterizes key, pinning the entry to pass if non-nil.
func (c *GlyphCache) get(key GlyphKey, pass *Pass) (*CachedGlyph, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		pass.pin(e)
		c.mu.Unlock()

		<-e.ready
		if e.err != nil {
			return nil, e.err
		}
		c.hits.Add(1)
		return &e.glyph, nil
	}

	e = &cacheEntry{
		ready: make(chan struct{}),
		glyph: CachedGlyph{Generation: c.generation},
	}
	c.entries[key] = e
	pass.pin(e)
	c.mu.Unlock()
	c.misses.Add(1)

	glyph, err := c.rasterize(key)

	c.mu.Lock()
	e.done = true
	var stale Image
	if err != nil {
		e.err = err
		if c.entries[key] == e {
			delete(c.entries, key)
		}
	} else {
		glyph.Generation = e.glyph.Generation
		e.glyph = glyph
		stale = c.release(e)
	}
	c.mu.Unlock()
	close(e.ready)

	if stale != nil {
		c.dispose(stale)
	}
	if err != nil {
		return nil, err
	}
	return &e.glyph, nil
}

// rasterize renders key through its face and uploads the result.
func (c *GlyphCache) rasterize(key GlyphKey) (CachedGlyph, error) {
	if key.Face == nil {
		return CachedGlyph{}, fmt.Errorf("text: rasterize %v: no face", key)
	}

	gid := GlyphID(key.ID) //nolint:gosec // glyph-id keys hold 16-bit ids
	if key.Kind == KeyRune {
		gid = key.Face.GlyphIndex(rune(key.ID)) //nolint:gosec // rune keys hold valid codepoints
	}

	bm, err := key.Face.Rasterize(gid, key.Size)
	if err != nil {
		return CachedGlyph{}, fmt.Errorf("text: rasterize %v: %w", key, err)
	}
	c.rasterizations.Add(1)

	w, h := bm.Width(), bm.Height()
	if w == 0 || h == 0 {
		return CachedGlyph{Left: bm.Left, Top: bm.Top}, nil
	}

	img, err := c.factory.NewImage(w, h, expandIntensity(bm.Mask))
	if err != nil {
		return CachedGlyph{}, fmt.Errorf("text: upload %v: %w", key, err)
	}
	return CachedGlyph{Image: img, Left: bm.Left, Top: bm.Top}, nil
}

// release returns the image of e if it is retired, unreferenced and not yet
// disposed, marking it disposed. Caller must hold c.mu.
func (c *GlyphCache) release(e *cacheEntry) Image {
	if !e.retired || e.refs > 0 || !e.done || e.disposed {
		return nil
	}
	e.disposed = true
	return e.glyph.Image
}

// dispose disposes img outside the lock.
func (c *GlyphCache) dispose(img Image) {
	if img == nil {
		return
	}
	img.Dispose()
	c.disposals.Add(1)
}

// Purge empties the cache and starts a new generation.
//
// Images not pinned by a running Pass are disposed immediately; pinned
// images are disposed when the last pass holding them ends. After Purge,
// every key is rasterized again on its next request.
func (c *GlyphCache) Purge() {
	c.mu.Lock()
	c.generation++
	stale := make([]Image, 0, len(c.entries))
	for _, e := range c.entries {
		e.retired = true
		if img := c.release(e); img != nil {
			stale = append(stale, img)
		}
	}
	c.entries = make(map[GlyphKey]*cacheEntry)
	c.mu.Unlock()

	for _, img := range stale {
		c.dispose(img)
	}
}

// Len returns the number of cached keys, including blank glyphs and
// rasterizations in progress.
func (c *GlyphCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Generation returns the number of purges so far.
func (c *GlyphCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Stats returns cache statistics.
func (c *GlyphCache) Stats() CacheStats {
	return CacheStats{
		Hits:           c.hits.Load(),
		Misses:         c.misses.Load(),
		Rasterizations: c.rasterizations.Load(),
		Disposals:      c.disposals.Load(),
	}
}

// Pass pins the cache entries it returns until End, so that a concurrent
// Purge cannot dispose images the pass is still handing out.
// A Pass must not be used from several goroutines at once.
type Pass struct {
	cache  *GlyphCache
	pinned map[*cacheEntry]struct{}
	ended  bool
}

// BeginPass starts a pass over the cache.
func (c *GlyphCache) BeginPass() *Pass {
	return &Pass{
		cache:  c,
		pinned: make(map[*cacheEntry]struct{}),
	}
}

// GetOrRasterize is GlyphCache.GetOrRasterize with the result pinned until End.
func (p *Pass) GetOrRasterize(key GlyphKey) (*CachedGlyph, error) {
	if p.ended {
		return p.cache.get(key, nil)
	}
	return p.cache.get(key, p)
}

// pin references e once per pass. Caller must hold the cache lock.
func (p *Pass) pin(e *cacheEntry) {
	if p == nil || p.ended {
		return
	}
	if _, ok := p.pinned[e]; ok {
		return
	}
	p.pinned[e] = struct{}{}
	e.refs++
}

// End releases every pinned entry. Images purged while pinned are disposed
// here. End is idempotent.
func (p *Pass) End() {
	c := p.cache
	c.mu.Lock()
	if p.ended {
		c.mu.Unlock()
		return
	}
	p.ended = true
	var stale []Image
	for e := range p.pinned {
		e.refs--
		if img := c.release(e); img != nil {
			stale = append(stale, img)
		}
	}
	p.pinned = nil
	c.mu.Unlock()

	for _, img := range stale {
		c.dispose(img)
	}
}
