package text

import "log/slog"

// defaultShapeCacheSize is the number of memoized shaping results.
const defaultShapeCacheSize = 256

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

// engineConfig holds configuration for Engine.
type engineConfig struct {
	logger         *slog.Logger
	shaper         Shaper
	rules          *WordBreakRules
	shapeCacheSize int
	cache          *GlyphCache
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() engineConfig {
	return engineConfig{
		shapeCacheSize: defaultShapeCacheSize,
	}
}

// WithLogger sets the logger receiving layout warnings.
// By default the engine logs nothing.
func WithLogger(l *slog.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithShaper enables shaping. Without a shaper the engine positions glyphs
// by their raw advances.
func WithShaper(s Shaper) EngineOption {
	return func(c *engineConfig) {
		c.shaper = s
	}
}

// WithWordBreakRules replaces DefaultWordBreakRules for WrapBreakWord.
func WithWordBreakRules(r *WordBreakRules) EngineOption {
	return func(c *engineConfig) {
		c.rules = r
	}
}

// WithShapeCacheSize sets how many shaping results are memoized.
// A value <= 0 disables the memo.
func WithShapeCacheSize(n int) EngineOption {
	return func(c *engineConfig) {
		c.shapeCacheSize = n
	}
}

// WithGlyphCache makes the engine use an existing cache, which may be
// shared with other engines. The factory passed to NewEngine is then unused.
func WithGlyphCache(gc *GlyphCache) EngineOption {
	return func(c *engineConfig) {
		c.cache = gc
	}
}
