package option

// Filter returns a new set holding the options for which keep returns true.
func (opts *Options) Filter(keep func(Option) bool) *Options {
	dst := NewOptions()
	for o := range opts.All() {
		if keep(o) {
			dst.Push(o)
		}
	}
	return dst
}

// CacheKey returns the options that take part in cache-entry matching.
func (opts *Options) CacheKey() *Options {
	return opts.Filter(Option.IsCacheKey)
}

// CacheKeyEqual reports whether two requests carrying x and y would
// match the same cache entry, ignoring NoCacheKey options.
func CacheKeyEqual(x, y *Options) bool {
	return x.CacheKey().Equal(y.CacheKey())
}
