package option

import "testing"

func TestCacheKeyEqual(t *testing.T) {
	base := func() *Options {
		opts := NewOptions()
		opts.SetPath("/sensors/temp")
		opts.Push(NewURIQuery("unit=c"))
		return opts
	}

	tests := []struct {
		modify func(*Options)
		equal  bool
	}{
		{modify: func(*Options) {}, equal: true},
		{modify: func(o *Options) { o.Push(NewSize1(1024)) }, equal: true},
		{modify: func(o *Options) { o.Push(NewNoResponse(2)) }, equal: true},
		{modify: func(o *Options) { o.Push(NewURIPath("x")) }, equal: false},
		{modify: func(o *Options) { o.Set(NewURIQuery("unit=f")) }, equal: false},
		{modify: func(o *Options) { o.Push(NewAccept(AppJSON)) }, equal: false},
	}
	for i, tt := range tests {
		x, y := base(), base()
		tt.modify(y)
		if got, want := CacheKeyEqual(x, y), tt.equal; got != want {
			t.Errorf("case%d: %v != %v", i, got, want)
		}
	}
}

func TestCacheKeyFilter(t *testing.T) {
	opts := NewOptions()
	opts.Push(NewURIPath("a"))
	opts.Push(NewSize1(1))
	opts.Push(NewNoResponse(0))

	key := opts.CacheKey()
	if got, want := key.Numbers(), []Number{URIPath}; len(got) != 1 || got[0] != want[0] {
		t.Errorf("cache key numbers: %v != %v", got, want)
	}
	if opts.Len() != 3 {
		t.Errorf("CacheKey modified the source set")
	}
}

func TestCacheKeyEqualNil(t *testing.T) {
	opts := NewOptions()
	opts.Push(NewURIPath("a"))
	noCacheKey := NewOptions()
	noCacheKey.Push(NewSize1(10))

	tests := []struct {
		x, y  *Options
		equal bool
	}{
		{x: nil, y: nil, equal: true},
		{x: opts, y: nil, equal: false},
		{x: nil, y: opts, equal: false},
		{x: NewOptions(), y: nil, equal: true},
		{x: nil, y: noCacheKey, equal: true},
	}
	for i, tt := range tests {
		if got, want := CacheKeyEqual(tt.x, tt.y), tt.equal; got != want {
			t.Errorf("case%d: %v != %v", i, got, want)
		}
	}
}
