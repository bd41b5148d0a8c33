package paginate

import "sync/atomic"

// Cursor remembers which page preview consumer asked for last. Generation of
// the pagination session and zero based page index share one word, so
// "is this still the current page of the current session" is a single load.
type Cursor struct {
	v atomic.Uint64
}

func cursorKey(gen uint32, index int) uint64 {
	return uint64(gen)<<32 | uint64(uint32(index))
}

// Exchange sets current page and returns previous position.
func (c *Cursor) Exchange(gen uint32, index int) (uint32, int) {
	old := c.v.Swap(cursorKey(gen, index))
	return uint32(old >> 32), int(uint32(old))
}

// Reset points cursor to the first page of session gen.
func (c *Cursor) Reset(gen uint32) {
	c.v.Store(cursorKey(gen, 0))
}

func (c *Cursor) Load() (uint32, int) {
	v := c.v.Load()
	return uint32(v >> 32), int(uint32(v))
}

// Is reports whether page index of session gen is the current one.
func (c *Cursor) Is(gen uint32, index int) bool {
	return c.v.Load() == cursorKey(gen, index)
}
