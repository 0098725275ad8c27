package bytespool

import (
	"bytes"
	"sync"
)

// Buffers grown past this are left to the GC instead of pinning memory in the pool.
const maxCap = 64 << 10

var pool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

func Get() *bytes.Buffer {
	return pool.Get().(*bytes.Buffer)
}

// Put resets b and returns it to the pool.
func Put(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxCap {
		return
	}

	b.Reset()
	pool.Put(b)
}
