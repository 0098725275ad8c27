package strpool

import (
	"strings"
	"sync"
)

const maxCap = 64 << 10

var pool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func Get() *strings.Builder {
	return pool.Get().(*strings.Builder)
}

// Put resets b and returns it to the pool.
func Put(b *strings.Builder) {
	if b == nil || b.Cap() > maxCap {
		return
	}

	b.Reset()
	pool.Put(b)
}
