package handler

import (
	"bytes"
	"sync"
)

// Response buffers start large enough for a typical punishment history. A player with a long
// history can grow one past maxPooledBufferSize; those are dropped instead of pinned in the pool.
const (
	initialBufferSize   = 4 << 10
	maxPooledBufferSize = 256 << 10
)

var responseBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

// putBuffer returns buf to the pool unless it outgrew maxPooledBufferSize
func putBuffer(buf *bytes.Buffer) bool {
	if buf.Cap() > maxPooledBufferSize {
		return false
	}
	buf.Reset()
	responseBuffers.Put(buf)
	return true
}
