package tokenizer

import (
	"sync"
	"unsafe"
)

// initialFieldCap is the capacity of a fresh owned field buffer. It is also
// the growth increment below growDoubleAt.
const initialFieldCap = 64

// bufferPool holds owned field buffers between tokenizer lifetimes.
var bufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, initialFieldCap)
		return &b
	},
}

// getBuffer gets a []byte buffer from the pool.
// The buffer is returned with length 0 but may have capacity.
func getBuffer() []byte {
	p := bufferPool.Get().(*[]byte)
	return (*p)[:0]
}

// putBuffer returns a []byte buffer to the pool.
func putBuffer(buf []byte) {
	// Only return to pool if capacity is reasonable (avoid keeping huge buffers)
	const maxCapacity = 64 << 10
	if buf == nil || cap(buf) > maxCapacity {
		return
	}
	buf = buf[:0]
	bufferPool.Put(&buf)
}

// unsafeString converts a []byte to a string without allocation.
//
// The string shares the underlying array, so b MUST NOT be modified after the
// conversion. It is only used on in-situ fields, which alias an input buffer
// the caller guaranteed to keep unchanged.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
