package mempool

import (
	"sync"
)

// A simple sized pool for []uint8 plane buffers to reduce allocations on the
// per-transform grayscale conversion hot path.

var uint8Pools sync.Map // key: size class (int), value: *sync.Pool

// sizeClass rounds n up to the next multiple of 4096 to reduce churn.
func sizeClass(n int) int {
	const step = 4096
	if n <= step {
		return step
	}
	r := (n + step - 1) / step
	return r * step
}

// GetUint8 retrieves a []uint8 buffer of at least n elements from the pool.
// The returned slice has length n but may have larger capacity.
// The caller must return it via PutUint8 when done.
func GetUint8(n int) []uint8 {
	cls := sizeClass(n)
	pAny, _ := uint8Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]uint8, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		buf := make([]uint8, cls)
		return buf[:n]
	}
	bufAny := p.Get()
	buf, ok := bufAny.([]uint8)
	if !ok || cap(buf) < cls {
		buf = make([]uint8, cls)
	} else {
		buf = buf[:cap(buf)]
	}
	return buf[:n]
}

// PutUint8 returns a buffer to the pool. It is safe to pass a nil slice.
func PutUint8(buf []uint8) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := uint8Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]uint8, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return // skip
	}
	// Reset length to full cap to avoid keeping len from caller; contents need not be zeroed.
	p.Put(buf[:cap(buf)]) //nolint:staticcheck
}
