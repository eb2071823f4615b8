package deflate

import "github.com/MaratShch/lutlib/internal/pool"

// outputBuffer is a growable byte sink backed by the bucketed buffer pool.
// Back-reference copies read and append in the same pass, so an
// overlapping copy (length > distance) is automatically correct: the
// source index always refers to a byte already written by an earlier
// iteration of the same copy.
type outputBuffer struct {
	buf []byte
}

func newOutputBuffer(initial int) *outputBuffer {
	b := pool.Get(initial)
	return &outputBuffer{buf: b[:0]}
}

func (o *outputBuffer) len() int { return len(o.buf) }

func (o *outputBuffer) ensure(extra int) {
	if cap(o.buf)-len(o.buf) >= extra {
		return
	}
	newCap := cap(o.buf) * 2
	if newCap < len(o.buf)+extra {
		newCap = len(o.buf) + extra
	}
	nb := pool.Get(newCap)[:len(o.buf)]
	copy(nb, o.buf)
	pool.Put(o.buf)
	o.buf = nb
}

func (o *outputBuffer) appendByte(b byte) {
	o.ensure(1)
	o.buf = append(o.buf, b)
}

func (o *outputBuffer) appendBytes(bs []byte) {
	o.ensure(len(bs))
	o.buf = append(o.buf, bs...)
}

// copyBack emits length bytes read starting distance bytes behind the
// current write position, one byte at a time so overlapping references
// (length > distance) see their own freshly-written output.
func (o *outputBuffer) copyBack(distance, length int) {
	o.ensure(length)
	start := len(o.buf) - distance
	for i := 0; i < length; i++ {
		o.buf = append(o.buf, o.buf[start+i])
	}
}

// release returns a right-sized copy of the accumulated bytes and returns
// the pool-backed working buffer. The caller owns the returned slice free
// of any pool association.
func (o *outputBuffer) release() []byte {
	out := make([]byte, len(o.buf))
	copy(out, o.buf)
	pool.Put(o.buf)
	o.buf = nil
	return out
}
