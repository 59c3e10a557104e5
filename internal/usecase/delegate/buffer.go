package delegate

import "bytes"

// capBuffer captures up to limit bytes and drops the rest, so a misbehaving
// external binary cannot grow memory without bound. Unlike a tail buffer,
// the head of the output is what callers need from a CLI, so the earliest
// bytes win. Writes past the limit still report full length to keep the
// child process running instead of failing its pipe.
type capBuffer struct {
	buf       bytes.Buffer
	limit     int64
	truncated bool
}

func newCapBuffer(limit int64) *capBuffer {
	return &capBuffer{limit: limit}
}

func (b *capBuffer) Write(p []byte) (int, error) {
	remain := b.limit - int64(b.buf.Len())
	if remain <= 0 {
		if len(p) > 0 {
			b.truncated = true
		}
		return len(p), nil
	}
	if int64(len(p)) > remain {
		b.buf.Write(p[:remain])
		b.truncated = true
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *capBuffer) String() string { return b.buf.String() }

func (b *capBuffer) Truncated() bool { return b.truncated }
