package lazy

import (
	"fmt"
	"io"
)

// buffer is a cursor over materialized bytes. It is not safe for concurrent use.
type buffer struct {
	pos int64
}

func (b *buffer) read(data []byte, p []byte) (int, error) {
	if b.pos >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

func (b *buffer) seek(data []byte, offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(data)) + offset
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativePosition, abs)
	}
	b.pos = abs
	return abs, nil
}
