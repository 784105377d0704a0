package packet

import (
	"strconv"
	"sync"
)

// Writer builds one space-delimited text packet: a header keyword followed by
// fields. Bytes terminates the packet with '\n'.
type Writer struct {
	buf []byte
}

// writerPool reduces allocations by reusing Writers.
// Get() returns a Writer with Reset() called, Put() returns it to pool.
var writerPool = sync.Pool{
	New: func() any {
		return &Writer{buf: make([]byte, 0, 128)}
	},
}

// Get returns a Writer from the pool (already Reset).
func Get() *Writer {
	w := writerPool.Get().(*Writer)
	w.Reset()
	return w
}

// Put returns a Writer to the pool for reuse.
// IMPORTANT: Do not use the Writer after calling Put.
func (w *Writer) Put() {
	writerPool.Put(w)
}

// NewWriter creates a packet writer starting with the given header.
func NewWriter(header string) *Writer {
	w := &Writer{buf: make([]byte, 0, 64)}
	w.buf = append(w.buf, header...)
	return w
}

// Header starts a pooled writer with the given header.
func (w *Writer) Header(header string) *Writer {
	w.buf = append(w.buf[:0], header...)
	return w
}

func (w *Writer) sep() {
	if len(w.buf) > 0 {
		w.buf = append(w.buf, ' ')
	}
}

// WriteShort appends an int16 field.
func (w *Writer) WriteShort(val int16) {
	w.sep()
	w.buf = strconv.AppendInt(w.buf, int64(val), 10)
}

// WriteInt appends an int32 field.
func (w *Writer) WriteInt(val int32) {
	w.sep()
	w.buf = strconv.AppendInt(w.buf, int64(val), 10)
}

// WriteLong appends an int64 field.
func (w *Writer) WriteLong(val int64) {
	w.sep()
	w.buf = strconv.AppendInt(w.buf, val, 10)
}

// WriteBool appends 1 or 0.
func (w *Writer) WriteBool(val bool) {
	w.sep()
	if val {
		w.buf = append(w.buf, '1')
	} else {
		w.buf = append(w.buf, '0')
	}
}

// WriteString appends a single token. Spaces are replaced with '^' so the
// token survives tokenization on the client side.
func (w *Writer) WriteString(s string) {
	w.sep()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			c = '^'
		}
		if c == '\n' {
			continue
		}
		w.buf = append(w.buf, c)
	}
}

// WriteText appends free text as the final field; spaces are kept.
func (w *Writer) WriteText(s string) {
	w.sep()
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' {
			w.buf = append(w.buf, s[i])
		}
	}
}

// Bytes returns a copy of the packet terminated by '\n'.
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.buf)+1)
	copy(out, w.buf)
	out[len(w.buf)] = '\n'
	return out
}

// Len returns the current packet length without the terminator.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Reset clears the buffer for reuse.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}
