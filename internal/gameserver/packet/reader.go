package packet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a field is missing or not a number.
var ErrMalformed = errors.New("malformed packet")

// Reader reads space-delimited fields from one inbound text packet.
type Reader struct {
	fields []string
	pos    int
}

// NewReader splits a packet into fields.
func NewReader(data []byte) *Reader {
	return &Reader{fields: strings.Fields(string(data))}
}

// NewReaderFields wraps already-split fields.
func NewReaderFields(fields []string) *Reader {
	return &Reader{fields: fields}
}

// Skip advances past n fields.
func (r *Reader) Skip(n int) error {
	if r.pos+n > len(r.fields) {
		return fmt.Errorf("Skip(%d): %w (pos=%d, len=%d)", n, ErrMalformed, r.pos, len(r.fields))
	}
	r.pos += n
	return nil
}

// ReadString reads the next field.
func (r *Reader) ReadString() (string, error) {
	if r.pos >= len(r.fields) {
		return "", fmt.Errorf("ReadString: %w (pos=%d, len=%d)", ErrMalformed, r.pos, len(r.fields))
	}
	s := r.fields[r.pos]
	r.pos++
	return s, nil
}

func (r *Reader) readInt(bits int) (int64, error) {
	s, err := r.ReadString()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("field %d %q: %w", r.pos-1, s, ErrMalformed)
	}
	return v, nil
}

// ReadShort reads an int16 field.
func (r *Reader) ReadShort() (int16, error) {
	v, err := r.readInt(16)
	return int16(v), err
}

// ReadInt reads an int32 field.
func (r *Reader) ReadInt() (int32, error) {
	v, err := r.readInt(32)
	return int32(v), err
}

// ReadLong reads an int64 field.
func (r *Reader) ReadLong() (int64, error) {
	return r.readInt(64)
}

// Remaining returns the number of unread fields.
func (r *Reader) Remaining() int {
	return len(r.fields) - r.pos
}

// Position returns the index of the next field.
func (r *Reader) Position() int {
	return r.pos
}
