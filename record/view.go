package record

import (
	"encoding/binary"
	"errors"
	"math"
	"unsafe"
)

var (
	// ErrTruncated is returned when a buffer is too short for the record
	// it declares.
	ErrTruncated = errors.New("record: truncated buffer")

	// ErrKindMismatch is returned when a field is read as the wrong kind
	// or with the wrong width.
	ErrKindMismatch = errors.New("record: kind mismatch")
)

// View is a zero-copy reader over a packed record. Because each header
// entry stores a displacement relative to its own position, a View works
// on any copy of the buffer, wherever it lives.
type View struct {
	buf   []byte
	count int
}

// NewView validates the record header and returns a reader over buf.
func NewView(buf []byte) (*View, error) {
	if len(buf) < entrySize {
		return nil, ErrTruncated
	}
	// The first entry resolves to the payload start, which is also the
	// header size.
	headerSize, _ := decodeEntry(binary.LittleEndian.Uint16(buf))
	count := headerSize/entrySize - 1
	if count < 0 || headerSize > len(buf) {
		return nil, ErrTruncated
	}
	end, kind := decodeEntry(binary.LittleEndian.Uint16(buf[count*entrySize:]))
	if kind != KindEnd || count*entrySize+end > len(buf) {
		return nil, ErrTruncated
	}
	return &View{buf: buf, count: count}, nil
}

// Len returns the number of fields in the record.
func (v *View) Len() int { return v.count }

// Kind returns the tag of field i, KindEnd when out of range.
func (v *View) Kind(i int) Kind {
	if i < 0 || i >= v.count {
		return KindEnd
	}
	_, kind := decodeEntry(binary.LittleEndian.Uint16(v.buf[i*entrySize:]))
	return kind
}

// rangeAt resolves the payload span of field i: each bound is its
// entry's own position plus the displacement stored there.
func (v *View) rangeAt(i int) (kind Kind, start, end int) {
	if i < 0 || i >= v.count {
		return KindEnd, -2, -1
	}
	pos := i * entrySize
	d1, kind := decodeEntry(binary.LittleEndian.Uint16(v.buf[pos:]))
	d2, _ := decodeEntry(binary.LittleEndian.Uint16(v.buf[pos+entrySize:]))
	start = pos + d1
	end = pos + entrySize + d2
	if end > len(v.buf) {
		end = -1 // force failure downstream
	}
	return
}

// Uint64 reads field i as an 8-byte unsigned integer.
func (v *View) Uint64(i int) (uint64, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindUint || end-start != 8 {
		return 0, ErrKindMismatch
	}
	return binary.LittleEndian.Uint64(v.buf[start:]), nil
}

// Uint32 reads field i as a 4-byte unsigned integer.
func (v *View) Uint32(i int) (uint32, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindUint || end-start != 4 {
		return 0, ErrKindMismatch
	}
	return binary.LittleEndian.Uint32(v.buf[start:]), nil
}

// Int64 reads field i as an 8-byte signed integer.
func (v *View) Int64(i int) (int64, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindInt || end-start != 8 {
		return 0, ErrKindMismatch
	}
	return int64(binary.LittleEndian.Uint64(v.buf[start:])), nil
}

// Int32 reads field i as a 4-byte signed integer.
func (v *View) Int32(i int) (int32, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindInt || end-start != 4 {
		return 0, ErrKindMismatch
	}
	return int32(binary.LittleEndian.Uint32(v.buf[start:])), nil
}

// Int16 reads field i as a 2-byte signed integer.
func (v *View) Int16(i int) (int16, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindInt || end-start != 2 {
		return 0, ErrKindMismatch
	}
	return int16(binary.LittleEndian.Uint16(v.buf[start:])), nil
}

// Float64 reads field i as an 8-byte float.
func (v *View) Float64(i int) (float64, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindFloat || end-start != 8 {
		return 0, ErrKindMismatch
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v.buf[start:])), nil
}

// Bool reads field i as a bool.
func (v *View) Bool(i int) (bool, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindBool || end-start != 1 {
		return false, ErrKindMismatch
	}
	return v.buf[start] != 0, nil
}

// String reads field i as a string without copying; the result aliases
// the record buffer.
func (v *View) String(i int) (string, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindString || end < start {
		return "", ErrKindMismatch
	}
	if end == start {
		return "", nil
	}
	return unsafe.String(&v.buf[start], end-start), nil
}

// Bytes reads field i as a sub-slice of the record buffer.
func (v *View) Bytes(i int) ([]byte, error) {
	kind, start, end := v.rangeAt(i)
	if kind != KindBytes || end < start {
		return nil, ErrKindMismatch
	}
	return v.buf[start:end:end], nil
}
