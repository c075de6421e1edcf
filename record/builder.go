package record

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"

	"github.com/quickwritereader/tether/utils"
)

// ErrRecordTooLarge is returned by Pack when a header entry cannot span
// the distance to its payload within 13 bits.
var ErrRecordTooLarge = errors.New("record: payload out of entry range")

var builderPool = sync.Pool{
	New: func() any {
		return &Builder{
			buf:    make([]byte, 0, 1024),
			fields: make([]field, 0, 32),
		}
	},
}

// AcquireBuilder returns a reset pooled builder.
func AcquireBuilder() *Builder {
	b := builderPool.Get().(*Builder)
	b.buf = b.buf[:0]
	b.fields = b.fields[:0]
	return b
}

// ReleaseBuilder returns a builder to the pool.
func ReleaseBuilder(b *Builder) {
	builderPool.Put(b)
}

type field struct {
	start int // payload-relative start offset
	kind  Kind
}

// Builder packs typed fields into a record buffer. Fields are appended
// in order; Pack finalises the header entries with self-relative
// displacements.
type Builder struct {
	buf    []byte // payload bytes
	fields []field
}

// NewBuilder returns an empty unpooled builder.
func NewBuilder() *Builder {
	return &Builder{
		buf:    make([]byte, 0, 256),
		fields: make([]field, 0, 16),
	}
}

func (b *Builder) mark(kind Kind) {
	b.fields = append(b.fields, field{start: len(b.buf), kind: kind})
}

// AddUint64 packs an unsigned integer field.
func (b *Builder) AddUint64(v uint64) {
	b.mark(KindUint)
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
}

// AddUint32 packs an unsigned integer field.
func (b *Builder) AddUint32(v uint32) {
	b.mark(KindUint)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
}

// AddInt64 packs a signed integer field.
func (b *Builder) AddInt64(v int64) {
	b.mark(KindInt)
	b.buf = binary.LittleEndian.AppendUint64(b.buf, uint64(v))
}

// AddInt32 packs a signed integer field.
func (b *Builder) AddInt32(v int32) {
	b.mark(KindInt)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
}

// AddInt16 packs a signed integer field.
func (b *Builder) AddInt16(v int16) {
	b.mark(KindInt)
	b.buf = binary.LittleEndian.AppendUint16(b.buf, uint16(v))
}

// AddFloat64 packs a float field.
func (b *Builder) AddFloat64(v float64) {
	b.mark(KindFloat)
	b.buf = binary.LittleEndian.AppendUint64(b.buf, math.Float64bits(v))
}

// AddBool packs a bool field.
func (b *Builder) AddBool(v bool) {
	b.mark(KindBool)
	if v {
		b.buf = append(b.buf, 1)
	} else {
		b.buf = append(b.buf, 0)
	}
}

// AddString packs a string field.
func (b *Builder) AddString(v string) {
	b.mark(KindString)
	b.buf = append(b.buf, v...)
}

// AddBytes packs a raw bytes field.
func (b *Builder) AddBytes(v []byte) {
	b.mark(KindBytes)
	b.buf = append(b.buf, v...)
}

// Len returns the number of fields added so far.
func (b *Builder) Len() int { return len(b.fields) }

// PackSize returns the size of the buffer Pack will produce.
func (b *Builder) PackSize() int {
	return (len(b.fields)+1)*entrySize + len(b.buf)
}

// Pack finalises the record into a fresh buffer: header entries first,
// each holding the displacement from its own position to its payload,
// then the payload bytes.
func (b *Builder) Pack() ([]byte, error) {
	return b.pack(make([]byte, b.PackSize()))
}

// PackPooled finalises the record into a buffer acquired from bp. The
// caller owns the result and may hand it back with bp.Release.
func (b *Builder) PackPooled(bp *utils.BufferPool) ([]byte, error) {
	return b.pack(bp.Acquire(b.PackSize()))
}

func (b *Builder) pack(out []byte) ([]byte, error) {
	headerSize := (len(b.fields) + 1) * entrySize

	for i, f := range b.fields {
		pos := i * entrySize
		delta := headerSize + f.start - pos
		if delta > maxEntryDelta {
			return nil, ErrRecordTooLarge
		}
		binary.LittleEndian.PutUint16(out[pos:], encodeEntry(delta, f.kind))
	}

	endPos := len(b.fields) * entrySize
	endDelta := headerSize + len(b.buf) - endPos
	if endDelta > maxEntryDelta {
		return nil, ErrRecordTooLarge
	}
	binary.LittleEndian.PutUint16(out[endPos:], encodeEntry(endDelta, KindEnd))

	copy(out[headerSize:], b.buf)
	return out, nil
}
