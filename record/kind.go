// Package record packs typed fields into one contiguous buffer whose
// internal references are all self-relative: every header entry stores
// the displacement from the entry's own position to its payload. A
// packed record can therefore be copied, regrown, written out and read
// back with no pointer fixups, which is the buffer-level counterpart of
// a relative self-reference inside a struct.
package record

// Kind is a 3-bit field tag encoded into a uint16 header entry.
type Kind uint16

const (
	KindEnd    Kind = 0 // terminator entry, marks the payload end
	KindUint   Kind = 1
	KindInt    Kind = 2
	KindFloat  Kind = 3
	KindBool   Kind = 4
	KindString Kind = 5
	KindBytes  Kind = 6
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindEnd:
		return "end"
	default:
		return "invalid"
	}
}

// entrySize is the byte width of one header entry.
const entrySize = 2

// maxEntryDelta bounds the 13-bit self-relative displacement an entry
// can store.
const maxEntryDelta = 1<<13 - 1

// encodeEntry packs a self-relative displacement and a kind tag into one
// header entry.
func encodeEntry(delta int, kind Kind) uint16 {
	return uint16(delta)<<3 | uint16(kind)&0x07
}

// decodeEntry splits a header entry into its displacement and kind tag.
func decodeEntry(entry uint16) (delta int, kind Kind) {
	return int(entry >> 3), Kind(entry & 0x07)
}
