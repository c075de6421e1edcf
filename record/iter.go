package record

// Iterator walks a record's fields in order, resolving each entry's
// self-relative span once.
type Iterator struct {
	view *View
	pos  int // index of the current field, -1 before the first Next
}

// Iter returns a cursor positioned before the first field.
func (v *View) Iter() *Iterator {
	return &Iterator{view: v, pos: -1}
}

// Next advances to the next field, reporting false past the end.
func (it *Iterator) Next() bool {
	if it.pos+1 >= it.view.count {
		return false
	}
	it.pos++
	return true
}

// Index returns the current field index.
func (it *Iterator) Index() int { return it.pos }

// Kind returns the current field's tag.
func (it *Iterator) Kind() Kind { return it.view.Kind(it.pos) }

// Uint64 reads the current field as an 8-byte unsigned integer.
func (it *Iterator) Uint64() (uint64, error) { return it.view.Uint64(it.pos) }

// Int64 reads the current field as an 8-byte signed integer.
func (it *Iterator) Int64() (int64, error) { return it.view.Int64(it.pos) }

// Bool reads the current field as a bool.
func (it *Iterator) Bool() (bool, error) { return it.view.Bool(it.pos) }

// String reads the current field as a string without copying.
func (it *Iterator) String() (string, error) { return it.view.String(it.pos) }

// Bytes reads the current field as a sub-slice of the record buffer.
func (it *Iterator) Bytes() ([]byte, error) { return it.view.Bytes(it.pos) }
