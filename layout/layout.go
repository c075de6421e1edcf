// Package layout plans aggregate layouts for relative pointers. A
// described aggregate gets concrete field offsets under Go alignment
// rules, and the planner answers the question every relative-pointer
// design starts with: which displacement width can span this struct.
package layout

import (
	"fmt"

	"github.com/quickwritereader/tether/delta"
	"github.com/quickwritereader/tether/utils"
)

// typeInfo gives size and alignment for a named field type.
var typeInfo = map[string]struct{ size, align int }{
	"bool":    {1, 1},
	"int8":    {1, 1},
	"uint8":   {1, 1},
	"int16":   {2, 2},
	"uint16":  {2, 2},
	"int32":   {4, 4},
	"uint32":  {4, 4},
	"int64":   {8, 8},
	"uint64":  {8, 8},
	"int":     {8, 8},
	"uint":    {8, 8},
	"float32": {4, 4},
	"float64": {8, 8},
	"ptr":     {8, 8},
	"string":  {16, 8},
	"slice":   {24, 8},
	// relative pointer fields by displacement width
	"ref8":  {1, 1},
	"ref16": {2, 2},
	"ref32": {4, 4},
	"ref64": {8, 8},
}

// Field is a placed aggregate member.
type Field struct {
	Name   string
	Type   string
	Size   int
	Align  int
	Offset int
}

// Aggregate is a fully placed layout: fields in declaration order with
// resolved offsets, plus the padded total size.
type Aggregate struct {
	Name   string
	Fields []Field
	Size   int
	Align  int
}

// Build places the described fields in order, inserting alignment
// padding the way the Go compiler does.
func Build(desc *AggregateJSON) (*Aggregate, error) {
	if len(desc.Fields) == 0 {
		return nil, fmt.Errorf("layout: aggregate %q has no fields", desc.Name)
	}

	agg := &Aggregate{Name: desc.Name, Align: 1}
	offset := 0
	for _, fd := range desc.Fields {
		size, align, err := fieldShape(fd)
		if err != nil {
			return nil, fmt.Errorf("layout: aggregate %q: %w", desc.Name, err)
		}
		offset += utils.PadFor(offset, align)
		agg.Fields = append(agg.Fields, Field{
			Name:   fd.Name,
			Type:   fd.Type,
			Size:   size,
			Align:  align,
			Offset: offset,
		})
		offset += size
		agg.Align = utils.Max(agg.Align, align)
	}
	agg.Size = utils.AlignUp(offset, agg.Align)
	return agg, nil
}

func fieldShape(fd FieldJSON) (size, align int, err error) {
	if fd.Type == "array" || fd.Type == "bytes" {
		if fd.Size <= 0 {
			return 0, 0, fmt.Errorf("field %q: %s type needs an explicit size", fd.Name, fd.Type)
		}
		align = fd.Align
		if align == 0 {
			align = 1
		}
		return fd.Size, align, nil
	}
	info, ok := typeInfo[fd.Type]
	if !ok {
		return 0, 0, fmt.Errorf("field %q: unknown type %q", fd.Name, fd.Type)
	}
	size, align = info.size, info.align
	if fd.Align > 0 {
		align = fd.Align
	}
	return size, align, nil
}

// Field returns the placed field with the given name.
func (a *Aggregate) Field(name string) (Field, bool) {
	for _, f := range a.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Span returns the displacement from the start of field from to the
// start of field to.
func (a *Aggregate) Span(from, to string) (int64, error) {
	src, ok := a.Field(from)
	if !ok {
		return 0, fmt.Errorf("layout: aggregate %q has no field %q", a.Name, from)
	}
	dst, ok := a.Field(to)
	if !ok {
		return 0, fmt.Errorf("layout: aggregate %q has no field %q", a.Name, to)
	}
	return int64(dst.Offset - src.Offset), nil
}

// MinWidthBits returns the narrowest displacement width whose range
// covers any pair of offsets inside the aggregate.
func (a *Aggregate) MinWidthBits() int {
	for _, bits := range []int{8, 16, 32} {
		if fitsBits(int64(a.Size), bits) {
			return bits
		}
	}
	return 64
}

// Fits reports whether a displacement width can span the whole
// aggregate.
func (a *Aggregate) Fits(widthBits int) bool {
	return fitsBits(int64(a.Size), widthBits)
}

// fitsBits reports whether every displacement inside an aggregate of the
// given size is representable in widthBits. The largest magnitude is
// size-1 in either direction.
func fitsBits(size int64, widthBits int) bool {
	if widthBits >= 64 {
		return true
	}
	limit := int64(1) << (widthBits - 1)
	return size-1 < limit
}

// Check verifies that a relative pointer stored in field refField can
// reach field targetField with the given width. The returned error wraps
// delta.ErrOffsetTooLarge so callers can test for the category.
func (a *Aggregate) Check(refField, targetField string, widthBits int) error {
	d, err := a.Span(refField, targetField)
	if err != nil {
		return err
	}
	if widthBits < 64 {
		limit := int64(1) << (widthBits - 1)
		if d < -limit || d >= limit {
			return fmt.Errorf("layout: field %q cannot reach %q: %w",
				refField, targetField, &delta.OffsetError{Delta: d, WidthBits: widthBits})
		}
	}
	return nil
}
