package table

import "unsafe"

// Column is a typed, packed, growable array of component values of one fixed
// element size. size == 0 means the column is a tag or relation-id slot: it
// carries no buffer at all, and its data pointer is always nil.
//
// This is the Go shape of the erased-element buffer the spec's Design Notes
// call for: an element_size plus a byte buffer, with no vtable since the
// source has no component destructors to hook.
type Column struct {
	size int
	data []byte
}

func newColumn(size int) Column {
	return Column{size: size}
}

// Len returns the number of elements currently stored. Tag columns report 0;
// callers must use the entity column's length as the authoritative row
// count, per spec invariant.
func (c *Column) Len() int {
	if c.size == 0 {
		return 0
	}
	return len(c.data) / c.size
}

func backingPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b))
}

// grow appends n uninitialized elements and reports whether the backing
// array was reallocated (its address changed), mirroring table.c's
// old_vector != columns[i].data reallocation check.
func (c *Column) grow(n int) (reallocated bool) {
	if c.size == 0 {
		return false
	}
	before := backingPtr(c.data)
	c.data = append(c.data, make([]byte, n*c.size)...)
	return backingPtr(c.data) != before
}

// reserve ensures capacity for at least n elements without changing the
// current element count. Used by Table.SetSize as a pure capacity hint.
func (c *Column) reserve(n int) {
	if c.size == 0 {
		return
	}
	need := n * c.size
	if cap(c.data) >= need {
		return
	}
	grown := make([]byte, len(c.data), need)
	copy(grown, c.data)
	c.data = grown
}

// truncateLast drops the last element.
func (c *Column) truncateLast() {
	if c.size == 0 {
		return
	}
	c.data = c.data[:len(c.data)-c.size]
}

// overwriteWithLast copies the last element's bytes over the element at
// index, then truncates the tail. Used by swap-remove delete.
func (c *Column) overwriteWithLast(index int) {
	if c.size == 0 {
		return
	}
	last := len(c.data) - c.size
	copy(c.data[index*c.size:(index+1)*c.size], c.data[last:last+c.size])
	c.data = c.data[:last]
}

// swap exchanges the size-byte elements at r1 and r2.
func (c *Column) swap(r1, r2 int) {
	if c.size == 0 || r1 == r2 {
		return
	}
	tmp := make([]byte, c.size)
	a := c.data[r1*c.size : (r1+1)*c.size]
	b := c.data[r2*c.size : (r2+1)*c.size]
	copy(tmp, a)
	copy(a, b)
	copy(b, tmp)
}

// rotateWindow implements move_back_and_swap on a single column: the element
// at row-1 is saved, rows [row, row+count) shift left by one into
// [row-1, row+count-1), and the saved element lands at row+count-1.
func (c *Column) rotateWindow(row, count int) {
	if c.size == 0 {
		return
	}
	size := c.size
	tmp := make([]byte, size)
	copy(tmp, c.data[(row-1)*size:row*size])

	for j := 0; j < count; j++ {
		dst := c.data[(row+j-1)*size : (row+j)*size]
		src := c.data[(row+j)*size : (row+j+1)*size]
		copy(dst, src)
	}

	copy(c.data[(row+count-1)*size:(row+count)*size], tmp)
}

// mergeVector merges src into dst per §4.12: if dst is empty, transplant src
// wholesale (zero copies); otherwise append src's bytes to dst's tail.
func mergeVector(dst *Column, src *Column) {
	if dst.Len() == 0 {
		dst.data = src.data
	} else {
		dst.data = append(dst.data, src.data...)
	}
	src.data = nil
}
