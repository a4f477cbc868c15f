package runtime

import (
	"slices"
	"strings"

	"github.com/sergev/vispel/lang"
)

// List is the growable sequence behind list(). Scripts hold it through an
// address value, so every copy of the value shares the same elements.
type List struct {
	items []lang.Value
}

// NewList returns a list holding items.
func NewList(items ...lang.Value) *List {
	return &List{items: slices.Clone(items)}
}

// Kind implements lang.Object.
func (l *List) Kind() string { return "list" }

// String renders the list as [a, b, c]. A list reached again while it is
// being rendered shows as [...].
func (l *List) String() string {
	var b strings.Builder
	l.format(&b, map[*List]bool{})
	return b.String()
}

func (l *List) format(b *strings.Builder, seen map[*List]bool) {
	if seen[l] {
		b.WriteString("[...]")
		return
	}
	seen[l] = true
	defer delete(seen, l)

	b.WriteByte('[')
	for i, item := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		if inner, ok := item.Object().(*List); ok && item.Type == lang.TypeAddress {
			inner.format(b, seen)
			continue
		}
		b.WriteString(item.String())
	}
	b.WriteByte(']')
}

// Len is the number of elements.
func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the elements.
func (l *List) Items() []lang.Value { return slices.Clone(l.items) }

func (l *List) Append(v lang.Value) {
	l.items = append(l.items, v)
}

// Insert places v at index i, shifting later elements. i may equal Len.
func (l *List) Insert(v lang.Value, i int64) error {
	if i < 0 || i > int64(len(l.items)) {
		return outOfRange(i, len(l.items))
	}
	l.items = slices.Insert(l.items, int(i), v)
	return nil
}

func (l *List) Remove(i int64) error {
	if i < 0 || i >= int64(len(l.items)) {
		return outOfRange(i, len(l.items))
	}
	l.items = slices.Delete(l.items, int(i), int(i)+1)
	return nil
}

func (l *List) Get(i int64) (lang.Value, error) {
	if i < 0 || i >= int64(len(l.items)) {
		return lang.None, outOfRange(i, len(l.items))
	}
	return l.items[i], nil
}

// Clear drops every element. The list stays usable.
func (l *List) Clear() {
	l.items = nil
}

func outOfRange(i int64, n int) error {
	return lang.ErrIndex.Errorf("list index out of range: %d for list length %d", i, n)
}
