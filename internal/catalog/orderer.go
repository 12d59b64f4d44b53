package catalog

import (
	"errors"
	"slices"
)

var (
	ErrUnknownEntry   = errors.New("catalog: unknown entry")
	ErrNotDragging    = errors.New("catalog: no drag in progress")
	ErrDragInProgress = errors.New("catalog: drag already in progress")
)

// Entry is one row of the reorderable list.
type Entry struct {
	ID      string
	Checked bool
}

// Orderer is a reorderable list of checkable entries. It is not safe for
// concurrent use; a UI owns one instance and projects it into its widgets.
type Orderer struct {
	entries []Entry
	drag    *dragSession
}

// NewOrderer creates an orderer over ids, all checked.
func NewOrderer(ids ...string) *Orderer {
	o := &Orderer{entries: make([]Entry, 0, len(ids))}
	for _, id := range ids {
		if o.index(id) >= 0 {
			continue
		}
		o.entries = append(o.entries, Entry{ID: id, Checked: true})
	}

	return o
}

func (o *Orderer) Len() int {
	return len(o.entries)
}

// Entries returns a copy of the current entries in visual order.
func (o *Orderer) Entries() []Entry {
	return slices.Clone(o.entries)
}

func (o *Orderer) Checked(id string) bool {
	i := o.index(id)
	return i >= 0 && o.entries[i].Checked
}

// Toggle flips the checked flag of the entry with the given id.
func (o *Orderer) Toggle(id string) error {
	i := o.index(id)
	if i < 0 {
		return ErrUnknownEntry
	}

	o.entries[i].Checked = !o.entries[i].Checked
	return nil
}

// ToggleSelectAll unchecks everything when every entry is checked and checks
// everything otherwise.
func (o *Orderer) ToggleSelectAll() {
	all := true
	for _, e := range o.entries {
		if !e.Checked {
			all = false
			break
		}
	}

	for i := range o.entries {
		o.entries[i].Checked = !all
	}
}

// SetChecked checks exactly the given ids. Unknown ids are ignored.
func (o *Orderer) SetChecked(ids []string) {
	for i := range o.entries {
		o.entries[i].Checked = slices.Contains(ids, o.entries[i].ID)
	}
}

// Order returns every identifier in visual order.
func (o *Orderer) Order() []string {
	ids := make([]string, 0, len(o.entries))
	for _, e := range o.entries {
		ids = append(ids, e.ID)
	}

	return ids
}

// CheckedOrder returns the checked identifiers in visual order.
func (o *Orderer) CheckedOrder() []string {
	ids := make([]string, 0, len(o.entries))
	for _, e := range o.entries {
		if e.Checked {
			ids = append(ids, e.ID)
		}
	}

	return ids
}

// Arrange applies a full visual order reported by a UI. Unknown ids are ignored
// and entries missing from order keep their relative position after the others.
func (o *Orderer) Arrange(order []string) {
	arranged := make([]Entry, 0, len(o.entries))
	placed := make(map[string]bool, len(o.entries))
	for _, id := range order {
		i := o.index(id)
		if i < 0 || placed[id] {
			continue
		}
		arranged = append(arranged, o.entries[i])
		placed[id] = true
	}

	for _, e := range o.entries {
		if !placed[e.ID] {
			arranged = append(arranged, e)
		}
	}

	o.entries = arranged
}

// Restore puts selected first, in that order and checked, followed by the
// remaining entries unchecked.
func (o *Orderer) Restore(selected []string) {
	o.Arrange(selected)
	o.SetChecked(selected)
}

func (o *Orderer) index(id string) int {
	return slices.IndexFunc(o.entries, func(e Entry) bool {
		return e.ID == id
	})
}

// move removes the entry at from and inserts it so it ends up at position to,
// counted on the list without the moved entry.
func (o *Orderer) move(from, to int) {
	e := o.entries[from]
	o.entries = slices.Delete(o.entries, from, from+1)
	o.entries = slices.Insert(o.entries, to, e)
}
