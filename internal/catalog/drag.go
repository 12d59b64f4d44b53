package catalog

// Rect is the vertical extent of a rendered list item.
type Rect struct {
	Top    float64
	Height float64
}

// UpperHalf reports whether y falls in the upper half of r.
func (r Rect) UpperHalf(y float64) bool {
	return y < r.Top+r.Height/2
}

type dragSession struct {
	id     string
	hidden bool
}

// BeginDrag starts a drag gesture on the entry with the given id. The dragged
// entry is reported hidden until the gesture ends.
func (o *Orderer) BeginDrag(id string) error {
	if o.drag != nil {
		return ErrDragInProgress
	}
	if o.index(id) < 0 {
		return ErrUnknownEntry
	}

	o.drag = &dragSession{id: id, hidden: true}
	return nil
}

// DragOver moves the dragged entry next to targetID: before it when pointerY is
// in the upper half of targetBox, after it otherwise. Hovering the dragged entry
// itself is a no-op.
func (o *Orderer) DragOver(targetID string, pointerY float64, targetBox Rect) error {
	if o.drag == nil {
		return ErrNotDragging
	}
	if targetID == o.drag.id {
		return nil
	}

	from := o.index(o.drag.id)
	to := o.index(targetID)
	if to < 0 {
		return ErrUnknownEntry
	}

	// positions shift left by one once the dragged entry is removed
	if from < to {
		to--
	}
	if !targetBox.UpperHalf(pointerY) {
		to++
	}

	o.move(from, to)
	return nil
}

// Drop ends the gesture and returns the final index of the dragged entry. The
// order was already applied by DragOver.
func (o *Orderer) Drop() (int, error) {
	if o.drag == nil {
		return -1, ErrNotDragging
	}

	idx := o.index(o.drag.id)
	o.drag = nil
	return idx, nil
}

// CancelDrag ends the gesture without a drop, keeping the last previewed order.
func (o *Orderer) CancelDrag() {
	o.drag = nil
}

// Dragging returns the id of the entry being dragged, if any.
func (o *Orderer) Dragging() (string, bool) {
	if o.drag == nil {
		return "", false
	}

	return o.drag.id, true
}

func (o *Orderer) Hidden(id string) bool {
	return o.drag != nil && o.drag.hidden && o.drag.id == id
}
