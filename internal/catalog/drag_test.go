package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// itemBox lays items out as 40px rows starting at y=0.
func itemBox(index int) Rect {
	return Rect{Top: float64(index) * 40, Height: 40}
}

func TestDragBelowLaterItem(t *testing.T) {
	o := NewOrderer("dragged", "item1", "item2", "item3")

	require.NoError(t, o.BeginDrag("dragged"))
	assert.True(t, o.Hidden("dragged"))
	assert.False(t, o.Hidden("item1"))

	box := itemBox(2)
	require.NoError(t, o.DragOver("item2", box.Top+30, box))
	assert.Equal(t, []string{"item1", "item2", "dragged", "item3"}, o.Order())

	idx, err := o.Drop()
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.False(t, o.Hidden("dragged"))

	_, dragging := o.Dragging()
	assert.False(t, dragging)
}

func TestDragAboveLaterItem(t *testing.T) {
	o := NewOrderer("dragged", "item1", "item2", "item3")
	require.NoError(t, o.BeginDrag("dragged"))

	box := itemBox(2)
	require.NoError(t, o.DragOver("item2", box.Top+5, box))
	assert.Equal(t, []string{"item1", "dragged", "item2", "item3"}, o.Order())
}

func TestDragUpward(t *testing.T) {
	o := NewOrderer("A", "B", "C", "D")
	require.NoError(t, o.BeginDrag("D"))

	box := itemBox(1)
	require.NoError(t, o.DragOver("B", box.Top+1, box))
	assert.Equal(t, []string{"A", "D", "B", "C"}, o.Order())

	box = itemBox(0)
	require.NoError(t, o.DragOver("A", box.Top+39, box))
	assert.Equal(t, []string{"A", "D", "B", "C"}, o.Order())
}

func TestDragOverSelfIsNoop(t *testing.T) {
	o := NewOrderer("A", "B")
	require.NoError(t, o.BeginDrag("A"))
	require.NoError(t, o.DragOver("A", 0, itemBox(0)))

	assert.Equal(t, []string{"A", "B"}, o.Order())
	id, ok := o.Dragging()
	assert.True(t, ok)
	assert.Equal(t, "A", id)
}

func TestCancelKeepsPreviewedOrder(t *testing.T) {
	o := NewOrderer("A", "B", "C")
	require.NoError(t, o.BeginDrag("A"))

	box := itemBox(2)
	require.NoError(t, o.DragOver("C", box.Top+35, box))
	o.CancelDrag()

	assert.Equal(t, []string{"B", "C", "A"}, o.Order())
	assert.False(t, o.Hidden("A"))
	_, err := o.Drop()
	assert.ErrorIs(t, err, ErrNotDragging)
}

func TestDragPreservesCheckedState(t *testing.T) {
	o := NewOrderer("A", "B", "C")
	require.NoError(t, o.Toggle("B"))
	require.NoError(t, o.BeginDrag("C"))

	box := itemBox(0)
	require.NoError(t, o.DragOver("A", box.Top, box))
	_, err := o.Drop()
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "A", "B"}, o.Order())
	assert.Equal(t, []string{"C", "A"}, o.CheckedOrder())
}

func TestDragErrors(t *testing.T) {
	o := NewOrderer("A", "B")

	assert.ErrorIs(t, o.DragOver("B", 0, itemBox(1)), ErrNotDragging)
	assert.ErrorIs(t, o.BeginDrag("Z"), ErrUnknownEntry)

	require.NoError(t, o.BeginDrag("A"))
	assert.ErrorIs(t, o.BeginDrag("B"), ErrDragInProgress)
	assert.ErrorIs(t, o.DragOver("Z", 0, itemBox(0)), ErrUnknownEntry)
}
