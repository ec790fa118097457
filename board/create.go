package board

import (
	"errors"
	"fmt"

	"flightline/internal/logging"
	"flightline/timeline"
)

// ErrGestureClosed is returned when a committed or cancelled create gesture
// is touched again.
var ErrGestureClosed = errors.New("create gesture already closed")

// GestureState is where a create gesture stands.
type GestureState int

const (
	Creating GestureState = iota
	Committed
	Cancelled
)

func (s GestureState) String() string {
	switch s {
	case Creating:
		return "creating"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("GestureState(%d)", int(s))
	}
}

// Creation is a click-drag in empty row space that has not been committed
// yet. The preview item lives here, not on the board, until Commit.
type Creation struct {
	board *Board
	delta int64
	item  Item
	state GestureState
}

// BeginCreate starts a create gesture under the pointer instant at. The
// preview covers one grid cell starting at the grid line at or before at. It
// fails with ErrOverlap when that cell is already booked.
func (b *Board) BeginCreate(groupID, rowID string, at, delta int64) (*Creation, error) {
	row, err := b.Row(groupID, rowID)
	if err != nil {
		return nil, err
	}
	span, err := timeline.SnapCreate(at, delta)
	if err != nil {
		return nil, err
	}
	if timeline.IsOverlapping(span, row.Spans("")) {
		return nil, fmt.Errorf("%w: %s", ErrOverlap, span)
	}

	c := &Creation{
		board: b,
		delta: delta,
		item: Item{
			ID:       NewID("item"),
			GroupID:  groupID,
			RowID:    rowID,
			Span:     span,
			Creating: true,
		},
	}
	logging.Log.Debugf("Create gesture %s started in %s/%s at %s", c.item.ID, groupID, rowID, span)
	return c, nil
}

// State returns the gesture state.
func (c *Creation) State() GestureState {
	return c.state
}

// Preview returns the uncommitted item.
func (c *Creation) Preview() Item {
	return c.item
}

// Extend follows the pointer to at. Moving left of the preview start cancels
// the gesture. Otherwise the end grows or shrinks to the end of the grid
// cell under the pointer, unless that would overlap a booked item, in which
// case the preview keeps its previous extent.
func (c *Creation) Extend(at int64) (GestureState, error) {
	if c.state != Creating {
		return c.state, ErrGestureClosed
	}
	cell := timeline.FloorTo(at, c.delta)
	if cell < c.item.Span.Start {
		c.state = Cancelled
		logging.Log.Debugf("Create gesture %s cancelled: pointer left of start", c.item.ID)
		return c.state, nil
	}

	row, err := c.board.Row(c.item.GroupID, c.item.RowID)
	if err != nil {
		return c.state, err
	}
	candidate := timeline.Span{Start: c.item.Span.Start, End: cell + c.delta}
	if !timeline.IsOverlapping(candidate, row.Spans("")) {
		c.item.Span = candidate
	}
	return c.state, nil
}

// Commit books the preview into its row. An item with the same id is
// replaced in place.
func (c *Creation) Commit() (Item, error) {
	if c.state != Creating {
		return Item{}, ErrGestureClosed
	}
	row, err := c.board.Row(c.item.GroupID, c.item.RowID)
	if err != nil {
		return Item{}, err
	}
	if timeline.IsOverlapping(c.item.Span, row.Spans(c.item.ID)) {
		return Item{}, fmt.Errorf("%w: %s", ErrOverlap, c.item.Span)
	}

	committed := c.item
	committed.Creating = false
	replaced := false
	for i := range row.Items {
		if row.Items[i].ID == committed.ID {
			row.Items[i] = committed
			replaced = true
			break
		}
	}
	if !replaced {
		row.Items = append(row.Items, committed)
	}

	c.state = Committed
	logging.Log.Debugf("Create gesture %s committed: %s", committed.ID, committed.Span)
	return committed, nil
}

// Cancel discards the preview, as when the pointer leaves the row.
func (c *Creation) Cancel() {
	if c.state == Creating {
		c.state = Cancelled
	}
}
