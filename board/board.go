/*
Package board holds the state of a booking board: groups of flight rows, each
carrying time-bounded items, and the edits a user makes to them.

Every edit goes through the interval rules of package timeline. Moves and
resizes are snapped to the grid delta, and no edit can leave two items of
one row overlapping. Group and row envelopes are derived from the items on
every call; nothing is cached.
*/
package board

import (
	"errors"
	"fmt"
	"slices"

	"flightline/internal/logging"
	"flightline/timeline"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrRowNotFound   = errors.New("row not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrDuplicateID   = errors.New("duplicate id")
	// ErrOverlap is returned when an edit would make two items of a row
	// overlap. The board is left unchanged.
	ErrOverlap = errors.New("item overlaps another item in the row")
)

// Item is a booking inside a row. Creating marks an uncommitted preview
// produced by a create gesture; committed items never carry it.
type Item struct {
	ID       string        `yaml:"id"`
	GroupID  string        `yaml:"group_id"`
	RowID    string        `yaml:"row_id"`
	Span     timeline.Span `yaml:"span"`
	Creating bool          `yaml:"creating,omitempty"`
}

// Row is a flight: an ordered list of items. Row order inside a group is the
// display order and can be changed with ReorderRow.
type Row struct {
	ID      string `yaml:"id"`
	GroupID string `yaml:"group_id"`
	Name    string `yaml:"name,omitempty"`
	Items   []Item `yaml:"items"`
}

// Group is a named collection of rows.
type Group struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
	Rows []Row  `yaml:"rows"`
}

// Board is the whole booking state.
type Board struct {
	Groups []Group `yaml:"groups"`
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Spans returns the spans of the row's items, skipping the item with id
// except. Pass "" to keep every item.
func (r *Row) Spans(except string) []timeline.Span {
	spans := make([]timeline.Span, 0, len(r.Items))
	for _, it := range r.Items {
		if it.ID == except {
			continue
		}
		spans = append(spans, it.Span)
	}
	return spans
}

// Span returns the envelope of the row's items.
func (r *Row) Span() (timeline.Span, bool) {
	return timeline.Aggregate(r.Spans(""))
}

// Title returns Name, falling back to ID.
func (r *Row) Title() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Spans returns the spans of every item in the group.
func (g *Group) Spans() []timeline.Span {
	var spans []timeline.Span
	for i := range g.Rows {
		spans = append(spans, g.Rows[i].Spans("")...)
	}
	return spans
}

// Span returns the envelope of every item in the group.
func (g *Group) Span() (timeline.Span, bool) {
	return timeline.Aggregate(g.Spans())
}

// Title returns Name, falling back to ID.
func (g *Group) Title() string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}

// Group returns the group with the given id.
func (b *Board) Group(id string) (*Group, error) {
	for i := range b.Groups {
		if b.Groups[i].ID == id {
			return &b.Groups[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
}

// Row returns a row of a group.
func (b *Board) Row(groupID, rowID string) (*Row, error) {
	g, err := b.Group(groupID)
	if err != nil {
		return nil, err
	}
	for i := range g.Rows {
		if g.Rows[i].ID == rowID {
			return &g.Rows[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s in group %s", ErrRowNotFound, rowID, groupID)
}

// itemRef locates an item in the nested slices.
type itemRef struct {
	group, row, item int
}

func (b *Board) locate(itemID string) (itemRef, bool) {
	for gi := range b.Groups {
		for ri := range b.Groups[gi].Rows {
			for ii, it := range b.Groups[gi].Rows[ri].Items {
				if it.ID == itemID {
					return itemRef{gi, ri, ii}, true
				}
			}
		}
	}
	return itemRef{}, false
}

func (b *Board) at(ref itemRef) (*Row, *Item) {
	row := &b.Groups[ref.group].Rows[ref.row]
	return row, &row.Items[ref.item]
}

// FindItem returns a copy of the item with the given id.
func (b *Board) FindItem(itemID string) (Item, error) {
	ref, ok := b.locate(itemID)
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	_, it := b.at(ref)
	return *it, nil
}

// Items returns copies of every item on the board in display order.
func (b *Board) Items() []Item {
	var items []Item
	for gi := range b.Groups {
		for ri := range b.Groups[gi].Rows {
			items = append(items, b.Groups[gi].Rows[ri].Items...)
		}
	}
	return items
}

// GroupSpan returns the envelope of a group's items. The boolean is false
// when the group has no items.
func (b *Board) GroupSpan(groupID string) (timeline.Span, bool, error) {
	g, err := b.Group(groupID)
	if err != nil {
		return timeline.Span{}, false, err
	}
	s, ok := g.Span()
	return s, ok, nil
}

// Span returns the envelope of every item on the board.
func (b *Board) Span() (timeline.Span, bool) {
	var spans []timeline.Span
	for gi := range b.Groups {
		spans = append(spans, b.Groups[gi].Spans()...)
	}
	return timeline.Aggregate(spans)
}

func (b *Board) hasID(id string) bool {
	for gi := range b.Groups {
		g := &b.Groups[gi]
		if g.ID == id {
			return true
		}
		for ri := range g.Rows {
			if g.Rows[ri].ID == id {
				return true
			}
		}
	}
	_, ok := b.locate(id)
	return ok
}

// AddGroup appends an empty group.
func (b *Board) AddGroup(id, name string) (*Group, error) {
	if id == "" {
		id = NewID("group")
	}
	if b.hasID(id) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	b.Groups = append(b.Groups, Group{ID: id, Name: name})
	return &b.Groups[len(b.Groups)-1], nil
}

// AddRow appends an empty row to a group.
func (b *Board) AddRow(groupID, id, name string) (*Row, error) {
	g, err := b.Group(groupID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = NewID("flight")
	}
	if b.hasID(id) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	g.Rows = append(g.Rows, Row{ID: id, GroupID: groupID, Name: name})
	return &g.Rows[len(g.Rows)-1], nil
}

// AddItem books a committed item into a row as is, without snapping.
func (b *Board) AddItem(groupID, rowID, id string, span timeline.Span) (Item, error) {
	row, err := b.Row(groupID, rowID)
	if err != nil {
		return Item{}, err
	}
	if err := span.Validate(); err != nil {
		return Item{}, err
	}
	if id == "" {
		id = NewID("item")
	}
	if b.hasID(id) {
		return Item{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if idx, ok := timeline.FirstOverlap(span, row.Spans("")); ok {
		return Item{}, fmt.Errorf("%w: %s collides with %s", ErrOverlap, span, row.Items[idx].ID)
	}
	it := Item{ID: id, GroupID: groupID, RowID: rowID, Span: span}
	row.Items = append(row.Items, it)
	logging.Log.Debugf("Added item %s to %s/%s: %s", id, groupID, rowID, span)
	return it, nil
}

// RemoveItem deletes an item.
func (b *Board) RemoveItem(itemID string) error {
	ref, ok := b.locate(itemID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	row := &b.Groups[ref.group].Rows[ref.row]
	row.Items = append(row.Items[:ref.item], row.Items[ref.item+1:]...)
	logging.Log.Debugf("Removed item %s", itemID)
	return nil
}

// ReorderRow moves the row activeID to the position currently held by overID
// within the same group, shifting the rows in between.
func (b *Board) ReorderRow(groupID, activeID, overID string) error {
	g, err := b.Group(groupID)
	if err != nil {
		return err
	}
	from, to := -1, -1
	for i := range g.Rows {
		switch g.Rows[i].ID {
		case activeID:
			from = i
		case overID:
			to = i
		}
	}
	if from == -1 {
		return fmt.Errorf("%w: %s in group %s", ErrRowNotFound, activeID, groupID)
	}
	if activeID == overID {
		return nil
	}
	if to == -1 {
		return fmt.Errorf("%w: %s in group %s", ErrRowNotFound, overID, groupID)
	}
	g.Rows = arrayMove(g.Rows, from, to)
	logging.Log.Debugf("Moved row %s from %d to %d in %s", activeID, from, to, groupID)
	return nil
}

func arrayMove[T any](s []T, from, to int) []T {
	moved := s[from]
	out := slices.Delete(slices.Clone(s), from, from+1)
	return slices.Insert(out, to, moved)
}

// MoveItem applies the end of a drag. proposed is where the pointer left the
// item; it is rejected when it overlaps a sibling, otherwise both edges are
// snapped to their nearest grid line. A snapped span that would overlap is
// rejected too.
func (b *Board) MoveItem(itemID string, proposed timeline.Span, delta int64) (Item, error) {
	ref, ok := b.locate(itemID)
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	row, it := b.at(ref)
	siblings := row.Spans(itemID)

	if timeline.IsOverlapping(proposed, siblings) {
		return *it, fmt.Errorf("%w: move of %s to %s", ErrOverlap, itemID, proposed)
	}
	snapped, err := timeline.SnapDrag(proposed, delta)
	if err != nil {
		return *it, err
	}
	if timeline.IsOverlapping(snapped, siblings) {
		return *it, fmt.Errorf("%w: move of %s to %s", ErrOverlap, itemID, snapped)
	}

	logging.Log.Debugf("Moved item %s: %s -> %s", itemID, it.Span, snapped)
	it.Span = snapped
	return *it, nil
}

// ResizeItem applies the end of a resize. The start is floored and the end
// ceiled to the grid, so the item covers at least what was dragged.
func (b *Board) ResizeItem(itemID string, proposed timeline.Span, delta int64) (Item, error) {
	ref, ok := b.locate(itemID)
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	row, it := b.at(ref)

	snapped, err := timeline.SnapResize(proposed, delta)
	if err != nil {
		return *it, err
	}
	if timeline.IsOverlapping(snapped, row.Spans(itemID)) {
		return *it, fmt.Errorf("%w: resize of %s to %s", ErrOverlap, itemID, snapped)
	}

	logging.Log.Debugf("Resized item %s: %s -> %s", itemID, it.Span, snapped)
	it.Span = snapped
	return *it, nil
}

// Validate checks ids are unique, parent references match, spans are not
// inverted and no row holds overlapping items.
func (b *Board) Validate() error {
	seen := make(map[string]bool)
	claim := func(id string) error {
		if id == "" {
			return errors.New("empty id")
		}
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = true
		return nil
	}

	for gi := range b.Groups {
		g := &b.Groups[gi]
		if err := claim(g.ID); err != nil {
			return err
		}
		for ri := range g.Rows {
			r := &g.Rows[ri]
			if err := claim(r.ID); err != nil {
				return err
			}
			if r.GroupID != g.ID {
				return fmt.Errorf("row %s claims group %s but sits in %s", r.ID, r.GroupID, g.ID)
			}
			var prev []timeline.Span
			for _, it := range r.Items {
				if err := claim(it.ID); err != nil {
					return err
				}
				if it.RowID != r.ID || it.GroupID != g.ID {
					return fmt.Errorf("item %s claims %s/%s but sits in %s/%s", it.ID, it.GroupID, it.RowID, g.ID, r.ID)
				}
				if err := it.Span.Validate(); err != nil {
					return fmt.Errorf("item %s: %w", it.ID, err)
				}
				if idx, ok := timeline.FirstOverlap(it.Span, prev); ok {
					return fmt.Errorf("%w: %s and %s", ErrOverlap, r.Items[idx].ID, it.ID)
				}
				prev = append(prev, it.Span)
			}
		}
	}
	return nil
}
