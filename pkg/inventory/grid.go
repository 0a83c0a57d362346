package inventory

import (
	"github.com/go-mclib/inventory/pkg/item"
)

type gridKind uint8

const (
	kindGrid gridKind = iota
	kindRow
	kindColumn
)

func (k gridKind) String() string {
	switch k {
	case kindRow:
		return "row"
	case kindColumn:
		return "column"
	}
	return "grid"
}

// Grid is an ordered composite addressed by (x, y). Slot indexes are row-major:
// index = y*width + x.
type Grid struct {
	Ordered
	kind          gridKind
	width, height int

	// rows and columns are views sharing the grid's slots. Adopted views are
	// set at build time; the rest are derived on first use.
	rows    []*Row
	columns []*Column
}

// Row is a Grid of height 1.
type Row struct {
	Grid
}

// Column is a Grid of width 1.
type Column struct {
	Grid
}

func (g *Grid) init(kind gridKind, width, height int, children []Inventory, slots, prioritySlots []*Slot) {
	g.kind = kind
	g.width, g.height = width, height
	g.Ordered.init(children, slots, prioritySlots)
	g.rows = make([]*Row, height)
	g.columns = make([]*Column, width)
}

func newGrid(width, height int, slots, prioritySlots []*Slot) *Grid {
	g := &Grid{}
	g.self = g
	g.init(kindGrid, width, height, slotChildren(slots), slots, prioritySlots)
	return g
}

func newRow(slots, prioritySlots []*Slot) *Row {
	r := &Row{}
	r.self = r
	r.init(kindRow, len(slots), 1, slotChildren(slots), slots, prioritySlots)
	r.rows[0] = r
	return r
}

func newColumn(slots, prioritySlots []*Slot) *Column {
	c := &Column{}
	c.self = c
	c.init(kindColumn, 1, len(slots), slotChildren(slots), slots, prioritySlots)
	c.columns[0] = c
	return c
}

func slotChildren(slots []*Slot) []Inventory {
	children := make([]Inventory, len(slots))
	for i, s := range slots {
		children[i] = s
	}
	return children
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// SlotAt returns the slot at (x, y).
func (g *Grid) SlotAt(x, y int) (*Slot, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil, false
	}
	return g.slots[y*g.width+x], true
}

// Position returns the coordinates of s within this grid.
func (g *Grid) Position(s *Slot) (Position, bool) {
	i, ok := g.index[s]
	if !ok {
		return Position{}, false
	}
	return Position{X: i % g.width, Y: i / g.width}, true
}

// Row returns the row view at y. It shares slot identity with the grid.
func (g *Grid) Row(y int) (*Row, bool) {
	if y < 0 || y >= g.height {
		return nil, false
	}
	if g.rows[y] == nil {
		slots := g.slots[y*g.width : (y+1)*g.width]
		r := newRow(slots, inPriorityOrder(g.prioritySlots, slots))
		r.setParent(g.self)
		g.rows[y] = r
	}
	return g.rows[y], true
}

// Column returns the column view at x.
func (g *Grid) Column(x int) (*Column, bool) {
	if x < 0 || x >= g.width {
		return nil, false
	}
	if g.columns[x] == nil {
		slots := make([]*Slot, g.height)
		for y := range g.height {
			slots[y] = g.slots[y*g.width+x]
		}
		c := newColumn(slots, inPriorityOrder(g.prioritySlots, slots))
		c.setParent(g.self)
		g.columns[x] = c
	}
	return g.columns[x], true
}

// inPriorityOrder returns subset ordered as it appears in order.
func inPriorityOrder(order, subset []*Slot) []*Slot {
	want := make(map[*Slot]struct{}, len(subset))
	for _, s := range subset {
		want[s] = struct{}{}
	}
	result := make([]*Slot, 0, len(subset))
	for _, s := range order {
		if _, ok := want[s]; ok {
			result = append(result, s)
		}
	}
	return result
}

func (g *Grid) PeekAtPos(x, y int, m item.Filter) *item.Stack {
	if s, ok := g.SlotAt(x, y); ok {
		return s.Peek(m)
	}
	return nil
}

func (g *Grid) PollAtPos(x, y int, m item.Filter) *item.Stack {
	if s, ok := g.SlotAt(x, y); ok {
		return s.Poll(m)
	}
	return nil
}

func (g *Grid) SetAtPos(x, y int, stack *item.Stack) Result {
	if s, ok := g.SlotAt(x, y); ok {
		return s.Set(stack)
	}
	return rejectAll(stack)
}

func (g *Grid) OfferAtPos(x, y int, stack *item.Stack) Result {
	if s, ok := g.SlotAt(x, y); ok {
		return s.Offer(stack)
	}
	return rejectAll(stack)
}

// queryChildren exposes row and column views of a full grid so queries can
// match them; rows and columns themselves only expose their slots.
func (g *Grid) queryChildren() []Inventory {
	if g.kind != kindGrid {
		return g.children
	}
	result := make([]Inventory, 0, g.height+g.width+len(g.children))
	for y := range g.height {
		r, _ := g.Row(y)
		result = append(result, r)
	}
	for x := range g.width {
		c, _ := g.Column(x)
		result = append(result, c)
	}
	return append(result, g.children...)
}

func (g *Grid) childProperty(child Inventory, key PropertyKey) (any, bool) {
	if key == PropertySlotPosition {
		if s, ok := child.(*Slot); ok {
			if p, ok := g.Position(s); ok {
				return p, true
			}
		}
	}
	return g.Ordered.childProperty(child, key)
}
