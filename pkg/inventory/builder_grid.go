package inventory

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/go-mclib/inventory/pkg/carrier"
)

type unitKind uint8

const (
	unitSlot unitKind = iota
	unitRow
	unitColumn
)

// gridUnit is one declaration on a grid builder: a single cell, a whole row or
// a whole column.
type gridUnit struct {
	kind     unitKind
	x, y     int
	arch     *Archetype
	priority int
}

// GridBuilder builds grids. A row locks the grid width and a column locks its
// height; every cell must be bound exactly once by the time it is built.
type GridBuilder struct {
	common
	shape         gridKind
	width, height int
	widthLocked   bool
	heightLocked  bool
	units         []gridUnit
	cells         map[Position]int
}

var _ Builds[*Grid] = (*GridBuilder)(nil)

func NewGridBuilder() *GridBuilder {
	return newGridBuilder(kindGrid)
}

func newGridBuilder(shape gridKind) *GridBuilder {
	b := &GridBuilder{
		common: newCommon(shape.String()),
		shape:  shape,
		cells:  make(map[Position]int),
	}
	switch shape {
	case kindRow:
		b.height, b.heightLocked = 1, true
	case kindColumn:
		b.width, b.widthLocked = 1, true
	}
	return b
}

// Expand grows the grid to at least width x height. Locked dimensions must not
// change.
func (b *GridBuilder) Expand(width, height int) *GridBuilder {
	if width < 0 || height < 0 {
		b.fail("dimensions %dx%d are negative", width, height)
		return b
	}
	if !b.growTo(width, height) {
		return b
	}
	b.touch()
	return b
}

func (b *GridBuilder) growTo(width, height int) bool {
	if width > b.width {
		if b.widthLocked {
			b.fail("width is locked at %d, cannot expand to %d", b.width, width)
			return false
		}
		b.width = width
	}
	if height > b.height {
		if b.heightLocked {
			b.fail("height is locked at %d, cannot expand to %d", b.height, height)
			return false
		}
		b.height = height
	}
	return true
}

// Slot binds the cell at (x, y) to a slot archetype.
func (b *GridBuilder) Slot(x, y int, a *Archetype, opts ...ChildOption) *GridBuilder {
	if x < 0 || y < 0 {
		b.fail("cell (%d, %d) is out of range", x, y)
		return b
	}
	if !isSlotArchetype(a) {
		b.fail("cell (%d, %d): %s", x, y, notSlotReason(a))
		return b
	}
	if !b.claim(Position{X: x, Y: y}) || !b.growTo(x+1, y+1) {
		return b
	}
	b.add(gridUnit{kind: unitSlot, x: x, y: y, arch: a, priority: applyChildOptions(opts).priority})
	return b
}

// Row binds row y to a row archetype. The row's width becomes the grid width.
func (b *GridBuilder) Row(y int, a *Archetype, opts ...ChildOption) *GridBuilder {
	if b.shape != kindGrid {
		b.fail("rows can only be added to a grid")
		return b
	}
	if y < 0 {
		b.fail("row %d is out of range", y)
		return b
	}
	rb, ok := rowBlueprint(a)
	if !ok {
		b.fail("row %d: archetype %s does not build a row", y, a)
		return b
	}
	width := rb.g.width
	if b.width != 0 && width != b.width {
		b.fail("row %d has width %d, grid width is %d", y, width, b.width)
		return b
	}
	for x := range width {
		if !b.claim(Position{X: x, Y: y}) {
			return b
		}
	}
	b.width, b.widthLocked = width, true
	if !b.growTo(width, y+1) {
		return b
	}
	b.add(gridUnit{kind: unitRow, y: y, arch: a, priority: applyChildOptions(opts).priority})
	return b
}

// Column binds column x to a column archetype. The column's height becomes
// the grid height.
func (b *GridBuilder) Column(x int, a *Archetype, opts ...ChildOption) *GridBuilder {
	if b.shape != kindGrid {
		b.fail("columns can only be added to a grid")
		return b
	}
	if x < 0 {
		b.fail("column %d is out of range", x)
		return b
	}
	cb, ok := columnBlueprint(a)
	if !ok {
		b.fail("column %d: archetype %s does not build a column", x, a)
		return b
	}
	height := cb.g.height
	if b.height != 0 && height != b.height {
		b.fail("column %d has height %d, grid height is %d", x, height, b.height)
		return b
	}
	for y := range height {
		if !b.claim(Position{X: x, Y: y}) {
			return b
		}
	}
	b.height, b.heightLocked = height, true
	if !b.growTo(x+1, height) {
		return b
	}
	b.add(gridUnit{kind: unitColumn, x: x, arch: a, priority: applyChildOptions(opts).priority})
	return b
}

// Fill binds every unbound cell inside the current dimensions to a.
func (b *GridBuilder) Fill(a *Archetype, opts ...ChildOption) *GridBuilder {
	if !isSlotArchetype(a) {
		b.fail("fill: %s", notSlotReason(a))
		return b
	}
	if b.width == 0 || b.height == 0 {
		b.fail("fill: dimensions not set")
		return b
	}
	for y := range b.height {
		for x := range b.width {
			if _, bound := b.cells[Position{X: x, Y: y}]; !bound {
				b.Slot(x, y, a, opts...)
			}
		}
	}
	return b
}

// claim marks p as bound by the next unit.
func (b *GridBuilder) claim(p Position) bool {
	if _, bound := b.cells[p]; bound {
		b.fail("cell (%d, %d) is already bound", p.X, p.Y)
		return false
	}
	b.cells[p] = len(b.units)
	return true
}

func (b *GridBuilder) add(u gridUnit) {
	b.units = append(b.units, u)
	b.touch()
}

func (b *GridBuilder) Name(name string) *GridBuilder {
	b.setName(name)
	return b
}

func (b *GridBuilder) Property(key PropertyKey, value any) *GridBuilder {
	b.setProperty(key, value)
	return b
}

func (b *GridBuilder) Plugin(id string) *GridBuilder {
	b.setPlugin(id)
	return b
}

// TypeSupplier wraps the built *Grid. The returned value must embed it.
func (b *GridBuilder) TypeSupplier(fn func(Inventory) Inventory) *GridBuilder {
	b.setSupplier(fn)
	return b
}

// Carrier sets the carrier of every grid built from this builder.
func (b *GridBuilder) Carrier(c carrier.Carrier) *GridBuilder {
	b.setCarrier(c)
	return b
}

func (b *GridBuilder) Copy() *GridBuilder {
	c := *b
	c.common = b.common.clone()
	c.units = slices.Clone(b.units)
	c.cells = maps.Clone(b.cells)
	return &c
}

func (b *GridBuilder) Validate() error { return b.validate() }

// Build returns the grid itself; a type supplier's wrapper is reachable
// through Root or any slot's Parent.
func (b *GridBuilder) Build(plugin ...string) *Grid {
	_, shell := b.assemble(nil, b.pluginFor(plugin))
	return shell.(*Grid)
}

func (b *GridBuilder) BuildArchetype(pluginID, name string) *Archetype {
	return b.archetype(b, pluginID, name)
}

func (b *GridBuilder) clone() blueprint { return b.Copy() }

func (b *GridBuilder) validate() error {
	if b.err != nil {
		return b.err
	}
	if b.width == 0 || b.height == 0 {
		return &BuildError{Builder: b.kind, Reason: "dimensions not set"}
	}
	for y := range b.height {
		for x := range b.width {
			if _, bound := b.cells[Position{X: x, Y: y}]; !bound {
				return &BuildError{Builder: b.kind, Reason: fmt.Sprintf("cell (%d, %d) is not bound", x, y)}
			}
		}
	}
	return nil
}

type builtUnit struct {
	inv   Inventory
	first int
}

func (b *GridBuilder) construct(a *Archetype, plugin string) Inventory {
	self, _ := b.assemble(a, plugin)
	return self
}

// assemble returns the wrapped node and the grid shell it wraps.
func (b *GridBuilder) assemble(a *Archetype, plugin string) (Inventory, Inventory) {
	b.mustValidate(b.validate)
	w := b.width
	cells := make([]*Slot, w*b.height)
	built := make([]builtUnit, len(b.units))
	rows := make(map[int]*Row)
	columns := make(map[int]*Column)

	for i, u := range b.units {
		switch u.kind {
		case unitSlot:
			s := buildSlot(u.arch, plugin)
			cells[u.y*w+u.x] = s
			built[i] = builtUnit{inv: s, first: u.y*w + u.x}
		case unitRow:
			inv := u.arch.bp.construct(u.arch, plugin)
			for x, s := range inv.Slots() {
				cells[u.y*w+x] = s
			}
			if r, ok := inv.(*Row); ok {
				rows[u.y] = r
			}
			built[i] = builtUnit{inv: inv, first: u.y * w}
		case unitColumn:
			inv := u.arch.bp.construct(u.arch, plugin)
			for y, s := range inv.Slots() {
				cells[y*w+u.x] = s
			}
			if c, ok := inv.(*Column); ok {
				columns[u.x] = c
			}
			built[i] = builtUnit{inv: inv, first: u.x}
		}
	}

	order := make([]int, len(built))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		return cmp.Or(
			cmp.Compare(b.units[i].priority, b.units[j].priority),
			cmp.Compare(built[i].first, built[j].first),
		)
	})
	prioritySlots := make([]*Slot, 0, len(cells))
	for _, i := range order {
		prioritySlots = append(prioritySlots, built[i].inv.PrioritySlots()...)
	}

	var shell Inventory
	var g *Grid
	switch b.shape {
	case kindRow:
		r := newRow(cells, prioritySlots)
		shell, g = r, &r.Grid
	case kindColumn:
		c := newColumn(cells, prioritySlots)
		shell, g = c, &c.Grid
	default:
		g = newGrid(w, b.height, cells, prioritySlots)
		shell = g
		for y, r := range rows {
			g.rows[y] = r
		}
		for x, c := range columns {
			g.columns[x] = c
		}
	}
	b.apply(&g.node, a, plugin)
	self := b.wrap(shell)
	for _, u := range built {
		u.inv.base().setParent(self)
	}
	return self, shell
}

// RowBuilder builds a single row of slots.
type RowBuilder struct {
	g *GridBuilder
}

var _ Builds[*Row] = (*RowBuilder)(nil)

func NewRowBuilder() *RowBuilder {
	return &RowBuilder{g: newGridBuilder(kindRow)}
}

// Slot binds cell x.
func (b *RowBuilder) Slot(x int, a *Archetype, opts ...ChildOption) *RowBuilder {
	b.g.Slot(x, 0, a, opts...)
	return b
}

// Slots appends n cells built from a.
func (b *RowBuilder) Slots(n int, a *Archetype, opts ...ChildOption) *RowBuilder {
	if n <= 0 {
		b.g.fail("slot count %d must be positive", n)
		return b
	}
	start := b.g.width
	for x := start; x < start+n; x++ {
		b.g.Slot(x, 0, a, opts...)
	}
	return b
}

func (b *RowBuilder) Name(name string) *RowBuilder {
	b.g.Name(name)
	return b
}

func (b *RowBuilder) Property(key PropertyKey, value any) *RowBuilder {
	b.g.Property(key, value)
	return b
}

func (b *RowBuilder) Plugin(id string) *RowBuilder {
	b.g.Plugin(id)
	return b
}

func (b *RowBuilder) Width() int { return b.g.width }

func (b *RowBuilder) Copy() *RowBuilder { return &RowBuilder{g: b.g.Copy()} }

func (b *RowBuilder) Validate() error { return b.g.validate() }

func (b *RowBuilder) Build(plugin ...string) *Row {
	_, shell := b.g.assemble(nil, b.g.pluginFor(plugin))
	return shell.(*Row)
}

func (b *RowBuilder) BuildArchetype(pluginID, name string) *Archetype {
	return b.g.archetype(b, pluginID, name)
}

func (b *RowBuilder) clone() blueprint { return b.Copy() }
func (b *RowBuilder) validate() error  { return b.g.validate() }

func (b *RowBuilder) construct(a *Archetype, plugin string) Inventory {
	return b.g.construct(a, plugin)
}

// ColumnBuilder builds a single column of slots.
type ColumnBuilder struct {
	g *GridBuilder
}

var _ Builds[*Column] = (*ColumnBuilder)(nil)

func NewColumnBuilder() *ColumnBuilder {
	return &ColumnBuilder{g: newGridBuilder(kindColumn)}
}

// Slot binds cell y.
func (b *ColumnBuilder) Slot(y int, a *Archetype, opts ...ChildOption) *ColumnBuilder {
	b.g.Slot(0, y, a, opts...)
	return b
}

// Slots appends n cells built from a.
func (b *ColumnBuilder) Slots(n int, a *Archetype, opts ...ChildOption) *ColumnBuilder {
	if n <= 0 {
		b.g.fail("slot count %d must be positive", n)
		return b
	}
	start := b.g.height
	for y := start; y < start+n; y++ {
		b.g.Slot(0, y, a, opts...)
	}
	return b
}

func (b *ColumnBuilder) Name(name string) *ColumnBuilder {
	b.g.Name(name)
	return b
}

func (b *ColumnBuilder) Property(key PropertyKey, value any) *ColumnBuilder {
	b.g.Property(key, value)
	return b
}

func (b *ColumnBuilder) Plugin(id string) *ColumnBuilder {
	b.g.Plugin(id)
	return b
}

func (b *ColumnBuilder) Height() int { return b.g.height }

func (b *ColumnBuilder) Copy() *ColumnBuilder { return &ColumnBuilder{g: b.g.Copy()} }

func (b *ColumnBuilder) Validate() error { return b.g.validate() }

func (b *ColumnBuilder) Build(plugin ...string) *Column {
	_, shell := b.g.assemble(nil, b.g.pluginFor(plugin))
	return shell.(*Column)
}

func (b *ColumnBuilder) BuildArchetype(pluginID, name string) *Archetype {
	return b.g.archetype(b, pluginID, name)
}

func (b *ColumnBuilder) clone() blueprint { return b.Copy() }
func (b *ColumnBuilder) validate() error  { return b.g.validate() }

func (b *ColumnBuilder) construct(a *Archetype, plugin string) Inventory {
	return b.g.construct(a, plugin)
}

func rowBlueprint(a *Archetype) (*RowBuilder, bool) {
	if a == nil {
		return nil, false
	}
	rb, ok := a.bp.(*RowBuilder)
	return rb, ok
}

func columnBlueprint(a *Archetype) (*ColumnBuilder, bool) {
	if a == nil {
		return nil, false
	}
	cb, ok := a.bp.(*ColumnBuilder)
	return cb, ok
}
