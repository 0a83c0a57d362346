package inventory

import (
	"fmt"

	"github.com/go-mclib/inventory/pkg/carrier"
)

type slotEntry struct {
	arch     *Archetype
	priority int
	set      bool
}

// OrderedSlotsBuilder builds an ordered composite whose children are slots.
// Slot indexes are fixed by declaration; every index up to the last must be
// bound exactly once.
type OrderedSlotsBuilder struct {
	common
	entries []slotEntry
}

var _ Builds[Inventory] = (*OrderedSlotsBuilder)(nil)

func NewOrderedSlotsBuilder() *OrderedSlotsBuilder {
	return &OrderedSlotsBuilder{common: newCommon("ordered slots")}
}

// Slots appends n slots built from a.
func (b *OrderedSlotsBuilder) Slots(n int, a *Archetype, opts ...ChildOption) *OrderedSlotsBuilder {
	if n <= 0 {
		b.fail("slot count %d must be positive", n)
		return b
	}
	for range n {
		b.Slot(len(b.entries), a, opts...)
	}
	return b
}

// Slot binds index to a slot archetype.
func (b *OrderedSlotsBuilder) Slot(index int, a *Archetype, opts ...ChildOption) *OrderedSlotsBuilder {
	if index < 0 {
		b.fail("slot index %d is negative", index)
		return b
	}
	if !isSlotArchetype(a) {
		b.fail("slot %d: %s", index, notSlotReason(a))
		return b
	}
	for len(b.entries) <= index {
		b.entries = append(b.entries, slotEntry{})
	}
	if b.entries[index].set {
		b.fail("slot %d is already bound", index)
		return b
	}
	cfg := applyChildOptions(opts)
	b.entries[index] = slotEntry{arch: a, priority: cfg.priority, set: true}
	b.touch()
	return b
}

func (b *OrderedSlotsBuilder) Name(name string) *OrderedSlotsBuilder {
	b.setName(name)
	return b
}

func (b *OrderedSlotsBuilder) Property(key PropertyKey, value any) *OrderedSlotsBuilder {
	b.setProperty(key, value)
	return b
}

func (b *OrderedSlotsBuilder) Plugin(id string) *OrderedSlotsBuilder {
	b.setPlugin(id)
	return b
}

// TypeSupplier wraps the built *Ordered. The returned value must embed it.
func (b *OrderedSlotsBuilder) TypeSupplier(fn func(Inventory) Inventory) *OrderedSlotsBuilder {
	b.setSupplier(fn)
	return b
}

// Carrier sets the carrier of every inventory built from this builder.
func (b *OrderedSlotsBuilder) Carrier(c carrier.Carrier) *OrderedSlotsBuilder {
	b.setCarrier(c)
	return b
}

func (b *OrderedSlotsBuilder) Copy() *OrderedSlotsBuilder {
	c := *b
	c.common = b.common.clone()
	c.entries = append([]slotEntry(nil), b.entries...)
	return &c
}

func (b *OrderedSlotsBuilder) Validate() error { return b.validate() }

func (b *OrderedSlotsBuilder) Build(plugin ...string) Inventory {
	return b.construct(nil, b.pluginFor(plugin))
}

func (b *OrderedSlotsBuilder) BuildArchetype(pluginID, name string) *Archetype {
	return b.archetype(b, pluginID, name)
}

func (b *OrderedSlotsBuilder) clone() blueprint { return b.Copy() }

func (b *OrderedSlotsBuilder) validate() error {
	if b.err != nil {
		return b.err
	}
	if len(b.entries) == 0 {
		return &BuildError{Builder: b.kind, Reason: "no slots declared"}
	}
	for i, e := range b.entries {
		if !e.set {
			return &BuildError{Builder: b.kind, Reason: fmt.Sprintf("slot %d is not bound", i)}
		}
	}
	return nil
}

func (b *OrderedSlotsBuilder) construct(a *Archetype, plugin string) Inventory {
	b.mustValidate(b.validate)
	slots := make([]*Slot, len(b.entries))
	priorities := make([]int, len(b.entries))
	for i, e := range b.entries {
		slots[i] = buildSlot(e.arch, plugin)
		priorities[i] = e.priority
	}
	prioritySlots := make([]*Slot, 0, len(slots))
	for _, i := range stablePriority(priorities) {
		prioritySlots = append(prioritySlots, slots[i])
	}
	o := newOrdered(slotChildren(slots), slots, prioritySlots)
	b.apply(&o.node, a, plugin)
	self := b.wrap(o)
	for _, s := range slots {
		s.setParent(self)
	}
	return self
}

type childEntry struct {
	arch     *Archetype
	priority int
}

// OrderedChildrenBuilder builds an ordered composite of arbitrary child
// inventories. Slot indexes follow the children in declaration order.
type OrderedChildrenBuilder struct {
	common
	children []childEntry
}

var _ Builds[Inventory] = (*OrderedChildrenBuilder)(nil)

func NewOrderedChildrenBuilder() *OrderedChildrenBuilder {
	return &OrderedChildrenBuilder{common: newCommon("ordered children")}
}

// Inventory appends a child built from a.
func (b *OrderedChildrenBuilder) Inventory(a *Archetype, opts ...ChildOption) *OrderedChildrenBuilder {
	if a == nil {
		b.fail("child %d: archetype not set", len(b.children))
		return b
	}
	cfg := applyChildOptions(opts)
	b.children = append(b.children, childEntry{arch: a, priority: cfg.priority})
	b.touch()
	return b
}

func (b *OrderedChildrenBuilder) Name(name string) *OrderedChildrenBuilder {
	b.setName(name)
	return b
}

func (b *OrderedChildrenBuilder) Property(key PropertyKey, value any) *OrderedChildrenBuilder {
	b.setProperty(key, value)
	return b
}

func (b *OrderedChildrenBuilder) Plugin(id string) *OrderedChildrenBuilder {
	b.setPlugin(id)
	return b
}

// TypeSupplier wraps the built *Ordered. The returned value must embed it.
func (b *OrderedChildrenBuilder) TypeSupplier(fn func(Inventory) Inventory) *OrderedChildrenBuilder {
	b.setSupplier(fn)
	return b
}

// Carrier sets the carrier of every inventory built from this builder.
func (b *OrderedChildrenBuilder) Carrier(c carrier.Carrier) *OrderedChildrenBuilder {
	b.setCarrier(c)
	return b
}

func (b *OrderedChildrenBuilder) Copy() *OrderedChildrenBuilder {
	c := *b
	c.common = b.common.clone()
	c.children = append([]childEntry(nil), b.children...)
	return &c
}

func (b *OrderedChildrenBuilder) Validate() error { return b.validate() }

func (b *OrderedChildrenBuilder) Build(plugin ...string) Inventory {
	return b.construct(nil, b.pluginFor(plugin))
}

func (b *OrderedChildrenBuilder) BuildArchetype(pluginID, name string) *Archetype {
	return b.archetype(b, pluginID, name)
}

func (b *OrderedChildrenBuilder) clone() blueprint { return b.Copy() }

func (b *OrderedChildrenBuilder) validate() error {
	if b.err != nil {
		return b.err
	}
	if len(b.children) == 0 {
		return &BuildError{Builder: b.kind, Reason: "no children declared"}
	}
	return nil
}

func (b *OrderedChildrenBuilder) construct(a *Archetype, plugin string) Inventory {
	b.mustValidate(b.validate)
	children := make([]Inventory, len(b.children))
	priorities := make([]int, len(b.children))
	var slots []*Slot
	for i, c := range b.children {
		children[i] = c.arch.bp.construct(c.arch, plugin)
		priorities[i] = c.priority
		slots = append(slots, children[i].Slots()...)
	}
	prioritySlots := make([]*Slot, 0, len(slots))
	for _, i := range stablePriority(priorities) {
		prioritySlots = append(prioritySlots, children[i].PrioritySlots()...)
	}
	o := newOrdered(children, slots, prioritySlots)
	b.apply(&o.node, a, plugin)
	self := b.wrap(o)
	for _, child := range children {
		child.base().setParent(self)
	}
	return self
}

func isSlotArchetype(a *Archetype) bool {
	if a == nil {
		return false
	}
	_, ok := a.bp.(*SlotBuilder)
	return ok
}

func notSlotReason(a *Archetype) string {
	if a == nil {
		return "archetype not set"
	}
	return fmt.Sprintf("archetype %s does not build a slot", a)
}

func buildSlot(a *Archetype, plugin string) *Slot {
	return a.bp.(*SlotBuilder).build(a, plugin)
}
