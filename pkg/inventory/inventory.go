// Package inventory models item containers as trees: slots at the leaves,
// ordered/unordered composites and grids above them.
//
// Every tree is assembled by a builder, usually through an Archetype. The
// structural order of a composite fixes slot indexes and grid coordinates; an
// independent priority order decides where Offer places items and where Poll
// takes them from.
//
// The engine is single-writer: a tree must only be mutated from one goroutine
// at a time, normally the world tick.
package inventory

import (
	"github.com/go-mclib/inventory/pkg/carrier"
	"github.com/go-mclib/inventory/pkg/item"
)

// Inventory is implemented by every node of an inventory tree.
type Inventory interface {
	Parent() Inventory
	Root() Inventory
	Name() string
	Plugin() string
	Archetype() *Archetype
	Carrier() carrier.Reference
	SetCarrier(c carrier.Carrier)

	// Children returns the structural children; nil for a slot.
	Children() []Inventory
	// Slots returns every slot in structural order.
	Slots() []*Slot
	// PrioritySlots returns the same slots in priority order.
	PrioritySlots() []*Slot

	Capacity() int
	Size() int
	TotalQuantity() int
	Contains(s *item.Stack) bool
	ContainsKind(k *item.Kind) bool

	Offer(s *item.Stack) Result
	Set(s *item.Stack) Result
	Poll(m item.Filter) *item.Stack
	PollN(limit int, m item.Filter) *item.Stack
	Peek(m item.Filter) *item.Stack
	PeekN(limit int, m item.Filter) *item.Stack
	Clear()

	Query(q Query) *Unordered
	First(q Query) (Inventory, bool)

	Property(key PropertyKey) (any, bool)
	Properties() map[PropertyKey]any

	base() *node
	queryChildren() []Inventory
	selfProperty(key PropertyKey) (any, bool)
	childProperty(child Inventory, key PropertyKey) (any, bool)
}

// node holds what slots and composites have in common.
type node struct {
	self      Inventory
	parent    Inventory
	name      string
	plugin    string
	archetype *Archetype
	props     map[PropertyKey]any
	carrier   carrier.Reference
}

func (n *node) base() *node { return n }

// setParent links p as the parent; only the first assignment sticks.
func (n *node) setParent(p Inventory) {
	if n.parent == nil && p != nil && p != n.self {
		n.parent = p
	}
}

func (n *node) Parent() Inventory { return n.parent }

func (n *node) Root() Inventory {
	var root Inventory = n.self
	for root.Parent() != nil {
		root = root.Parent()
	}
	return root
}

func (n *node) Name() string          { return n.name }
func (n *node) Plugin() string        { return n.plugin }
func (n *node) Archetype() *Archetype { return n.archetype }

// Carrier returns the carrier set on this node or the nearest ancestor.
func (n *node) Carrier() carrier.Reference {
	if n.carrier.Kind() != carrier.KindEmpty || n.parent == nil {
		return n.carrier
	}
	return n.parent.Carrier()
}

func (n *node) SetCarrier(c carrier.Carrier) { n.carrier.Set(c) }

// Property resolves key for this node. Parent-relative keys are offered to the
// parent first; everything else is resolved locally.
func (n *node) Property(key PropertyKey) (any, bool) {
	if key.ParentRelative() && n.parent != nil {
		if v, ok := n.parent.childProperty(n.self, key); ok {
			return v, true
		}
	}
	return n.self.selfProperty(key)
}

func (n *node) Properties() map[PropertyKey]any {
	result := make(map[PropertyKey]any, len(n.props)+4)
	for _, key := range builtinKeys {
		if v, ok := n.self.Property(key); ok {
			result[key] = v
		}
	}
	for k, v := range n.props {
		if _, ok := result[k]; !ok {
			result[k] = v
		}
	}
	return result
}

func (n *node) ownProperty(key PropertyKey) (any, bool) {
	v, ok := n.props[key]
	return v, ok
}

func (n *node) Query(q Query) *Unordered {
	c := newCollector(q)
	children := n.self.queryChildren()
	for _, child := range children {
		c.visit(child)
	}
	// a leaf answers for itself
	if len(children) == 0 && q(n.self) {
		c.add(n.self)
	}
	return c.result()
}

func (n *node) First(q Query) (Inventory, bool) {
	children := n.self.queryChildren()
	if len(children) == 0 {
		if q(n.self) {
			return n.self, true
		}
		return nil, false
	}
	for _, child := range children {
		if found, ok := first(child, q); ok {
			return found, true
		}
	}
	return nil, false
}

func first(inv Inventory, q Query) (Inventory, bool) {
	if q(inv) {
		return inv, true
	}
	for _, child := range inv.queryChildren() {
		if found, ok := first(child, q); ok {
			return found, true
		}
	}
	return nil, false
}
