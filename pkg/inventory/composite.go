package inventory

import (
	"github.com/go-mclib/inventory/pkg/item"
)

// composite is the shared state of every non-leaf node.
type composite struct {
	node
	children      []Inventory
	slots         []*Slot // structural order
	prioritySlots []*Slot
}

func (c *composite) Children() []Inventory  { return c.children }
func (c *composite) Slots() []*Slot         { return c.slots }
func (c *composite) PrioritySlots() []*Slot { return c.prioritySlots }
func (c *composite) Capacity() int          { return len(c.slots) }

func (c *composite) queryChildren() []Inventory { return c.children }

func (c *composite) Size() int {
	n := 0
	for _, s := range c.slots {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

func (c *composite) TotalQuantity() int {
	n := 0
	for _, s := range c.slots {
		n += s.TotalQuantity()
	}
	return n
}

// Contains reports whether at least stack.Quantity similar items are held in total.
func (c *composite) Contains(stack *item.Stack) bool {
	if stack.IsEmpty() {
		return false
	}
	n := 0
	for _, s := range c.slots {
		if s.stack.Similar(stack) {
			n += s.stack.Quantity
			if n >= stack.Quantity {
				return true
			}
		}
	}
	return false
}

func (c *composite) ContainsKind(k *item.Kind) bool {
	for _, s := range c.slots {
		if s.ContainsKind(k) {
			return true
		}
	}
	return false
}

// Offer fills slots in priority order until the stack is used up.
func (c *composite) Offer(stack *item.Stack) Result {
	if stack.IsEmpty() {
		return Result{Type: Success}
	}
	remaining := stack.Copy()
	for _, s := range c.prioritySlots {
		remaining = s.Offer(remaining).Rejected
		if remaining.IsEmpty() {
			break
		}
	}
	return accepted(stack.Quantity-item.Quantity(remaining), remaining)
}

// Set clears the composite, then offers stack.
func (c *composite) Set(stack *item.Stack) Result {
	c.Clear()
	return c.Offer(stack)
}

// Poll removes the first matching stack in priority order.
func (c *composite) Poll(m item.Filter) *item.Stack {
	for _, s := range c.prioritySlots {
		if polled := s.Poll(m); polled != nil {
			return polled
		}
	}
	return nil
}

func (c *composite) Peek(m item.Filter) *item.Stack {
	for _, s := range c.prioritySlots {
		if peeked := s.Peek(m); peeked != nil {
			return peeked
		}
	}
	return nil
}

// PollN removes up to limit items across slots. Once a first match is found,
// later slots only contribute stacks similar to it, and the parts are merged.
func (c *composite) PollN(limit int, m item.Filter) *item.Stack {
	return collect(c.prioritySlots, limit, m, (*Slot).PollN)
}

func (c *composite) PeekN(limit int, m item.Filter) *item.Stack {
	return collect(c.prioritySlots, limit, m, (*Slot).PeekN)
}

func collect(slots []*Slot, limit int, m item.Filter, take func(*Slot, int, item.Filter) *item.Stack) *item.Stack {
	if limit <= 0 {
		return nil
	}
	m = item.OrAny(m)
	var result *item.Stack
	for _, s := range slots {
		got := take(s, limit-item.Quantity(result), m)
		if got == nil {
			continue
		}
		if result == nil {
			result = got
			m = item.And(m, item.SimilarTo(got))
		} else {
			result.Quantity += got.Quantity
		}
		if result.Quantity >= limit {
			break
		}
	}
	return result
}

func (c *composite) Clear() {
	for _, s := range c.slots {
		s.Clear()
	}
}

func (c *composite) selfProperty(key PropertyKey) (any, bool) {
	switch key {
	case PropertyCapacity:
		return len(c.slots), true
	case PropertyTitle:
		if v, ok := c.ownProperty(key); ok {
			return v, true
		}
		if c.name != "" {
			return c.name, true
		}
		return nil, false
	}
	return c.ownProperty(key)
}

func (c *composite) childProperty(child Inventory, key PropertyKey) (any, bool) {
	return child.selfProperty(key)
}

// Ordered is a composite with stable slot indexes.
type Ordered struct {
	composite
	index map[*Slot]int
}

func newOrdered(children []Inventory, slots, prioritySlots []*Slot) *Ordered {
	o := &Ordered{}
	o.self = o
	o.init(children, slots, prioritySlots)
	return o
}

func (o *Ordered) init(children []Inventory, slots, prioritySlots []*Slot) {
	o.children = children
	o.slots = slots
	o.prioritySlots = prioritySlots
	o.index = make(map[*Slot]int, len(slots))
	for i, s := range slots {
		o.index[s] = i
	}
}

// Slot returns the slot at index.
func (o *Ordered) Slot(index int) (*Slot, bool) {
	if index < 0 || index >= len(o.slots) {
		return nil, false
	}
	return o.slots[index], true
}

// SlotIndex returns the index of s within this composite.
func (o *Ordered) SlotIndex(s *Slot) (int, bool) {
	i, ok := o.index[s]
	return i, ok
}

func (o *Ordered) PeekAt(index int, m item.Filter) *item.Stack {
	if s, ok := o.Slot(index); ok {
		return s.Peek(m)
	}
	return nil
}

func (o *Ordered) PollAt(index int, m item.Filter) *item.Stack {
	if s, ok := o.Slot(index); ok {
		return s.Poll(m)
	}
	return nil
}

func (o *Ordered) PollNAt(index, limit int, m item.Filter) *item.Stack {
	if s, ok := o.Slot(index); ok {
		return s.PollN(limit, m)
	}
	return nil
}

// SetAt sets one slot; an index out of range rejects the whole stack.
func (o *Ordered) SetAt(index int, stack *item.Stack) Result {
	if s, ok := o.Slot(index); ok {
		return s.Set(stack)
	}
	return rejectAll(stack)
}

func (o *Ordered) OfferAt(index int, stack *item.Stack) Result {
	if s, ok := o.Slot(index); ok {
		return s.Offer(stack)
	}
	return rejectAll(stack)
}

func (o *Ordered) childProperty(child Inventory, key PropertyKey) (any, bool) {
	if key == PropertySlotIndex {
		if s, ok := child.(*Slot); ok {
			if i, ok := o.index[s]; ok {
				return i, true
			}
		}
	}
	return child.selfProperty(key)
}

// Unordered is a flat view over the results of a query. It does not adopt the
// nodes it holds; their parents are unchanged.
type Unordered struct {
	composite
}

func newUnordered(matches []Inventory) *Unordered {
	u := &Unordered{}
	u.self = u
	u.children = matches
	seen := make(map[*Slot]struct{})
	for _, m := range matches {
		for _, s := range m.Slots() {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			u.slots = append(u.slots, s)
		}
	}
	u.prioritySlots = u.slots
	return u
}

// Len returns the number of matched nodes.
func (u *Unordered) Len() int { return len(u.children) }

func (u *Unordered) IsEmpty() bool { return len(u.children) == 0 }
