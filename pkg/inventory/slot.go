package inventory

import (
	"slices"
	"weak"

	"github.com/go-mclib/inventory/pkg/item"
)

const DefaultMaxStackSize = 64

// Slot is a leaf holding at most one stack.
type Slot struct {
	node
	stack        *item.Stack
	maxStackSize int
	filter       item.Filter

	trackers []weak.Pointer[Tracker]
}

func newSlot(maxStackSize int, filter item.Filter) *Slot {
	if maxStackSize <= 0 {
		maxStackSize = DefaultMaxStackSize
	}
	s := &Slot{maxStackSize: maxStackSize, filter: filter}
	s.self = s
	return s
}

// Tracker receives a callback whenever a slot it is registered on changes.
// Slots only hold trackers weakly: once the owner drops its *Tracker the
// callbacks stop without explicit removal.
type Tracker struct {
	fn func(s *Slot)
}

func NewTracker(fn func(s *Slot)) *Tracker {
	return &Tracker{fn: fn}
}

// AddTracker registers t; registering the same tracker twice is a no-op.
func (s *Slot) AddTracker(t *Tracker) {
	if t == nil {
		return
	}
	wp := weak.Make(t)
	if slices.Contains(s.trackers, wp) {
		return
	}
	s.trackers = append(s.trackers, wp)
}

func (s *Slot) RemoveTracker(t *Tracker) {
	if t == nil {
		return
	}
	wp := weak.Make(t)
	s.trackers = slices.DeleteFunc(s.trackers, func(p weak.Pointer[Tracker]) bool {
		return p == wp
	})
}

// TrackerCount returns the number of live trackers.
func (s *Slot) TrackerCount() int {
	s.pruneTrackers()
	return len(s.trackers)
}

func (s *Slot) pruneTrackers() {
	s.trackers = slices.DeleteFunc(s.trackers, func(p weak.Pointer[Tracker]) bool {
		return p.Value() == nil
	})
}

// notify runs after the slot value is updated and before the mutating call returns.
func (s *Slot) notify() {
	s.pruneTrackers()
	if len(s.trackers) == 0 {
		return
	}
	for _, wp := range slices.Clone(s.trackers) {
		if t := wp.Value(); t != nil && t.fn != nil {
			t.fn(s)
		}
	}
}

func (s *Slot) Stack() *item.Stack     { return s.stack.Copy() }
func (s *Slot) IsEmpty() bool          { return s.stack.IsEmpty() }
func (s *Slot) MaxStackSize() int      { return s.maxStackSize }
func (s *Slot) Filter() item.Filter    { return s.filter }
func (s *Slot) Children() []Inventory  { return nil }
func (s *Slot) Slots() []*Slot         { return []*Slot{s} }
func (s *Slot) PrioritySlots() []*Slot { return []*Slot{s} }

func (s *Slot) queryChildren() []Inventory { return nil }

// Equipment reports the equipment types the slot's filter serves, if it is an
// equipment filter.
func (s *Slot) Equipment() (item.EquipmentFilter, bool) {
	ef, ok := s.filter.(item.EquipmentFilter)
	return ef, ok
}

// IsValid reports whether the slot's filter accepts stack.
func (s *Slot) IsValid(stack *item.Stack) bool {
	if stack.IsEmpty() {
		return false
	}
	return s.filter == nil || s.filter.Accepts(stack)
}

// maxFor is the most of stack this slot can hold.
func (s *Slot) maxFor(stack *item.Stack) int {
	return min(stack.MaxQuantity(), s.maxStackSize)
}

// Free returns how many more items similar to stack the slot could take.
func (s *Slot) Free(stack *item.Stack) int {
	if !s.IsValid(stack) {
		return 0
	}
	if s.stack.IsEmpty() {
		return s.maxFor(stack)
	}
	if !s.stack.Similar(stack) {
		return 0
	}
	return max(s.maxFor(stack)-s.stack.Quantity, 0)
}

func (s *Slot) Capacity() int { return 1 }

func (s *Slot) Size() int {
	if s.stack.IsEmpty() {
		return 0
	}
	return 1
}

func (s *Slot) TotalQuantity() int { return item.Quantity(s.stack) }

func (s *Slot) Contains(stack *item.Stack) bool {
	return !stack.IsEmpty() && s.stack.Similar(stack) && s.stack.Quantity >= stack.Quantity
}

func (s *Slot) ContainsKind(k *item.Kind) bool {
	return !s.stack.IsEmpty() && s.stack.Kind == k
}

func (s *Slot) Peek(m item.Filter) *item.Stack {
	if s.stack.IsEmpty() || !item.OrAny(m).Accepts(s.stack) {
		return nil
	}
	return s.stack.Copy()
}

// PeekN is Peek capped at limit items.
func (s *Slot) PeekN(limit int, m item.Filter) *item.Stack {
	if limit <= 0 {
		return nil
	}
	peeked := s.Peek(m)
	if peeked == nil {
		return nil
	}
	return peeked.WithQuantity(min(limit, peeked.Quantity))
}

func (s *Slot) Poll(m item.Filter) *item.Stack {
	polled := s.Peek(m)
	if polled == nil {
		return nil
	}
	s.stack = nil
	s.notify()
	return polled
}

// PollN splits off at most limit items.
func (s *Slot) PollN(limit int, m item.Filter) *item.Stack {
	if limit <= 0 {
		return nil
	}
	current := s.Peek(m)
	if current == nil {
		return nil
	}
	if limit >= current.Quantity {
		s.stack = nil
		s.notify()
		return current
	}
	s.stack = current.WithQuantity(current.Quantity - limit)
	s.notify()
	return current.WithQuantity(limit)
}

// Set replaces the slot content. The stack is clamped to the slot's limit and
// the excess is rejected; an invalid stack is rejected whole and leaves the slot
// untouched. A nil stack clears the slot.
func (s *Slot) Set(stack *item.Stack) Result {
	if stack.IsEmpty() {
		replaced := s.stack
		s.stack = nil
		s.notify()
		return Result{Type: Success, Replaced: replaced}
	}
	if !s.IsValid(stack) {
		return rejectAll(stack)
	}
	n := min(stack.Quantity, s.maxFor(stack))
	replaced := s.stack
	s.stack = stack.WithQuantity(n)
	s.notify()
	return Result{
		Type:     Success,
		Accepted: n,
		Replaced: replaced,
		Rejected: stack.WithQuantity(stack.Quantity - n),
	}
}

// Offer merges stack into the slot as far as it fits.
func (s *Slot) Offer(stack *item.Stack) Result {
	if stack.IsEmpty() {
		return Result{Type: Success}
	}
	n := min(stack.Quantity, s.Free(stack))
	if n == 0 {
		return rejectAll(stack)
	}
	if s.stack.IsEmpty() {
		s.stack = stack.WithQuantity(n)
	} else {
		s.stack = s.stack.WithQuantity(s.stack.Quantity + n)
	}
	s.notify()
	return accepted(n, stack.WithQuantity(stack.Quantity-n))
}

func (s *Slot) Clear() {
	s.stack = nil
	s.notify()
}

func (s *Slot) selfProperty(key PropertyKey) (any, bool) {
	switch key {
	case PropertyCapacity:
		return 1, true
	case PropertyMaxStackSize:
		return s.maxStackSize, true
	case PropertyEquipmentType:
		if v, ok := s.ownProperty(key); ok {
			return v, true
		}
		if ef, ok := s.Equipment(); ok {
			return ef, true
		}
		return nil, false
	}
	return s.ownProperty(key)
}

func (s *Slot) childProperty(Inventory, PropertyKey) (any, bool) { return nil, false }
