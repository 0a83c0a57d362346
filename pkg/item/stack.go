package item

import (
	"fmt"
	"reflect"

	"github.com/go-mclib/protocol/nbt"
)

// Stack is a quantity of one kind. A nil *Stack means "no stack"; quantities of
// zero are never stored, so every constructor normalises them to nil.
//
// Stacks are values by convention: inventories hand out copies and never keep
// a caller's pointer.
type Stack struct {
	Kind     *Kind
	Quantity int
	// MaxQuantityOverride replaces Kind.MaxStackSize when positive.
	MaxQuantityOverride int
	// Data holds per-stack components (custom name, enchantments, ...). Stacks
	// only merge when their data is equal.
	Data nbt.Compound
}

// NewStack returns nil for a nil kind or a non-positive quantity.
func NewStack(kind *Kind, quantity int) *Stack {
	if kind == nil || quantity <= 0 {
		return nil
	}
	return &Stack{Kind: kind, Quantity: quantity}
}

// IsEmpty is safe to call on a nil stack.
func (s *Stack) IsEmpty() bool {
	return s == nil || s.Kind == nil || s.Quantity <= 0
}

// Copy returns an independent stack, or nil for an empty one. Data is shared;
// it is never mutated in place.
func (s *Stack) Copy() *Stack {
	if s.IsEmpty() {
		return nil
	}
	c := *s
	return &c
}

// WithQuantity returns a copy holding n items, or nil when n <= 0.
func (s *Stack) WithQuantity(n int) *Stack {
	if s.IsEmpty() || n <= 0 {
		return nil
	}
	c := *s
	c.Quantity = n
	return &c
}

// MaxQuantity is the most items a single stack of this kind may hold.
func (s *Stack) MaxQuantity() int {
	if s.IsEmpty() {
		return 0
	}
	if s.MaxQuantityOverride > 0 {
		return s.MaxQuantityOverride
	}
	if s.Kind.MaxStackSize > 0 {
		return s.Kind.MaxStackSize
	}
	return DefaultMaxStackSize
}

// Similar reports whether o can merge with s: same kind, same max quantity and
// equal data. Quantities are ignored.
func (s *Stack) Similar(o *Stack) bool {
	if s.IsEmpty() || o.IsEmpty() {
		return false
	}
	if s.Kind != o.Kind || s.MaxQuantityOverride != o.MaxQuantityOverride {
		return false
	}
	if s.Data == nil || o.Data == nil {
		return s.Data == nil && o.Data == nil
	}
	return reflect.DeepEqual(s.Data, o.Data)
}

// Equal is Similar plus an equal quantity.
func (s *Stack) Equal(o *Stack) bool {
	if s.IsEmpty() || o.IsEmpty() {
		return s.IsEmpty() && o.IsEmpty()
	}
	return s.Quantity == o.Quantity && s.Similar(o)
}

func (s *Stack) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s x%d", s.Kind.Name, s.Quantity)
}

// Quantity returns the stack's quantity, or 0 for nil.
func Quantity(s *Stack) int {
	if s.IsEmpty() {
		return 0
	}
	return s.Quantity
}
