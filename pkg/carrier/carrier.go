// Package carrier links inventories back to the world object that owns them.
//
// Players and other long-lived owners are held strongly. Tile entities and live
// entities can be unloaded at any time, so they must implement Transient and
// supply a weak reference to themselves; an inventory never keeps them alive.
package carrier

import "weak"

// Carrier is any world object that owns an inventory.
type Carrier interface {
	CarrierName() string
}

// Transient carriers can outlive their unload boundary if held strongly.
// Implementations return Weak(self):
//
//	func (e *Furnace) WeakReference() carrier.Reference { return carrier.Weak(e) }
type Transient interface {
	Carrier
	WeakReference() Reference
}

type Kind uint8

const (
	KindEmpty Kind = iota
	KindStrong
	KindWeak
)

func (k Kind) String() string {
	switch k {
	case KindStrong:
		return "strong"
	case KindWeak:
		return "weak"
	}
	return "empty"
}

// Reference is a tagged carrier link. The zero value is empty.
type Reference struct {
	kind   Kind
	strong Carrier
	weak   func() Carrier
}

// Strong holds c strongly. A Transient carrier is routed through its weak
// reference instead.
func Strong(c Carrier) Reference {
	var r Reference
	r.Set(c)
	return r
}

// Weak holds c through a weak pointer; Get reports false once c is collected.
func Weak[T any, PT interface {
	*T
	Carrier
}](c PT) Reference {
	if c == nil {
		return Reference{}
	}
	wp := weak.Make((*T)(c))
	return Reference{
		kind: KindWeak,
		weak: func() Carrier {
			p := wp.Value()
			if p == nil {
				return nil
			}
			return PT(p)
		},
	}
}

// Set replaces the referenced carrier. A nil carrier empties the reference.
func (r *Reference) Set(c Carrier) {
	switch t := c.(type) {
	case nil:
		*r = Reference{}
	case Transient:
		*r = t.WeakReference()
	default:
		*r = Reference{kind: KindStrong, strong: c}
	}
}

// Get returns the carrier, or false when the reference is empty or its weak
// referent is gone. Absence is a normal outcome.
func (r Reference) Get() (Carrier, bool) {
	switch r.kind {
	case KindStrong:
		return r.strong, r.strong != nil
	case KindWeak:
		if r.weak == nil {
			return nil, false
		}
		c := r.weak()
		return c, c != nil
	}
	return nil, false
}

func (r Reference) Kind() Kind { return r.kind }

// IsEmpty reports whether Get would currently fail.
func (r Reference) IsEmpty() bool {
	_, ok := r.Get()
	return !ok
}

// As is Get followed by a type assertion to U.
func As[U any](r Reference) (U, bool) {
	var zero U
	c, ok := r.Get()
	if !ok {
		return zero, false
	}
	u, ok := c.(U)
	if !ok {
		return zero, false
	}
	return u, true
}
