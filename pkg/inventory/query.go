package inventory

import (
	"reflect"

	"github.com/go-mclib/inventory/pkg/item"
)

// Query is a predicate over inventory nodes. Item-based queries match slots;
// structural queries may match any node.
type Query func(inv Inventory) bool

// QueryKind matches slots holding any of kinds.
func QueryKind(kinds ...*item.Kind) Query {
	return QueryFilter(item.OfKind(kinds...))
}

// QueryStack matches slots holding a stack similar to s.
func QueryStack(s *item.Stack) Query {
	return QueryFilter(item.SimilarTo(s))
}

// QueryFilter matches slots whose stack f accepts.
func QueryFilter(f item.Filter) Query {
	f = item.OrAny(f)
	return func(inv Inventory) bool {
		s, ok := inv.(*Slot)
		return ok && f.Accepts(s.stack)
	}
}

// QueryEmpty matches empty slots.
func QueryEmpty() Query {
	return func(inv Inventory) bool {
		s, ok := inv.(*Slot)
		return ok && s.IsEmpty()
	}
}

// QueryType matches nodes whose concrete type is T, e.g. QueryType[*Row]().
func QueryType[T Inventory]() Query {
	return func(inv Inventory) bool {
		_, ok := inv.(T)
		return ok
	}
}

// QueryHasProperty matches nodes that resolve key.
func QueryHasProperty(key PropertyKey) Query {
	return func(inv Inventory) bool {
		_, ok := inv.Property(key)
		return ok
	}
}

// QueryProperty matches nodes whose key resolves to value.
func QueryProperty(key PropertyKey, value any) Query {
	return func(inv Inventory) bool {
		v, ok := inv.Property(key)
		return ok && reflect.DeepEqual(v, value)
	}
}

func QueryName(name string) Query {
	return func(inv Inventory) bool { return inv.Name() == name }
}

// QueryArchetype matches nodes built from a.
func QueryArchetype(a *Archetype) Query {
	return func(inv Inventory) bool { return a.Equal(inv.Archetype()) }
}

func QueryAnd(qs ...Query) Query {
	return func(inv Inventory) bool {
		for _, q := range qs {
			if !q(inv) {
				return false
			}
		}
		return true
	}
}

func QueryOr(qs ...Query) Query {
	return func(inv Inventory) bool {
		for _, q := range qs {
			if q(inv) {
				return true
			}
		}
		return false
	}
}

func QueryNot(q Query) Query {
	return func(inv Inventory) bool { return !q(inv) }
}

// collector walks a tree depth first. A matching node is collected without
// descending into it; a node whose slots are all covered by earlier matches is
// skipped.
type collector struct {
	q       Query
	matches []Inventory
	seen    map[Inventory]struct{}
	covered map[*Slot]struct{}
}

func newCollector(q Query) *collector {
	return &collector{
		q:       q,
		seen:    make(map[Inventory]struct{}),
		covered: make(map[*Slot]struct{}),
	}
}

func (c *collector) visit(inv Inventory) {
	if c.q(inv) {
		c.add(inv)
		return
	}
	for _, child := range inv.queryChildren() {
		c.visit(child)
	}
}

func (c *collector) add(inv Inventory) {
	if _, ok := c.seen[inv]; ok {
		return
	}
	slots := inv.Slots()
	if len(slots) > 0 && c.allCovered(slots) {
		return
	}
	c.seen[inv] = struct{}{}
	c.matches = append(c.matches, inv)
	for _, s := range slots {
		c.covered[s] = struct{}{}
	}
}

func (c *collector) allCovered(slots []*Slot) bool {
	for _, s := range slots {
		if _, ok := c.covered[s]; !ok {
			return false
		}
	}
	return true
}

func (c *collector) result() *Unordered {
	return newUnordered(c.matches)
}
