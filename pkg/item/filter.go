package item

// Filter is a predicate over stacks and kinds. Inventories use filters both as
// slot validators and as matchers for poll, peek and queries.
type Filter interface {
	Accepts(s *Stack) bool
	AcceptsKind(k *Kind) bool
}

// Any accepts every non-empty stack and every kind.
var Any Filter = anyFilter{}

type anyFilter struct{}

func (anyFilter) Accepts(s *Stack) bool    { return !s.IsEmpty() }
func (anyFilter) AcceptsKind(k *Kind) bool { return k != nil }

// OrAny returns f, or Any when f is nil.
func OrAny(f Filter) Filter {
	if f == nil {
		return Any
	}
	return f
}

// Func adapts a stack predicate. Kind checks test a single-item stack.
func Func(fn func(s *Stack) bool) Filter { return funcFilter(fn) }

type funcFilter func(s *Stack) bool

func (f funcFilter) Accepts(s *Stack) bool    { return !s.IsEmpty() && f(s) }
func (f funcFilter) AcceptsKind(k *Kind) bool { return f.Accepts(NewStack(k, 1)) }

// OfKind accepts stacks of any of the given kinds.
func OfKind(kinds ...*Kind) Filter {
	set := make(map[*Kind]struct{}, len(kinds))
	for _, k := range kinds {
		if k != nil {
			set[k] = struct{}{}
		}
	}
	return kindFilter(set)
}

// OfTag accepts members of a vanilla item tag.
func OfTag(r *Registry, tag string) Filter {
	return OfKind(r.Tag(tag)...)
}

type kindFilter map[*Kind]struct{}

func (f kindFilter) Accepts(s *Stack) bool {
	return !s.IsEmpty() && f.AcceptsKind(s.Kind)
}

func (f kindFilter) AcceptsKind(k *Kind) bool {
	_, ok := f[k]
	return ok
}

// SimilarTo accepts stacks that could merge with s.
func SimilarTo(s *Stack) Filter {
	return similarFilter{template: s.Copy()}
}

type similarFilter struct{ template *Stack }

func (f similarFilter) Accepts(s *Stack) bool { return f.template.Similar(s) }

func (f similarFilter) AcceptsKind(k *Kind) bool {
	return !f.template.IsEmpty() && f.template.Kind == k
}

// And accepts what every filter accepts. Nil filters are skipped.
func And(filters ...Filter) Filter {
	fs := compact(filters)
	switch len(fs) {
	case 0:
		return Any
	case 1:
		return fs[0]
	}
	for _, f := range fs {
		if _, ok := f.(EquipmentFilter); ok {
			return equipmentAnd(fs)
		}
	}
	return andFilter(fs)
}

type andFilter []Filter

func (f andFilter) Accepts(s *Stack) bool {
	for _, sub := range f {
		if !sub.Accepts(s) {
			return false
		}
	}
	return true
}

func (f andFilter) AcceptsKind(k *Kind) bool {
	for _, sub := range f {
		if !sub.AcceptsKind(k) {
			return false
		}
	}
	return true
}

type equipmentAnd []Filter

func (f equipmentAnd) Accepts(s *Stack) bool    { return andFilter(f).Accepts(s) }
func (f equipmentAnd) AcceptsKind(k *Kind) bool { return andFilter(f).AcceptsKind(k) }

func (f equipmentAnd) AcceptsEquipment(t EquipmentType) bool {
	for _, sub := range f {
		if ef, ok := sub.(EquipmentFilter); ok && !ef.AcceptsEquipment(t) {
			return false
		}
	}
	return true
}

// Or accepts what at least one filter accepts.
func Or(filters ...Filter) Filter {
	fs := compact(filters)
	if len(fs) == 1 {
		return fs[0]
	}
	return orFilter(fs)
}

type orFilter []Filter

func (f orFilter) Accepts(s *Stack) bool {
	for _, sub := range f {
		if sub.Accepts(s) {
			return true
		}
	}
	return false
}

func (f orFilter) AcceptsKind(k *Kind) bool {
	for _, sub := range f {
		if sub.AcceptsKind(k) {
			return true
		}
	}
	return false
}

// Not inverts f for non-empty stacks; an empty stack is never accepted.
func Not(f Filter) Filter { return notFilter{f: OrAny(f)} }

type notFilter struct{ f Filter }

func (n notFilter) Accepts(s *Stack) bool    { return !s.IsEmpty() && !n.f.Accepts(s) }
func (n notFilter) AcceptsKind(k *Kind) bool { return k != nil && !n.f.AcceptsKind(k) }

func compact(filters []Filter) []Filter {
	fs := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			fs = append(fs, f)
		}
	}
	return fs
}
