package item

// EquipmentType names the body slot an item can be worn in.
type EquipmentType int

const (
	EquipmentNone EquipmentType = iota
	EquipmentHead
	EquipmentChest
	EquipmentLegs
	EquipmentFeet
	EquipmentMainHand
	EquipmentOffHand
)

var equipmentNames = [...]string{"none", "head", "chest", "legs", "feet", "mainhand", "offhand"}

func (t EquipmentType) String() string {
	if t < 0 || int(t) >= len(equipmentNames) {
		return "unknown"
	}
	return equipmentNames[t]
}

// Armor reports whether t is one of the four armor slots.
func (t EquipmentType) Armor() bool {
	return t >= EquipmentHead && t <= EquipmentFeet
}

// EquipmentFilter is a Filter that also knows which equipment slots it serves.
type EquipmentFilter interface {
	Filter
	AcceptsEquipment(t EquipmentType) bool
}

// ForEquipment accepts stacks whose kind can be worn in one of types. The
// main hand accepts everything.
func ForEquipment(types ...EquipmentType) EquipmentFilter {
	f := equipmentFilter{}
	for _, t := range types {
		f[t] = struct{}{}
	}
	return f
}

type equipmentFilter map[EquipmentType]struct{}

func (f equipmentFilter) Accepts(s *Stack) bool {
	return !s.IsEmpty() && f.AcceptsKind(s.Kind)
}

func (f equipmentFilter) AcceptsKind(k *Kind) bool {
	if k == nil {
		return false
	}
	if _, ok := f[EquipmentMainHand]; ok {
		return true
	}
	_, ok := f[k.Equipment]
	return ok
}

func (f equipmentFilter) AcceptsEquipment(t EquipmentType) bool {
	_, ok := f[t]
	return ok
}
