package inventory

// PropertyKey names an inventory property. Builders may attach any key; the
// constants below are computed by the engine.
type PropertyKey string

const (
	PropertyTitle         PropertyKey = "title"
	PropertyCapacity      PropertyKey = "capacity"
	PropertySlotIndex     PropertyKey = "slot_index"
	PropertySlotPosition  PropertyKey = "slot_position"
	PropertyEquipmentType PropertyKey = "equipment_type"
	PropertyMaxStackSize  PropertyKey = "max_stack_size"
)

var builtinKeys = []PropertyKey{
	PropertyTitle,
	PropertyCapacity,
	PropertySlotIndex,
	PropertySlotPosition,
	PropertyEquipmentType,
	PropertyMaxStackSize,
}

// ParentRelative keys only make sense from the parent's point of view: a slot
// index means nothing without the parent's index map.
func (k PropertyKey) ParentRelative() bool {
	return k == PropertySlotIndex || k == PropertySlotPosition
}

// Position is a grid coordinate.
type Position struct {
	X, Y int
}

// PropertyAs resolves key on inv and asserts the value to T.
func PropertyAs[T any](inv Inventory, key PropertyKey) (T, bool) {
	var zero T
	v, ok := inv.Property(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// SlotIndex is the index of inv within its parent, as the parent reports it.
func SlotIndex(inv Inventory) (int, bool) {
	return PropertyAs[int](inv, PropertySlotIndex)
}

// Title returns the PropertyTitle value, falling back to the node name.
func Title(inv Inventory) string {
	if t, ok := PropertyAs[string](inv, PropertyTitle); ok {
		return t
	}
	return inv.Name()
}
