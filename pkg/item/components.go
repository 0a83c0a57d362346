package item

import (
	"encoding/binary"

	"github.com/go-mclib/data/pkg/data/items"
	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// Vanilla item tags that decide where a kind is worn.
var equipmentTags = []struct {
	tag string
	t   EquipmentType
}{
	{"minecraft:head_armor", EquipmentHead},
	{"minecraft:skulls", EquipmentHead},
	{"minecraft:chest_armor", EquipmentChest},
	{"minecraft:leg_armor", EquipmentLegs},
	{"minecraft:foot_armor", EquipmentFeet},
}

// equippables are worn but belong to none of the armor tags.
var equippables = map[string]EquipmentType{
	"minecraft:carved_pumpkin": EquipmentHead,
	"minecraft:elytra":         EquipmentChest,
	"minecraft:shield":         EquipmentOffHand,
}

// vanillaDefaults fills the zero MaxStackSize and Equipment of a kind with a
// protocol id from the vanilla item data.
func (r *Registry) vanillaDefaults(k *Kind) {
	if k.MaxStackSize <= 0 {
		k.MaxStackSize = DefaultMaxStackSize
		if n, ok := vanillaMaxStackSize(k.ID); ok {
			k.MaxStackSize = n
		}
	}
	if k.Equipment == EquipmentNone {
		if t, ok := equippables[k.Name]; ok {
			k.Equipment = t
		} else {
			k.Equipment = r.tagEquipment()[k.ID]
		}
	}
}

func (r *Registry) tagEquipment() map[int32]EquipmentType {
	if r.equipment == nil {
		r.equipment = make(map[int32]EquipmentType)
		for _, et := range equipmentTags {
			for _, id := range items.ItemTag(et.tag) {
				if _, seen := r.equipment[id]; !seen {
					r.equipment[id] = et.t
				}
			}
		}
	}
	return r.equipment
}

// vanillaMaxStackSize decodes a plain one-item slot of id, which the item
// data completes with the item's default components, and reads its
// max_stack_size.
func vanillaMaxStackSize(id int32) (int, bool) {
	if id < 0 {
		return 0, false
	}
	stack, err := items.ReadSlot(ns.NewReader(plainSlot(id)))
	if err != nil || stack.IsEmpty() || stack.Components == nil {
		return 0, false
	}
	n := int(stack.Components.MaxStackSize)
	return n, n > 0
}

// plainSlot is the wire form of a slot holding one item of id with no
// component patches: count, item id, added and removed component counts.
func plainSlot(id int32) []byte {
	b := binary.AppendUvarint(nil, 1)
	b = binary.AppendUvarint(b, uint64(id))
	b = binary.AppendUvarint(b, 0)
	return binary.AppendUvarint(b, 0)
}
