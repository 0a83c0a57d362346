package vanilla

import (
	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/item"
)

// Player window (window 0) slot indexes.
const (
	TotalSlots = 46

	SlotCraftingResult = 0
	SlotArmorHead      = 5
	SlotArmorChest     = 6
	SlotArmorLegs      = 7
	SlotArmorFeet      = 8
	SlotMainStart      = 9
	SlotMainEnd        = 36
	SlotHotbarStart    = 36
	SlotHotbarEnd      = 45
	SlotOffhand        = 45
	PlayerInvSlots     = 36 // main(27) + hotbar(9) appended to every container view
)

// structural layout of the player inventory
const (
	armorStart   = 0
	mainStart    = 4
	hotbarStart  = 31
	offhandIndex = 40
)

var armorTypes = [...]item.EquipmentType{
	item.EquipmentHead,
	item.EquipmentChest,
	item.EquipmentLegs,
	item.EquipmentFeet,
}

// PlayerInventory is the player's own inventory: armor, a 9x3 main grid, the
// hotbar and the offhand. Offers fill the hotbar first.
type PlayerInventory struct {
	*inventory.Ordered
}

func playerArchetype(slot *inventory.Archetype) *inventory.Archetype {
	armor := inventory.NewOrderedSlotsBuilder().Name("armor")
	for i, t := range armorTypes {
		armor.Slot(i, inventory.NewSlotBuilder().
			MaxStackSize(1).
			Filter(item.ForEquipment(t)).
			Name(t.String()).
			BuildArchetype(PluginID, "armor_"+t.String()))
	}

	mainGrid := inventory.NewGridBuilder().
		Expand(9, 3).
		Fill(slot).
		Name("main").
		BuildArchetype(PluginID, "player_main")
	hotbar := inventory.NewRowBuilder().
		Slots(9, slot).
		Name("hotbar").
		BuildArchetype(PluginID, "player_hotbar")
	offhand := inventory.NewSlotBuilder().
		Name("offhand").
		BuildArchetype(PluginID, "player_offhand")

	return inventory.NewOrderedChildrenBuilder().
		Inventory(armor.BuildArchetype(PluginID, "player_armor"), inventory.Priority(2000)).
		Inventory(mainGrid).
		Inventory(hotbar, inventory.Priority(0)).
		Inventory(offhand, inventory.Priority(2000)).
		Name(Player).
		Property(inventory.PropertyTitle, "Inventory").
		TypeSupplier(func(inv inventory.Inventory) inventory.Inventory {
			return &PlayerInventory{Ordered: inv.(*inventory.Ordered)}
		}).
		BuildArchetype(PluginID, Player)
}

// NewPlayer builds a fresh player inventory from r.
func NewPlayer(r *inventory.Registry) *PlayerInventory {
	return inventory.BuildAs[*PlayerInventory](r.MustGet(PluginID, Player))
}

func (p *PlayerInventory) Armor() *inventory.Ordered {
	return p.Children()[0].(*inventory.Ordered)
}

func (p *PlayerInventory) Main() *inventory.Grid {
	return p.Children()[1].(*inventory.Grid)
}

func (p *PlayerInventory) Hotbar() *inventory.Row {
	return p.Children()[2].(*inventory.Row)
}

func (p *PlayerInventory) Offhand() *inventory.Slot {
	return p.Children()[3].(*inventory.Slot)
}

// EquipmentSlot returns the slot worn as t.
func (p *PlayerInventory) EquipmentSlot(t item.EquipmentType) (*inventory.Slot, bool) {
	switch t {
	case item.EquipmentOffHand:
		return p.Offhand(), true
	case item.EquipmentMainHand:
		return nil, false
	}
	for i, at := range armorTypes {
		if at == t {
			return p.Armor().Slot(i)
		}
	}
	return nil, false
}

// ViewSlots returns the main grid followed by the hotbar, the player part of
// every container window.
func (p *PlayerInventory) ViewSlots() []*inventory.Slot {
	slots := make([]*inventory.Slot, 0, PlayerInvSlots)
	slots = append(slots, p.Main().Slots()...)
	return append(slots, p.Hotbar().Slots()...)
}

// WindowIndex maps s to its index in the player window.
func (p *PlayerInventory) WindowIndex(s *inventory.Slot) (int, bool) {
	i, ok := p.SlotIndex(s)
	if !ok {
		return -1, false
	}
	switch {
	case i < mainStart:
		return SlotArmorHead + (i - armorStart), true
	case i < hotbarStart:
		return SlotMainStart + (i - mainStart), true
	case i < offhandIndex:
		return SlotHotbarStart + (i - hotbarStart), true
	case i == offhandIndex:
		return SlotOffhand, true
	}
	return -1, false
}

// WindowSlot returns the slot at a player window index. The crafting slots
// (0-4) are not modelled.
func (p *PlayerInventory) WindowSlot(index int) (*inventory.Slot, bool) {
	switch {
	case index >= SlotArmorHead && index <= SlotArmorFeet:
		return p.Slot(armorStart + index - SlotArmorHead)
	case index >= SlotMainStart && index < SlotMainEnd:
		return p.Slot(mainStart + index - SlotMainStart)
	case index >= SlotHotbarStart && index < SlotHotbarEnd:
		return p.Slot(hotbarStart + index - SlotHotbarStart)
	case index == SlotOffhand:
		return p.Slot(offhandIndex)
	}
	return nil, false
}
