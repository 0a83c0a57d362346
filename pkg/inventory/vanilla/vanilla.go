// Package vanilla registers the archetypes of the vanilla block and player
// inventories.
package vanilla

import (
	"strings"

	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/item"
)

const PluginID = "minecraft"

// Archetype names.
const (
	Slot         = "slot"
	Chest        = "chest"
	DoubleChest  = "double_chest"
	Dispenser    = "dispenser"
	Hopper       = "hopper"
	Furnace      = "furnace"
	BrewingStand = "brewing_stand"
	ShulkerBox   = "shulker_box"
	Player       = "player"
)

// MenuType represents a Minecraft container menu type from the minecraft:menu registry.
type MenuType int32

const (
	MenuPlayer       MenuType = -1 // window 0, no menu type
	MenuGeneric9x1   MenuType = 0
	MenuGeneric9x2   MenuType = 1
	MenuGeneric9x3   MenuType = 2 // single chest, barrel
	MenuGeneric9x4   MenuType = 3
	MenuGeneric9x5   MenuType = 4
	MenuGeneric9x6   MenuType = 5 // double chest
	MenuGeneric3x3   MenuType = 6 // dispenser, dropper
	MenuCrafter3x3   MenuType = 7
	MenuAnvil        MenuType = 8
	MenuBeacon       MenuType = 9
	MenuBrewingStand MenuType = 11
	MenuFurnace      MenuType = 14
	MenuHopper       MenuType = 16
	MenuShulkerBox   MenuType = 20
)

var menuTypes = map[string]MenuType{
	Chest:        MenuGeneric9x3,
	DoubleChest:  MenuGeneric9x6,
	Dispenser:    MenuGeneric3x3,
	Hopper:       MenuHopper,
	Furnace:      MenuFurnace,
	BrewingStand: MenuBrewingStand,
	ShulkerBox:   MenuShulkerBox,
	Player:       MenuPlayer,
}

// MenuTypeOf returns the menu a vanilla archetype opens with.
func MenuTypeOf(a *inventory.Archetype) (MenuType, bool) {
	if a == nil || a.PluginID() != PluginID {
		return 0, false
	}
	t, ok := menuTypes[a.Name()]
	return t, ok
}

// Furnace slot indexes.
const (
	FurnaceInput  = 0
	FurnaceFuel   = 1
	FurnaceResult = 2
)

// Brewing stand slot indexes; bottles occupy 0-2.
const (
	BrewingIngredient = 3
	BrewingFuel       = 4
)

// NewRegistry builds every vanilla archetype.
func NewRegistry() *inventory.Registry {
	r := inventory.NewRegistry()
	slot := r.MustRegister(inventory.NewSlotBuilder().BuildArchetype(PluginID, Slot))

	r.MustRegister(inventory.NewGridBuilder().
		Expand(9, 3).
		Fill(slot).
		Name(Chest).
		Property(inventory.PropertyTitle, "Chest").
		BuildArchetype(PluginID, Chest))

	chestRow := inventory.NewRowBuilder().Slots(9, slot).BuildArchetype(PluginID, "chest_row")
	double := inventory.NewGridBuilder().Name(DoubleChest).Property(inventory.PropertyTitle, "Large Chest")
	for y := range 6 {
		double.Row(y, chestRow)
	}
	r.MustRegister(double.BuildArchetype(PluginID, DoubleChest))

	r.MustRegister(inventory.NewGridBuilder().
		Expand(3, 3).
		Fill(slot).
		Name(Dispenser).
		Property(inventory.PropertyTitle, "Dispenser").
		BuildArchetype(PluginID, Dispenser))

	r.MustRegister(inventory.NewRowBuilder().
		Slots(5, slot).
		Name(Hopper).
		Property(inventory.PropertyTitle, "Item Hopper").
		BuildArchetype(PluginID, Hopper))

	r.MustRegister(furnace(slot))
	r.MustRegister(brewingStand())

	noShulkers := inventory.NewSlotBuilder().
		Filter(item.Not(item.Func(isShulkerBox))).
		BuildArchetype(PluginID, "shulker_box_slot")
	r.MustRegister(inventory.NewGridBuilder().
		Expand(9, 3).
		Fill(noShulkers).
		Name(ShulkerBox).
		Property(inventory.PropertyTitle, "Shulker Box").
		BuildArchetype(PluginID, ShulkerBox))

	r.MustRegister(playerArchetype(slot))
	return r
}

func furnace(slot *inventory.Archetype) *inventory.Archetype {
	fuel := inventory.NewSlotBuilder().
		Filter(item.Func(isFuel)).
		Name("fuel").
		BuildArchetype(PluginID, "furnace_fuel")
	result := inventory.NewSlotBuilder().
		Filter(item.Func(func(*item.Stack) bool { return false })).
		Name("result").
		BuildArchetype(PluginID, "furnace_result")

	// fuel first: coal goes to the fuel slot, not the input
	return inventory.NewOrderedSlotsBuilder().
		Slot(FurnaceInput, slot).
		Slot(FurnaceFuel, fuel, inventory.Priority(0)).
		Slot(FurnaceResult, result).
		Name(Furnace).
		Property(inventory.PropertyTitle, "Furnace").
		BuildArchetype(PluginID, Furnace)
}

func brewingStand() *inventory.Archetype {
	bottle := inventory.NewSlotBuilder().
		MaxStackSize(1).
		Filter(item.Func(isBottle)).
		Name("bottle").
		BuildArchetype(PluginID, "brewing_bottle")
	ingredient := inventory.NewSlotBuilder().
		Filter(item.Not(item.Func(isBottle))).
		Name("ingredient").
		BuildArchetype(PluginID, "brewing_ingredient")
	fuel := inventory.NewSlotBuilder().
		Filter(item.Func(func(s *item.Stack) bool { return s.Kind.Name == "minecraft:blaze_powder" })).
		Name("fuel").
		BuildArchetype(PluginID, "brewing_fuel")

	return inventory.NewOrderedSlotsBuilder().
		Slots(3, bottle).
		Slot(BrewingIngredient, ingredient).
		Slot(BrewingFuel, fuel, inventory.Priority(0)).
		Name(BrewingStand).
		Property(inventory.PropertyTitle, "Brewing Stand").
		BuildArchetype(PluginID, BrewingStand)
}

var fuelNames = map[string]bool{
	"minecraft:coal":             true,
	"minecraft:charcoal":         true,
	"minecraft:coal_block":       true,
	"minecraft:lava_bucket":      true,
	"minecraft:blaze_rod":        true,
	"minecraft:stick":            true,
	"minecraft:dried_kelp_block": true,
}

var fuelSuffixes = []string{"_log", "_planks", "_wood", "_slab", "_sapling", "_fence"}

func isFuel(s *item.Stack) bool {
	name := s.Kind.Name
	if fuelNames[name] {
		return true
	}
	for _, suffix := range fuelSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func isBottle(s *item.Stack) bool {
	switch s.Kind.Name {
	case "minecraft:potion", "minecraft:splash_potion", "minecraft:lingering_potion", "minecraft:glass_bottle":
		return true
	}
	return false
}

func isShulkerBox(s *item.Stack) bool {
	return strings.HasSuffix(s.Kind.Name, "shulker_box")
}
