package vanilla

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/item"
)

func kinds(t *testing.T, names ...string) map[string]*item.Kind {
	t.Helper()
	r := item.NewRegistry()
	result := make(map[string]*item.Kind, len(names))
	for _, name := range names {
		k, err := r.Register(item.Kind{ID: -1, Name: name})
		require.NoError(t, err)
		result[name] = k
	}
	return result
}

func TestRegistryShapes(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		capacity int
		menu     MenuType
		title    string
	}{
		{Chest, 27, MenuGeneric9x3, "Chest"},
		{DoubleChest, 54, MenuGeneric9x6, "Large Chest"},
		{Dispenser, 9, MenuGeneric3x3, "Dispenser"},
		{Hopper, 5, MenuHopper, "Item Hopper"},
		{Furnace, 3, MenuFurnace, "Furnace"},
		{BrewingStand, 5, MenuBrewingStand, "Brewing Stand"},
		{ShulkerBox, 27, MenuShulkerBox, "Shulker Box"},
		{Player, 41, MenuPlayer, "Inventory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := r.Get(PluginID, tt.name)
			require.True(t, ok)
			inv := a.Build()
			assert.Equal(t, tt.capacity, inv.Capacity())
			assert.Equal(t, tt.title, inventory.Title(inv))
			assert.Equal(t, PluginID, inv.Plugin())

			menu, ok := MenuTypeOf(a)
			require.True(t, ok)
			assert.Equal(t, tt.menu, menu)
		})
	}

	_, ok := MenuTypeOf(r.MustGet(PluginID, Slot))
	assert.False(t, ok)
}

func TestSlotClampsToVanillaStackSize(t *testing.T) {
	items := item.NewRegistry()
	r := NewRegistry()

	tests := []struct {
		name     string
		accepted int
	}{
		{"minecraft:music_disc_13", 1},
		{"minecraft:spyglass", 1},
		{"minecraft:ender_pearl", 16},
		{"minecraft:stone", 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := inventory.BuildAs[*inventory.Slot](r.MustGet(PluginID, Slot))
			res := s.Offer(item.NewStack(items.MustLookup(tt.name), 64))
			assert.Equal(t, tt.accepted, res.Accepted)
			assert.Equal(t, 64-tt.accepted, item.Quantity(res.Rejected))
		})
	}
}

func TestDoubleChestRows(t *testing.T) {
	r := NewRegistry()
	g := inventory.BuildAs[*inventory.Grid](r.MustGet(PluginID, DoubleChest))

	assert.Equal(t, 9, g.Width())
	assert.Equal(t, 6, g.Height())
	row, ok := g.Row(4)
	require.True(t, ok)
	assert.Same(t, g, row.Parent())
	s, _ := g.SlotAt(0, 4)
	assert.Same(t, row, s.Parent())
}

func TestFurnaceRouting(t *testing.T) {
	k := kinds(t, "minecraft:coal", "minecraft:iron_ore", "minecraft:oak_log")
	r := NewRegistry()
	f := inventory.BuildAs[*inventory.Ordered](r.MustGet(PluginID, Furnace))

	res := f.Offer(item.NewStack(k["minecraft:coal"], 10))
	assert.Equal(t, 10, res.Accepted)
	assert.Equal(t, 10, item.Quantity(f.PeekAt(FurnaceFuel, nil)))

	f.Offer(item.NewStack(k["minecraft:iron_ore"], 5))
	assert.Equal(t, 5, item.Quantity(f.PeekAt(FurnaceInput, nil)))

	res = f.OfferAt(FurnaceResult, item.NewStack(k["minecraft:oak_log"], 1))
	assert.Equal(t, inventory.Failure, res.Type)
}

func TestBrewingStandBottles(t *testing.T) {
	k := kinds(t, "minecraft:potion", "minecraft:nether_wart", "minecraft:blaze_powder")
	r := NewRegistry()
	b := inventory.BuildAs[*inventory.Ordered](r.MustGet(PluginID, BrewingStand))

	res := b.Offer(item.NewStack(k["minecraft:potion"], 5))
	assert.Equal(t, 3, res.Accepted, "one potion per bottle slot")
	assert.Equal(t, 2, item.Quantity(res.Rejected))

	b.Offer(item.NewStack(k["minecraft:blaze_powder"], 4))
	assert.Equal(t, 4, item.Quantity(b.PeekAt(BrewingFuel, nil)))

	b.Offer(item.NewStack(k["minecraft:nether_wart"], 2))
	assert.Equal(t, 2, item.Quantity(b.PeekAt(BrewingIngredient, nil)))
}

func TestShulkerBoxRejectsShulkerBoxes(t *testing.T) {
	k := kinds(t, "minecraft:red_shulker_box", "minecraft:stone")
	r := NewRegistry()
	box := r.MustGet(PluginID, ShulkerBox).Build()

	assert.Equal(t, inventory.Failure, box.Offer(item.NewStack(k["minecraft:red_shulker_box"], 1)).Type)
	assert.Equal(t, inventory.Success, box.Offer(item.NewStack(k["minecraft:stone"], 1)).Type)
}

func TestPlayerInventory(t *testing.T) {
	k := kinds(t, "minecraft:stone", "minecraft:iron_helmet")
	p := NewPlayer(NewRegistry())

	assert.Equal(t, 27, p.Main().Capacity())
	assert.Equal(t, 9, p.Hotbar().Capacity())
	assert.Len(t, p.ViewSlots(), PlayerInvSlots)
	assert.Same(t, p, p.Offhand().Parent())

	p.Offer(item.NewStack(k["minecraft:stone"], 70))
	assert.Equal(t, 70, p.Hotbar().TotalQuantity(), "hotbar fills first")
	assert.Equal(t, 0, p.Main().TotalQuantity())

	head, ok := p.EquipmentSlot(item.EquipmentHead)
	require.True(t, ok)
	assert.Equal(t, inventory.Failure, head.Offer(item.NewStack(k["minecraft:stone"], 1)).Type)
	assert.Equal(t, inventory.Success, head.Offer(item.NewStack(k["minecraft:iron_helmet"], 1)).Type)

	_, ok = p.EquipmentSlot(item.EquipmentMainHand)
	assert.False(t, ok)
}

func TestPlayerWindowIndexes(t *testing.T) {
	p := NewPlayer(NewRegistry())

	tests := []struct {
		index int
		slot  func() *inventory.Slot
	}{
		{SlotArmorHead, func() *inventory.Slot { s, _ := p.EquipmentSlot(item.EquipmentHead); return s }},
		{SlotArmorFeet, func() *inventory.Slot { s, _ := p.EquipmentSlot(item.EquipmentFeet); return s }},
		{SlotMainStart, func() *inventory.Slot { s, _ := p.Main().SlotAt(0, 0); return s }},
		{SlotMainEnd - 1, func() *inventory.Slot { s, _ := p.Main().SlotAt(8, 2); return s }},
		{SlotHotbarStart, func() *inventory.Slot { s, _ := p.Hotbar().Slot(0); return s }},
		{SlotOffhand, p.Offhand},
	}
	for _, tt := range tests {
		want := tt.slot()
		got, ok := p.WindowSlot(tt.index)
		require.True(t, ok, "window slot %d", tt.index)
		assert.Same(t, want, got, "window slot %d", tt.index)

		index, ok := p.WindowIndex(want)
		require.True(t, ok)
		assert.Equal(t, tt.index, index)
	}

	_, ok := p.WindowSlot(SlotCraftingResult)
	assert.False(t, ok)
}
