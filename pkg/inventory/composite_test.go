package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mclib/inventory/pkg/carrier"
	"github.com/go-mclib/inventory/pkg/item"
)

func TestChestOfferThenPoll(t *testing.T) {
	f := newFixture(t)
	chest := f.chest()

	res := chest.Offer(item.NewStack(f.stone, 70))
	assert.Equal(t, Success, res.Type)
	assert.Equal(t, 70, res.Accepted)
	assert.Nil(t, res.Rejected)

	s0, _ := chest.Slot(0)
	s1, _ := chest.Slot(1)
	assert.Equal(t, 64, s0.TotalQuantity())
	assert.Equal(t, 6, s1.TotalQuantity())
	assert.Equal(t, 2, chest.Size())

	polled := chest.PollN(65, nil)
	require.NotNil(t, polled)
	assert.Equal(t, f.stone, polled.Kind)
	assert.Equal(t, 65, polled.Quantity)
	assert.Equal(t, 5, chest.TotalQuantity())
	assert.Equal(t, 5, s1.TotalQuantity())
}

func TestOfferConservesQuantity(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(3)

	res := inv.Offer(item.NewStack(f.stone, 200))
	assert.Equal(t, Success, res.Type)
	assert.Equal(t, 192, res.Accepted)
	assert.Equal(t, 8, item.Quantity(res.Rejected))
	assert.Equal(t, 192, inv.TotalQuantity())

	res = inv.Offer(item.NewStack(f.stone, 1))
	assert.Equal(t, Failure, res.Type)
	assert.Equal(t, 1, item.Quantity(res.Rejected))
}

func TestOfferSkipsDissimilarSlots(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(3)
	inv.SetAt(0, item.NewStack(f.dirt, 10))
	inv.SetAt(1, item.NewStack(f.stone, 60))

	inv.Offer(item.NewStack(f.stone, 10))

	got := stacksOf(inv)
	assert.Equal(t, 10, item.Quantity(got[0]))
	assert.Equal(t, 64, item.Quantity(got[1]))
	assert.Equal(t, 6, item.Quantity(got[2]))
}

func TestOfferIsFirstFitInPriorityOrder(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(3)
	inv.SetAt(1, item.NewStack(f.stone, 60))

	res := inv.Offer(item.NewStack(f.stone, 10))
	assert.Equal(t, 10, res.Accepted)

	got := stacksOf(inv)
	assert.Equal(t, 10, item.Quantity(got[0]), "an earlier empty slot is filled first")
	assert.Equal(t, 60, item.Quantity(got[1]))
	assert.Nil(t, got[2])
}

func TestPollNOnlyMergesSimilar(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(3)
	inv.SetAt(0, item.NewStack(f.dirt, 5))
	inv.SetAt(1, item.NewStack(f.stone, 10))
	inv.SetAt(2, item.NewStack(f.dirt, 10))

	polled := inv.PollN(12, nil)
	require.NotNil(t, polled)
	assert.Equal(t, f.dirt, polled.Kind)
	assert.Equal(t, 12, polled.Quantity)
	assert.Nil(t, inv.PeekAt(0, nil))
	assert.Equal(t, 10, item.Quantity(inv.PeekAt(1, nil)))
	assert.Equal(t, 3, item.Quantity(inv.PeekAt(2, nil)))
}

func TestPollFirstMatch(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(3)
	inv.SetAt(1, item.NewStack(f.stone, 10))
	inv.SetAt(2, item.NewStack(f.stone, 10))

	polled := inv.Poll(item.OfKind(f.stone))
	require.NotNil(t, polled)
	assert.Equal(t, 10, polled.Quantity)
	assert.Nil(t, inv.PeekAt(1, nil))
	assert.Equal(t, 10, inv.TotalQuantity())

	assert.Nil(t, inv.Poll(item.OfKind(f.dirt)))
	assert.Nil(t, inv.PollN(5, item.OfKind(f.dirt)))
}

func TestPeekDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(2)
	inv.Offer(item.NewStack(f.stone, 100))

	peeked := inv.PeekN(80, nil)
	require.NotNil(t, peeked)
	assert.Equal(t, 80, peeked.Quantity)
	assert.Equal(t, 100, inv.TotalQuantity())
}

func TestCompositeSetClearsThenOffers(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(2)
	inv.SetAt(1, item.NewStack(f.dirt, 3))

	res := inv.Set(item.NewStack(f.stone, 10))
	assert.Equal(t, Success, res.Type)
	got := stacksOf(inv)
	assert.Equal(t, 10, item.Quantity(got[0]))
	assert.Nil(t, got[1])
}

func TestContains(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(3)
	inv.Offer(item.NewStack(f.stone, 100))

	assert.True(t, inv.Contains(item.NewStack(f.stone, 100)))
	assert.False(t, inv.Contains(item.NewStack(f.stone, 101)))
	assert.True(t, inv.ContainsKind(f.stone))
	assert.False(t, inv.ContainsKind(f.dirt))
	assert.False(t, inv.Contains(nil))
}

func TestOrderedIndexing(t *testing.T) {
	f := newFixture(t)
	inv := f.slots(3)

	res := inv.SetAt(3, item.NewStack(f.stone, 1))
	assert.Equal(t, Failure, res.Type)

	res = inv.OfferAt(2, item.NewStack(f.stone, 5))
	assert.Equal(t, Success, res.Type)
	s, ok := inv.Slot(2)
	require.True(t, ok)
	i, ok := inv.SlotIndex(s)
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, 2, item.Quantity(inv.PollNAt(2, 2, nil)))
	assert.Equal(t, 3, item.Quantity(inv.PollAt(2, nil)))
}

func TestPriorityDecidesPlacement(t *testing.T) {
	f := newFixture(t)
	mainRow := f.row(9, "main")
	hotbar := f.row(9, "hotbar")

	inv := NewOrderedChildrenBuilder().
		Inventory(mainRow).
		Inventory(hotbar, Priority(0)).
		Build()

	inv.Offer(item.NewStack(f.stone, 10))

	hotbarRow := inv.Children()[1]
	assert.Equal(t, 10, hotbarRow.TotalQuantity())
	assert.Equal(t, 0, inv.Children()[0].TotalQuantity())

	// structural order is unchanged
	assert.Same(t, inv.Children()[0].Slots()[0], inv.Slots()[0])
	assert.Same(t, hotbarRow.Slots()[0], inv.PrioritySlots()[0])

	polled := inv.Poll(nil)
	require.NotNil(t, polled)
	assert.Equal(t, 0, hotbarRow.TotalQuantity())
}

func TestPriorityTiesKeepStructuralOrder(t *testing.T) {
	f := newFixture(t)
	inv := NewOrderedSlotsBuilder().
		Slots(2, f.slot).
		Slot(2, f.slot, Priority(0)).
		Slot(3, f.slot, Priority(0)).
		Build()

	slots := inv.Slots()
	want := []*Slot{slots[2], slots[3], slots[0], slots[1]}
	got := inv.PrioritySlots()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Same(t, want[i], got[i], "priority slot %d", i)
	}
}

func TestCarrierInherited(t *testing.T) {
	f := newFixture(t)
	chest := f.chest()
	owner := testCarrier{name: "steve"}
	chest.SetCarrier(owner)

	s, _ := chest.SlotAt(4, 2)
	c, ok := s.Carrier().Get()
	require.True(t, ok)
	assert.Equal(t, owner, c)
	assert.Equal(t, carrier.KindStrong, s.Carrier().Kind())

	row, _ := chest.Row(1)
	_, ok = row.Carrier().Get()
	assert.True(t, ok)
}

type testCarrier struct{ name string }

func (c testCarrier) CarrierName() string { return c.name }

type labelledChest struct {
	*Ordered
	label string
}

func TestTypeSupplierWrapsNode(t *testing.T) {
	f := newFixture(t)
	inv := NewOrderedSlotsBuilder().
		Slots(3, f.slot).
		TypeSupplier(func(inv Inventory) Inventory {
			return &labelledChest{Ordered: inv.(*Ordered), label: "loot"}
		}).
		Build()

	chest, ok := inv.(*labelledChest)
	require.True(t, ok)
	assert.Equal(t, "loot", chest.label)
	assert.Same(t, chest, chest.Slots()[0].Parent())
	assert.Same(t, chest, chest.Slots()[0].Root())

	chest.Offer(item.NewStack(f.stone, 1))
	found, ok := chest.First(QueryKind(f.stone))
	require.True(t, ok)
	assert.Same(t, chest.Slots()[0], found)
}

func TestTypeSupplierMustEmbed(t *testing.T) {
	f := newFixture(t)
	b := NewOrderedSlotsBuilder().
		Slots(1, f.slot).
		TypeSupplier(func(Inventory) Inventory { return NewSlotBuilder().Build() })

	assert.Panics(t, func() { b.Build() })
}
