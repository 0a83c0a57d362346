package inventory

import (
	"testing"

	"github.com/go-mclib/inventory/pkg/item"
)

type fixture struct {
	items *item.Registry
	stone *item.Kind
	dirt  *item.Kind
	pearl *item.Kind
	helm  *item.Kind

	slot *Archetype
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := item.NewRegistry()
	return &fixture{
		items: r,
		stone: r.MustRegister(item.Kind{ID: -1, Name: "test:stone"}),
		dirt:  r.MustRegister(item.Kind{ID: -1, Name: "test:dirt"}),
		pearl: r.MustRegister(item.Kind{ID: -1, Name: "test:pearl", MaxStackSize: 16}),
		helm:  r.MustRegister(item.Kind{ID: -1, Name: "test:iron_helmet"}),
		slot:  NewSlotBuilder().BuildArchetype("test", "slot"),
	}
}

// chest returns a 9x3 grid filled with default slots.
func (f *fixture) chest() *Grid {
	return NewGridBuilder().
		Expand(9, 3).
		Fill(f.slot).
		Name("chest").
		Property(PropertyTitle, "Chest").
		Build()
}

func (f *fixture) slots(n int) *Ordered {
	return NewOrderedSlotsBuilder().Slots(n, f.slot).Build().(*Ordered)
}

func (f *fixture) row(width int, name string) *Archetype {
	return NewRowBuilder().Slots(width, f.slot).BuildArchetype("test", name)
}

func stacksOf(inv Inventory) []*item.Stack {
	result := make([]*item.Stack, 0, inv.Capacity())
	for _, s := range inv.Slots() {
		result = append(result, s.Stack())
	}
	return result
}
