// Package container binds an opened inventory and a player inventory into one
// window, the way a client sees it: the opened inventory's slots followed by
// the player's main grid and hotbar.
package container

import (
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/inventory/vanilla"
	"github.com/go-mclib/inventory/pkg/item"
)

//go:generate mockgen -destination=mock/mock_viewer.go -package=containermock github.com/go-mclib/inventory/pkg/container Viewer

// Viewer receives batched slot changes of a window.
type Viewer interface {
	SlotChanged(windowID int32, index int, stack *item.Stack)
}

// Container is a window over an opened inventory and the player's inventory.
// Like the inventories it views, it is single-writer.
type Container struct {
	Logger  *log.Logger
	Verbose bool

	windowID int32
	menuType vanilla.MenuType
	title    string
	stateID  int32

	opened inventory.Inventory
	player *vanilla.PlayerInventory

	slots   []*inventory.Slot // nil entries are window indexes nothing backs
	index   map[*inventory.Slot]int
	tracker *inventory.Tracker
	closed  bool

	dirty   []int
	isDirty map[int]bool

	viewers      []Viewer
	onSlotUpdate []func(index int, stack *item.Stack)
}

// New opens a window. A nil opened inventory makes the player's own window
// (window 0), indexed like the protocol's player window.
func New(windowID int32, menuType vanilla.MenuType, title string, opened inventory.Inventory, player *vanilla.PlayerInventory) *Container {
	c := &Container{
		Logger:   log.New(os.Stdout, "", log.LstdFlags),
		windowID: windowID,
		menuType: menuType,
		title:    title,
		opened:   opened,
		player:   player,
		index:    make(map[*inventory.Slot]int),
		isDirty:  make(map[int]bool),
	}

	if opened == nil {
		c.slots = make([]*inventory.Slot, vanilla.TotalSlots)
		for i := range c.slots {
			c.slots[i], _ = player.WindowSlot(i)
		}
	} else {
		c.slots = append(slices.Clone(opened.Slots()), player.ViewSlots()...)
	}

	c.tracker = inventory.NewTracker(c.slotChanged)
	for i, s := range c.slots {
		if s == nil {
			continue
		}
		c.index[s] = i
		s.AddTracker(c.tracker)
	}
	return c
}

// Open opens a window over a vanilla inventory, taking the menu type and title
// from its archetype.
func Open(windowID int32, opened inventory.Inventory, player *vanilla.PlayerInventory) (*Container, error) {
	menuType, ok := vanilla.MenuTypeOf(opened.Archetype())
	if !ok {
		return nil, fmt.Errorf("container: %s has no menu type", opened.Archetype())
	}
	if menuType == vanilla.MenuPlayer {
		return New(0, menuType, inventory.Title(opened), nil, player), nil
	}
	return New(windowID, menuType, inventory.Title(opened), opened, player), nil
}

func (c *Container) WindowID() int32            { return c.windowID }
func (c *Container) MenuType() vanilla.MenuType { return c.menuType }
func (c *Container) Title() string              { return c.title }
func (c *Container) StateID() int32             { return c.stateID }
func (c *Container) Closed() bool               { return c.closed }

// Opened returns the opened inventory, or nil for the player window.
func (c *Container) Opened() inventory.Inventory      { return c.opened }
func (c *Container) Player() *vanilla.PlayerInventory { return c.player }

// SlotCount returns the number of window indexes.
func (c *Container) SlotCount() int { return len(c.slots) }

// OpenedSlotCount returns the number of indexes backed by the opened
// inventory (excluding the 36 player inventory slots).
func (c *Container) OpenedSlotCount() int {
	if c.opened == nil {
		return 0
	}
	return len(c.slots) - vanilla.PlayerInvSlots
}

// ViewSlot returns the slot at a window index.
func (c *Container) ViewSlot(i int) (*inventory.Slot, bool) {
	if i < 0 || i >= len(c.slots) || c.slots[i] == nil {
		return nil, false
	}
	return c.slots[i], true
}

// ViewIndex returns the window index of s.
func (c *Container) ViewIndex(s *inventory.Slot) (int, bool) {
	i, ok := c.index[s]
	return i, ok
}

// events

// OnSlotUpdate registers a callback run immediately on every slot change.
func (c *Container) OnSlotUpdate(cb func(index int, stack *item.Stack)) {
	c.onSlotUpdate = append(c.onSlotUpdate, cb)
}

func (c *Container) AddViewer(v Viewer) {
	if v == nil || slices.Contains(c.viewers, v) {
		return
	}
	c.viewers = append(c.viewers, v)
}

func (c *Container) RemoveViewer(v Viewer) {
	c.viewers = slices.DeleteFunc(c.viewers, func(x Viewer) bool { return x == v })
}

func (c *Container) Viewers() int { return len(c.viewers) }

func (c *Container) slotChanged(s *inventory.Slot) {
	i, ok := c.index[s]
	if !ok || c.closed {
		return
	}
	if !c.isDirty[i] {
		c.isDirty[i] = true
		c.dirty = append(c.dirty, i)
	}
	stack := s.Stack()
	if c.Verbose {
		c.Logger.Printf("container: window %d slot %d -> %s", c.windowID, i, stack)
	}
	for _, cb := range c.onSlotUpdate {
		cb(i, stack)
	}
}

// Dirty returns the window indexes changed since the last flush.
func (c *Container) Dirty() []int {
	return slices.Clone(c.dirty)
}

// Flush delivers every changed index once to each viewer, in the order the
// indexes first changed, and bumps the state id. It returns the number of
// indexes delivered.
func (c *Container) Flush() int {
	if len(c.dirty) == 0 {
		return 0
	}
	dirty := c.dirty
	c.dirty = nil
	clear(c.isDirty)
	c.stateID++

	for _, i := range dirty {
		stack := c.slots[i].Stack()
		for _, v := range c.viewers {
			v.SlotChanged(c.windowID, i, stack)
		}
	}
	if c.Verbose {
		c.Logger.Printf("container: window %d flushed %d slot(s) to %d viewer(s), state %d", c.windowID, len(dirty), len(c.viewers), c.stateID)
	}
	return len(dirty)
}

// Contents returns a copy of every window slot's stack.
func (c *Container) Contents() []*item.Stack {
	result := make([]*item.Stack, len(c.slots))
	for i, s := range c.slots {
		if s != nil {
			result[i] = s.Stack()
		}
	}
	return result
}

// Close detaches the window from its slots. Pending changes are dropped.
func (c *Container) Close() {
	if c.closed {
		return
	}
	for _, s := range c.slots {
		if s != nil {
			s.RemoveTracker(c.tracker)
		}
	}
	c.closed = true
	c.dirty = nil
	clear(c.isDirty)
	c.viewers = nil
	c.Logger.Printf("container: closed window %d (%s)", c.windowID, c.title)
}
