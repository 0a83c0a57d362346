package container_test

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/go-mclib/inventory/pkg/container"
	containermock "github.com/go-mclib/inventory/pkg/container/mock"
	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/inventory/vanilla"
	"github.com/go-mclib/inventory/pkg/item"
)

type ContainerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockViewer *containermock.MockViewer

	registry *inventory.Registry
	stone    *item.Kind
	chest    *inventory.Grid
	player   *vanilla.PlayerInventory
	window   *container.Container
}

func (s *ContainerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockViewer = containermock.NewMockViewer(s.ctrl)

	items := item.NewRegistry()
	s.stone = items.MustRegister(item.Kind{ID: -1, Name: "test:stone"})
	s.registry = vanilla.NewRegistry()
	s.chest = inventory.BuildAs[*inventory.Grid](s.registry.MustGet(vanilla.PluginID, vanilla.Chest))
	s.player = vanilla.NewPlayer(s.registry)

	window, err := container.Open(1, s.chest, s.player)
	s.Require().NoError(err)
	window.Logger = log.New(io.Discard, "", 0)
	s.window = window
}

func (s *ContainerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ContainerTestSuite) TestLayout() {
	s.Equal(int32(1), s.window.WindowID())
	s.Equal(vanilla.MenuGeneric9x3, s.window.MenuType())
	s.Equal("Chest", s.window.Title())
	s.Equal(27+vanilla.PlayerInvSlots, s.window.SlotCount())
	s.Equal(27, s.window.OpenedSlotCount())

	s.Run("opened slots come first", func() {
		cell, _ := s.chest.SlotAt(8, 2)
		got, ok := s.window.ViewSlot(26)
		s.Require().True(ok)
		s.Same(cell, got)
	})

	s.Run("player main grid follows", func() {
		cell, _ := s.player.Main().SlotAt(0, 0)
		i, ok := s.window.ViewIndex(cell)
		s.Require().True(ok)
		s.Equal(27, i)
	})

	s.Run("hotbar is last", func() {
		first, _ := s.player.Hotbar().Slot(0)
		i, ok := s.window.ViewIndex(first)
		s.Require().True(ok)
		s.Equal(54, i)
	})

	s.Run("armor is not part of a container window", func() {
		head, _ := s.player.EquipmentSlot(item.EquipmentHead)
		_, ok := s.window.ViewIndex(head)
		s.False(ok)
	})

	s.Run("out of range", func() {
		_, ok := s.window.ViewSlot(63)
		s.False(ok)
		_, ok = s.window.ViewSlot(-1)
		s.False(ok)
	})
}

func (s *ContainerTestSuite) TestFlushBatchesRepeatedChanges() {
	s.window.AddViewer(s.mockViewer)
	s.window.AddViewer(s.mockViewer)

	s.mockViewer.EXPECT().
		SlotChanged(int32(1), 0, gomock.Any()).
		Do(func(_ int32, _ int, stack *item.Stack) {
			s.Equal(20, item.Quantity(stack))
		}).
		Times(1)

	s.chest.Offer(item.NewStack(s.stone, 10))
	s.chest.Offer(item.NewStack(s.stone, 10))
	s.Equal([]int{0}, s.window.Dirty())

	s.Equal(1, s.window.Flush())
	s.Equal(int32(1), s.window.StateID())

	s.Equal(0, s.window.Flush(), "nothing left to flush")
	s.Equal(int32(1), s.window.StateID())
}

func (s *ContainerTestSuite) TestFlushKeepsFirstChangeOrder() {
	s.window.AddViewer(s.mockViewer)

	gomock.InOrder(
		s.mockViewer.EXPECT().SlotChanged(int32(1), 9, gomock.Any()),
		s.mockViewer.EXPECT().SlotChanged(int32(1), 27+3, gomock.Any()),
		s.mockViewer.EXPECT().SlotChanged(int32(1), 0, gomock.Any()),
	)

	row, _ := s.chest.Row(1)
	row.OfferAt(0, item.NewStack(s.stone, 1))
	s.player.Main().OfferAtPos(3, 0, item.NewStack(s.stone, 1))
	s.chest.OfferAtPos(0, 0, item.NewStack(s.stone, 1))
	row.OfferAt(0, item.NewStack(s.stone, 1))

	s.Equal(3, s.window.Flush())
}

func (s *ContainerTestSuite) TestOnSlotUpdateIsImmediate() {
	var got []int
	s.window.OnSlotUpdate(func(index int, stack *item.Stack) {
		got = append(got, index)
	})

	s.chest.OfferAtPos(1, 0, item.NewStack(s.stone, 1))
	s.chest.PollAtPos(1, 0, nil)

	s.Equal([]int{1, 1}, got)
}

func (s *ContainerTestSuite) TestRemoveViewer() {
	s.window.AddViewer(s.mockViewer)
	s.window.RemoveViewer(s.mockViewer)
	s.Equal(0, s.window.Viewers())

	s.chest.Offer(item.NewStack(s.stone, 1))
	s.Equal(1, s.window.Flush())
}

func (s *ContainerTestSuite) TestClose() {
	s.window.AddViewer(s.mockViewer)
	var updates int
	s.window.OnSlotUpdate(func(int, *item.Stack) { updates++ })

	s.chest.Offer(item.NewStack(s.stone, 1))
	s.window.Close()
	s.True(s.window.Closed())

	cell, _ := s.chest.SlotAt(0, 0)
	s.Equal(0, cell.TrackerCount())

	s.chest.Offer(item.NewStack(s.stone, 1))
	s.Equal(1, updates)
	s.Equal(0, s.window.Flush())

	s.window.Close()
}

func (s *ContainerTestSuite) TestPlayerWindow() {
	window, err := container.Open(5, s.player, s.player)
	s.Require().NoError(err)
	window.Logger = log.New(io.Discard, "", 0)
	defer window.Close()

	s.Equal(int32(0), window.WindowID())
	s.Equal(vanilla.MenuPlayer, window.MenuType())
	s.Equal(vanilla.TotalSlots, window.SlotCount())
	s.Equal(0, window.OpenedSlotCount())
	s.Nil(window.Opened())

	_, ok := window.ViewSlot(vanilla.SlotCraftingResult)
	s.False(ok)

	offhand, ok := window.ViewSlot(vanilla.SlotOffhand)
	s.Require().True(ok)
	s.Same(s.player.Offhand(), offhand)

	s.player.Offer(item.NewStack(s.stone, 1))
	s.Equal([]int{vanilla.SlotHotbarStart}, window.Dirty())
}

func (s *ContainerTestSuite) TestOpenRejectsUnknownInventories() {
	custom := inventory.NewOrderedSlotsBuilder().
		Slots(2, s.registry.MustGet(vanilla.PluginID, vanilla.Slot)).
		BuildArchetype("plugin", "bag").
		Build()

	_, err := container.Open(2, custom, s.player)
	s.Error(err)
	s.Contains(err.Error(), "plugin:bag")

	window := container.New(2, vanilla.MenuGeneric9x1, "Bag", custom, s.player)
	window.Logger = log.New(io.Discard, "", 0)
	s.Equal(2+vanilla.PlayerInvSlots, window.SlotCount())
	window.Close()
}

func (s *ContainerTestSuite) TestContents() {
	s.chest.OfferAtPos(2, 0, item.NewStack(s.stone, 4))
	contents := s.window.Contents()
	s.Len(contents, s.window.SlotCount())
	s.Equal(4, item.Quantity(contents[2]))
	s.Nil(contents[0])
}

func TestContainerSuite(t *testing.T) {
	suite.Run(t, new(ContainerTestSuite))
}
