package helpers

import (
	"io"
	"log"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mclib/inventory/pkg/inventory/vanilla"
)

var discard = log.New(io.Discard, "", 0)

func TestRegisterFlags(t *testing.T) {
	var f Flags
	cmd := &cobra.Command{Use: "test"}
	RegisterFlags(cmd, &f)

	require.NoError(t, cmd.PersistentFlags().Parse([]string{"-w", vanilla.Hopper, "--verbose", "--max-log-lines", "10"}))
	assert.Equal(t, vanilla.PluginID, f.Plugin)
	assert.Equal(t, vanilla.Hopper, f.Window)
	assert.True(t, f.Verbose)
	assert.Equal(t, 10, f.MaxLogLines)
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(Flags{Plugin: vanilla.PluginID, Window: vanilla.Hopper, Verbose: true}, discard)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, int32(WindowID), s.Window.WindowID())
	assert.Equal(t, vanilla.MenuHopper, s.Window.MenuType())
	assert.Equal(t, 5, s.Window.OpenedSlotCount())
	assert.True(t, s.Window.Verbose)
	assert.Same(t, discard, s.Window.Logger)
}

func TestNewSessionPlayerWindow(t *testing.T) {
	s, err := NewSession(Flags{Plugin: vanilla.PluginID, Window: vanilla.Player}, discard)
	require.NoError(t, err)
	defer s.Close()

	assert.Same(t, s.Player, s.Opened)
	assert.Equal(t, int32(0), s.Window.WindowID())
	assert.Equal(t, vanilla.TotalSlots, s.Window.SlotCount())
}

func TestNewSessionUnknownArchetype(t *testing.T) {
	_, err := NewSession(Flags{Plugin: "plugin", Window: "bag"}, discard)
	assert.EqualError(t, err, "unknown archetype plugin:bag")
}
