package helpers

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/go-mclib/inventory/pkg/container"
	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/inventory/vanilla"
	"github.com/go-mclib/inventory/pkg/item"
)

// WindowID is the id given to every window opened from the command line.
const WindowID = 1

// Flags holds common CLI flags for invctl commands.
type Flags struct {
	Plugin      string
	Window      string
	Verbose     bool
	MaxLogLines int
}

// RegisterFlags registers the standard flags as persistent flags of cmd.
func RegisterFlags(cmd *cobra.Command, f *Flags) {
	fs := cmd.PersistentFlags()
	fs.StringVarP(&f.Plugin, "plugin", "p", vanilla.PluginID, "plugin id of the archetypes to use")
	fs.StringVarP(&f.Window, "window", "w", vanilla.Chest, "archetype name of the opened inventory")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "verbose logging")
	fs.IntVar(&f.MaxLogLines, "max-log-lines", 1000, "log lines kept by the viewer (0 = unlimited)")
}

// Session is an opened window together with the registries it was built from.
type Session struct {
	Archetypes *inventory.Registry
	Items      *item.Registry
	Opened     inventory.Inventory
	Player     *vanilla.PlayerInventory
	Window     *container.Container
}

// NewSession builds the player inventory and the flagged archetype from the
// vanilla registry and opens a window over them. A nil logger keeps the
// window's default.
func NewSession(f Flags, logger *log.Logger) (*Session, error) {
	archetypes := vanilla.NewRegistry()
	a, ok := archetypes.Get(f.Plugin, f.Window)
	if !ok {
		return nil, fmt.Errorf("unknown archetype %s:%s", f.Plugin, f.Window)
	}

	player := vanilla.NewPlayer(archetypes)
	var opened inventory.Inventory = player
	if !a.Equal(player.Archetype()) {
		opened = a.Build()
	}

	window, err := container.Open(WindowID, opened, player)
	if err != nil {
		return nil, err
	}
	window.Verbose = f.Verbose
	if logger != nil {
		window.Logger = logger
	}

	return &Session{
		Archetypes: archetypes,
		Items:      item.NewRegistry(),
		Opened:     opened,
		Player:     player,
		Window:     window,
	}, nil
}

// Close closes the session's window.
func (s *Session) Close() {
	s.Window.Close()
}
