package tui

import (
	"io"
	"log"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mclib/inventory/pkg/container"
	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/inventory/vanilla"
	"github.com/go-mclib/inventory/pkg/item"
)

func newViewer(t *testing.T, maxLogLines int) (*TUI, *inventory.Grid) {
	t.Helper()
	items := item.NewRegistry()
	items.MustRegister(item.Kind{ID: -1, Name: "test:stone"})

	r := vanilla.NewRegistry()
	chest := inventory.BuildAs[*inventory.Grid](r.MustGet(vanilla.PluginID, vanilla.Chest))
	window, err := container.Open(1, chest, vanilla.NewPlayer(r))
	require.NoError(t, err)
	window.Logger = log.New(io.Discard, "", 0)
	t.Cleanup(window.Close)

	return New(window, items, maxLogLines), chest
}

func TestExecOfferAndPoll(t *testing.T) {
	v, chest := newViewer(t, 0)

	assert.False(t, v.Exec("offer test:stone 70"))
	assert.Equal(t, 70, chest.TotalQuantity())
	assert.Contains(t, v.Logs(), "window 1 slot 0 -> test:stone x64")
	assert.Contains(t, v.Logs(), "window 1 slot 1 -> test:stone x6")

	assert.False(t, v.Exec("poll test:stone 65"))
	assert.Equal(t, 5, chest.TotalQuantity())
	assert.Contains(t, v.Logs(), "poll: test:stone x65")

	assert.False(t, v.Exec("clear"))
	assert.Equal(t, 0, chest.TotalQuantity())
	assert.Equal(t, int32(3), v.window.StateID())
}

func TestExecErrors(t *testing.T) {
	v, chest := newViewer(t, 0)

	tests := []struct {
		line string
		want string
	}{
		{"offer test:nothing 1", `Error: unknown item "test:nothing"`},
		{"offer test:stone many", `Error: invalid quantity "many"`},
		{"poll test:stone 0", `Error: invalid quantity "0"`},
		{"offer", "Error: expected <kind> [n]"},
		{"dance", `Error: unknown command "dance"`},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.False(t, v.Exec(tt.line))
			logs := v.Logs()
			require.NotEmpty(t, logs)
			assert.Equal(t, tt.want, logs[len(logs)-1])
		})
	}
	assert.Equal(t, 0, chest.TotalQuantity())
	assert.Equal(t, int32(0), v.window.StateID())
}

func TestExecDefaultsToOne(t *testing.T) {
	v, chest := newViewer(t, 0)
	v.Exec("offer test:stone")
	assert.Equal(t, 1, chest.TotalQuantity())
}

func TestMaxLogLines(t *testing.T) {
	v, _ := newViewer(t, 2)
	v.AddLog("one")
	v.AddLog("two")
	v.AddLog("three")
	assert.Equal(t, []string{"two", "three"}, v.Logs())
}

func TestUpdate(t *testing.T) {
	v, chest := newViewer(t, 0)
	assert.Equal(t, "Initializing...", v.View())

	v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.True(t, v.ready)

	v.Update(LogMsg("container: hello"))
	assert.Contains(t, v.Logs(), "container: hello")

	v.textInput.SetValue("offer test:stone 64")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, v.textInput.Value())
	assert.Contains(t, v.Logs(), "> offer test:stone 64")
	assert.Equal(t, 64, chest.TotalQuantity())
	assert.Contains(t, v.View(), "x64")

	v.textInput.SetValue("quit")
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, 0, v.window.Viewers())
}

func TestRenderWindow(t *testing.T) {
	v, chest := newViewer(t, 0)
	chest.OfferAtPos(8, 2, item.NewStack(v.items.MustLookup("test:stone"), 3))

	out := v.RenderWindow()
	assert.Contains(t, out, "x3")
	assert.Equal(t, 3+4, v.gridHeight())
}
