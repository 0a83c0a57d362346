package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-mclib/inventory/pkg/container"
	"github.com/go-mclib/inventory/pkg/inventory"
	"github.com/go-mclib/inventory/pkg/item"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Foreground(lipgloss.Color("252"))

	emptyCellStyle = cellStyle.
			Foreground(lipgloss.Color("238"))

	changedCellStyle = cellStyle.
				Foreground(lipgloss.Color("214"))
)

const (
	cellWidth   = 12
	playerWidth = 9
)

// TUI renders a container window and accepts commands that mutate it. All
// mutations happen in Update, so the window keeps a single writer.
type TUI struct {
	window      *container.Container
	items       *item.Registry
	maxLogLines int

	viewport  viewport.Model
	textInput textinput.Model
	logs      []string
	changed   map[int]bool
	ready     bool
	quitting  bool
	width     int
	height    int
}

var _ container.Viewer = (*TUI)(nil)

// New creates a viewer for window and registers it as the window's viewer.
func New(window *container.Container, items *item.Registry, maxLogLines int) *TUI {
	ti := textinput.New()
	ti.Placeholder = "offer <kind> <n> | poll <kind> <n> | clear | quit"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	t := &TUI{
		window:      window,
		items:       items,
		maxLogLines: maxLogLines,
		textInput:   ti,
		logs:        []string{},
		changed:     make(map[int]bool),
	}
	window.AddViewer(t)
	return t
}

// Init initializes the TUI
func (t *TUI) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles TUI updates
func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			t.quit()
			return t, tea.Quit

		case tea.KeyEnter:
			input := strings.TrimSpace(t.textInput.Value())
			t.textInput.SetValue("")
			if input == "" {
				return t, nil
			}
			t.AddLog("> " + input)
			if done := t.Exec(input); done {
				return t, tea.Quit
			}
			t.refresh()
			return t, nil
		}

	case tea.WindowSizeMsg:
		height := max(msg.Height-t.gridHeight()-4, 3)
		if !t.ready {
			t.viewport = viewport.New(msg.Width, height)
			t.viewport.SetContent(t.renderLogs())
			t.ready = true
		} else {
			t.viewport.Width = msg.Width
			t.viewport.Height = height
		}
		t.width = msg.Width
		t.height = msg.Height
		t.textInput.Width = msg.Width - 2

	case LogMsg:
		t.AddLog(string(msg))
		t.refresh()
		return t, nil
	}

	// update viewport
	if t.ready {
		t.viewport, cmd = t.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	t.textInput, cmd = t.textInput.Update(msg)
	cmds = append(cmds, cmd)

	return t, tea.Batch(cmds...)
}

// Exec runs one command line against the window and flushes the resulting
// changes. It reports whether the viewer should quit.
func (t *TUI) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	clear(t.changed)

	switch fields[0] {
	case "quit", "exit":
		t.quit()
		return true

	case "clear":
		t.target().Clear()

	case "offer", "poll":
		kind, n, err := t.parseStack(fields[1:])
		if err != nil {
			t.AddLog(fmt.Sprintf("Error: %v", err))
			return false
		}
		if fields[0] == "offer" {
			res := t.target().Offer(item.NewStack(kind, n))
			t.AddLog(fmt.Sprintf("offer: %s", res))
		} else {
			polled := t.target().PollN(n, item.OfKind(kind))
			t.AddLog(fmt.Sprintf("poll: %s", polled))
		}

	default:
		t.AddLog(fmt.Sprintf("Error: unknown command %q", fields[0]))
		return false
	}

	t.window.Flush()
	return false
}

// target is the inventory commands act on: the opened inventory, or the
// player's own for the player window.
func (t *TUI) target() inventory.Inventory {
	if opened := t.window.Opened(); opened != nil {
		return opened
	}
	return t.window.Player()
}

func (t *TUI) parseStack(args []string) (*item.Kind, int, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, 0, fmt.Errorf("expected <kind> [n]")
	}
	kind, ok := t.items.Lookup(args[0])
	if !ok {
		return nil, 0, fmt.Errorf("unknown item %q", args[0])
	}
	n := 1
	if len(args) == 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v <= 0 {
			return nil, 0, fmt.Errorf("invalid quantity %q", args[1])
		}
		n = v
	}
	return kind, n, nil
}

func (t *TUI) quit() {
	if t.quitting {
		return
	}
	t.quitting = true
	t.window.RemoveViewer(t)
}

// SlotChanged implements container.Viewer.
func (t *TUI) SlotChanged(windowID int32, index int, stack *item.Stack) {
	t.changed[index] = true
	t.AddLog(fmt.Sprintf("window %d slot %d -> %s", windowID, index, stack))
}

func (t *TUI) refresh() {
	if !t.ready {
		return
	}
	// do not scroll if not at bottom, to prevent flickering
	wasAtBottom := t.viewport.AtBottom()
	t.viewport.SetContent(t.renderLogs())
	if wasAtBottom {
		t.viewport.GotoBottom()
	}
}

// View renders the TUI
func (t *TUI) View() string {
	if !t.ready {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf("%s - window %d (state %d)", t.window.Title(), t.window.WindowID(), t.window.StateID()))
	helpText := helpStyle.Render("Enter: run • Ctrl+C/Esc: quit")

	return fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s",
		title,
		t.RenderWindow(),
		t.viewport.View(),
		inputStyle.Render("> "+t.textInput.View()),
		helpText,
	)
}

// RenderWindow draws the opened inventory above the player's slots, one
// cell per window index.
func (t *TUI) RenderWindow() string {
	contents := t.window.Contents()
	opened := t.window.OpenedSlotCount()

	var sections []string
	if opened > 0 {
		sections = append(sections, t.renderRows(contents[:opened], 0, t.openedWidth()))
	}
	sections = append(sections, t.renderRows(contents[opened:], opened, playerWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (t *TUI) renderRows(stacks []*item.Stack, offset, width int) string {
	var rows []string
	for start := 0; start < len(stacks); start += width {
		end := min(start+width, len(stacks))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, t.renderCell(offset+i, stacks[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (t *TUI) renderCell(index int, stack *item.Stack) string {
	if _, ok := t.window.ViewSlot(index); !ok {
		return emptyCellStyle.Render("")
	}
	if stack.IsEmpty() {
		return emptyCellStyle.Render("·")
	}
	name := strings.TrimPrefix(stack.Kind.Name, item.Namespace+":")
	label := fmt.Sprintf("%s x%d", abbreviate(name, cellWidth-5), stack.Quantity)
	if t.changed[index] {
		return changedCellStyle.Render(label)
	}
	return cellStyle.Render(label)
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}

// openedWidth is the row width of the opened inventory, taken from its grid
// shape when it has one.
func (t *TUI) openedWidth() int {
	if g, ok := t.window.Opened().(interface{ Width() int }); ok {
		return g.Width()
	}
	return playerWidth
}

func (t *TUI) gridHeight() int {
	opened := t.window.OpenedSlotCount()
	rows := (t.window.SlotCount() - opened + playerWidth - 1) / playerWidth
	if opened > 0 {
		w := t.openedWidth()
		rows += (opened + w - 1) / w
	}
	return rows
}

// AddLog adds a log message to the TUI
func (t *TUI) AddLog(msg string) {
	t.logs = append(t.logs, msg)

	// trim logs
	if t.maxLogLines > 0 && len(t.logs) > t.maxLogLines {
		t.logs = t.logs[len(t.logs)-t.maxLogLines:]
	}
}

// Logs returns the log lines currently kept.
func (t *TUI) Logs() []string {
	return append([]string(nil), t.logs...)
}

func (t *TUI) renderLogs() string {
	return strings.Join(t.logs, "\n")
}

// LogMsg is a message type for logging
type LogMsg string

// Writer is an io.Writer that sends output to the TUI
type Writer struct {
	program *tea.Program
}

// NewWriter creates a new TUI Writer
func NewWriter(program *tea.Program) *Writer {
	return &Writer{program: program}
}

// Write implements io.Writer
func (w *Writer) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if msg != "" {
		w.program.Send(LogMsg(msg))
	}
	return len(p), nil
}

// Start creates a viewer program for window, returning the program and a
// writer for logging into it.
func Start(window *container.Container, items *item.Registry, maxLogLines int) (*tea.Program, io.Writer) {
	t := New(window, items, maxLogLines)
	p := tea.NewProgram(t, tea.WithAltScreen())
	writer := NewWriter(p)
	return p, writer
}
