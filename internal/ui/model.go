// Package ui wires the application state, command dispatcher, and
// key-sequence parser into a bubbletea program: the main loop that
// interleaves ingestion events and terminal input and renders frames.
package ui

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/sevenam/glance/internal/app"
	"github.com/sevenam/glance/internal/command"
	"github.com/sevenam/glance/internal/finder"
	"github.com/sevenam/glance/internal/gitlog"
	"github.com/sevenam/glance/internal/keyseq"
	"github.com/sevenam/glance/internal/shellquote"
)

// logEventMsg carries one LoaderEvent (or a closed-channel signal) from
// the ingestion bridge into Update.
type logEventMsg struct {
	event gitlog.Event
	ok    bool
}

// execFinishedMsg reports that a suspended external command returned
// control to the alternate screen.
type execFinishedMsg struct{ err error }

// Model is the bubbletea program driving glance.
type Model struct {
	app      *app.App
	registry *command.Registry
	keys     *keyseq.Parser[string]

	keymapForHelp map[string]string

	input textarea.Model

	finderActive bool
	finderModel  finder.Model

	width, height int
}

// New builds a Model over app, with registry and keymap installed.
func New(a *app.App, registry *command.Registry, keymap map[string]string) Model {
	parser := keyseq.NewParser[string]()
	for binding, line := range keymap {
		parser.AddBinding(binding, line)
	}

	ta := textarea.New()
	ta.Prompt = ":"
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	ta.Blur()

	return Model{
		app:           a,
		registry:      registry,
		keys:          parser,
		keymapForHelp: keymap,
		input:         ta,
	}
}

// Init kicks the first reload and arms the ingestion bridge.
func (m Model) Init() tea.Cmd {
	m.app.Reload(m.app.RevisionRange())
	return tea.Batch(waitForEvent(m.app.Events()), textarea.Blink)
}

// waitForEvent bridges one ingestion channel into bubbletea messages.
// The channel must be captured synchronously (on the main loop, not
// from inside the returned closure) so a Reload racing a still-pending
// rearm can never leave two goroutines reading the same replacement
// channel.
func waitForEvent(ch <-chan gitlog.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return logEventMsg{event: ev, ok: ok}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.app.SetHeight(listHeight(msg.Height))
		m.input.SetWidth(msg.Width - len(m.input.Prompt))
		if m.finderActive {
			m.finderModel.SetSize(msg.Width, listHeight(msg.Height))
		}
		return m, nil

	case logEventMsg:
		if !msg.ok {
			// The current ingestion channel closed; a future Reload
			// re-arms the bridge onto its replacement.
			return m, nil
		}
		m.app.Process(msg.event)
		return m, waitForEvent(m.app.Events())

	case execFinishedMsg:
		if msg.err != nil {
			m.app.SetStatus(fmt.Sprintf("exec failed: %v", msg.err))
		}
		return m, nil

	case finder.AcceptedMsg:
		m.finderActive = false
		m.app.Goto(msg.Hash)
		return m, nil

	case finder.AbortedMsg:
		m.finderActive = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func listHeight(termHeight int) int {
	h := termHeight - 2 // status bar + command/prompt line
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finderActive {
		var cmd tea.Cmd
		m.finderModel, cmd = m.finderModel.Update(msg)
		return m, cmd
	}

	switch m.app.Mode().Kind {
	case app.Command:
		return m.handleCommandModeKey(msg)
	default:
		return m.handleNormalModeKey(msg)
	}
}

func (m Model) handleNormalModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result := m.keys.Handle(keyseq.CanonicalKey(msg))
	switch result.Kind {
	case keyseq.Only:
		return m.runLine(result.Action)
	case keyseq.None:
		m.app.SetStatus(fmt.Sprintf("Not handled: %s", msg.String()))
		return m, nil
	default: // Partial, Ambiguous: keep the buffer, await more keys
		return m, nil
	}
}

func (m Model) handleCommandModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "ctrl+m":
		line := m.input.Value()
		m.app.SetMode(app.Mode{Kind: app.Normal})
		m.input.Reset()
		m.input.Blur()
		return m.runLine(line)
	case "esc":
		m.app.SetMode(app.Mode{Kind: app.Normal})
		m.input.Reset()
		m.input.Blur()
		return m, nil
	case "backspace":
		if m.input.Value() == "" {
			m.app.SetMode(app.Mode{Kind: app.Normal})
			m.app.SetStatus("Command mode quit")
			m.input.Reset()
			m.input.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runLine executes a full command line (from a keybinding expansion or
// the command prompt), handling a resulting exec or search request.
func (m Model) runLine(line string) (tea.Model, tea.Cmd) {
	name, argv, err := command.ParseLine(line)
	if err != nil {
		m.app.SetStatus(err.Error())
		return m, nil
	}
	if name == "" {
		return m, nil
	}
	generationBefore := m.app.Generation()
	if err := m.registry.Execute(m.app, name, argv); err != nil {
		m.app.SetStatus(err.Error())
		return m, nil
	}
	if m.app.ShouldQuit() {
		return m, tea.Quit
	}

	if mode := m.app.Mode(); mode.Kind == app.Command {
		m.input.SetValue(mode.Prefill)
		m.input.Focus()
	}

	var cmds []tea.Cmd
	if m.app.Generation() != generationBefore {
		// The command reloaded, replacing the ingestion channel; rearm
		// the bridge onto it.
		cmds = append(cmds, waitForEvent(m.app.Events()))
	}

	if execArgv, ok := m.app.TakePendingExec(); ok {
		cmds = append(cmds, m.execCmd(execArgv))
	} else if m.app.TakePendingSearch() {
		m.openFinder()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) openFinder() {
	var items []finder.Item
	list := m.app.List()
	for i := 0; i < list.Len(); i++ {
		e := list.At(i)
		if e.Hash == "" {
			continue
		}
		items = append(items, finder.Item{Hash: e.Hash, Label: e.Subject})
	}
	m.finderModel = finder.New(items, m.width, listHeight(m.height))
	m.finderActive = true
}

// execCmd joins argv with shell quoting and runs it via the user's
// shell within the repository directory, suspending the alternate
// screen for the duration (tea.ExecProcess handles raw-mode exit and
// re-entry around the call).
func (m Model) execCmd(argv []string) tea.Cmd {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "bash"
	}
	joined := shellquote.Join(argv)
	c := exec.Command(shell, "-c", joined)
	c.Dir = m.app.RepositoryPath()
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return execFinishedMsg{err: err}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if m.finderActive {
		return m.finderModel.View()
	}
	if m.app.HelpVisible() {
		return helpStyle.Render(m.helpText())
	}

	var b strings.Builder
	list := m.app.List()
	view := m.app.ViewportView()

	for i := view.Start; i < view.End && i < list.Len(); i++ {
		b.WriteString(renderRow(list.At(i), i == view.Start+view.Pos))
		b.WriteByte('\n')
	}

	b.WriteString(statusBarStyle.Width(m.width).Render(m.app.Status()))
	b.WriteByte('\n')

	if m.app.Mode().Kind == app.Command {
		b.WriteString(commandPromptStyle.Render(m.input.View()))
	}

	return b.String()
}

func (m Model) helpText() string {
	bindings := make([]string, 0, len(m.keymapForHelp))
	for binding := range m.keymapForHelp {
		bindings = append(bindings, binding)
	}
	sort.Strings(bindings)

	var b strings.Builder
	b.WriteString("keybindings (? to close)\n\n")
	for _, binding := range bindings {
		fmt.Fprintf(&b, "%-10s %s\n", binding, m.keymapForHelp[binding])
	}
	return b.String()
}

// renderRow renders one list row. Plain rows keep git's own
// --color=always graph coloring untouched; a selected or cursor row is
// instead stripped of git's embedded SGR codes before our own style
// wraps it, since git's mid-string reset codes would otherwise cut the
// wrapping Background/Foreground short partway through the line.
func renderRow(e app.Entry, isCursor bool) string {
	if !e.Selected && !isCursor {
		return fmt.Sprintf("%s %s %s", e.Graph, e.Hash, e.Subject)
	}
	line := ansi.Strip(fmt.Sprintf("%s %s %s", e.Graph, e.Hash, e.Subject))
	if e.Selected {
		line = selectedRowStyle.Render(line)
	}
	if isCursor {
		return cursorRowStyle.Render(line)
	}
	return line
}
