// Package app owns application state: the commit list, the viewport
// over it, the current mode, status line, and the reload lifecycle
// that cancels an in-flight ingestion before starting its successor.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sevenam/glance/internal/clip"
	"github.com/sevenam/glance/internal/gitlog"
	"github.com/sevenam/glance/internal/viewport"
)

// defaultOffset is the scroll-sticky margin handed to the viewport; see
// viewport.Position for how many rows it keeps visible on each side of
// the cursor.
const defaultOffset = 5

// ModeKind tags the variant of a Mode.
type ModeKind int

const (
	Normal ModeKind = iota
	Command
)

// Mode is Normal, or Command with an optional prefilled command line.
type Mode struct {
	Kind    ModeKind
	Prefill string
}

// App owns the list, the viewport, the mode/status, and the single
// in-flight ingestion.
type App struct {
	list     List
	viewport viewport.Position

	mode       Mode
	status     string
	shouldQuit bool

	repositoryPath string
	revisionRange  []string

	pendingExec   []string
	pendingSearch bool
	helpVisible   bool

	// mu guards everything an ingestion producer and the main loop
	// might touch from different goroutines: the event channel, its
	// cancellation, and the generation counter. Process, movement, and
	// command dispatch all run on the main loop's single goroutine and
	// need no locking of their own.
	mu         sync.Mutex
	events     <-chan gitlog.Event
	cancel     context.CancelFunc
	generation int
}

// New constructs an App for repositoryPath with the given initial
// revision range. The viewport starts at height 1; callers must call
// SetHeight once the terminal size is known.
func New(repositoryPath string, revisionRange []string) *App {
	a := &App{
		repositoryPath: repositoryPath,
		revisionRange:  revisionRange,
		status:         "",
	}
	a.viewport.SetHeight(1)
	a.viewport.Reset(defaultOffset, 0)
	return a
}

// SetHeight resizes the viewport to the current terminal rows
// available for the list.
func (a *App) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	a.viewport.SetHeight(h)
}

// Mode returns the current mode.
func (a *App) Mode() Mode { return a.mode }

// SetMode replaces the current mode outright (used to return to
// Normal).
func (a *App) SetMode(m Mode) { a.mode = m }

// Status returns the current status line.
func (a *App) Status() string { return a.status }

// ShouldQuit reports whether the quit command has fired.
func (a *App) ShouldQuit() bool { return a.shouldQuit }

// RevisionRange returns the current revision specifier list.
func (a *App) RevisionRange() []string { return a.revisionRange }

// RepositoryPath returns the canonicalized repository directory
// ingestion and exec commands run in.
func (a *App) RepositoryPath() string { return a.repositoryPath }

// List exposes the entry list for rendering.
func (a *App) List() *List { return &a.list }

// ViewportView returns the currently visible window.
func (a *App) ViewportView() viewport.View { return a.viewport.GetView() }

// --- command.Context implementation ---

// CurrentHash returns the hash under the cursor.
func (a *App) CurrentHash() (string, bool) {
	i := a.viewport.Position()
	if i < 0 || i >= a.list.Len() {
		return "", false
	}
	h := a.list.At(i).Hash
	return h, h != ""
}

// SelectedHash returns the first selected entry's hash.
func (a *App) SelectedHash() (string, bool) {
	idx, ok := a.list.SelectedIndex()
	if !ok {
		return "", false
	}
	h := a.list.At(idx).Hash
	return h, h != ""
}

// SetStatus overwrites the status line.
func (a *App) SetStatus(s string) { a.status = s }

// Quit sets the should-quit flag observed by the main loop.
func (a *App) Quit() { a.shouldQuit = true }

// Up moves the cursor up by n rows.
func (a *App) Up(n int) { a.viewport.Prev(n) }

// Down moves the cursor down by n rows.
func (a *App) Down(n int) { a.viewport.Next(n) }

// Top jumps to the first entry.
func (a *App) Top() { a.viewport.Start() }

// Bottom jumps to the last entry.
func (a *App) Bottom() { a.viewport.End() }

// Center recenters the cursor in the viewport.
func (a *App) Center() { a.viewport.Center() }

// ToggleSelect toggles selection on the entry under the cursor.
func (a *App) ToggleSelect() { a.list.ToggleSelect(a.viewport.Position()) }

// Yank copies text to the clipboard.
func (a *App) Yank(text string) error { return clip.Write(text) }

// EnterCommandMode switches to Command mode with a prefilled line.
func (a *App) EnterCommandMode(prefill string) {
	a.mode = Mode{Kind: Command, Prefill: prefill}
}

// RequestExec records argv for the main loop to run via tea.ExecProcess
// once this Update cycle returns; TakePendingExec drains it.
func (a *App) RequestExec(argv []string) { a.pendingExec = argv }

// TakePendingExec returns and clears a pending exec request, if any.
func (a *App) TakePendingExec() ([]string, bool) {
	argv := a.pendingExec
	a.pendingExec = nil
	return argv, argv != nil
}

// RequestSearch records that the fuzzy-finder overlay should open.
func (a *App) RequestSearch() { a.pendingSearch = true }

// TakePendingSearch returns and clears a pending search request.
func (a *App) TakePendingSearch() bool {
	v := a.pendingSearch
	a.pendingSearch = false
	return v
}

// ToggleHelp flips the keybinding cheat-sheet overlay.
func (a *App) ToggleHelp() { a.helpVisible = !a.helpVisible }

// HelpVisible reports whether the cheat-sheet overlay should render.
func (a *App) HelpVisible() bool { return a.helpVisible }

// EnterReload pre-fills Command mode with "reload <current revs>".
func (a *App) EnterReload() {
	a.EnterCommandMode("reload " + strings.Join(a.revisionRange, " "))
}

// NodeDown moves the cursor to the first following entry whose
// reached_by is non-empty and differs from the current row's.
func (a *App) NodeDown() {
	cur := a.viewport.Position()
	var curReached string
	if cur < a.list.Len() {
		curReached = a.list.At(cur).ReachedBy
	}
	for i := cur + 1; i < a.list.Len(); i++ {
		rb := a.list.At(i).ReachedBy
		if rb != "" && rb != curReached {
			a.viewport.Select(i)
			return
		}
	}
}

// NodeUp moves the cursor to the row just after the start of the
// previous run of equal, non-empty reached_by values — i.e. to the
// second row of the previous distinct revision-specifier group.
func (a *App) NodeUp() {
	cur := a.viewport.Position()
	var curReached string
	if cur < a.list.Len() {
		curReached = a.list.At(cur).ReachedBy
	}

	i := cur - 1
	for i >= 0 && (a.list.At(i).ReachedBy == "" || a.list.At(i).ReachedBy == curReached) {
		i--
	}
	if i < 0 {
		return
	}

	prevReached := a.list.At(i).ReachedBy
	runStart := i
	for runStart-1 >= 0 && a.list.At(runStart-1).ReachedBy == prevReached {
		runStart--
	}
	a.viewport.Select(runStart + 1)
}

// Goto seeks the viewport to the first entry whose hash starts with
// prefix. It is a no-op if no such entry exists.
func (a *App) Goto(prefix string) {
	if prefix == "" {
		return
	}
	for i := 0; i < a.list.Len(); i++ {
		if strings.HasPrefix(a.list.At(i).Hash, prefix) {
			a.viewport.Select(i)
			return
		}
	}
}

// Reload cancels any in-flight ingestion, resets the list and
// viewport, and starts a new one. If revs is non-empty it replaces the
// revision range.
func (a *App) Reload(revs []string) {
	if len(revs) > 0 {
		a.revisionRange = revs
	}
	anchor, _ := a.CurrentHash()
	a.list.Reset()
	a.viewport.Reset(defaultOffset, 0)
	a.status = "Reloading data"

	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.generation++
	generation := a.generation
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.events = gitlog.Run(ctx, a.repositoryPath, a.revisionRange, anchor, generation)
	a.mu.Unlock()
}

// Generation returns the ingestion generation started by the most
// recent Reload, for callers that need to notice a reload happened.
func (a *App) Generation() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation
}

// Events returns the ingestion channel installed by the most recent
// Reload. Callers should capture it once, synchronously, right before
// arming a bridge to read it, rather than re-fetching it from inside
// the bridge's own goroutine: the latter would race a concurrent Reload
// and risk two goroutines reading the same replacement channel.
func (a *App) Events() <-chan gitlog.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.events
}

// Process consumes one LoaderEvent, updating the list, viewport, and
// status. Events from a superseded generation are discarded.
func (a *App) Process(ev gitlog.Event) {
	a.mu.Lock()
	current := a.generation
	a.mu.Unlock()
	if ev.Generation != current {
		return
	}

	switch ev.Kind {
	case gitlog.FirstData:
		a.list.Append(ev.Entries)
		a.viewport.LengthExtended(a.list.Len())
		if ev.AnchorHash != "" {
			a.Goto(ev.AnchorHash)
		}
		a.status = fmt.Sprintf("%d entries (%s)", a.list.Len(), ev.Elapsed.Round(time.Millisecond))
	case gitlog.Data:
		a.list.Append(ev.Entries)
		a.viewport.LengthExtended(a.list.Len())
	case gitlog.Done:
		a.status = fmt.Sprintf("done in %s", ev.Elapsed.Round(time.Millisecond))
	case gitlog.Error:
		if ev.Err == gitlog.NoData {
			a.status = "No log data!"
		} else {
			a.status = "Failed to read log data"
		}
	}
}
