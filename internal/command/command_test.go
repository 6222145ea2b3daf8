package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCtx struct {
	currentHash, selectedHash   string
	hasCurrent, hasSelected     bool
	status                      string
	quit                        bool
	ups, downs                  int
	toggled                     bool
	yanked                      string
	yankErr                     error
	commandPrefill              string
	enteredCommand              bool
	execArgv                    []string
	searchRequested             bool
	reloadRevs                  []string
	reloadRequested             bool
	enterReloadRequested        bool
	nodeUps, nodeDowns, centers int
	helpToggled                 bool
}

func (f *fakeCtx) CurrentHash() (string, bool)  { return f.currentHash, f.hasCurrent }
func (f *fakeCtx) SelectedHash() (string, bool) { return f.selectedHash, f.hasSelected }
func (f *fakeCtx) SetStatus(s string)           { f.status = s }
func (f *fakeCtx) Quit()                        { f.quit = true }
func (f *fakeCtx) Up(n int)                     { f.ups += n }
func (f *fakeCtx) Down(n int)                   { f.downs += n }
func (f *fakeCtx) Top()                         {}
func (f *fakeCtx) Bottom()                      {}
func (f *fakeCtx) NodeUp()                      { f.nodeUps++ }
func (f *fakeCtx) NodeDown()                    { f.nodeDowns++ }
func (f *fakeCtx) Center()                      { f.centers++ }
func (f *fakeCtx) ToggleSelect()                { f.toggled = true }
func (f *fakeCtx) Yank(text string) error {
	f.yanked = text
	return f.yankErr
}
func (f *fakeCtx) EnterCommandMode(prefill string) {
	f.commandPrefill = prefill
	f.enteredCommand = true
}
func (f *fakeCtx) RequestExec(argv []string) { f.execArgv = argv }
func (f *fakeCtx) RequestSearch()            { f.searchRequested = true }
func (f *fakeCtx) Reload(revs []string) {
	f.reloadRevs = revs
	f.reloadRequested = true
}
func (f *fakeCtx) EnterReload() { f.enterReloadRequested = true }
func (f *fakeCtx) ToggleHelp()  { f.helpToggled = true }

func newRegistry() *Registry {
	return NewRegistry().AddCommands(Builtins())
}

func TestExecuteUnknownCommand(t *testing.T) {
	r := newRegistry()
	err := r.Execute(&fakeCtx{}, "nonsense", nil)
	require.EqualError(t, err, "Command not found: nonsense")
}

func TestYankRequiresExactlyOneArg(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{}
	err := r.Execute(ctx, "yank", nil)
	require.EqualError(t, err, "Expected 1 argument, got 0")
}

func TestYankSetsStatus(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{currentHash: "abc", hasCurrent: true}
	err := r.Execute(ctx, "yank", []string{"%0"})
	require.NoError(t, err)
	require.Equal(t, "abc", ctx.yanked)
	require.Equal(t, "yanked: abc", ctx.status)
}

func TestModeCommandPrefill(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{currentHash: "abc", hasCurrent: true}
	err := r.Execute(ctx, "mode", []string{"command", "reload", "HEAD"})
	require.NoError(t, err)
	require.True(t, ctx.enteredCommand)
	require.Equal(t, "reload HEAD", ctx.commandPrefill)
}

func TestExpandPlaceholderNoSha(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{}
	err := r.Execute(ctx, "exec", []string{"git", "show", "%0"})
	require.EqualError(t, err, "No sha")
}

func TestExpandPlaceholderNoSelectionDropsToken(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{currentHash: "def456", hasCurrent: true}
	err := r.Execute(ctx, "exec", []string{"git", "diff", "%_1", "%0"})
	require.NoError(t, err)
	require.Equal(t, []string{"git", "diff", "def456"}, ctx.execArgv)
}

func TestExpandPlaceholderWithSelection(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{
		currentHash: "def456", hasCurrent: true,
		selectedHash: "abc123", hasSelected: true,
	}
	err := r.Execute(ctx, "exec", []string{"git", "diff", "%_1", "%0"})
	require.NoError(t, err)
	require.Equal(t, []string{"git", "diff", "abc123", "def456"}, ctx.execArgv)
}

func TestExpandLiteralPercent(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{}
	err := r.Execute(ctx, "echo", []string{"100%%"})
	require.NoError(t, err)
	require.Equal(t, "100%", ctx.status)
}

func TestParseLineBangRewritesToExec(t *testing.T) {
	name, argv, err := ParseLine("!git status")
	require.NoError(t, err)
	require.Equal(t, "exec", name)
	require.Equal(t, []string{"git", "status"}, argv)
}

func TestParseLineQuoted(t *testing.T) {
	name, argv, err := ParseLine(`yank 'hello world'`)
	require.NoError(t, err)
	require.Equal(t, "yank", name)
	require.Equal(t, []string{"hello world"}, argv)
}

func TestDiffCommandMirrorsDBinding(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{
		currentHash: "def456", hasCurrent: true,
		selectedHash: "abc123", hasSelected: true,
	}
	err := r.Execute(ctx, "diff", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"git", "diff", "abc123", "def456"}, ctx.execArgv)
}

func TestHelpCommandTogglesOverlay(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{}
	require.NoError(t, r.Execute(ctx, "help", nil))
	require.True(t, ctx.helpToggled)
}

func TestPageMovesByTen(t *testing.T) {
	r := newRegistry()
	ctx := &fakeCtx{}
	require.NoError(t, r.Execute(ctx, "pageup", nil))
	require.Equal(t, 10, ctx.ups)
	require.NoError(t, r.Execute(ctx, "pagedown", nil))
	require.Equal(t, 10, ctx.downs)
}
