// Package command implements the named-command registry, the
// shell-style argv expander with placeholder substitution, and the
// built-in commands bound to default keys and typed at the ":" prompt.
package command

import (
	"fmt"
	"strings"

	"github.com/sevenam/glance/internal/shellquote"
)

// Context is everything a command handler may mutate or query. It is
// implemented by the application model so this package never imports
// it, avoiding a dependency cycle.
type Context interface {
	// CurrentHash returns the hash under the cursor, or ok=false if the
	// cursor sits on a graph-only row with no commit.
	CurrentHash() (hash string, ok bool)
	// SelectedHash returns the first selected entry's hash, if any.
	SelectedHash() (hash string, ok bool)

	SetStatus(string)
	Quit()

	Up(n int)
	Down(n int)
	Top()
	Bottom()
	NodeUp()
	NodeDown()
	Center()
	ToggleSelect()

	Yank(text string) error

	EnterCommandMode(prefill string)
	RequestExec(argv []string)
	RequestSearch()
	Reload(revs []string)
	EnterReload()
	ToggleHelp()
}

// Handler is the signature every built-in and user-defined command
// implements.
type Handler func(ctx Context, argv []string) error

// Registry maps command names to handlers.
type Registry struct {
	commands map[string]Handler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Handler)}
}

// AddCommand installs a single handler, silently overwriting any
// existing binding for name.
func (r *Registry) AddCommand(name string, h Handler) *Registry {
	r.commands[name] = h
	return r
}

// AddCommands bulk-installs handlers.
func (r *Registry) AddCommands(cmds map[string]Handler) *Registry {
	for name, h := range cmds {
		r.commands[name] = h
	}
	return r
}

// Execute expands argv's placeholders against ctx and dispatches to
// the named handler. An unknown name, an expansion failure, or a
// handler failure all surface as a returned error rather than a panic;
// the caller is expected to write it into the status line.
func (r *Registry) Execute(ctx Context, name string, argv []string) error {
	h, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("Command not found: %s", name)
	}
	expanded, err := Expand(argv, ctx)
	if err != nil {
		return err
	}
	return h(ctx, expanded)
}

// ParseLine tokenizes a raw command line (as typed at the ":" prompt,
// already stripped of its leading ":") using POSIX shell quoting, and
// rewrites a leading "!" into "exec <rest>". It returns the command
// name and its unexpanded argv.
func ParseLine(line string) (name string, argv []string, err error) {
	if strings.HasPrefix(line, "!") {
		line = "exec " + strings.TrimPrefix(line, "!")
	}
	tokens, err := shellquote.Split(line)
	if err != nil {
		return "", nil, err
	}
	if len(tokens) == 0 {
		return "", nil, nil
	}
	return tokens[0], tokens[1:], nil
}

// Expand substitutes %0, %1, %_1, and %% inside every token of argv.
// %0 expands to the cursor's hash (error "No sha" if absent). %1
// expands to the first selection's hash (error "No selection" if
// absent). %_1 is the same value but, if absent, drops its entire
// token rather than erroring. %% is a literal percent sign.
func Expand(argv []string, ctx Context) ([]string, error) {
	out := make([]string, 0, len(argv))
	for _, tok := range argv {
		expanded, drop, err := expandToken(tok, ctx)
		if err != nil {
			return nil, err
		}
		if drop {
			continue
		}
		out = append(out, expanded)
	}
	return out, nil
}

func expandToken(tok string, ctx Context) (expanded string, drop bool, err error) {
	var b strings.Builder
	runes := []rune(tok)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			b.WriteRune(runes[i])
			continue
		}
		switch {
		case hasAt(runes, i, "%_1"):
			hash, ok := ctx.SelectedHash()
			if !ok {
				return "", true, nil
			}
			b.WriteString(hash)
			i += 2
		case hasAt(runes, i, "%0"):
			hash, ok := ctx.CurrentHash()
			if !ok {
				return "", false, fmt.Errorf("No sha")
			}
			b.WriteString(hash)
			i++
		case hasAt(runes, i, "%1"):
			hash, ok := ctx.SelectedHash()
			if !ok {
				return "", false, fmt.Errorf("No selection")
			}
			b.WriteString(hash)
			i++
		case hasAt(runes, i, "%%"):
			b.WriteRune('%')
			i++
		default:
			b.WriteRune('%')
		}
	}
	return b.String(), false, nil
}

func hasAt(runes []rune, i int, lit string) bool {
	litRunes := []rune(lit)
	if i+len(litRunes) > len(runes) {
		return false
	}
	for j, r := range litRunes {
		if runes[i+j] != r {
			return false
		}
	}
	return true
}
