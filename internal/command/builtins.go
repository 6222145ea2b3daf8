package command

import (
	"fmt"
	"strings"
)

// Builtins returns the default command table: echo, quit, movement,
// selection, yank, mode, exec, search, and reload control. It is
// installed into a Registry with AddCommands.
func Builtins() map[string]Handler {
	return map[string]Handler{
		"echo": func(ctx Context, argv []string) error {
			ctx.SetStatus(strings.Join(argv, " "))
			return nil
		},
		"quit": func(ctx Context, argv []string) error {
			ctx.Quit()
			return nil
		},
		"up": func(ctx Context, argv []string) error {
			ctx.Up(1)
			return nil
		},
		"down": func(ctx Context, argv []string) error {
			ctx.Down(1)
			return nil
		},
		"pageup": func(ctx Context, argv []string) error {
			ctx.Up(10)
			return nil
		},
		"pagedown": func(ctx Context, argv []string) error {
			ctx.Down(10)
			return nil
		},
		"top": func(ctx Context, argv []string) error {
			ctx.Top()
			return nil
		},
		"bottom": func(ctx Context, argv []string) error {
			ctx.Bottom()
			return nil
		},
		"nodeup": func(ctx Context, argv []string) error {
			ctx.NodeUp()
			return nil
		},
		"nodedown": func(ctx Context, argv []string) error {
			ctx.NodeDown()
			return nil
		},
		"center": func(ctx Context, argv []string) error {
			ctx.Center()
			return nil
		},
		"select": func(ctx Context, argv []string) error {
			ctx.ToggleSelect()
			return nil
		},
		"yank": func(ctx Context, argv []string) error {
			if len(argv) != 1 {
				return fmt.Errorf("Expected 1 argument, got %d", len(argv))
			}
			if err := ctx.Yank(argv[0]); err != nil {
				return err
			}
			ctx.SetStatus(fmt.Sprintf("yanked: %s", argv[0]))
			return nil
		},
		"mode": func(ctx Context, argv []string) error {
			if len(argv) == 0 || argv[0] != "command" {
				return fmt.Errorf("usage: mode command [prefill...]")
			}
			ctx.EnterCommandMode(strings.Join(argv[1:], " "))
			return nil
		},
		"status": func(ctx Context, argv []string) error {
			ctx.SetStatus(strings.Join(argv, " "))
			return nil
		},
		"exec": func(ctx Context, argv []string) error {
			if len(argv) == 0 {
				return fmt.Errorf("usage: exec <argv...>")
			}
			ctx.RequestExec(argv)
			return nil
		},
		"search": func(ctx Context, argv []string) error {
			ctx.RequestSearch()
			return nil
		},
		"reload": func(ctx Context, argv []string) error {
			ctx.Reload(argv)
			return nil
		},
		"enter_reload": func(ctx Context, argv []string) error {
			ctx.EnterReload()
			return nil
		},
		// diff names the default "d" binding's behavior so it can be
		// rebound or invoked directly from the command prompt.
		"diff": func(ctx Context, argv []string) error {
			expanded, err := Expand([]string{"git", "diff", "%_1", "%0"}, ctx)
			if err != nil {
				return err
			}
			ctx.RequestExec(expanded)
			return nil
		},
		"help": func(ctx Context, argv []string) error {
			ctx.ToggleHelp()
			return nil
		},
	}
}
