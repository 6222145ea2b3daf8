package ui

// DefaultKeymap returns the vim-style default bindings: a binding
// string (in the grammar internal/keyseq.Tokens parses) mapped to the
// command line it expands to.
func DefaultKeymap() map[string]string {
	return map[string]string{
		"q":       "quit",
		"<c-c>":   "quit",
		"k":       "up",
		"j":       "down",
		"<c-u>":   "pageup",
		"<c-d>":   "pagedown",
		"gg":      "top",
		"G":       "bottom",
		"K":       "nodeup",
		"J":       "nodedown",
		"zz":      "center",
		"<space>": "select",
		"L":       "exec git show --stat --patch %0",
		"yy":      "yank %0",
		"d":       "exec git diff %_1 %0",
		"D":       "exec git difftool --dir-diff %_1 %0",
		"/":       "search",
		":":       "mode command",
		"r":       "enter_reload",
		"?":       "help",
	}
}
