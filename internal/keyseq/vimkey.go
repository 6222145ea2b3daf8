// Package keyseq implements a vim-style key-sequence parser: a binding
// trie that resolves an incoming key against previously registered
// sequences as None, Partial, Ambiguous, or Only (a complete, final
// match), plus the small binding-string grammar used to describe those
// sequences (e.g. "gg", "<c-c>", "<f11>", "<space>").
package keyseq

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Tokens translates a vim-style binding string into the sequence of
// canonical key tokens (in bubbletea's own (tea.KeyMsg).String() form)
// that make it up. "gg" -> ["g","g"]; "<c-c>" -> ["ctrl+c"];
// "<f11>" -> ["f1"] (one-digit greedy, matching the historical vim_key
// grammar); "<space>" -> [" "].
func Tokens(binding string) []string {
	var tokens []string
	runes := []rune(binding)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '<' {
			end := strings.IndexRune(string(runes[i+1:]), '>')
			if end < 0 {
				// No closing bracket: treat '<' as a literal key.
				tokens = append(tokens, "<")
				continue
			}
			group := string(runes[i+1 : i+1+end])
			tokens = append(tokens, parseGroup(group))
			i += end + 1
			continue
		}
		tokens = append(tokens, string(runes[i]))
	}
	return tokens
}

func parseGroup(group string) string {
	lower := strings.ToLower(group)
	switch {
	case lower == "space":
		return " "
	case strings.HasPrefix(lower, "c-"):
		return "ctrl+" + lower[2:]
	case strings.HasPrefix(lower, "a-"):
		return "alt+" + lower[2:]
	case strings.HasPrefix(lower, "f"):
		// Greedy one-digit parse: "<f11>" yields F1, matching the
		// original grammar's single-digit fx_key rule.
		digits := lower[1:]
		if len(digits) > 1 {
			digits = digits[:1]
		}
		if n, err := strconv.Atoi(digits); err == nil {
			return fmt.Sprintf("f%d", n)
		}
		return lower
	default:
		return lower
	}
}

// CanonicalKey converts an incoming bubbletea key event into the same
// token form produced by Tokens, so trie lookups compare like with like.
func CanonicalKey(msg tea.KeyMsg) string {
	return msg.String()
}

// ParsedAction is the result of feeding one key to a Parser.
type ParsedAction[T any] struct {
	Kind   ActionKind
	Action T
}

// ActionKind tags the variant of a ParsedAction.
type ActionKind int

const (
	// None: the key sequence does not match any binding.
	None ActionKind = iota
	// Partial: more keys are needed to disambiguate.
	Partial
	// Ambiguous: the current buffer resolves to Action, but longer
	// sequences sharing this prefix still exist.
	Ambiguous
	// Only: the current buffer resolves uniquely to Action.
	Only
)

type node[T any] struct {
	action   *T
	children map[string]*node[T]
}

func newNode[T any]() *node[T] {
	return &node[T]{}
}

// Parser is a trie keyed by canonical key tokens; each path may carry a
// terminal action. Handle maintains a pending buffer across calls.
type Parser[T any] struct {
	root    *node[T]
	pending []string
}

// NewParser returns an empty Parser.
func NewParser[T any]() *Parser[T] {
	return &Parser[T]{root: newNode[T]()}
}

// AddBinding installs sequence -> action, creating intermediate nodes as
// needed. It returns the parser so bindings can be chained fluently.
func (p *Parser[T]) AddBinding(binding string, action T) *Parser[T] {
	cur := p.root
	for _, tok := range Tokens(binding) {
		if cur.children == nil {
			cur.children = make(map[string]*node[T])
		}
		next, ok := cur.children[tok]
		if !ok {
			next = newNode[T]()
			cur.children[tok] = next
		}
		cur = next
	}
	act := action
	cur.action = &act
	return p
}

// Handle feeds one key event into the parser and returns the resolved
// action, if any: Only for a complete binding with no longer
// continuation (the buffer is cleared), Ambiguous for a complete binding
// that longer bindings extend, Partial for a proper prefix. On a miss
// the buffer is cleared and, if it held earlier keys, the key is retried
// once on its own; otherwise the result is None.
func (p *Parser[T]) Handle(key string) ParsedAction[T] {
	hadPending := len(p.pending) > 0
	p.pending = append(p.pending, key)

	cur := p.root
	for _, tok := range p.pending {
		if cur.children == nil {
			cur = nil
			break
		}
		next, ok := cur.children[tok]
		if !ok {
			cur = nil
			break
		}
		cur = next
	}

	if cur != nil {
		if cur.action != nil {
			if cur.children != nil {
				return ParsedAction[T]{Kind: Ambiguous, Action: *cur.action}
			}
			p.pending = nil
			return ParsedAction[T]{Kind: Only, Action: *cur.action}
		}
		return ParsedAction[T]{Kind: Partial}
	}

	p.pending = nil
	if hadPending {
		// Retry once with just the current key against a clear buffer.
		return p.Handle(key)
	}
	return ParsedAction[T]{Kind: None}
}
