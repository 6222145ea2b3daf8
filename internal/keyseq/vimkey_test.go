package keyseq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	require.Equal(t, []string{"a"}, Tokens("a"))
	require.Equal(t, []string{"a", "b", "c"}, Tokens("abc"))
	require.Equal(t, []string{"g", "g"}, Tokens("gg"))
	require.Equal(t, []string{"G", "G"}, Tokens("GG"))
	require.Equal(t, []string{"f1"}, Tokens("<f1>"))
	require.Equal(t, []string{"f1"}, Tokens("<f11>"))
	require.Equal(t, []string{"ctrl+c"}, Tokens("<c-c>"))
	require.Equal(t, []string{" "}, Tokens("<space>"))
}

func TestParserSimple(t *testing.T) {
	p := NewParser[int]().AddBinding("0", 0).AddBinding("1", 1)

	require.Equal(t, ParsedAction[int]{Kind: Only, Action: 0}, p.Handle("0"))
	require.Equal(t, ParsedAction[int]{Kind: Only, Action: 1}, p.Handle("1"))
	require.Equal(t, ParsedAction[int]{Kind: None}, p.Handle("2"))
	require.Equal(t, ParsedAction[int]{Kind: Only, Action: 0}, p.Handle("0"))
}

func TestParserAdvanceState(t *testing.T) {
	p := NewParser[int]().AddBinding("11", 11).AddBinding("22", 22)

	require.Equal(t, ParsedAction[int]{Kind: Partial}, p.Handle("1"))
	require.Equal(t, ParsedAction[int]{Kind: Partial}, p.Handle("2"))
	require.Equal(t, ParsedAction[int]{Kind: Only, Action: 22}, p.Handle("2"))
}

func TestParserClash(t *testing.T) {
	p := NewParser[int]().AddBinding("0", 0).AddBinding("1", 1).AddBinding("10", 10)

	require.Equal(t, ParsedAction[int]{Kind: Ambiguous, Action: 1}, p.Handle("1"))
	require.Equal(t, ParsedAction[int]{Kind: Only, Action: 10}, p.Handle("0"))
}

// TestAmbiguousThenComplete checks that for any two bindings A and AB,
// feeding A returns Ambiguous(action_A) and the next key B returns
// Only(action_AB).
func TestAmbiguousThenComplete(t *testing.T) {
	p := NewParser[string]().AddBinding("g", "top-ish").AddBinding("gg", "top")

	require.Equal(t, ParsedAction[string]{Kind: Ambiguous, Action: "top-ish"}, p.Handle("g"))
	require.Equal(t, ParsedAction[string]{Kind: Only, Action: "top"}, p.Handle("g"))
}

// TestUnprefixedKeyClearsBuffer checks that a key with no match against
// the pending buffer clears it and retries fresh rather than sticking.
func TestUnprefixedKeyClearsBuffer(t *testing.T) {
	p := NewParser[string]().AddBinding("gg", "top").AddBinding("j", "down")

	require.Equal(t, ParsedAction[string]{Kind: Partial}, p.Handle("g"))
	require.Equal(t, ParsedAction[string]{Kind: Only, Action: "down"}, p.Handle("j"))
	require.Equal(t, ParsedAction[string]{Kind: Partial}, p.Handle("g"))
	require.Equal(t, ParsedAction[string]{Kind: Only, Action: "top"}, p.Handle("g"))
}
