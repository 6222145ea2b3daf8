package finder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sahilm/fuzzy.Find returns no matches for an empty pattern; bubbles/list
// itself never calls the installed FilterFunc with an empty filter
// value (it short-circuits to showing every item unfiltered instead),
// so listFilter only ever needs to handle a non-empty term.
func TestListFilterEmptyQueryReturnsNoMatches(t *testing.T) {
	targets := []string{"add widget", "fix bug"}
	require.Empty(t, listFilter("", targets))
}

func TestListFilterOrdersBestMatchFirst(t *testing.T) {
	targets := []string{
		"something else entirely",
		"bug",
		"bump widget version",
	}
	// "bug" is an exact match of the second label (no unmatched
	// characters, maximal adjacency bonus) but only a scattered
	// subsequence of the third's (b..u..g spread across "bump widget"),
	// and doesn't occur in the first label at all.
	ranked := listFilter("bug", targets)
	require.NotEmpty(t, ranked)
	require.Equal(t, 1, ranked[0].Index)
}

func TestListFilterNoMatchesReturnsEmpty(t *testing.T) {
	targets := []string{"hello"}
	require.Empty(t, listFilter("zzzzz", targets))
}
