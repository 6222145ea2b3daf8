// Package gitlog decodes git's decorated log output into typed
// records and drives the child-process ingestion that produces it.
package gitlog

import "strings"

// LogEntry is one decoded commit row.
type LogEntry struct {
	Graph        string
	Hash         string
	Subject      string
	Author       string
	DateRelative string
	Refs         *RefDecoration
	ReachedBy    string
}

// AuthorAndDate formats the author/date pair as "Author, DateRelative".
func (e LogEntry) AuthorAndDate() string {
	return e.Author + ", " + e.DateRelative
}

// RefDecoration is the optional ref-name attachment to a LogEntry.
type RefDecoration struct {
	Head          string
	LocalBranches []string
	RemoteBranches []string
	Tags          []string
}

const unitSeparator = "\x1f"

// DecodeLine splits one raw output line into a LogEntry. The graph
// prefix is everything before the first unit separator; missing
// trailing fields default to empty strings.
func DecodeLine(line string) LogEntry {
	line = rewriteColorReset(line)

	idx := strings.Index(line, unitSeparator)
	if idx < 0 {
		return LogEntry{Graph: line}
	}

	entry := LogEntry{Graph: line[:idx]}
	fields := strings.Split(line[idx+1:], unitSeparator)
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	entry.Hash = get(0)
	entry.Subject = get(1)
	entry.Author = get(2)
	entry.DateRelative = get(3)
	if refSpec := get(4); refSpec != "" {
		entry.Refs = ParseRefs(refSpec)
	}
	entry.ReachedBy = get(5)
	return entry
}

// rewriteColorReset placates downstream ANSI parsers that don't accept
// the bare reset form git emits.
func rewriteColorReset(s string) string {
	return strings.ReplaceAll(s, "\x1b[m", "\x1b[0m")
}

// ParseRefs classifies the comma-space-separated ref-spec string git
// emits for %D into a RefDecoration.
func ParseRefs(refSpec string) *RefDecoration {
	if refSpec == "" {
		return nil
	}
	refs := &RefDecoration{}
	for _, tok := range strings.Split(refSpec, ", ") {
		switch {
		case tok == "HEAD":
			refs.Head = "HEAD"
		case strings.HasPrefix(tok, "HEAD -> "):
			refs.Head = classifyRef(strings.TrimPrefix(tok, "HEAD -> "), refs)
		default:
			classifyRef(tok, refs)
		}
	}
	return refs
}

// classifyRef sorts one non-HEAD ref token into refs' matching slice and
// returns its short name. The checked-out branch token after "HEAD -> "
// is itself a refs/heads/ (or, in principle, refs/remotes/) ref, so it
// must still land in its slice in addition to becoming Head.
func classifyRef(tok string, refs *RefDecoration) string {
	switch {
	case strings.HasPrefix(tok, "tag: refs/tags/"):
		name := strings.TrimPrefix(tok, "tag: refs/tags/")
		refs.Tags = append(refs.Tags, name)
		return name
	case strings.HasPrefix(tok, "refs/heads/"):
		name := strings.TrimPrefix(tok, "refs/heads/")
		refs.LocalBranches = append(refs.LocalBranches, name)
		return name
	case strings.HasPrefix(tok, "refs/remotes/"):
		name := strings.TrimPrefix(tok, "refs/remotes/")
		refs.RemoteBranches = append(refs.RemoteBranches, name)
		return name
	default:
		return tok
	}
}
