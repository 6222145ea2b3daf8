package gitlog

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, commits int) string {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		require.NoError(t, cmd.Run(), "git %v", args)
	}

	run("init", "-q", "-b", "main")
	for i := 0; i < commits; i++ {
		name := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(name, []byte{byte('a' + i)}, 0o644))
		run("add", "-A")
		run("commit", "-q", "-m", "commit")
	}
	return dir
}

func drain(t *testing.T, ch <-chan Event, timeout time.Duration) []Event {
	t.Helper()
	var events []Event
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-deadline:
			t.Fatal("timed out waiting for ingestion events")
		}
	}
}

func TestRunEmitsFirstDataThenDone(t *testing.T) {
	dir := initRepo(t, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := drain(t, Run(ctx, dir, nil, "", 1), 5*time.Second)
	require.NotEmpty(t, events)
	require.Equal(t, FirstData, events[0].Kind)
	require.Len(t, events[0].Entries, 3)
	require.Equal(t, Done, events[len(events)-1].Kind)
}

func TestRunNoDataOnEmptyRepo(t *testing.T) {
	dir := initRepo(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := drain(t, Run(ctx, dir, nil, "", 1), 5*time.Second)
	require.Len(t, events, 1)
	require.Equal(t, Error, events[0].Kind)
	require.Equal(t, NoData, events[0].Err)
}

func TestRunClosesChannelOnCancelWithoutConsumer(t *testing.T) {
	dir := initRepo(t, 200)

	ctx, cancel := context.WithCancel(context.Background())
	events := Run(ctx, dir, nil, "", 1)

	// Read only the first event, then cancel and stop consuming
	// entirely, mirroring a reload superseding this run before it
	// finishes: the producer must not block forever on the next send.
	<-events
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			// Drain until close; any further events are fine, the
			// channel must still close promptly once canceled.
			for range events {
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ingestion goroutine did not unblock after cancel")
	}
}

func TestRunCarriesAnchorAndGeneration(t *testing.T) {
	dir := initRepo(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := drain(t, Run(ctx, dir, nil, "deadbeef", 7), 5*time.Second)
	require.Equal(t, "deadbeef", events[0].AnchorHash)
	for _, ev := range events {
		require.Equal(t, 7, ev.Generation)
	}
}
