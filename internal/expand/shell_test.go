package expand

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptcmd-ai/promptcmd/internal/security"
)

func skipWithoutBash(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("inline shell tests require bash")
	}
}

func TestShellPermitted(t *testing.T) {
	cases := []struct {
		name    string
		snippet string
		tools   []string
		want    bool
	}{
		{"no grants", "git status", nil, false},
		{"unrelated tools", "git status", []string{"Read", "Write"}, false},
		{"bare bash grants all", "git status", []string{"Bash"}, true},
		{"wildcard", "anything at all", []string{"Bash(*)"}, true},
		{"prefix match", "git status --short", []string{"Bash(git status:*)"}, true},
		{"prefix mismatch", "git push --force", []string{"Bash(git status:*)"}, false},
		{"exact match", "ls", []string{"Bash(ls)"}, true},
		{"exact mismatch", "ls -la", []string{"Bash(ls)"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shellPermitted(tc.snippet, tc.tools))
		})
	}
}

func TestRunSnippet(t *testing.T) {
	skipWithoutBash(t)

	e := NewEngine(t.TempDir())
	out, err := e.runSnippet(context.Background(), security.LevelEnforce, "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunSnippetFailure(t *testing.T) {
	skipWithoutBash(t)

	e := NewEngine(t.TempDir())
	_, err := e.runSnippet(context.Background(), security.LevelEnforce, "echo oops >&2; false")

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "oops", execErr.Stderr)
}

func TestRunSnippetTimeout(t *testing.T) {
	skipWithoutBash(t)

	e := NewEngine(t.TempDir(), WithShellTimeout(100*time.Millisecond))
	start := time.Now()
	_, err := e.runSnippet(context.Background(), security.LevelEnforce, "sleep 5")

	var toErr *TimeoutError
	require.ErrorAs(t, err, &toErr)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunSnippetRejectsDangerous(t *testing.T) {
	e := NewEngine(t.TempDir())
	_, err := e.runSnippet(context.Background(), security.LevelEnforce, "rm -rf /")

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, execErr.Message, "dangerous command rejected")
}

func TestRunSnippetDangerousAllowedWhenOff(t *testing.T) {
	skipWithoutBash(t)

	// With validation off the snippet-level scan is skipped; this snippet
	// matches the nc -l pattern but is harmless.
	e := NewEngine(t.TempDir())
	out, err := e.runSnippet(context.Background(), security.LevelOff, "echo nc -l")
	require.NoError(t, err)
	assert.Equal(t, "nc -l", out)
}

func TestResolveShellSnippets(t *testing.T) {
	skipWithoutBash(t)

	e := NewEngine(t.TempDir())
	content := "Before !`echo one` middle !`echo two` after."

	got, err := e.resolveShellSnippets(context.Background(), content, nil, security.LevelEnforce)
	require.NoError(t, err)
	assert.Equal(t, "Before one middle two after.", got)
}

func TestResolveShellSnippetsDenied(t *testing.T) {
	e := NewEngine(t.TempDir())
	content := "Run !`git push --force`."

	_, err := e.resolveShellSnippets(context.Background(), content, []string{"Bash(git status:*)"}, security.LevelEnforce)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, execErr.Message, "not permitted")
}

func TestResolveShellSnippetsNoSnippets(t *testing.T) {
	e := NewEngine(t.TempDir())
	content := "Nothing to run here."
	got, err := e.resolveShellSnippets(context.Background(), content, nil, security.LevelEnforce)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestRunSnippetCancelled(t *testing.T) {
	skipWithoutBash(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine(t.TempDir())
	_, err := e.runSnippet(ctx, security.LevelEnforce, "echo hello")
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.DeadlineExceeded))
}
