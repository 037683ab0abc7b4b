package expand

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/promptcmd-ai/promptcmd/internal/logging"
	"github.com/promptcmd-ai/promptcmd/internal/security"
)

const (
	// DefaultShellTimeout bounds a single inline snippet.
	DefaultShellTimeout = 30 * time.Second
	// sigkillDelay is how long a process group gets after SIGTERM before
	// the runtime escalates to SIGKILL.
	sigkillDelay = 200 * time.Millisecond
)

// shellGrantPrefix wraps shell permission grants in frontmatter, e.g.
// "Bash(git add:*)".
const shellGrantPrefix = "Bash("

// shellPermitted checks an inline snippet against the allowed-tools
// grants. A bare "Bash" entry grants everything; "Bash(prefix:*)" grants
// by prefix; "Bash(cmd)" grants an exact command. With no shell grants in
// the list, the snippet is denied.
func shellPermitted(snippet string, allowedTools []string) bool {
	var grants []string
	for _, tool := range allowedTools {
		switch {
		case tool == "Bash":
			grants = append(grants, "*")
		case strings.HasPrefix(tool, shellGrantPrefix) && strings.HasSuffix(tool, ")"):
			grants = append(grants, tool[len(shellGrantPrefix):len(tool)-1])
		}
	}
	if len(grants) == 0 {
		return false
	}

	for _, grant := range grants {
		if grant == "*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(grant, ":*"); ok {
			if strings.HasPrefix(snippet, prefix) {
				return true
			}
			continue
		}
		if grant == snippet {
			return true
		}
	}
	return false
}

// runSnippet executes one inline shell snippet and returns its trimmed
// stdout. The snippet runs with stdin closed, stdout and stderr captured,
// in its own process group so a timeout or cancellation tears down child
// processes too.
func (e *Engine) runSnippet(ctx context.Context, level security.Level, snippet string) (string, error) {
	// Argument substitution may have introduced content the body-level scan
	// never saw, so each snippet is re-checked before spawning.
	if level == security.LevelEnforce {
		if findings := security.Scan(snippet); len(findings) > 0 {
			return "", &ExecutionError{
				Snippet: snippet,
				Message: "dangerous command rejected: " + strings.Join(findings, ", "),
			}
		}
	}

	cmdCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(cmdCtx, "cmd.exe", "/C", snippet)
	} else {
		cmd = exec.CommandContext(cmdCtx, "bash", "-c", snippet)
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		cmd.Cancel = func() error {
			if cmd.Process == nil {
				return nil
			}
			return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
		}
		cmd.WaitDelay = sigkillDelay
	}

	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Debug().Str("snippet", snippet).Msg("executing inline shell snippet")

	err := cmd.Run()
	if cmdCtx.Err() == context.DeadlineExceeded {
		return "", &TimeoutError{Snippet: snippet, Timeout: e.timeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExecutionError{
				Snippet: snippet,
				Message: exitErr.String(),
				Stderr:  strings.TrimSpace(stderr.String()),
			}
		}
		return "", &ExecutionError{Snippet: snippet, Message: err.Error()}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// resolveShellSnippets replaces every inline snippet marker with its
// captured output, sequentially in document order. allowedTools gates
// execution when present; with no permission metadata at all, snippets run
// subject only to the body-level validation already performed.
func (e *Engine) resolveShellSnippets(ctx context.Context, content string, allowedTools []string, level security.Level) (string, error) {
	snippets := security.ShellSnippets(content)
	if len(snippets) == 0 {
		return content, nil
	}

	result := content
	for _, snippet := range snippets {
		if len(allowedTools) > 0 && !shellPermitted(snippet, allowedTools) {
			return "", &ExecutionError{
				Snippet: snippet,
				Message: "not permitted by allowed-tools",
			}
		}

		output, err := e.runSnippet(ctx, level, snippet)
		if err != nil {
			return "", err
		}
		result = strings.ReplaceAll(result, "!`"+snippet+"`", output)
	}
	return result, nil
}
