// Package expand turns a resolved command definition and call-time
// arguments into finished prompt text: security validation, argument
// substitution, inline shell execution, file inlining, and the
// extended-thinking marker, in that fixed order.
package expand

import (
	"context"
	"strings"
	"time"

	"github.com/promptcmd-ai/promptcmd/internal/command"
	"github.com/promptcmd-ai/promptcmd/internal/logging"
	"github.com/promptcmd-ai/promptcmd/internal/security"
)

// ThinkingMarker is prepended when the expanded text requests extended
// deliberation. Purely advisory.
const ThinkingMarker = "**Extended Thinking Mode Activated**\n\n"

// thinkingKeywords trigger the marker, case-insensitively.
var thinkingKeywords = []string{
	"think through",
	"reason about",
	"analyze carefully",
	"consider deeply",
	"extended thinking",
	"step by step",
	"break down",
	"reasoning process",
}

// Engine expands command definitions. Safe for concurrent use; each
// expansion is independent.
type Engine struct {
	workDir string
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithShellTimeout overrides the inline snippet timeout.
func WithShellTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		e.timeout = timeout
	}
}

// NewEngine creates an engine resolving file references and shell
// snippets relative to workDir.
func NewEngine(workDir string, opts ...Option) *Engine {
	e := &Engine{
		workDir: workDir,
		timeout: DefaultShellTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand runs the full pipeline over def with the given arguments under
// policy. Any step failing aborts the expansion; no step is retried.
func (e *Engine) Expand(ctx context.Context, def *command.Definition, args []string, policy security.Policy) (string, error) {
	logging.Info().
		Str("command", def.Name).
		Str("security", policy.Level.String()).
		Msg("expanding custom command")

	// 1. Validate the body under the ambient policy.
	outcome := security.Validate(def.Body, policy)
	if outcome.Error {
		return "", &security.SecurityError{
			Command: def.Name,
			Message: "security risks detected: " + strings.Join(outcome.Findings, ", "),
		}
	}
	if outcome.Warn {
		logging.Warn().
			Str("command", def.Name).
			Strs("findings", outcome.Findings).
			Msg("security risks detected in command")
	}

	// 2. Argument substitution. NUL bytes cannot survive shell quoting or
	// an argv boundary, so they are rejected rather than mangled.
	for _, arg := range args {
		if strings.ContainsRune(arg, 0) {
			return "", &ArgumentError{Command: def.Name, Message: "argument contains a NUL byte"}
		}
	}
	content := SubstituteArgs(def.Body, args)

	// 3. Inline shell snippets, sequentially in document order.
	content, err := e.resolveShellSnippets(ctx, content, def.AllowedTools(), policy.Level)
	if err != nil {
		return "", err
	}

	// 4. File references.
	content, err = e.resolveFileRefs(ctx, content)
	if err != nil {
		return "", err
	}

	// 5. Extended-thinking marker.
	if DetectThinkingKeywords(content) {
		logging.Debug().Str("command", def.Name).Msg("extended thinking keywords detected")
		content = ThinkingMarker + content
	}

	return content, nil
}

// DetectThinkingKeywords reports whether content asks for extended
// deliberation.
func DetectThinkingKeywords(content string) bool {
	lower := strings.ToLower(content)
	for _, keyword := range thinkingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
