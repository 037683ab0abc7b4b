package expand

import (
	"fmt"
	"strings"
	"time"

	"github.com/promptcmd-ai/promptcmd/internal/command"
	"github.com/promptcmd-ai/promptcmd/internal/security"
)

// Preview describes what an expansion would do without executing any
// subprocess or reading any file.
type Preview struct {
	CommandName      string
	ProcessedContent string
	ShellSnippets    []string
	FileReferences   []string
	Findings         []string
	EstimatedTime    time.Duration
}

// Preview performs argument substitution and discovers what the shell and
// file steps would execute and what validation would flag, side-effect
// free.
func (e *Engine) Preview(def *command.Definition, args []string, policy security.Policy) *Preview {
	substituted := SubstituteArgs(def.Body, args)

	return &Preview{
		CommandName:      def.Name,
		ProcessedContent: substituted,
		ShellSnippets:    security.ShellSnippets(substituted),
		FileReferences:   security.FileRefs(substituted),
		Findings:         security.Validate(def.Body, policy).Findings,
		EstimatedTime:    estimateTime(substituted),
	}
}

// estimateTime is a rough bound on expansion cost: a fixed base plus a
// budget per snippet and per file reference.
func estimateTime(content string) time.Duration {
	base := 100 * time.Millisecond
	shell := time.Duration(len(security.ShellSnippets(content))) * 500 * time.Millisecond
	files := time.Duration(len(security.FileRefs(content))) * 50 * time.Millisecond
	return base + shell + files
}

// String renders the preview for display.
func (p *Preview) String() string {
	var out []string

	out = append(out, fmt.Sprintf("Command: %s", p.CommandName))
	out = append(out, fmt.Sprintf("Estimated time: %s", p.EstimatedTime))

	if len(p.ShellSnippets) > 0 {
		out = append(out, "Shell snippets to execute:")
		for _, snippet := range p.ShellSnippets {
			out = append(out, fmt.Sprintf("  - %s", snippet))
		}
	}

	if len(p.FileReferences) > 0 {
		out = append(out, "Files to reference:")
		for _, ref := range p.FileReferences {
			out = append(out, fmt.Sprintf("  - %s", ref))
		}
	}

	if len(p.Findings) > 0 {
		out = append(out, "Security findings:")
		for _, finding := range p.Findings {
			out = append(out, fmt.Sprintf("  - %s", finding))
		}
	}

	out = append(out, "", "Processed content:", p.ProcessedContent)
	return strings.Join(out, "\n")
}
