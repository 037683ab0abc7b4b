package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/promptcmd-ai/promptcmd/internal/command"
)

// FormatList renders the discovered commands grouped by namespace, with
// ungrouped commands first.
func (s *Service) FormatList(ctx context.Context) (string, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	if len(summaries) == 0 {
		return "No custom commands found.\n\nCreate one with: promptcmd init", nil
	}

	grouped := make(map[string][]Summary)
	for _, summary := range summaries {
		ns := summary.Namespace
		if ns == "" {
			// Hyphenated names group by their prefix, e.g. git-commit
			// under "git".
			ns = command.DisplayNamespace(summary.Name)
		}
		grouped[ns] = append(grouped[ns], summary)
	}

	namespaces := make([]string, 0, len(grouped))
	for ns := range grouped {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces) // "" sorts first, so ungrouped commands lead

	var b strings.Builder
	b.WriteString("Available custom commands:\n")
	for _, ns := range namespaces {
		if ns != "" {
			fmt.Fprintf(&b, "\n%s:\n", ns)
		}
		for _, summary := range grouped[ns] {
			fmt.Fprintf(&b, "  /%s", summary.Name)
			if summary.ArgumentHint != "" {
				fmt.Fprintf(&b, " %s", summary.ArgumentHint)
			}
			fmt.Fprintf(&b, " [%s]", summary.Scope)
			if summary.Description != "" {
				fmt.Fprintf(&b, " - %s", summary.Description)
			}
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Help renders the detail view for one command.
func (s *Service) Help(ctx context.Context, name string) (string, error) {
	def, err := s.cache.Get(ctx, name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/%s", def.Name)
	if hint := def.ArgumentHint(); hint != "" {
		fmt.Fprintf(&b, " %s", hint)
	}
	b.WriteString("\n")

	if desc := def.Description(); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", desc)
	}

	fmt.Fprintf(&b, "\nScope:  %s\n", def.Scope)
	fmt.Fprintf(&b, "Source: %s\n", def.SourcePath)
	if def.Namespace != "" {
		fmt.Fprintf(&b, "Namespace: %s\n", def.Namespace)
	}
	if tools := def.AllowedTools(); len(tools) > 0 {
		fmt.Fprintf(&b, "Allowed tools: %s\n", strings.Join(tools, ", "))
	}
	if def.Meta != nil {
		if def.Meta.Model != "" {
			fmt.Fprintf(&b, "Model: %s\n", def.Meta.Model)
		}
		if phase := def.Meta.Phase(); phase != "" {
			fmt.Fprintf(&b, "Phase: %s\n", phase)
		}
		if deps := def.Meta.Dependencies(); deps != "" {
			fmt.Fprintf(&b, "Dependencies: %s\n", deps)
		}
		if format := def.Meta.OutputFormat(); format != "" {
			fmt.Fprintf(&b, "Output format: %s\n", format)
		}
	}
	return b.String(), nil
}
