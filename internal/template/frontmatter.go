package template

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the structured metadata parsed from a template's
// leading YAML block. Unrecognized scalar keys (phase, dependencies,
// output-format, and anything future templates invent) are kept in the
// flat Extra map instead of growing the schema.
type Frontmatter struct {
	// AllowedTools lists permission grants, e.g. "Bash" or "Bash(git add:*)".
	AllowedTools []string
	// ArgumentHint is shown in help output, e.g. "<task-file> <task-id>".
	ArgumentHint string
	// Description is a one-line summary of the command.
	Description string
	// Model optionally names the model the command prefers.
	Model string
	// Extra holds free-form classification fields used only for display.
	Extra map[string]string
}

// UnmarshalYAML decodes known keys into typed fields and flattens the rest
// into Extra. Both "allowed-tools" and "allowed_invocations" spellings are
// accepted for the permission list.
func (f *Frontmatter) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return err
	}

	for key, node := range raw {
		node := node
		switch key {
		case "allowed-tools", "allowed_invocations":
			if err := node.Decode(&f.AllowedTools); err != nil {
				// A bare scalar grant is also accepted.
				var single string
				if serr := node.Decode(&single); serr != nil {
					return err
				}
				f.AllowedTools = []string{single}
			}
		case "argument-hint":
			if err := node.Decode(&f.ArgumentHint); err != nil {
				return err
			}
		case "description":
			if err := node.Decode(&f.Description); err != nil {
				return err
			}
		case "model":
			if err := node.Decode(&f.Model); err != nil {
				return err
			}
		default:
			if f.Extra == nil {
				f.Extra = make(map[string]string)
			}
			var scalar string
			if err := node.Decode(&scalar); err == nil {
				f.Extra[key] = scalar
				continue
			}
			var list []string
			if err := node.Decode(&list); err == nil {
				f.Extra[key] = strings.Join(list, ", ")
			}
			// Nested structures are dropped; only display fields live here.
		}
	}
	return nil
}

// Phase returns the display-only phase classification, if any.
func (f *Frontmatter) Phase() string {
	if f == nil {
		return ""
	}
	return f.Extra["phase"]
}

// Dependencies returns the display-only dependency list, if any.
func (f *Frontmatter) Dependencies() string {
	if f == nil {
		return ""
	}
	return f.Extra["dependencies"]
}

// OutputFormat returns the display-only output format, if any.
func (f *Frontmatter) OutputFormat() string {
	if f == nil {
		return ""
	}
	return f.Extra["output-format"]
}

// GrantsShell reports whether any allowed tool grants shell invocation.
func (f *Frontmatter) GrantsShell() bool {
	if f == nil {
		return false
	}
	for _, tool := range f.AllowedTools {
		if strings.Contains(strings.ToLower(tool), "bash") {
			return true
		}
	}
	return false
}
