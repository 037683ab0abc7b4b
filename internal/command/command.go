// Package command discovers custom-command templates on disk and resolves
// them into immutable definitions.
package command

import (
	"strings"

	"github.com/promptcmd-ai/promptcmd/internal/template"
)

// Scope identifies where a definition was discovered.
type Scope int

const (
	// ScopeProject covers the project-local commands directory. Project
	// definitions win name collisions against global ones.
	ScopeProject Scope = iota
	// ScopeGlobal covers the user-global commands directory.
	ScopeGlobal
)

// String returns the display name of the scope.
func (s Scope) String() string {
	if s == ScopeProject {
		return "project"
	}
	return "user"
}

// Definition is a resolved custom command. It is immutable once
// constructed and replaced wholesale on re-discovery. The body never
// contains the frontmatter block; metadata travels only in Meta.
type Definition struct {
	// Name is the command identity, derived from the file stem.
	Name string
	// Body is the template text with frontmatter stripped.
	Body string
	// Meta is the parsed frontmatter, nil when the document had none.
	Meta *template.Frontmatter
	// Scope records which root the definition came from.
	Scope Scope
	// SourcePath is the file the definition was loaded from.
	SourcePath string
	// Namespace is the directory path between the root and the file, with
	// separators normalized to underscores. Empty for files directly under
	// a root. Display-only.
	Namespace string
}

// Description returns the frontmatter description, if any.
func (d *Definition) Description() string {
	if d.Meta == nil {
		return ""
	}
	return d.Meta.Description
}

// ArgumentHint returns the frontmatter argument hint, if any.
func (d *Definition) ArgumentHint() string {
	if d.Meta == nil {
		return ""
	}
	return d.Meta.ArgumentHint
}

// AllowedTools returns the frontmatter permission grants, if any.
func (d *Definition) AllowedTools() []string {
	if d.Meta == nil {
		return nil
	}
	return d.Meta.AllowedTools
}

// DisplayNamespace groups a command for listing: the prefix of its name
// before the first hyphen, or empty when the name has no hyphen. Purely a
// display concern, never part of identity.
func DisplayNamespace(name string) string {
	prefix, _, found := strings.Cut(name, "-")
	if !found {
		return ""
	}
	return prefix
}
