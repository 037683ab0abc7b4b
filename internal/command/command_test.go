package command

import (
	"testing"

	"github.com/promptcmd-ai/promptcmd/internal/template"
)

func TestScopeString(t *testing.T) {
	if ScopeProject.String() != "project" {
		t.Errorf("unexpected project scope name: %s", ScopeProject)
	}
	if ScopeGlobal.String() != "user" {
		t.Errorf("unexpected global scope name: %s", ScopeGlobal)
	}
}

func TestDefinitionAccessorsNilMeta(t *testing.T) {
	def := &Definition{Name: "bare", Body: "body"}
	if def.Description() != "" {
		t.Error("expected empty description without metadata")
	}
	if def.ArgumentHint() != "" {
		t.Error("expected empty hint without metadata")
	}
	if def.AllowedTools() != nil {
		t.Error("expected nil tools without metadata")
	}
}

func TestDefinitionAccessors(t *testing.T) {
	def := &Definition{
		Name: "deploy",
		Body: "body",
		Meta: &template.Frontmatter{
			Description:  "Ship it",
			ArgumentHint: "[env]",
			AllowedTools: []string{"Bash(git status:*)"},
		},
	}
	if def.Description() != "Ship it" {
		t.Errorf("unexpected description: %s", def.Description())
	}
	if def.ArgumentHint() != "[env]" {
		t.Errorf("unexpected hint: %s", def.ArgumentHint())
	}
	if len(def.AllowedTools()) != 1 {
		t.Errorf("unexpected tools: %v", def.AllowedTools())
	}
}

func TestDisplayNamespace(t *testing.T) {
	cases := map[string]string{
		"git-commit":    "git",
		"git-push-prod": "git",
		"deploy":        "",
	}
	for name, want := range cases {
		if got := DisplayNamespace(name); got != want {
			t.Errorf("DisplayNamespace(%q) = %q, want %q", name, got, want)
		}
	}
}
