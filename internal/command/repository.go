package command

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/promptcmd-ai/promptcmd/internal/logging"
	"github.com/promptcmd-ai/promptcmd/internal/security"
	"github.com/promptcmd-ai/promptcmd/internal/template"
)

// markdownGlob selects command documents; matched against the lowercased,
// slash-normalized path relative to the root.
const markdownGlob = "**/*.{md,markdown}"

// Root is one directory to discover commands under.
type Root struct {
	Dir   string
	Scope Scope
}

// Repository discovers template files under configured roots and assembles
// a name-to-definition mapping. The repository itself is stateless; Cache
// adds the memoization layer.
type Repository struct{}

// NewRepository creates a repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Discover walks every root concurrently and merges the results. A
// failure in one root's walk fails the whole call; partial results are
// never merged with a lost root. Per-file errors inside a healthy walk are
// logged and skipped. On a name collision across roots the Project-scope
// definition wins unconditionally, regardless of walk order.
func (r *Repository) Discover(ctx context.Context, roots []Root) (map[string]*Definition, error) {
	results := make([]map[string]*Definition, len(roots))

	g, ctx := errgroup.WithContext(ctx)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			defs, err := r.discoverRoot(ctx, root)
			if err != nil {
				return err
			}
			results[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]*Definition)
	for _, defs := range results {
		for name, def := range defs {
			existing, ok := merged[name]
			if !ok || (def.Scope == ScopeProject && existing.Scope == ScopeGlobal) {
				merged[name] = def
			}
		}
	}

	logging.Debug().Int("count", len(merged)).Msg("loaded custom commands")
	return merged, nil
}

// discoverRoot walks one root. A missing directory yields an empty map.
func (r *Repository) discoverRoot(ctx context.Context, root Root) (map[string]*Definition, error) {
	defs := make(map[string]*Definition)

	if _, err := os.Stat(root.Dir); os.IsNotExist(err) {
		return defs, nil
	}

	err := filepath.WalkDir(root.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root.Dir, path)
		if err != nil {
			return err
		}
		if ok, _ := doublestar.Match(markdownGlob, strings.ToLower(filepath.ToSlash(rel))); !ok {
			return nil
		}

		def, loadErr := r.loadFile(path, root)
		if loadErr != nil {
			logging.Error().Err(loadErr).Str("path", path).Msg("failed to load command file")
			return nil
		}

		if _, dup := defs[def.Name]; dup {
			logging.Warn().Str("name", def.Name).Str("path", path).Msg("duplicate command name, later file wins")
		}
		defs[def.Name] = def
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk command directory %s: %w", root.Dir, err)
	}

	return defs, nil
}

// loadFile parses and validates a single command file.
func (r *Repository) loadFile(path string, root Root) (*Definition, error) {
	meta, body, err := template.ParseFile(path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	def := &Definition{
		Name:       name,
		Body:       body,
		Meta:       meta,
		Scope:      root.Scope,
		SourcePath: path,
		Namespace:  namespaceFor(path, root.Dir),
	}

	if err := validateDefinition(def); err != nil {
		return nil, err
	}
	return def, nil
}

// namespaceFor derives the display namespace from the path between root
// and file, separators normalized to underscores.
func namespaceFor(path, rootDir string) string {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return ""
	}
	parent := filepath.Dir(rel)
	if parent == "." {
		return ""
	}
	return strings.ReplaceAll(parent, string(filepath.Separator), "_")
}

// validateDefinition enforces the structural rules: a non-empty name with
// no whitespace or slash, and a non-empty body. When the metadata grants
// shell invocation the body must also pass security validation at
// enforcing strictness regardless of the ambient policy.
func validateDefinition(def *Definition) error {
	if def.Name == "" {
		return &InvalidDefinitionError{Path: def.SourcePath, Reason: "command name cannot be empty"}
	}
	if strings.ContainsFunc(def.Name, unicode.IsSpace) || strings.Contains(def.Name, "/") {
		return &InvalidDefinitionError{Path: def.SourcePath, Reason: fmt.Sprintf("invalid characters in command name %q", def.Name)}
	}
	if strings.TrimSpace(def.Body) == "" {
		return &InvalidDefinitionError{Path: def.SourcePath, Reason: fmt.Sprintf("command %q has empty content", def.Name)}
	}
	if def.Meta.GrantsShell() {
		if err := security.ValidateContent(def.Name, def.Body); err != nil {
			return err
		}
	}
	return nil
}

// ReloadOne re-resolves a single command by re-walking the configured
// roots and returning the first match by scope priority, for freshness
// without a full rescan. Returns a NotFoundError when no root has it.
func (r *Repository) ReloadOne(ctx context.Context, name string, roots []Root) (*Definition, error) {
	ordered := make([]Root, 0, len(roots))
	for _, root := range roots {
		if root.Scope == ScopeProject {
			ordered = append(ordered, root)
		}
	}
	for _, root := range roots {
		if root.Scope != ScopeProject {
			ordered = append(ordered, root)
		}
	}

	for _, root := range ordered {
		defs, err := r.discoverRoot(ctx, root)
		if err != nil {
			return nil, err
		}
		if def, ok := defs[name]; ok {
			return def, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// Names returns the sorted command names of a definition map.
func Names(defs map[string]*Definition) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
