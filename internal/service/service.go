// Package service wires the repository, cache, policy store, and
// expansion engine into the API the host chat session consumes.
package service

import (
	"context"
	"sort"
	"sync"

	"github.com/promptcmd-ai/promptcmd/internal/command"
	"github.com/promptcmd-ai/promptcmd/internal/config"
	"github.com/promptcmd-ai/promptcmd/internal/expand"
	"github.com/promptcmd-ai/promptcmd/internal/logging"
	"github.com/promptcmd-ai/promptcmd/internal/security"
)

// Service is the host-facing entry point for custom commands. The policy
// store is shared under a read/write lock: status reads proceed
// concurrently, mutations serialize. The definition cache carries its own
// lock.
type Service struct {
	workDir  string
	settings *config.Settings
	engine   *expand.Engine
	cache    *command.Cache

	policyMu sync.RWMutex
	store    *security.Store
}

// New creates a service rooted at workDir.
func New(workDir string, settings *config.Settings) *Service {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	repo := command.NewRepository()
	roots := func() []command.Root {
		return []command.Root{
			{Dir: config.ProjectCommandsDir(workDir), Scope: command.ScopeProject},
			{Dir: config.CommandsDir(), Scope: command.ScopeGlobal},
		}
	}

	return &Service{
		workDir:  workDir,
		settings: settings,
		engine:   expand.NewEngine(workDir, expand.WithShellTimeout(settings.ShellTimeout())),
		cache:    command.NewCache(repo, roots),
		store:    security.NewStore(config.ConfigDir()),
	}
}

// Close releases the cache watcher, if running.
func (s *Service) Close() error {
	return s.cache.Close()
}

// WatchCommands starts eager cache invalidation on command directory
// changes.
func (s *Service) WatchCommands() error {
	return s.cache.Watch()
}

// Enabled reports whether the custom-command feature flag is on.
func (s *Service) Enabled() bool {
	return s.settings.Enabled
}

// IsKnown reports whether name resolves to a discovered command. Always
// false when the feature is disabled.
func (s *Service) IsKnown(ctx context.Context, name string) bool {
	if !s.Enabled() {
		return false
	}
	_, err := s.cache.Get(ctx, name)
	return err == nil
}

// Expand resolves name and runs the expansion pipeline with the given
// arguments under the persisted security policy.
func (s *Service) Expand(ctx context.Context, name string, args []string) (string, error) {
	if !s.Enabled() {
		return "", &security.ConfigError{Message: "custom commands are disabled; enable them in settings"}
	}

	def, err := s.cache.Get(ctx, name)
	if err != nil {
		return "", err
	}

	policy, err := s.policy()
	if err != nil {
		return "", err
	}

	return s.engine.Expand(ctx, def, args, policy)
}

// Preview reports what expanding name with args would do, without
// executing anything.
func (s *Service) Preview(ctx context.Context, name string, args []string) (*expand.Preview, error) {
	def, err := s.cache.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	policy, err := s.policy()
	if err != nil {
		return nil, err
	}

	return s.engine.Preview(def, args, policy), nil
}

// Refresh forces a rediscovery pass on the next lookup.
func (s *Service) Refresh() {
	logging.Debug().Msg("command cache invalidated on request")
	s.cache.Invalidate()
}

// Summary describes one command for listing.
type Summary struct {
	Name         string
	Description  string
	ArgumentHint string
	Scope        command.Scope
	Namespace    string
	Phase        string
}

// List returns summaries of all discovered commands, sorted by name.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	defs, err := s.cache.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(defs))
	for _, name := range command.Names(defs) {
		def := defs[name]
		summaries = append(summaries, Summary{
			Name:         def.Name,
			Description:  def.Description(),
			ArgumentHint: def.ArgumentHint(),
			Scope:        def.Scope,
			Namespace:    def.Namespace,
			Phase:        def.Meta.Phase(),
		})
	}
	return summaries, nil
}

// Conflicts returns the names of discovered commands that shadow the
// host's built-in slash commands.
func (s *Service) Conflicts(ctx context.Context, builtins []string) ([]string, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	builtinSet := make(map[string]bool, len(builtins))
	for _, b := range builtins {
		builtinSet[b] = true
	}

	var conflicts []string
	for _, summary := range summaries {
		if builtinSet[summary.Name] {
			conflicts = append(conflicts, summary.Name)
		}
	}
	sort.Strings(conflicts)
	return conflicts, nil
}

// policy loads the persisted security policy under the read lock.
func (s *Service) policy() (security.Policy, error) {
	s.policyMu.RLock()
	defer s.policyMu.RUnlock()
	return s.store.Load()
}

// EnableSecurity sets the policy level to enforce.
func (s *Service) EnableSecurity() error {
	s.policyMu.Lock()
	defer s.policyMu.Unlock()
	return s.store.Enable()
}

// DisableSecurity sets the policy level to off.
func (s *Service) DisableSecurity() error {
	s.policyMu.Lock()
	defer s.policyMu.Unlock()
	return s.store.Disable()
}

// SetSecurityWarn sets the policy level to warn.
func (s *Service) SetSecurityWarn() error {
	s.policyMu.Lock()
	defer s.policyMu.Unlock()
	return s.store.SetWarn()
}

// AddExemption persists a pattern exemption.
func (s *Service) AddExemption(pattern string) error {
	s.policyMu.Lock()
	defer s.policyMu.Unlock()
	return s.store.AddIgnoredPattern(pattern)
}

// RemoveExemption removes a pattern exemption.
func (s *Service) RemoveExemption(pattern string) error {
	s.policyMu.Lock()
	defer s.policyMu.Unlock()
	return s.store.RemoveIgnoredPattern(pattern)
}

// SecurityStatus returns a human-readable policy summary.
func (s *Service) SecurityStatus() (string, error) {
	s.policyMu.RLock()
	defer s.policyMu.RUnlock()
	return s.store.Status()
}
