package security

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/promptcmd-ai/promptcmd/internal/logging"
)

// Level is the severity policy applied to scan findings.
type Level int

const (
	// LevelOff computes findings but never flags them.
	LevelOff Level = iota
	// LevelWarn surfaces findings as warnings without blocking.
	LevelWarn
	// LevelEnforce treats findings as errors. This is the default.
	LevelEnforce
)

// String returns the wire/display name of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelWarn:
		return "warn"
	default:
		return "enforce"
	}
}

// MarshalText implements encoding.TextMarshaler for TOML persistence.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown levels are a
// hard error so a corrupt policy file is never silently defaulted.
func (l *Level) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "off", "none", "disabled":
		*l = LevelOff
	case "warn", "warning":
		*l = LevelWarn
	case "enforce", "error", "enabled":
		*l = LevelEnforce
	default:
		return fmt.Errorf("unknown security level %q", string(text))
	}
	return nil
}

// Policy is the active validation policy.
type Policy struct {
	Level Level `toml:"level"`
	// IgnoredPatterns are user-defined exemptions; see Validate for the
	// matching semantics.
	IgnoredPatterns []string `toml:"ignored_patterns"`
}

// DefaultPolicy returns the enforcing policy with no exemptions.
func DefaultPolicy() Policy {
	return Policy{Level: LevelEnforce}
}

// policyFileName is the policy document under the config root.
const policyFileName = "security_config.toml"

// Store persists the security policy as a TOML document. Every mutation
// loads, mutates, and saves; cross-process lost updates are accepted since
// the process model assumes a single active writer per session.
type Store struct {
	path string
}

// NewStore creates a store rooted at configDir.
func NewStore(configDir string) *Store {
	return &Store{path: filepath.Join(configDir, policyFileName)}
}

// Path returns the policy file location.
func (s *Store) Path() string { return s.path }

// Load reads the persisted policy. A missing file creates and persists the
// defaults; a present-but-corrupt file is a ConfigError, never a silent
// fallback.
func (s *Store) Load() (Policy, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			policy := DefaultPolicy()
			if err := s.Save(policy); err != nil {
				return Policy{}, err
			}
			return policy, nil
		}
		return Policy{}, &ConfigError{Message: fmt.Sprintf("failed to read policy file %s", s.path), Err: err}
	}

	var policy Policy
	if err := toml.Unmarshal(data, &policy); err != nil {
		return Policy{}, &ConfigError{Message: fmt.Sprintf("failed to parse policy file %s", s.path), Err: err}
	}
	return policy, nil
}

// Save persists the policy, creating the config directory if needed.
func (s *Store) Save(policy Policy) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &ConfigError{Message: fmt.Sprintf("failed to create config directory for %s", s.path), Err: err}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(policy); err != nil {
		return &ConfigError{Message: "failed to encode policy", Err: err}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return &ConfigError{Message: fmt.Sprintf("failed to write policy file %s", s.path), Err: err}
	}
	return nil
}

// SetLevel persists a new validation level.
func (s *Store) SetLevel(level Level) error {
	policy, err := s.Load()
	if err != nil {
		return err
	}
	policy.Level = level
	if err := s.Save(policy); err != nil {
		return err
	}
	logging.Info().Str("level", level.String()).Msg("security validation level updated")
	return nil
}

// Enable sets the policy level to Enforce.
func (s *Store) Enable() error { return s.SetLevel(LevelEnforce) }

// Disable sets the policy level to Off.
func (s *Store) Disable() error { return s.SetLevel(LevelOff) }

// SetWarn sets the policy level to Warn.
func (s *Store) SetWarn() error { return s.SetLevel(LevelWarn) }

// AddIgnoredPattern persists a new exemption pattern. Adding an existing
// pattern is a no-op.
func (s *Store) AddIgnoredPattern(pattern string) error {
	policy, err := s.Load()
	if err != nil {
		return err
	}
	for _, existing := range policy.IgnoredPatterns {
		if existing == pattern {
			return nil
		}
	}
	policy.IgnoredPatterns = append(policy.IgnoredPatterns, pattern)
	return s.Save(policy)
}

// RemoveIgnoredPattern removes an exemption pattern if present.
func (s *Store) RemoveIgnoredPattern(pattern string) error {
	policy, err := s.Load()
	if err != nil {
		return err
	}
	kept := policy.IgnoredPatterns[:0]
	for _, existing := range policy.IgnoredPatterns {
		if existing != pattern {
			kept = append(kept, existing)
		}
	}
	policy.IgnoredPatterns = kept
	return s.Save(policy)
}

// Status returns a human-readable summary of the active policy.
func (s *Store) Status() (string, error) {
	policy, err := s.Load()
	if err != nil {
		return "", err
	}

	var level string
	switch policy.Level {
	case LevelEnforce:
		level = "Enabled (enforce)"
	case LevelWarn:
		level = "Warning only"
	default:
		level = "Disabled"
	}

	status := fmt.Sprintf("Security validation: %s", level)
	if len(policy.IgnoredPatterns) > 0 {
		status += fmt.Sprintf("\nIgnored patterns: %s", strings.Join(policy.IgnoredPatterns, ", "))
	}
	return status, nil
}
