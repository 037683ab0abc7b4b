package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptcmd-ai/promptcmd/internal/config"
	"github.com/promptcmd-ai/promptcmd/internal/logging"
)

const sampleCommandName = "sample-command.md"

const sampleCommandBody = `---
description: Example custom command
argument-hint: "[topic]"
allowed-tools:
  - "Bash(git status:*)"
---

Summarize the current state of $ARGUMENTS in this project.

Repository status:

!` + "`git status --short`" + `

Please keep the summary under five bullet points.
`

// InitProjectDir creates the project command directory and drops a sample
// command into it. Returns the directory path. An existing sample file is
// left untouched.
func (s *Service) InitProjectDir() (string, error) {
	dir := config.ProjectCommandsDir(s.workDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating command directory %s: %w", dir, err)
	}

	sample := filepath.Join(dir, sampleCommandName)
	if _, err := os.Stat(sample); err == nil {
		return dir, nil
	}

	if err := os.WriteFile(sample, []byte(sampleCommandBody), 0o644); err != nil {
		return "", fmt.Errorf("writing sample command: %w", err)
	}

	logging.Info().Str("dir", dir).Msg("initialized project command directory")
	s.cache.Invalidate()
	return dir, nil
}
