package expand

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptcmd-ai/promptcmd/internal/logging"
	"github.com/promptcmd-ai/promptcmd/internal/security"
)

// MaxFileRefSize caps inlined file references at 1 MiB.
const MaxFileRefSize = 1 << 20

// resolveFileRefs replaces every @path reference with the referenced
// file's content, fenced. References are resolved sequentially against the
// engine's working directory. The path-traversal check is unconditional
// and does not depend on the security policy level.
func (e *Engine) resolveFileRefs(ctx context.Context, content string) (string, error) {
	refs := security.FileRefs(content)
	if len(refs) == 0 {
		return content, nil
	}

	result := content
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := e.readFileRef(ref)
		if err != nil {
			return "", err
		}

		logging.Debug().Str("ref", ref).Msg("inlined file reference")
		result = strings.ReplaceAll(result, "@"+ref, fmt.Sprintf("```\n%s\n```", text))
	}
	return result, nil
}

// readFileRef reads one referenced file, enforcing path safety and the
// size ceiling.
func (e *Engine) readFileRef(ref string) (string, error) {
	if security.IsUnsafeRef(ref) {
		return "", &security.SecurityError{
			Command: "file_reference",
			Message: fmt.Sprintf("unsafe file reference: %s", ref),
		}
	}

	path := filepath.Join(e.workDir, ref)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &FileReferenceError{File: ref, Message: "file not found"}
		}
		return "", &FileReferenceError{File: ref, Message: "file is not accessible", Err: err}
	}

	if info.Size() > MaxFileRefSize {
		return "", &FileReferenceError{
			File:    ref,
			Message: fmt.Sprintf("file too large: %d bytes (max: %d bytes)", info.Size(), MaxFileRefSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileReferenceError{File: ref, Message: "file is not readable", Err: err}
	}
	return string(data), nil
}
