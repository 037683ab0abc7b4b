// Package security scans command bodies and shell snippets for denylisted
// patterns and unsafe file references, and applies the configured
// validation policy.
package security

import (
	"fmt"
	"regexp"
	"strings"
)

// dangerousPatterns is the fixed denylist. The sources are kept as plain
// strings because exemption matching (see Validate) compares against the
// pattern source, not the compiled regexp.
var dangerousPatterns = []string{
	`rm\s+-rf`,
	`sudo\s+rm`,
	`>\s*/dev/null`,
	`curl.*\|\s*bash`,
	`wget.*\|\s*bash`,
	`eval\s*\$`,
	`exec\s+`,
	`nc\s+-l`,
	`python.*-c`,
	`perl.*-e`,
}

var compiledPatterns = func() []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(dangerousPatterns))
	for i, src := range dangerousPatterns {
		compiled[i] = regexp.MustCompile(src)
	}
	return compiled
}()

// fileRefRe matches @path references that follow start-of-input,
// whitespace, or a ">", so e-mail-address-like tokens are not matched.
var fileRefRe = regexp.MustCompile(`(?:^|[\s>])\s*@([a-zA-Z0-9._/-]+)`)

// shellSnippetRe matches backtick-delimited inline shell markers.
var shellSnippetRe = regexp.MustCompile("!`([^`]+)`")

// FileRefs extracts @path file references from content, in document order.
func FileRefs(content string) []string {
	var refs []string
	for _, m := range fileRefRe.FindAllStringSubmatch(content, -1) {
		refs = append(refs, m[1])
	}
	return refs
}

// ShellSnippets extracts !`command` inline shell snippets from content, in
// document order.
func ShellSnippets(content string) []string {
	var snippets []string
	for _, m := range shellSnippetRe.FindAllStringSubmatch(content, -1) {
		snippets = append(snippets, m[1])
	}
	return snippets
}

// IsUnsafeRef reports whether a file reference escapes the working
// directory: absolute paths and parent-directory traversal are unsafe.
func IsUnsafeRef(ref string) bool {
	return strings.HasPrefix(ref, "/") || strings.Contains(ref, "..")
}

// Scan returns a human-readable finding for every denylisted pattern and
// unsafe file reference in content. Findings are computed unconditionally;
// policy application happens in Validate.
func Scan(content string) []string {
	var findings []string

	for i, re := range compiledPatterns {
		if re.MatchString(content) {
			findings = append(findings, patternFinding(dangerousPatterns[i]))
		}
	}

	for _, ref := range FileRefs(content) {
		if IsUnsafeRef(ref) {
			findings = append(findings, refFinding(ref))
		}
	}

	return findings
}

// Outcome is the result of validating content under a policy.
type Outcome struct {
	// Findings are the surviving (non-exempted) findings.
	Findings []string
	// Warn is set when the policy level is Warn and findings survived.
	Warn bool
	// Error is set when the policy level is Enforce and findings survived.
	Error bool
}

// Validate scans content and applies policy. Exemption matching is
// deliberately approximate: whitespace runs in an exempted pattern are
// normalized to \s+ before comparing against the denylist source, and the
// other way around, so "rm -rf" exempts the `rm\s+-rf` pattern. File
// reference findings are exempted by substring match on the reference.
func Validate(content string, policy Policy) Outcome {
	var findings []string

	for i, re := range compiledPatterns {
		if isExemptedPattern(dangerousPatterns[i], policy.IgnoredPatterns) {
			continue
		}
		if re.MatchString(content) {
			findings = append(findings, patternFinding(dangerousPatterns[i]))
		}
	}

	for _, ref := range FileRefs(content) {
		if !IsUnsafeRef(ref) {
			continue
		}
		if isExemptedRef(ref, policy.IgnoredPatterns) {
			continue
		}
		findings = append(findings, refFinding(ref))
	}

	return Outcome{
		Findings: findings,
		Warn:     policy.Level == LevelWarn && len(findings) > 0,
		Error:    policy.Level == LevelEnforce && len(findings) > 0,
	}
}

// ValidateContent applies Enforce semantics against the default policy and
// returns a SecurityError naming the command when findings survive.
func ValidateContent(command, content string) error {
	outcome := Validate(content, DefaultPolicy())
	if outcome.Error {
		return &SecurityError{
			Command: command,
			Message: fmt.Sprintf("security risks detected: %s", strings.Join(outcome.Findings, ", ")),
		}
	}
	return nil
}

func isExemptedPattern(patternSrc string, ignored []string) bool {
	plain := strings.ReplaceAll(patternSrc, `\s+`, " ")
	for _, ig := range ignored {
		normalized := strings.ReplaceAll(ig, " ", `\s+`)
		if strings.Contains(patternSrc, normalized) || strings.Contains(ig, plain) {
			return true
		}
	}
	return false
}

func isExemptedRef(ref string, ignored []string) bool {
	for _, ig := range ignored {
		if ig != "" && strings.Contains(ref, ig) {
			return true
		}
	}
	return false
}

func patternFinding(src string) string {
	return fmt.Sprintf("potentially dangerous pattern detected: %s", src)
}

func refFinding(ref string) string {
	return fmt.Sprintf("potentially unsafe file reference: %s", ref)
}
