package expand

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ArgumentsPlaceholder is the catch-all placeholder replaced by every
// call-time argument, shell-quoted and space-joined.
const ArgumentsPlaceholder = "$ARGUMENTS"

// maxPositionalArgs bounds the $1..$N positional placeholders.
const maxPositionalArgs = 10

// appendedArgsHeader delimits the argument block appended when a body has
// no catch-all placeholder but arguments were supplied, so no argument is
// ever silently discarded.
const appendedArgsHeader = "\n\n---\n\n**Command arguments:**\n"

// SubstituteArgs performs argument substitution on a command body.
//
// With no arguments, every placeholder (catch-all and positional) resolves
// to the empty string and the body is otherwise untouched. With arguments,
// positional placeholders are replaced first, then the catch-all is
// replaced by the quoted join; when the catch-all is absent, the arguments
// are appended in a delimited block instead.
func SubstituteArgs(body string, args []string) string {
	if len(args) == 0 {
		result := strings.ReplaceAll(body, ArgumentsPlaceholder, "")
		for i := 1; i <= maxPositionalArgs; i++ {
			result = strings.ReplaceAll(result, fmt.Sprintf("$%d", i), "")
		}
		return result
	}

	result := body
	for i, arg := range args {
		if i >= maxPositionalArgs {
			break
		}
		result = strings.ReplaceAll(result, fmt.Sprintf("$%d", i+1), arg)
	}

	joined := QuoteJoin(args)

	if strings.Contains(result, ArgumentsPlaceholder) {
		return strings.ReplaceAll(result, ArgumentsPlaceholder, joined)
	}

	var sb strings.Builder
	sb.WriteString(result)
	sb.WriteString(appendedArgsHeader)
	sb.WriteString(fmt.Sprintf("```\n%s\n```", joined))
	sb.WriteString("\n\nPlease execute the process considering the above arguments.")
	return sb.String()
}

// QuoteJoin renders args as a single shell-safe, space-joined string.
func QuoteJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Only unprintable control bytes fail to quote; pass through.
			q = arg
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
