// Package redact scrubs credentials, connection strings, file paths and
// similar details out of fault messages before they are logged or returned
// to API clients.
package redact

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// rule pairs a pattern with the placeholder that replaces its matches.
// Rules are applied in order, so credential rules run before path rules
// that would otherwise swallow half a connection string.
type rule struct {
	name        string
	pattern     *regexp.Regexp
	placeholder string
}

var rules = []rule{
	{
		name:        "connection_string",
		pattern:     regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb|redis|amqp|db|database)://[^@\s]+@`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		name:        "password",
		pattern:     regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		name:        "jwt",
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		placeholder: "[REDACTED_JWT]",
	},
	{
		name: "api_key",
		pattern: regexp.MustCompile(
			`(?i)(api[_-]?key|token|secret|access[_-]?key|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
		),
		placeholder: RedactedKeyPlaceholder,
	},
	{
		name:        "aws_key",
		pattern:     regexp.MustCompile(`AKIA[A-Z0-9]{12,}`),
		placeholder: RedactedKeyPlaceholder,
	},
	{
		name:        "email",
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		placeholder: "[REDACTED_EMAIL]",
	},
	{
		name:        "unix_path",
		pattern:     regexp.MustCompile(`(/[\w.-]+){2,}`),
		placeholder: RedactedPathPlaceholder,
	},
	{
		name:        "windows_path",
		pattern:     regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		placeholder: RedactedPathPlaceholder,
	},
	{
		name:        "stack_trace",
		pattern:     regexp.MustCompile(`goroutine \d+ \[[^\]]+\]:[\s\S]*`),
		placeholder: "[STACK_TRACE_REDACTED]",
	},
}

// String redacts sensitive information from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from err.Error(). An Error method that
// panics yields the error's type name instead.
func Error(err error) (msg string) {
	if err == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("%T (Error panicked)", err)
		}
	}()
	return String(err.Error())
}

// Stack reduces a goroutine dump from runtime/debug.Stack to its function
// frames, dropping the source file lines and argument values.
func Stack(stack string) string {
	if stack == "" {
		return ""
	}

	var frames []string
	for _, line := range strings.Split(stack, "\n") {
		if line == "" || strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "goroutine ") {
			continue
		}
		if i := strings.LastIndex(line, "("); i > 0 {
			line = line[:i]
		}
		frames = append(frames, line)
	}
	return strings.Join(frames, "\n")
}
