package wizard

import (
	"regexp"
	"strings"
)

var redactPattern = regexp.MustCompile(
	`(token|client.*|url|api_*key|secret|error|delete|run_start|run_end|version|changes|username|password): .+`)

// RedactSensitiveData blanks credential-looking values in a rendered
// document, line by line, for the shareable download variant.
func RedactSensitiveData(yamlContent string) string {
	lines := strings.Split(yamlContent, "\n")
	for i, line := range lines {
		lines[i] = redactPattern.ReplaceAllString(strings.TrimRight(line, "\r\n"), "$1: (redacted)")
	}
	return strings.Join(lines, "\n")
}
