// Package validate holds the syntactic checks applied to every identifier
// before it is placed on a mise command line. They are the only guard
// against argument injection; nothing downstream re-validates.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	envNamePattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	taskNamePattern  = regexp.MustCompile(`^[A-Za-z0-9_\-:.]+$`)
	configKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+(\.[A-Za-z0-9_\-]+)*$`)
)

// shellMeta is escaped by Sanitize, after backslashes.
var shellMeta = []string{"`", "$", "&", "|", ";", "<", ">", "(", ")", "{", "}", "[", "]", `"`, "'", "\n", "\r"}

// EnvName reports whether s is a POSIX-style environment variable name.
func EnvName(s string) bool {
	return envNamePattern.MatchString(s)
}

// TaskName reports whether s is a mise task name: letters, digits and
// any of "_-:.".
func TaskName(s string) bool {
	return taskNamePattern.MatchString(s)
}

// ConfigKey reports whether s is a dotted settings path such as
// "tools.node.version".
func ConfigKey(s string) bool {
	return configKeyPattern.MatchString(s)
}

// Sanitize renders v as text with NUL bytes removed and shell
// metacharacters backslash-escaped. A nil value yields "".
func Sanitize(v any) string {
	if v == nil {
		return ""
	}

	s := fmt.Sprint(v)
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, `\`, `\\`)
	for _, ch := range shellMeta {
		s = strings.ReplaceAll(s, ch, `\`+ch)
	}
	return s
}
