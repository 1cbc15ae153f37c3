package terminal

import "strings"

// ShellEscape makes s a single word for a POSIX shell by backslash-escaping
// every ASCII character outside a small safe set. Spaces and quotes in paths
// therefore survive word splitting unchanged.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}

	var b strings.Builder
	// bytes, not runes: invalid UTF-8 must reach the shell untouched
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\n':
			// backslash-newline is a line continuation, so quote it instead
			b.WriteString("'\n'")
		case c >= 0x80, isShellSafe(c):
			b.WriteByte(c)
		default:
			b.WriteByte('\\')
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isShellSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("_@%+=:,./-", c) >= 0
}

// shellDoubleQuote escapes the characters that stay special inside a
// double-quoted shell string
func shellDoubleQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AppleScriptString escapes s for use inside an AppleScript string literal
func AppleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// InnerCommand is the editor invocation: `<editor> <file> [flags...]`,
// every word shell-escaped
func InnerCommand(editorPath, filePath string, flags []string) string {
	words := make([]string, 0, 2+len(flags))
	words = append(words, ShellEscape(editorPath), ShellEscape(filePath))
	for _, f := range flags {
		words = append(words, ShellEscape(f))
	}
	return strings.Join(words, " ")
}

// ShellCommand wraps the inner command as `<shell> -c "<inner> && exit"`
// so the terminal closes once the editor quits
func ShellCommand(shell, editorPath, filePath string, flags []string) string {
	inner := InnerCommand(editorPath, filePath, flags) + " && exit"
	return ShellEscape(shell) + ` -c "` + shellDoubleQuote(inner) + `"`
}

// BuildLaunchScript returns the terminal-scripting program that opens a
// window in the backend's application running the editor against filePath
func BuildLaunchScript(backend Backend, shell, editorPath, filePath string, flags []string) string {
	return backend.Script(ShellCommand(shell, editorPath, filePath, flags))
}
