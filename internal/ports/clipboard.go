package ports

// Clipboard is the system clipboard
type Clipboard interface {
	// Read returns the clipboard text, or "" when it holds no text
	Read() (string, error)

	// Write replaces the clipboard contents
	Write(text string) error
}
