package ports

import "clipedit/internal/domain"

// EditorLocator finds an installed terminal text editor
type EditorLocator interface {
	// Locate tries a system-path lookup first, then a fixed list of known
	// install locations. Returns an error wrapping application.ErrEditorNotFound
	// when nothing is found.
	Locate() (domain.EditorHandle, error)
}
