package ports

import "clipedit/internal/domain"

// SessionJournal keeps a history of edit sessions
type SessionJournal interface {
	Record(session *domain.EditSession) error

	// Recent returns up to limit sessions, newest first
	Recent(limit int) ([]domain.EditSession, error)

	Close() error
}
