package commands

import (
	"context"
	"fmt"

	"clipedit/internal/application"
	"clipedit/internal/domain"
	"clipedit/internal/ports"
)

// DefaultHistoryLimit is used when no limit is given
const DefaultHistoryLimit = 20

// ListSessionsResult contains journaled sessions, newest first
type ListSessionsResult struct {
	Sessions []domain.EditSession
}

// Updated counts sessions that ended with the clipboard replaced
func (r *ListSessionsResult) Updated() int {
	n := 0
	for _, s := range r.Sessions {
		if s.Outcome == domain.OutcomeUpdated {
			n++
		}
	}
	return n
}

// ListSessionsCommand reads recent sessions from the journal
type ListSessionsCommand struct {
	journal ports.SessionJournal
	Limit   int
}

// NewListSessionsCommand creates a new ListSessionsCommand
func NewListSessionsCommand(journal ports.SessionJournal, limit int) *ListSessionsCommand {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return &ListSessionsCommand{journal: journal, Limit: limit}
}

// Validate checks the limit
func (c *ListSessionsCommand) Validate() error {
	return application.ValidatePositive("limit", c.Limit)
}

// Execute runs the list command
func (c *ListSessionsCommand) Execute(ctx context.Context) (*ListSessionsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sessions, err := c.journal.Recent(c.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &ListSessionsResult{Sessions: sessions}, nil
}
