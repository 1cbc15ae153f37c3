package clipboard

import (
	"sync"

	"clipedit/internal/ports"
)

// Memory is an in-process clipboard. The MCP server uses it when a caller
// supplies text directly instead of going through the OS clipboard.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
}

// Ensure Memory implements Clipboard
var _ ports.Clipboard = (*Memory)(nil)

// NewMemory creates a clipboard holding text
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.writes++
	return nil
}

// Writes reports how many times Write was called
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
