package ports

import "context"

// ChangeWaiter blocks until a file's content differs from a baseline
type ChangeWaiter interface {
	// WaitForChange returns nil after the content changed and the settle
	// delay elapsed. It only returns early when ctx is done.
	WaitForChange(ctx context.Context, path, baseline string) error
}
