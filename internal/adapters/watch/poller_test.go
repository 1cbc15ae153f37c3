package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipedit/internal/application"
	"clipedit/internal/config"
)

// scriptedReads returns each result in turn, then repeats the last one
type scriptedReads struct {
	mu      sync.Mutex
	results []readResult
	calls   int
}

type readResult struct {
	data string
	err  error
}

func (s *scriptedReads) read(string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	r := s.results[i]
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.data), nil
}

func (s *scriptedReads) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestPoller_IgnoresUnchangedRewrites(t *testing.T) {
	reads := &scriptedReads{results: []readResult{
		{data: "hello"},
		{data: "hello"},
		{data: "hello"},
		{data: "world"},
	}}
	p := NewPoller(time.Millisecond, 0)
	p.readFile = reads.read

	err := p.WaitForChange(context.Background(), "/tmp/f", "hello")
	require.NoError(t, err)
	assert.Equal(t, 4, reads.count(), "must return on the first differing read, not earlier")
}

func TestPoller_SwallowsTransientReadErrors(t *testing.T) {
	reads := &scriptedReads{results: []readResult{
		{err: errors.New("resource busy")},
		{err: os.ErrPermission},
		{data: "hello"},
		{data: "edited"},
	}}
	p := NewPoller(time.Millisecond, 0)
	p.readFile = reads.read

	require.NoError(t, p.WaitForChange(context.Background(), "/tmp/f", "hello"))
	assert.Equal(t, 4, reads.count())
}

func TestPoller_MissingFileKeepsWaiting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	p := NewPoller(5*time.Millisecond, 0)

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = os.WriteFile(path, []byte("created later"), 0o600)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.WaitForChange(ctx, path, "original"))
}

func TestPoller_AlphaToBetaTiming(t *testing.T) {
	const interval = 50 * time.Millisecond
	const settleDelay = 50 * time.Millisecond

	path := filepath.Join(t.TempDir(), "clipedit-1.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha"), 0o600))

	p := NewPoller(interval, settleDelay)

	start := time.Now()
	go func() {
		time.Sleep(2 * interval)
		_ = os.WriteFile(path, []byte("beta"), 0o600)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.WaitForChange(ctx, path, "alpha"))
	elapsed := time.Since(start)

	expected := 2*interval + settleDelay
	assert.GreaterOrEqual(t, elapsed, expected-interval)
	// one tick of tolerance plus scheduler slack
	assert.Less(t, elapsed, expected+interval+200*time.Millisecond)
}

func TestPoller_SettleDelayApplied(t *testing.T) {
	reads := &scriptedReads{results: []readResult{{data: "changed"}}}
	p := NewPoller(time.Millisecond, 80*time.Millisecond)
	p.readFile = reads.read

	start := time.Now()
	require.NoError(t, p.WaitForChange(context.Background(), "/tmp/f", "base"))
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestPoller_Cancelled(t *testing.T) {
	reads := &scriptedReads{results: []readResult{{data: "same"}}}
	p := NewPoller(time.Millisecond, 0)
	p.readFile = reads.read

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := p.WaitForChange(ctx, "/tmp/f", "same")
	require.Error(t, err)
	assert.True(t, errors.Is(err, application.ErrWaitCancelled))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPoller_Timeout(t *testing.T) {
	reads := &scriptedReads{results: []readResult{{data: "same"}}}
	p := NewPoller(time.Millisecond, 0)
	p.readFile = reads.read

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := p.WaitForChange(ctx, "/tmp/f", "same")
	assert.ErrorIs(t, err, application.ErrWaitCancelled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_SelectsStrategy(t *testing.T) {
	cfg := config.Default().Watch

	_, ok := New(cfg).(*Poller)
	assert.True(t, ok, "poll strategy should build a Poller")

	cfg.Strategy = config.StrategyFsnotify
	_, ok = New(cfg).(*Notifier)
	assert.True(t, ok, "fsnotify strategy should build a Notifier")
}
