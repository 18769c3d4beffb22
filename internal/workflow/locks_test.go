package workflow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedLocksSerializePerKey(t *testing.T) {
	locks := newKeyedLocks()

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locks.withLock("same", func() error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen, "at most one holder per key")
	assert.Empty(t, locks.locks, "entries are reclaimed at zero refs")
}

func TestKeyedLocksIndependentKeys(t *testing.T) {
	locks := newKeyedLocks()

	first := locks.acquire("a")
	first.mu.Lock()

	done := make(chan struct{})
	go func() {
		// A different key must not block behind "a".
		_ = locks.withLock("b", func() error { return nil })
		close(done)
	}()
	<-done

	first.mu.Unlock()
	locks.release("a")
	assert.Empty(t, locks.locks)
}

func TestKeyedLocksPropagateError(t *testing.T) {
	locks := newKeyedLocks()
	err := locks.withLock("x", func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, locks.locks)
}
