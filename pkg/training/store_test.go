package training

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	store := NewCacheSessionStore(0, 0)

	first := store.GetOrCreate("op-1")
	first.State = StateWaitingQuestion
	store.Save(first)

	second := store.GetOrCreate("op-1")
	assert.Same(t, first, second)
	assert.Equal(t, StateWaitingQuestion, second.State)
}

func TestClearRemovesOneOperator(t *testing.T) {
	store := NewCacheSessionStore(0, 0)
	store.GetOrCreate("op-1")
	store.GetOrCreate("op-2")

	store.Clear("op-1")
	assert.Equal(t, 1, store.Len())
}

func TestResetDropsAllSessions(t *testing.T) {
	store := NewCacheSessionStore(0, 0)
	store.GetOrCreate("op-1")
	store.GetOrCreate("op-2")

	dropped := store.Reset()
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 0, store.Len())
}

func TestSessionsExpire(t *testing.T) {
	store := NewCacheSessionStore(10*time.Millisecond, time.Millisecond)
	session := store.GetOrCreate("op-1")
	session.State = StateAddingInfo
	store.Save(session)

	assert.Eventually(t, func() bool {
		return store.GetOrCreate("op-1").State == StateIdle
	}, time.Second, 10*time.Millisecond)
}
