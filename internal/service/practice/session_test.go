package practice_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/service/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	sessions := practice.NewMemorySessionStore()
	userID := uuid.New()

	sessions.Put(&practice.Session{UserID: userID, State: practice.StateAwaitingPartChoice})

	first, ok := sessions.Get(userID)
	require.True(t, ok)

	// Mutating the returned copy must not leak into the store.
	first.State = practice.StateScoring

	second, ok := sessions.Get(userID)
	require.True(t, ok)
	assert.Equal(t, practice.StateAwaitingPartChoice, second.State)
}

func TestMemorySessionStore_PutReplacesAndStamps(t *testing.T) {
	t.Parallel()

	sessions := practice.NewMemorySessionStore()
	userID := uuid.New()

	sessions.Put(&practice.Session{UserID: userID, State: practice.StateAwaitingPartChoice})
	sessions.Put(&practice.Session{UserID: userID, State: practice.StateAwaitingAnswer})

	session, ok := sessions.Get(userID)
	require.True(t, ok)
	assert.Equal(t, practice.StateAwaitingAnswer, session.State)
	assert.False(t, session.UpdatedAt.IsZero())
}

func TestMemorySessionStore_Delete(t *testing.T) {
	t.Parallel()

	sessions := practice.NewMemorySessionStore()
	userID := uuid.New()

	sessions.Put(&practice.Session{UserID: userID, State: practice.StateReportReady})
	sessions.Delete(userID)

	_, ok := sessions.Get(userID)
	assert.False(t, ok)

	// Deleting a missing session is a no-op.
	sessions.Delete(uuid.New())
}

func TestMemorySessionStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	sessions := practice.NewMemorySessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := uuid.New()
			sessions.Put(&practice.Session{UserID: userID, State: practice.StateScoring})
			_, _ = sessions.Get(userID)
			sessions.Delete(userID)
		}()
	}
	wg.Wait()
}
