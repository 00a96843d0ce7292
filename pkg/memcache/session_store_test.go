package memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderai/internal/models/plan_models"
	"wanderai/pkg/utils"
)

func TestCreateSeedsWizardDefaults(t *testing.T) {
	store := NewSessionStore(time.Minute)

	sess := store.Create()
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, sess.Step)
	assert.Equal(t, RunIdle, sess.Run)
	assert.Equal(t, float64(1000), sess.Draft.Budget)
	assert.Equal(t, 3, sess.Draft.Days)
	assert.Equal(t, 1, sess.Draft.Travelers)
}

func TestUpdateMutatesLiveSession(t *testing.T) {
	store := NewSessionStore(time.Minute)
	sess := store.Create()

	err := store.Update(sess.ID, func(s *Session) error {
		s.Draft.Destination = "Lisbon"
		s.Log = append(s.Log, plan_models.LogEntry{Message: "hello", Timestamp: time.Now()})
		return nil
	})
	require.NoError(t, err)

	snap, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", snap.Draft.Destination)
	require.Len(t, snap.Log, 1)
	assert.Equal(t, "hello", snap.Log[0].Message)
}

func TestSnapshotLogIsACopy(t *testing.T) {
	store := NewSessionStore(time.Minute)
	sess := store.Create()

	require.NoError(t, store.Update(sess.ID, func(s *Session) error {
		s.Log = []plan_models.LogEntry{{Message: "first"}}
		return nil
	}))

	snap, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	snap.Log[0].Message = "mutated"

	fresh, err := store.Snapshot(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", fresh.Log[0].Message)
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	store := NewSessionStore(time.Minute)

	_, err := store.Snapshot("nope")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	err = store.Update("nope", func(s *Session) error { return nil })
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestExpiredSessionIsGone(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)
	sess := store.Create()

	time.Sleep(25 * time.Millisecond)

	_, err := store.Snapshot(sess.ID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}
