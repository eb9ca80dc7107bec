package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdash/internal/complaint"
	cdasherrors "cdash/internal/errors"
	"cdash/internal/workbook"
)

func put(s *Store) *Session {
	records := []complaint.Record{{Category: "Damaged", Reporter: "Jane Doe"}}
	return s.Put(records, workbook.LoadStats{Rows: 1}, []string{"Damaged"}, time.Time{}, time.Time{})
}

func TestPutAndGet(t *testing.T) {
	s := New(time.Minute, 10)
	defer s.Stop()

	sess := put(s)
	require.NotEmpty(t, sess.ID)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Len(t, got.Records, 1)
	assert.Equal(t, 1, s.Len())
}

func TestGetUnknownSession(t *testing.T) {
	s := New(time.Minute, 10)
	defer s.Stop()

	_, err := s.Get("nope")
	require.Error(t, err)
	assert.True(t, cdasherrors.IsSessionNotFound(err))
}

func TestExpiry(t *testing.T) {
	s := New(10*time.Millisecond, 10)
	defer s.Stop()

	sess := put(s)
	time.Sleep(25 * time.Millisecond)

	_, err := s.Get(sess.ID)
	require.Error(t, err)
	assert.True(t, cdasherrors.IsSessionNotFound(err))
}

func TestSweep(t *testing.T) {
	s := New(10*time.Millisecond, 10)
	defer s.Stop()

	put(s)
	put(s)
	time.Sleep(25 * time.Millisecond)

	assert.Equal(t, 2, s.Sweep())
	assert.Equal(t, 0, s.Len())
}

func TestEvictOldestAtCapacity(t *testing.T) {
	s := New(time.Minute, 2)
	defer s.Stop()

	first := put(s)
	time.Sleep(2 * time.Millisecond)
	second := put(s)
	time.Sleep(2 * time.Millisecond)
	third := put(s)

	assert.Equal(t, 2, s.Len())

	_, err := s.Get(first.ID)
	assert.True(t, cdasherrors.IsSessionNotFound(err), "oldest session should be evicted")

	_, err = s.Get(second.ID)
	assert.NoError(t, err)
	_, err = s.Get(third.ID)
	assert.NoError(t, err)
}

func TestConcurrency(t *testing.T) {
	s := New(time.Minute, 100)
	defer s.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := put(s)
			_, _ = s.Get(sess.ID)
			s.Sweep()
		}()
	}
	wg.Wait()

	// If we get here without the race detector complaining, the mutex is working
	assert.Equal(t, 10, s.Len())
}
