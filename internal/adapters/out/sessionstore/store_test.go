package sessionstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a Clock the test can move forward.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Now().UTC().Truncate(time.Second)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// runStoreContract checks the behaviour every SessionStore must share.
func runStoreContract(t *testing.T, newStore func(clock ports.Clock) ports.SessionStore) {
	t.Run("save then get", func(t *testing.T) {
		clock := newManualClock()
		store := newStore(clock)
		session, err := account.NewSession(kernel.NewUUID(), account.Customer, clock.Now(), time.Hour)
		require.NoError(t, err)

		require.NoError(t, store.Save(t.Context(), session))
		got, err := store.Get(t.Context(), session.Token())

		require.NoError(t, err)
		assert.Equal(t, session.Token(), got.Token())
		assert.True(t, session.AccountID().IsEqual(got.AccountID()))
		assert.Equal(t, account.Customer, got.Role())
		assert.True(t, session.ExpiresAt().Equal(got.ExpiresAt()))
	})

	t.Run("unknown token is unauthorized", func(t *testing.T) {
		store := newStore(newManualClock())

		_, err := store.Get(t.Context(), "no-such-token")

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("expired session is unauthorized", func(t *testing.T) {
		clock := newManualClock()
		store := newStore(clock)
		session, err := account.NewSession(kernel.NewUUID(), account.Admin, clock.Now(), time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Save(t.Context(), session))

		clock.Advance(time.Minute)
		_, err = store.Get(t.Context(), session.Token())

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("saving an expired session fails", func(t *testing.T) {
		clock := newManualClock()
		store := newStore(clock)
		session, err := account.NewSession(kernel.NewUUID(), account.Driver, clock.Now().Add(-time.Hour), time.Minute)
		require.NoError(t, err)

		err = store.Save(t.Context(), session)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("delete", func(t *testing.T) {
		clock := newManualClock()
		store := newStore(clock)
		session, err := account.NewSession(kernel.NewUUID(), account.Customer, clock.Now(), time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Save(t.Context(), session))

		require.NoError(t, store.Delete(t.Context(), session.Token()))
		require.NoError(t, store.Delete(t.Context(), session.Token()), "deleting twice is fine")

		_, err = store.Get(t.Context(), session.Token())
		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("zero session is rejected", func(t *testing.T) {
		store := newStore(newManualClock())

		err := store.Save(context.Background(), account.Session{})

		require.ErrorIs(t, err, account.ErrSessionIsNotConstructed)
	})
}
