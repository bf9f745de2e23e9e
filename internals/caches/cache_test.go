package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data    map[string][]byte
	failGet bool
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string, dst any) (bool, error) {
	if m.failGet {
		return false, errors.New("connection refused")
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, sonic.Unmarshal(raw, dst)
}

func (m *memStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func useStore(t *testing.T, s Store) {
	t.Helper()
	prev := Default()
	SetDefault(s)
	t.Cleanup(func() { SetDefault(prev) })
}

func TestRememberLoadsOnce(t *testing.T) {
	useStore(t, newMemStore())
	ctx := context.Background()

	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"boosts", "newsletter"}, nil
	}

	got, err := Remember(ctx, KeyFeatureFlags, time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"boosts", "newsletter"}, got)

	got, err = Remember(ctx, KeyFeatureFlags, time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"boosts", "newsletter"}, got)
	assert.Equal(t, 1, calls)

	Invalidate(ctx, KeyFeatureFlags)
	_, err = Remember(ctx, KeyFeatureFlags, time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRememberLoadErrorIsNotCached(t *testing.T) {
	store := newMemStore()
	useStore(t, store)

	_, err := Remember(context.Background(), KeyAdminStats, time.Minute, func() (int, error) {
		return 0, errors.New("db down")
	})
	require.Error(t, err)
	assert.Empty(t, store.data)
}

func TestRememberSurvivesBrokenStore(t *testing.T) {
	store := newMemStore()
	store.failGet = true
	useStore(t, store)

	got, err := Remember(context.Background(), KeyFooterSettings, time.Minute, func() (string, error) {
		return "footer", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "footer", got)
}

func TestNoopAlwaysMisses(t *testing.T) {
	useStore(t, nil)
	_, ok := Default().(Noop)
	require.True(t, ok)

	calls := 0
	for i := 0; i < 2; i++ {
		_, err := Remember(context.Background(), KeyOrganization, time.Minute, func() (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}
