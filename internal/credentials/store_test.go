package credentials

import (
	"context"
	"errors"
	"testing"

	"quiz_answer_llm/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, fallback string) *Store {
	t.Helper()
	keyring.MockInit()

	cfg := config.Default()
	cfg.LLMAPIKey = fallback
	return NewStore(cfg, zap.NewNop())
}

func TestStore_MissingKey(t *testing.T) {
	store := newTestStore(t, "")

	_, err := store.APIKey(context.Background())
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestStore_SetThenGet(t *testing.T) {
	store := newTestStore(t, "")

	require.NoError(t, store.SetAPIKey("  sk-abcdef123456  "))

	key, source, err := store.Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-abcdef123456", key)
	assert.Equal(t, SourceKeyring, source)
}

func TestStore_SetEmptyKey(t *testing.T) {
	store := newTestStore(t, "")

	assert.ErrorIs(t, store.SetAPIKey("   "), ErrEmptyKey)
}

func TestStore_FallbackToConfig(t *testing.T) {
	store := newTestStore(t, "sk-from-config")

	key, source, err := store.Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-from-config", key)
	assert.Equal(t, SourceConfig, source)

	require.NoError(t, store.SetAPIKey("sk-from-keyring"))
	key, err = store.APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-from-keyring", key)
}

func TestStore_KeyringErrorFallsBack(t *testing.T) {
	store := newTestStore(t, "sk-from-config")
	keyring.MockInitWithError(errors.New("dbus unavailable"))
	t.Cleanup(keyring.MockInit)

	key, err := store.APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-from-config", key)
}

func TestStore_Remove(t *testing.T) {
	store := newTestStore(t, "")

	require.NoError(t, store.RemoveAPIKey(), "removing an absent key is fine")
	require.NoError(t, store.SetAPIKey("sk-1"))
	require.NoError(t, store.RemoveAPIKey())

	_, err := store.APIKey(context.Background())
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestStore_CancelledContext(t *testing.T) {
	store := newTestStore(t, "sk")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.APIKey(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "(not set)", Mask(""))
	assert.Equal(t, "••••••", Mask("short"))
	assert.Equal(t, "••••••", Mask("0123456789"))
	assert.Equal(t, "sk-a…wxyz", Mask("sk-abcdefuvwxyz"))
}
