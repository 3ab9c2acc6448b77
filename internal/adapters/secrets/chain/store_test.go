package chain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/bnema/walletwise-cli/internal/logger"
	"github.com/bnema/walletwise-cli/internal/ports"
	portmocks "github.com/bnema/walletwise-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, primary, fallback ports.SecretStore, opts ...Option) *Store {
	t.Helper()

	store, err := NewStore(primary, fallback, opts...)
	require.NoError(t, err)

	return store
}

func TestNewStoreRequiresBothBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, portmocks.NewMockSecretStore(t))
	require.ErrorIs(t, err, errNoPrimary)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNoFallback)
}

func TestStorePutLogsFallbackToFiles(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback, WithLogger(logger.NewWithWriter(&logs, "info")))

	primary.EXPECT().Put(mock.Anything, "walletwise://personal/session", "sess").Return(errors.New("pass: command not found")).Once()
	fallback.EXPECT().Put(mock.Anything, "walletwise://personal/session", "sess").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), "walletwise://personal/session", "sess"))
	assert.Contains(t, logs.String(), `"msg":"credential stored in fallback file store"`)
	assert.Contains(t, logs.String(), `"key":"walletwise://personal/session"`)
	assert.NotContains(t, logs.String(), "sess\"")
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Get(mock.Anything, "walletwise://personal/token").Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), "walletwise://personal/token")
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Get(mock.Anything, "walletwise://personal/token").Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, "walletwise://personal/token").Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), "walletwise://personal/token")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Get(mock.Anything, "walletwise://personal/token").Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "walletwise://personal/token").Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), "walletwise://personal/token")
	require.Error(t, err)
	assert.ErrorContains(t, err, `load credential "walletwise://personal/token"`)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Put(mock.Anything, "walletwise://personal/token", "secret").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, "walletwise://personal/token", "secret").Return(nil).Once()

	err := store.Put(context.Background(), "walletwise://personal/token", "secret")
	require.NoError(t, err)
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Put(mock.Anything, "walletwise://personal/token", "secret").Return(nil).Once()

	err := store.Put(context.Background(), "walletwise://personal/token", "secret")
	require.NoError(t, err)
}

func TestStoreDeleteSucceedsWhenOnlyFallbackSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "walletwise://personal/token").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, "walletwise://personal/token").Return(nil).Once()

	err := store.Delete(context.Background(), "walletwise://personal/token")
	require.NoError(t, err)
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "walletwise://personal/token").Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, "walletwise://personal/token").Return(errors.New("read-only fs")).Once()

	err := store.Delete(context.Background(), "walletwise://personal/token")
	require.NoError(t, err)
}

func TestStoreDeleteFailsWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "walletwise://personal/token").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, "walletwise://personal/token").Return(errors.New("file failed")).Once()

	err := store.Delete(context.Background(), "walletwise://personal/token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreGetNotFoundInBothBackends(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Get(mock.Anything, "walletwise://personal/token").Return("", fmt.Errorf("pass: %w", domain.ErrSecretNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, "walletwise://personal/token").Return("", fmt.Errorf("file: %w", domain.ErrSecretNotFound)).Once()

	_, err := store.Get(context.Background(), "walletwise://personal/token")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := newTestStore(t, primary, fallback)

	primary.EXPECT().Get(mock.Anything, "walletwise://personal/token").Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), "walletwise://personal/token")
	require.ErrorIs(t, err, context.Canceled)
}
