// Package chain resolves profile credentials from pass first and from the
// credential file directory when pass is missing or fails.
package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	filestore "github.com/bnema/walletwise-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/walletwise-cli/internal/adapters/secrets/pass"
	"github.com/bnema/walletwise-cli/internal/logger"
	"github.com/bnema/walletwise-cli/internal/ports"
)

var (
	errNoPrimary  = errors.New("credential store chain: primary backend is nil")
	errNoFallback = errors.New("credential store chain: fallback backend is nil")
)

// Store tries primary and then fallback. Cancellation and deadline errors
// are returned as-is without touching the fallback.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	log      *slog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func NewStore(primary, fallback ports.SecretStore, opts ...Option) (*Store, error) {
	switch {
	case primary == nil:
		return nil, errNoPrimary
	case fallback == nil:
		return nil, errNoFallback
	}

	s := &Store{primary: primary, fallback: fallback, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// NewCredentialStore is the store `ww` runs with: pass, then 0600 files
// under dir.
func NewCredentialStore(dir string, opts ...Option) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(dir), opts...)
}

func (s *Store) Put(ctx context.Context, key string, token string) error {
	err := s.primary.Put(ctx, key, token)
	if err == nil || interrupted(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, key, token); fallbackErr != nil {
		return fmt.Errorf("store credential %q: primary backend: %w; fallback backend: %w", key, err, fallbackErr)
	}
	s.log.Warn("credential stored in fallback file store", "key", key, "primary_error", err)

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	token, err := s.primary.Get(ctx, key)
	if err == nil || interrupted(err) {
		return token, err
	}

	token, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr != nil {
		return "", fmt.Errorf("load credential %q: primary backend: %w; fallback backend: %w", key, err, fallbackErr)
	}
	s.log.Debug("credential loaded from fallback file store", "key", key)

	return token, nil
}

// Delete clears the key from both backends, since an earlier Put may have
// landed in the fallback while pass was unavailable. It fails only when
// neither backend could delete.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if err != nil && interrupted(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err == nil || fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("delete credential %q: primary backend: %w; fallback backend: %w", key, err, fallbackErr)
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
