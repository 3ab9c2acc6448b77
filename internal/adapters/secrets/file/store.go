// Package file keeps WalletWise profile credentials as 0600 files under the
// configured secrets directory, one file per profile and auth method.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/walletwise-cli/internal/adapters/secrets/secretkey"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/bnema/walletwise-cli/internal/ports"
)

const (
	dirMode        = 0o700
	credentialMode = 0o600
)

// Store maps walletwise://<profile>/<method> to <root>/walletwise/<profile>/<method>.
type Store struct {
	root string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Put replaces the credential atomically, so a token refresh that dies
// half-way leaves the previous token readable.
func (s *Store) Put(ctx context.Context, key string, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.credentialPath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create credential file for %q: %w", key, err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.WriteString(token)
	chmodErr := tmp.Chmod(credentialMode)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, chmodErr, closeErr); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write credential %q: %w", key, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace credential %q: %w", key, err)
	}

	return nil
}

// Get returns the stored token. Surrounding whitespace is dropped so a
// hand-edited file with a trailing newline still authenticates.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.credentialPath(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("credential file %q: %w", key, domain.ErrSecretNotFound)
	case err != nil:
		return "", fmt.Errorf("read credential %q: %w", key, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("credential file %q is empty: %w", key, domain.ErrSecretNotFound)
	}

	return token, nil
}

// Delete removes the credential. A missing file is not an error, since
// `ww auth remove` also clears credentials that only ever lived in pass.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.credentialPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credential %q: %w", key, err)
	}

	return nil
}

func (s *Store) credentialPath(key string) (string, error) {
	entry, err := secretkey.Entry(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.root, filepath.FromSlash(entry)), nil
}
