package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/dlyog/dl-creator-cli/internal/adapters/secrets/file"
	passstore "github.com/dlyog/dl-creator-cli/internal/adapters/secrets/pass"
	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
)

var errNoBackends = errors.New("no secret backends configured")

// Store layers credential backends in priority order. Put lands in the first
// backend that accepts the write, Get returns the first hit and Delete
// reaches every backend, so a credential written while pass was missing is
// still removed on logout.
type Store struct {
	backends []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func New(backends ...ports.SecretStore) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend == nil {
			return nil, fmt.Errorf("secret backend %d is nil", i)
		}
	}

	return &Store{backends: backends}, nil
}

// NewPassFirstWithFileFallback prefers pass and falls back to files under fileRoot.
func NewPassFirstWithFileFallback(passDir string, fileRoot string) (*Store, error) {
	return New(passstore.NewStore(passDir), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs error
	for i, backend := range s.backends {
		err := backend.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if aborted(err) {
			return err
		}
		errs = errors.Join(errs, fmt.Errorf("backend %d: %w", i, err))
	}

	return fmt.Errorf("store secret %q: %w", key, errs)
}

// Get reports domain.ErrSecretNotFound only when every backend missed or was
// unavailable. Any other failure is returned without the not-found marker.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs error
	for i, backend := range s.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if aborted(err) {
			return "", err
		}
		if missing(err) {
			continue
		}
		errs = errors.Join(errs, fmt.Errorf("backend %d: %w", i, err))
	}

	if errs == nil {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return "", fmt.Errorf("read secret %q: %w", key, errs)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var errs error
	for i, backend := range s.backends {
		err := backend.Delete(ctx, key)
		if err == nil || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		if aborted(err) {
			return err
		}
		errs = errors.Join(errs, fmt.Errorf("backend %d: %w", i, err))
	}

	if errs != nil {
		return fmt.Errorf("delete secret %q: %w", key, errs)
	}
	return nil
}

func missing(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, passstore.ErrUnavailable)
}

func aborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
