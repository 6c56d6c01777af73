package ports

import "context"

// SecretStore holds credential material. Get returns domain.ErrSecretNotFound
// (possibly wrapped) when the key has never been written or was deleted.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
