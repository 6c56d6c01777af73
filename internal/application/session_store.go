package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
)

const secretNamespace = "dlc"

// SessionStore owns the client session. Credentials live in the secret store,
// the profile and conversation identity in the state repository. Only
// Establish and Clear change the credential and profile.
type SessionStore struct {
	mu        sync.RWMutex
	secrets   ports.SecretStore
	state     ports.StateRepository
	identity  ports.IdentityGenerator
	navigator ports.Navigator
	onClear   []func()
	snapshot  domain.Session
	logger    zerolog.Logger
}

func NewSessionStore(secrets ports.SecretStore, state ports.StateRepository, identity ports.IdentityGenerator, logger zerolog.Logger) *SessionStore {
	if identity == nil {
		identity = UUIDIdentity{}
	}

	return &SessionStore{
		secrets:  secrets,
		state:    state,
		identity: identity,
		logger:   logger,
	}
}

// SetNavigator registers where Clear sends the user afterwards.
func (s *SessionStore) SetNavigator(navigator ports.Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigator = navigator
}

// OnClear registers a hook that runs after every Clear.
func (s *SessionStore) OnClear(hook func()) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, hook)
}

// Load hydrates the snapshot from durable storage.
func (s *SessionStore) Load(ctx context.Context) error {
	token, err := s.secrets.Get(ctx, secretKey(domain.KeyCredential))
	if err != nil {
		if !errors.Is(err, domain.ErrSecretNotFound) {
			return fmt.Errorf("load credential: %w", err)
		}
		token = ""
	}

	state, err := s.state.Load(ctx)
	if err != nil {
		return fmt.Errorf("load client state: %w", err)
	}

	session := domain.Session{
		CredentialToken:      strings.TrimSpace(token),
		ConversationIdentity: state.ConversationIdentity,
		Profile:              state.Profile,
	}.Normalize()
	if state.Profile != nil && session.Profile == nil {
		s.logger.Debug().Msg("dropping stored profile without credential")
	}

	s.mu.Lock()
	s.snapshot = session
	s.mu.Unlock()

	return nil
}

func (s *SessionStore) GetSession() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Normalize()
}

// Establish records a successful sign-in. The snapshot reflects it before
// Establish returns.
func (s *SessionStore) Establish(ctx context.Context, token string, profile *domain.Profile) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("establish session: credential is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	credentialKeys := []string{secretKey(domain.KeyCredential), secretKey(domain.KeyChatCredential)}
	for i, key := range credentialKeys {
		if err := s.secrets.Put(ctx, key, token); err != nil {
			if rollbackErr := s.deleteSecrets(ctx, credentialKeys[:i]); rollbackErr != nil {
				return fmt.Errorf("store credential and rollback: %w", errors.Join(err, rollbackErr))
			}
			return fmt.Errorf("store credential: %w", err)
		}
	}

	var stored *domain.Profile
	if profile != nil {
		copied := *profile
		stored = &copied
	}

	if err := s.state.Save(ctx, ports.ClientState{Profile: stored, ConversationIdentity: s.snapshot.ConversationIdentity}); err != nil {
		if rollbackErr := s.deleteSecrets(ctx, credentialKeys); rollbackErr != nil {
			return fmt.Errorf("save profile and rollback credential: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save profile: %w", err)
	}

	s.snapshot = domain.Session{
		CredentialToken:      token,
		ConversationIdentity: s.snapshot.ConversationIdentity,
		Profile:              stored,
	}
	s.logger.Debug().Bool("profile", stored != nil).Msg("session established")

	return nil
}

// Clear removes every persisted session key, resets the snapshot and
// navigates to the entry route. The snapshot is reset even when storage fails.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	err := s.deleteSecrets(ctx, []string{secretKey(domain.KeyCredential), secretKey(domain.KeyChatCredential)})
	if saveErr := s.state.Save(ctx, ports.ClientState{}); saveErr != nil {
		err = errors.Join(err, fmt.Errorf("clear client state: %w", saveErr))
	}
	s.snapshot = domain.Session{}
	navigator := s.navigator
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	if navigator != nil {
		navigator.Navigate(domain.RouteHome)
	}

	if err != nil {
		s.logger.Warn().Err(err).Msg("session clear incomplete")
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// EnsureConversationIdentity returns the stored conversation identity,
// creating and persisting one on first use. When persisting fails the new
// identity is still returned and kept for this process.
func (s *SessionStore) EnsureConversationIdentity(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.ConversationIdentity != "" {
		return s.snapshot.ConversationIdentity, nil
	}

	identity := s.identity.NewConversationIdentity()
	s.snapshot.ConversationIdentity = identity

	if err := s.state.Save(ctx, ports.ClientState{Profile: s.snapshot.Profile, ConversationIdentity: identity}); err != nil {
		return identity, fmt.Errorf("save conversation identity: %w", err)
	}
	return identity, nil
}

func (s *SessionStore) deleteSecrets(ctx context.Context, keys []string) error {
	var err error
	for _, key := range keys {
		if deleteErr := s.secrets.Delete(ctx, key); deleteErr != nil {
			err = errors.Join(err, fmt.Errorf("delete %s: %w", key, deleteErr))
		}
	}
	return err
}

func secretKey(name string) string {
	return secretNamespace + "/" + name
}
