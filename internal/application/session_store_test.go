package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	tomlrepo "github.com/dlyog/dl-creator-cli/internal/adapters/repo/toml"
	filesecret "github.com/dlyog/dl-creator-cli/internal/adapters/secrets/file"
	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
	"github.com/dlyog/dl-creator-cli/internal/ports/mocks"
)

type fixedIdentity string

func (f fixedIdentity) NewConversationIdentity() string {
	return string(f)
}

func mockAnyContext() interface{} {
	return mock.Anything
}

func notFound(key string) error {
	return fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
}

func TestSessionStoreLoadHydratesSnapshot(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, fixedIdentity("user_1"), zerolog.Nop())

	secrets.EXPECT().Get(mockAnyContext(), "dlc/token").Return("jwt-abc", nil)
	state.EXPECT().Load(mockAnyContext()).Return(ports.ClientState{
		Profile:              &domain.Profile{DisplayName: "Ada"},
		ConversationIdentity: "user_9",
	}, nil)

	require.NoError(t, store.Load(context.Background()))

	session := store.GetSession()
	assert.True(t, session.Authenticated())
	assert.Equal(t, "jwt-abc", session.CredentialToken)
	assert.Equal(t, "user_9", session.ConversationIdentity)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "Ada", session.Profile.DisplayName)
}

func TestSessionStoreLoadDropsProfileWithoutCredential(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, fixedIdentity("user_1"), zerolog.Nop())

	secrets.EXPECT().Get(mockAnyContext(), "dlc/token").Return("", notFound("dlc/token"))
	state.EXPECT().Load(mockAnyContext()).Return(ports.ClientState{
		Profile:              &domain.Profile{DisplayName: "Ada"},
		ConversationIdentity: "user_9",
	}, nil)

	require.NoError(t, store.Load(context.Background()))

	session := store.GetSession()
	assert.False(t, session.Authenticated())
	assert.Nil(t, session.Profile)
	assert.Equal(t, "user_9", session.ConversationIdentity)
}

func TestSessionStoreLoadSurfacesSecretFailure(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, nil, zerolog.Nop())

	secrets.EXPECT().Get(mockAnyContext(), "dlc/token").Return("", errors.New("pass locked"))

	err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load credential")
}

func TestSessionStoreEstablishPersistsBothCredentialKeys(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, fixedIdentity("user_1"), zerolog.Nop())

	profile := &domain.Profile{DisplayName: "Ada", Email: "ada@example.com"}
	secrets.EXPECT().Put(mockAnyContext(), "dlc/token", "jwt-abc").Return(nil)
	secrets.EXPECT().Put(mockAnyContext(), "dlc/jwt", "jwt-abc").Return(nil)
	state.EXPECT().Save(mockAnyContext(), ports.ClientState{Profile: profile}).Return(nil)

	require.NoError(t, store.Establish(context.Background(), "jwt-abc", profile))

	session := store.GetSession()
	assert.Equal(t, "jwt-abc", session.CredentialToken)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "Ada", session.Profile.DisplayName)

	profile.DisplayName = "mutated"
	assert.Equal(t, "Ada", store.GetSession().Profile.DisplayName)
}

func TestSessionStoreEstablishRejectsEmptyCredential(t *testing.T) {
	store := NewSessionStore(mocks.NewMockSecretStore(t), mocks.NewMockStateRepository(t), nil, zerolog.Nop())

	err := store.Establish(context.Background(), "  ", &domain.Profile{DisplayName: "Ada"})
	require.Error(t, err)
	assert.False(t, store.GetSession().Authenticated())
}

func TestSessionStoreEstablishRollsBackCredentialWhenProfileSaveFails(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, fixedIdentity("user_1"), zerolog.Nop())

	secrets.EXPECT().Put(mockAnyContext(), "dlc/token", "jwt-abc").Return(nil)
	secrets.EXPECT().Put(mockAnyContext(), "dlc/jwt", "jwt-abc").Return(nil)
	state.EXPECT().Save(mockAnyContext(), mock.Anything).Return(errors.New("disk full"))
	secrets.EXPECT().Delete(mockAnyContext(), "dlc/token").Return(nil)
	secrets.EXPECT().Delete(mockAnyContext(), "dlc/jwt").Return(nil)

	err := store.Establish(context.Background(), "jwt-abc", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save profile")
	assert.False(t, store.GetSession().Authenticated())
}

func TestSessionStoreEstablishRollsBackFirstKeyWhenSecondPutFails(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, fixedIdentity("user_1"), zerolog.Nop())

	secrets.EXPECT().Put(mockAnyContext(), "dlc/token", "jwt-abc").Return(nil)
	secrets.EXPECT().Put(mockAnyContext(), "dlc/jwt", "jwt-abc").Return(errors.New("denied"))
	secrets.EXPECT().Delete(mockAnyContext(), "dlc/token").Return(nil)

	err := store.Establish(context.Background(), "jwt-abc", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store credential")
}

func TestSessionStoreClearRemovesEverythingAndNavigatesHome(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, fixedIdentity("user_1"), zerolog.Nop())

	secrets.EXPECT().Put(mockAnyContext(), mock.Anything, "jwt-abc").Return(nil).Twice()
	state.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil).Once()
	require.NoError(t, store.Establish(context.Background(), "jwt-abc", &domain.Profile{DisplayName: "Ada"}))

	var visited []domain.Route
	store.SetNavigator(ports.NavigatorFunc(func(route domain.Route) { visited = append(visited, route) }))
	hookRuns := 0
	store.OnClear(func() { hookRuns++ })

	secrets.EXPECT().Delete(mockAnyContext(), "dlc/token").Return(nil)
	secrets.EXPECT().Delete(mockAnyContext(), "dlc/jwt").Return(nil)
	state.EXPECT().Save(mockAnyContext(), ports.ClientState{}).Return(nil).Once()

	require.NoError(t, store.Clear(context.Background()))

	assert.Equal(t, domain.Session{}, store.GetSession())
	assert.Equal(t, []domain.Route{domain.RouteHome}, visited)
	assert.Equal(t, 1, hookRuns)
}

func TestSessionStoreClearResetsSnapshotEvenWhenStorageFails(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, fixedIdentity("user_1"), zerolog.Nop())

	secrets.EXPECT().Get(mockAnyContext(), "dlc/token").Return("jwt-abc", nil)
	state.EXPECT().Load(mockAnyContext()).Return(ports.ClientState{ConversationIdentity: "user_9"}, nil)
	require.NoError(t, store.Load(context.Background()))

	navigated := false
	store.SetNavigator(ports.NavigatorFunc(func(domain.Route) { navigated = true }))

	secrets.EXPECT().Delete(mockAnyContext(), "dlc/token").Return(errors.New("pass locked"))
	secrets.EXPECT().Delete(mockAnyContext(), "dlc/jwt").Return(nil)
	state.EXPECT().Save(mockAnyContext(), ports.ClientState{}).Return(nil)

	err := store.Clear(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass locked")
	assert.False(t, store.GetSession().Authenticated())
	assert.Empty(t, store.GetSession().ConversationIdentity)
	assert.True(t, navigated)
}

func TestSessionStoreEnsureConversationIdentityIsIdempotent(t *testing.T) {
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(secrets, state, fixedIdentity("user_fixed"), zerolog.Nop())

	state.EXPECT().Save(mockAnyContext(), ports.ClientState{ConversationIdentity: "user_fixed"}).Return(nil).Once()

	first, err := store.EnsureConversationIdentity(context.Background())
	require.NoError(t, err)
	second, err := store.EnsureConversationIdentity(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user_fixed", first)
	assert.Equal(t, first, second)
	assert.Equal(t, "user_fixed", store.GetSession().ConversationIdentity)
}

func TestSessionStoreEnsureConversationIdentityKeepsIdentityWhenSaveFails(t *testing.T) {
	state := mocks.NewMockStateRepository(t)
	store := NewSessionStore(mocks.NewMockSecretStore(t), state, fixedIdentity("user_fixed"), zerolog.Nop())

	state.EXPECT().Save(mockAnyContext(), mock.Anything).Return(errors.New("read-only")).Once()

	identity, err := store.EnsureConversationIdentity(context.Background())
	require.Error(t, err)
	assert.Equal(t, "user_fixed", identity)

	again, err := store.EnsureConversationIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user_fixed", again)
}

func TestUUIDIdentityFormat(t *testing.T) {
	first := UUIDIdentity{}.NewConversationIdentity()
	second := UUIDIdentity{}.NewConversationIdentity()

	require.True(t, strings.HasPrefix(first, "user_"))
	_, err := uuid.Parse(strings.TrimPrefix(first, "user_"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSessionStoreSurvivesRestartWithFileBackends(t *testing.T) {
	home := t.TempDir()
	ctx := context.Background()

	open := func() *SessionStore {
		repo, err := tomlrepo.NewRepository(viper.New(), home)
		require.NoError(t, err)
		return NewSessionStore(filesecret.NewStore(filepath.Join(home, "secrets")), repo, nil, zerolog.Nop())
	}

	store := open()
	require.NoError(t, store.Load(ctx))
	identity, err := store.EnsureConversationIdentity(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Establish(ctx, "jwt-abc", &domain.Profile{DisplayName: "Ada"}))

	reopened := open()
	require.NoError(t, reopened.Load(ctx))
	session := reopened.GetSession()
	assert.Equal(t, "jwt-abc", session.CredentialToken)
	assert.Equal(t, identity, session.ConversationIdentity)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "Ada", session.Profile.DisplayName)

	require.NoError(t, reopened.Clear(ctx))

	cleared := open()
	require.NoError(t, cleared.Load(ctx))
	assert.Equal(t, domain.Session{}, cleared.GetSession())
}
