package application

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
	"github.com/dlyog/dl-creator-cli/internal/ports/mocks"
)

func newAuthFixture(t *testing.T) (*AuthService, *mocks.MockAuthAPI, *mocks.MockSecretStore, *mocks.MockStateRepository, *SessionStore) {
	t.Helper()

	api := mocks.NewMockAuthAPI(t)
	secrets := mocks.NewMockSecretStore(t)
	state := mocks.NewMockStateRepository(t)
	session := NewSessionStore(secrets, state, fixedIdentity("user_1"), zerolog.Nop())

	return NewAuthService(api, session, zerolog.Nop()), api, secrets, state, session
}

func signedToken(t *testing.T, subject string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestAuthServiceLoginValidatesBeforeNetwork(t *testing.T) {
	service, _, _, _, session := newAuthFixture(t)

	_, err := service.Login(context.Background(), domain.LoginForm{Email: "  "})
	require.Error(t, err)

	var formErrs domain.FormErrors
	require.True(t, errors.As(err, &formErrs))
	assert.Equal(t, "Email is required", formErrs["email"])
	assert.Equal(t, "Password is required", formErrs["password"])
	assert.False(t, session.GetSession().Authenticated())
}

func TestAuthServiceLoginEstablishesSessionWithServerProfile(t *testing.T) {
	service, api, secrets, state, _ := newAuthFixture(t)

	api.EXPECT().Login(mockAnyContext(), domain.LoginForm{Email: "ada@example.com", Password: "secret1"}).
		Return(ports.LoginResult{Token: "jwt-abc", User: &domain.Profile{DisplayName: "Ada Lovelace", Email: "ada@example.com"}}, nil)
	secrets.EXPECT().Put(mockAnyContext(), "dlc/token", "jwt-abc").Return(nil)
	secrets.EXPECT().Put(mockAnyContext(), "dlc/jwt", "jwt-abc").Return(nil)
	state.EXPECT().Save(mockAnyContext(), ports.ClientState{Profile: &domain.Profile{DisplayName: "Ada Lovelace", Email: "ada@example.com"}}).Return(nil)

	session, err := service.Login(context.Background(), domain.LoginForm{Email: " ada@example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", session.CredentialToken)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "Ada Lovelace", session.Profile.DisplayName)
}

func TestAuthServiceLoginDerivesProfileFromTokenSubject(t *testing.T) {
	service, api, secrets, state, _ := newAuthFixture(t)
	token := signedToken(t, "ada")

	api.EXPECT().Login(mockAnyContext(), mock.Anything).Return(ports.LoginResult{Token: token}, nil)
	secrets.EXPECT().Put(mockAnyContext(), mock.Anything, token).Return(nil).Twice()
	state.EXPECT().Save(mockAnyContext(), ports.ClientState{Profile: &domain.Profile{DisplayName: "ada", Email: "ada@example.com"}}).Return(nil)

	session, err := service.Login(context.Background(), domain.LoginForm{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, session.Profile)
	assert.Equal(t, "ada", session.Profile.DisplayName)
}

func TestAuthServiceLoginFallsBackToEmailForOpaqueToken(t *testing.T) {
	service, api, secrets, state, _ := newAuthFixture(t)

	api.EXPECT().Login(mockAnyContext(), mock.Anything).Return(ports.LoginResult{Token: "opaque"}, nil)
	secrets.EXPECT().Put(mockAnyContext(), mock.Anything, "opaque").Return(nil).Twice()
	state.EXPECT().Save(mockAnyContext(), ports.ClientState{Profile: &domain.Profile{DisplayName: "ada@example.com", Email: "ada@example.com"}}).Return(nil)

	session, err := service.Login(context.Background(), domain.LoginForm{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", session.Profile.DisplayName)
}

func TestAuthServiceLoginMapsFailures(t *testing.T) {
	tests := []struct {
		name   string
		apiErr error
		want   domain.FormErrors
	}{
		{
			name:   "transport failure becomes general message",
			apiErr: errors.New("connection refused"),
			want:   domain.FormErrors{"general": "Login failed. Please try again."},
		},
		{
			name:   "server field errors pass through",
			apiErr: domain.FormErrors{"email": "Unknown email"},
			want:   domain.FormErrors{"email": "Unknown email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, api, _, _, session := newAuthFixture(t)
			api.EXPECT().Login(mockAnyContext(), mock.Anything).Return(ports.LoginResult{}, tt.apiErr)

			_, err := service.Login(context.Background(), domain.LoginForm{Email: "a@b.c", Password: "secret1"})

			var formErrs domain.FormErrors
			require.True(t, errors.As(err, &formErrs))
			assert.Equal(t, tt.want, formErrs)
			assert.False(t, session.GetSession().Authenticated())
		})
	}
}

func TestAuthServiceRegisterValidatesPasswordLength(t *testing.T) {
	service, _, _, _, _ := newAuthFixture(t)

	_, err := service.Register(context.Background(), domain.RegisterForm{FullName: "Ada", Email: "ada@example.com", Password: "12345"})

	var formErrs domain.FormErrors
	require.True(t, errors.As(err, &formErrs))
	assert.Equal(t, domain.FormErrors{"password": "Password must be at least 6 characters"}, formErrs)
}

func TestAuthServiceRegisterDoesNotSignIn(t *testing.T) {
	service, api, _, _, session := newAuthFixture(t)

	api.EXPECT().Register(mockAnyContext(), domain.RegisterForm{FullName: "Ada", Email: "ada@example.com", Password: "secret1"}).
		Return(domain.Profile{DisplayName: "Ada", Email: "ada@example.com"}, nil)

	profile, err := service.Register(context.Background(), domain.RegisterForm{FullName: " Ada ", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.DisplayName)
	assert.False(t, session.GetSession().Authenticated())
}

func TestAuthServiceRegisterMapsTransportFailure(t *testing.T) {
	service, api, _, _, _ := newAuthFixture(t)
	api.EXPECT().Register(mockAnyContext(), mock.Anything).Return(domain.Profile{}, errors.New("timeout"))

	_, err := service.Register(context.Background(), domain.RegisterForm{FullName: "Ada", Email: "ada@example.com", Password: "secret1"})
	assert.Equal(t, domain.General("Registration failed. Please try again."), err)
}

func TestAuthServiceLogoutClearsSession(t *testing.T) {
	service, _, secrets, state, session := newAuthFixture(t)

	secrets.EXPECT().Delete(mockAnyContext(), "dlc/token").Return(nil)
	secrets.EXPECT().Delete(mockAnyContext(), "dlc/jwt").Return(nil)
	state.EXPECT().Save(mockAnyContext(), ports.ClientState{}).Return(nil)

	var route domain.Route
	session.SetNavigator(ports.NavigatorFunc(func(r domain.Route) { route = r }))

	require.NoError(t, service.Logout(context.Background()))
	assert.Equal(t, domain.RouteHome, route)
}

func TestTokenSubjectIgnoresMalformedTokens(t *testing.T) {
	assert.Empty(t, tokenSubject("not-a-jwt"))
	assert.Empty(t, tokenSubject(""))
	assert.Equal(t, "ada", tokenSubject(signedToken(t, "ada")))
}
