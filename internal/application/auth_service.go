package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
)

const (
	loginFailedMessage    = "Login failed. Please try again."
	registerFailedMessage = "Registration failed. Please try again."
)

type AuthService struct {
	api     ports.AuthAPI
	session *SessionStore
	logger  zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, session *SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, session: session, logger: logger}
}

// Login validates the form, authenticates and establishes the session.
// Every failure is reported as domain.FormErrors.
func (s *AuthService) Login(ctx context.Context, form domain.LoginForm) (domain.Session, error) {
	form.Email = strings.TrimSpace(form.Email)
	if errs := domain.ValidateLogin(form); !errs.Valid() {
		return domain.Session{}, errs
	}

	result, err := s.api.Login(ctx, form)
	if err != nil {
		s.logger.Debug().Err(err).Msg("login rejected")
		return domain.Session{}, formFailure(err, loginFailedMessage)
	}

	profile := result.User
	if profile == nil || profile.DisplayName == "" {
		profile = deriveProfile(profile, result.Token, form.Email)
	}

	if err := s.session.Establish(ctx, result.Token, profile); err != nil {
		s.logger.Warn().Err(err).Msg("persist session")
		return domain.Session{}, domain.General(loginFailedMessage)
	}

	return s.session.GetSession(), nil
}

// Register creates the account. It never signs in.
func (s *AuthService) Register(ctx context.Context, form domain.RegisterForm) (domain.Profile, error) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	if errs := domain.ValidateRegister(form); !errs.Valid() {
		return domain.Profile{}, errs
	}

	profile, err := s.api.Register(ctx, form)
	if err != nil {
		s.logger.Debug().Err(err).Msg("registration rejected")
		return domain.Profile{}, formFailure(err, registerFailedMessage)
	}
	return profile, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func formFailure(err error, general string) error {
	var fieldErrs domain.FormErrors
	if errors.As(err, &fieldErrs) && !fieldErrs.Valid() {
		return fieldErrs
	}
	return domain.General(general)
}

// deriveProfile fills the display name from the login response, then the
// token subject, then the submitted email.
func deriveProfile(user *domain.Profile, token string, email string) *domain.Profile {
	profile := domain.Profile{Email: email}
	if user != nil {
		profile = *user
		if profile.Email == "" {
			profile.Email = email
		}
	}

	switch {
	case profile.DisplayName != "":
	case profile.Email != "" && user != nil:
		profile.DisplayName = profile.Email
	default:
		if subject := tokenSubject(token); subject != "" {
			profile.DisplayName = subject
		} else {
			profile.DisplayName = profile.Email
		}
	}

	if profile.DisplayName == "" {
		return nil
	}
	return &profile
}

// tokenSubject reads the sub claim without verifying the signature. The
// client only uses it as a label.
func tokenSubject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return subject
}
