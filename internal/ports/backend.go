package ports

import (
	"context"

	"github.com/dlyog/dl-creator-cli/internal/domain"
)

type LoginResult struct {
	Token string
	User  *domain.Profile
}

type AuthAPI interface {
	Login(ctx context.Context, form domain.LoginForm) (LoginResult, error)
	Register(ctx context.Context, form domain.RegisterForm) (domain.Profile, error)
}

// LicenseAPI returns domain.ErrLicenseNotFound from Lookup when the server has no record.
type LicenseAPI interface {
	Lookup(ctx context.Context, credential string) (domain.LicenseRecord, error)
	Create(ctx context.Context, credential string, fields domain.LicenseFields) (domain.LicenseRecord, error)
}

type AssistantAPI interface {
	Send(ctx context.Context, req domain.AssistantRequest) ([]domain.ReplyUnit, error)
}
