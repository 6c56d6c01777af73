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

type SessionReader interface {
	GetSession() domain.Session
}

// LicenseResolver answers whether the signed-in user owns a license and
// issues new licenses. It remembers the last settled status.
type LicenseResolver struct {
	api     ports.LicenseAPI
	session SessionReader
	logger  zerolog.Logger

	mu     sync.Mutex
	cached domain.LicenseStatus
}

func NewLicenseResolver(api ports.LicenseAPI, session SessionReader, logger zerolog.Logger) *LicenseResolver {
	return &LicenseResolver{
		api:     api,
		session: session,
		logger:  logger,
		cached:  domain.UnknownLicense(),
	}
}

// ResolveStatus always settles to Absent or Present. A failed lookup yields
// a degraded Absent, unless Present is already known: Present only changes
// with a new session.
func (r *LicenseResolver) ResolveStatus(ctx context.Context) domain.LicenseStatus {
	credential := r.session.GetSession().CredentialToken
	if credential == "" {
		r.store(domain.AbsentLicense())
		return domain.AbsentLicense()
	}

	record, err := r.api.Lookup(ctx, credential)
	var status domain.LicenseStatus
	switch {
	case err == nil && !record.Empty():
		status = domain.PresentLicense(record)
	case err == nil, errors.Is(err, domain.ErrLicenseNotFound):
		status = domain.AbsentLicense()
	default:
		r.logger.Warn().Err(err).Msg("license lookup failed")
		if cached := r.Cached(); cached.Present() {
			return cached
		}
		status = domain.DegradedLicense()
	}

	r.store(status)
	r.logger.Debug().Str("status", status.State.String()).Bool("degraded", status.Degraded).Msg("license resolved")
	return status
}

// Cached returns the last settled status, or Unknown before any resolution.
func (r *LicenseResolver) Cached() domain.LicenseStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cached
}

// CreateLicense refuses when a license is already known, validates locally
// and otherwise asks the server to issue one.
func (r *LicenseResolver) CreateLicense(ctx context.Context, fields domain.LicenseFields) (domain.LicenseStatus, error) {
	if r.Cached().Present() {
		return domain.LicenseStatus{}, domain.ErrLicenseExists
	}

	fields = trimLicenseFields(fields)
	if errs := domain.ValidateLicense(fields); !errs.Valid() {
		return domain.LicenseStatus{}, errs
	}

	credential := r.session.GetSession().CredentialToken
	if credential == "" {
		return domain.LicenseStatus{}, domain.ErrNotAuthenticated
	}

	record, err := r.api.Create(ctx, credential, fields)
	if err != nil {
		if errors.Is(err, domain.ErrLicenseExists) {
			return domain.LicenseStatus{}, domain.ErrLicenseExists
		}
		var fieldErrs domain.FormErrors
		if errors.As(err, &fieldErrs) && !fieldErrs.Valid() {
			return domain.LicenseStatus{}, fieldErrs
		}
		return domain.LicenseStatus{}, fmt.Errorf("create license: %w", err)
	}

	status := domain.PresentLicense(record)
	r.store(status)
	return status, nil
}

func (r *LicenseResolver) store(status domain.LicenseStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = status
}

// Forget drops the cached status.
func (r *LicenseResolver) Forget() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = domain.UnknownLicense()
}

func trimLicenseFields(fields domain.LicenseFields) domain.LicenseFields {
	return domain.LicenseFields{
		FirstName:   strings.TrimSpace(fields.FirstName),
		LastName:    strings.TrimSpace(fields.LastName),
		VehicleType: strings.TrimSpace(fields.VehicleType),
		VehicleMake: strings.TrimSpace(fields.VehicleMake),
		Address:     strings.TrimSpace(fields.Address),
	}
}
