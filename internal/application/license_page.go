package application

import (
	"context"
	"sync"

	"github.com/dlyog/dl-creator-cli/internal/domain"
)

type PageKind int

const (
	HomePage PageKind = iota
	CreateLicensePage
	LicenseDetailsPage
)

const (
	MessageNoLicense       = "No license found. Please create a license first."
	MessageLicenseExists   = "You already have a license. You can only create one license per account."
	MessageLicenseCreated  = "✓ License Created"
	MessageCheckingLicense = "Checking license status..."
)

type PagePhase int

const (
	PageChecking PagePhase = iota
	PageSettled
)

// LicensePage is one mounted page that depends on the license status. It
// starts in Checking and renders nothing license-specific until the first
// resolution settles. Writes after Unmount are dropped.
type LicensePage struct {
	kind     PageKind
	resolver *LicenseResolver

	mu      sync.Mutex
	mounted bool
	mounts  uint64
	phase   PagePhase
	status  domain.LicenseStatus
}

func NewLicensePage(kind PageKind, resolver *LicenseResolver) *LicensePage {
	return &LicensePage{
		kind:     kind,
		resolver: resolver,
		phase:    PageChecking,
		status:   domain.UnknownLicense(),
	}
}

// Mount resolves the license status for this page. Every mount resolves
// again, even when a status was seen before.
func (p *LicensePage) Mount(ctx context.Context) domain.LicenseStatus {
	p.mu.Lock()
	p.mounted = true
	p.mounts++
	mount := p.mounts
	p.phase = PageChecking
	p.status = domain.UnknownLicense()
	p.mu.Unlock()

	status := p.resolver.ResolveStatus(ctx)
	p.settle(mount, status)
	return p.Status()
}

func (p *LicensePage) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounted = false
}

// Create issues a license from the create page and moves Absent to Present
// on success.
func (p *LicensePage) Create(ctx context.Context, fields domain.LicenseFields) (domain.LicenseStatus, error) {
	p.mu.Lock()
	mount := p.mounts
	p.mu.Unlock()

	status, err := p.resolver.CreateLicense(ctx, fields)
	if err != nil {
		return domain.LicenseStatus{}, err
	}
	p.settle(mount, status)
	return status, nil
}

func (p *LicensePage) settle(mount uint64, status domain.LicenseStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted || mount != p.mounts {
		return
	}
	p.phase = PageSettled
	p.status = status
}

func (p *LicensePage) Phase() PagePhase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

func (p *LicensePage) Status() domain.LicenseStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *LicensePage) Kind() PageKind {
	return p.kind
}

// Notice is the page's license-specific message for the current status, or
// the checking message while unresolved.
func (p *LicensePage) Notice() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase == PageChecking {
		return MessageCheckingLicense
	}

	switch p.kind {
	case CreateLicensePage:
		if p.status.Present() {
			return MessageLicenseExists
		}
	case LicenseDetailsPage:
		if !p.status.Present() {
			return MessageNoLicense
		}
	case HomePage:
		if p.status.Present() {
			return MessageLicenseCreated
		}
	}
	return ""
}
