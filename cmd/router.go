package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	licenserender "github.com/dlyog/dl-creator-cli/internal/adapters/render/license"
	"github.com/dlyog/dl-creator-cli/internal/application"
	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
)

const routeChat domain.Route = "/chat"

const maxRedirects = 4

type page struct {
	gate domain.Gate
	show func(ctx context.Context, out io.Writer) error
}

// router maps routes to pages. Every navigation evaluates the target's gate
// against a fresh session snapshot and follows redirects.
type router struct {
	app    *app
	pages  map[domain.Route]page
	ctx    context.Context
	out    io.Writer
	errOut io.Writer
	logger zerolog.Logger
	trail  []domain.Route
}

var _ ports.Navigator = (*router)(nil)

func newRouter(ctx context.Context, a *app, out io.Writer, errOut io.Writer) *router {
	r := &router{app: a, ctx: ctx, out: out, errOut: errOut, logger: a.logger}
	r.pages = map[domain.Route]page{
		domain.RouteHome:           {gate: domain.OpenGate, show: r.showHome},
		domain.RouteLogin:          {gate: domain.AuthPageGate, show: hint("Sign in with: dlc login")},
		domain.RouteRegister:       {gate: domain.AuthPageGate, show: hint("Create an account with: dlc register")},
		domain.RouteCreateLicense:  {gate: domain.ProtectedPageGate, show: r.showLicensePage(application.CreateLicensePage)},
		domain.RouteLicenseDetails: {gate: domain.ProtectedPageGate, show: r.showLicensePage(application.LicenseDetailsPage)},
		routeChat:                  {gate: domain.ProtectedPageGate, show: hint("Chat with the assistant: dlc chat")},
	}
	return r
}

// Enter checks the gate of the page a command is about to render. When the
// gate redirects, the redirect target is shown instead and Enter reports false.
func (r *router) Enter(target domain.Route) (bool, error) {
	p, ok := r.pages[target]
	if !ok {
		return false, fmt.Errorf("unknown route %q", target)
	}

	decision := p.gate.Decide(r.app.session.GetSession())
	if decision.Allowed() {
		r.trail = append(r.trail, target)
		return true, nil
	}

	r.logger.Debug().Str("route", string(target)).Str("redirect", string(decision.Target)).Msg("route redirected")
	return false, r.show(decision.Target, 1)
}

// Visit shows the page for target, following redirects.
func (r *router) Visit(target domain.Route) error {
	return r.show(target, 0)
}

// Navigate is Visit for callers that cannot handle an error.
func (r *router) Navigate(target domain.Route) {
	if err := r.Visit(target); err != nil {
		r.logger.Warn().Err(err).Str("route", string(target)).Msg("navigation failed")
	}
}

func (r *router) show(target domain.Route, hops int) error {
	if hops > maxRedirects {
		return fmt.Errorf("too many redirects at %q", target)
	}

	p, ok := r.pages[target]
	if !ok {
		return fmt.Errorf("unknown route %q", target)
	}

	decision := p.gate.Decide(r.app.session.GetSession())
	if !decision.Allowed() {
		r.logger.Debug().Str("route", string(target)).Str("redirect", string(decision.Target)).Msg("route redirected")
		return r.show(decision.Target, hops+1)
	}

	r.trail = append(r.trail, target)
	return p.show(r.ctx, r.out)
}

// Trail lists the routes rendered so far, in order.
func (r *router) Trail() []domain.Route {
	return append([]domain.Route(nil), r.trail...)
}

func (r *router) showHome(ctx context.Context, out io.Writer) error {
	view := licenserender.View{Page: licenserender.PageHome, Session: r.app.session.GetSession()}
	if view.Session.Authenticated() {
		home := application.NewLicensePage(application.HomePage, r.app.resolver)
		defer home.Unmount()
		if _, err := mountWithSpinner(ctx, r.errOut, home); err != nil {
			return err
		}
		view.Status = home.Status()
		view.Notice = home.Notice()
	}
	return r.write(out, view)
}

func (r *router) showLicensePage(kind application.PageKind) func(context.Context, io.Writer) error {
	return func(ctx context.Context, out io.Writer) error {
		licensePage := application.NewLicensePage(kind, r.app.resolver)
		defer licensePage.Unmount()
		if _, err := mountWithSpinner(ctx, r.errOut, licensePage); err != nil {
			return err
		}
		return r.write(out, licensePageView(kind, r.app.session.GetSession(), licensePage))
	}
}

func (r *router) write(out io.Writer, view licenserender.View) error {
	rendered, err := r.app.render(view)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}

func licensePageView(kind application.PageKind, session domain.Session, licensePage *application.LicensePage) licenserender.View {
	view := licenserender.View{
		Page:    licenserender.PageDetails,
		Session: session,
		Status:  licensePage.Status(),
		Notice:  licensePage.Notice(),
	}
	if kind == application.CreateLicensePage {
		view.Page = licenserender.PageCreate
	}
	return view
}

func hint(text string) func(context.Context, io.Writer) error {
	return func(_ context.Context, out io.Writer) error {
		_, err := fmt.Fprintln(out, text)
		return err
	}
}
