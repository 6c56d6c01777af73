package domain

type Route string

const (
	RouteHome           Route = "/"
	RouteLogin          Route = "/login"
	RouteRegister       Route = "/register"
	RouteCreateLicense  Route = "/create-license"
	RouteLicenseDetails Route = "/license-details"
)

type DecisionKind int

const (
	DecisionAllow DecisionKind = iota
	DecisionRedirect
)

type Decision struct {
	Kind   DecisionKind
	Target Route
}

func Allow() Decision {
	return Decision{Kind: DecisionAllow}
}

func Redirect(target Route) Decision {
	return Decision{Kind: DecisionRedirect, Target: target}
}

func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// Gate decides whether a page renders for the given session or redirects elsewhere.
type Gate interface {
	Decide(session Session) Decision
}

type GateFunc func(session Session) Decision

func (f GateFunc) Decide(session Session) Decision {
	return f(session)
}

// AuthPageGate keeps signed-in users away from the login and registration pages.
var AuthPageGate Gate = GateFunc(func(session Session) Decision {
	if session.Authenticated() {
		return Redirect(RouteHome)
	}
	return Allow()
})

// ProtectedPageGate sends anonymous users to the login page.
var ProtectedPageGate Gate = GateFunc(func(session Session) Decision {
	if !session.Authenticated() {
		return Redirect(RouteLogin)
	}
	return Allow()
})

// OpenGate renders regardless of session state.
var OpenGate Gate = GateFunc(func(Session) Decision {
	return Allow()
})
