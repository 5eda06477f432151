package client

import (
	"context"
	"log"
)

// Route identifies a top-level destination.
type Route int

const (
	// RouteNone means stay where you are.
	RouteNone Route = iota
	RouteAuth
	RouteOnboarding
	RouteMain
)

// ProfileStatus is the outcome of the profile-existence lookup.
type ProfileStatus int

const (
	// ProfileUnknown means the lookup failed; no redirect this cycle.
	ProfileUnknown ProfileStatus = iota
	ProfileMissing
	ProfilePresent
)

// NextRoute decides where the app should navigate given the session state,
// the current route and the profile lookup outcome. It is a pure function
// evaluated on every relevant change so independent signals cannot issue
// conflicting redirects.
func NextRoute(signedIn bool, current Route, profile ProfileStatus) Route {
	if !signedIn {
		if current == RouteAuth {
			return RouteNone
		}
		return RouteAuth
	}

	switch profile {
	case ProfileMissing:
		if current != RouteOnboarding {
			return RouteOnboarding
		}
	case ProfilePresent:
		if current != RouteMain {
			return RouteMain
		}
	}
	// ProfileUnknown falls through: fail open, no redirect this cycle.
	return RouteNone
}

// RootController evaluates NextRoute against the gateway's live state.
type RootController struct {
	gw Gateway
}

// NewRootController creates a RootController bound to gw.
func NewRootController(gw Gateway) *RootController {
	return &RootController{gw: gw}
}

// Resolve looks up the session and profile and returns the target route, or
// RouteNone when no redirect is needed. A failed profile lookup is logged
// and treated as no-redirect.
func (r *RootController) Resolve(ctx context.Context, current Route) Route {
	signedIn := r.gw.Session() != nil

	status := ProfileUnknown
	if signedIn {
		profile, err := r.gw.MyProfile(ctx)
		switch {
		case err != nil:
			log.Printf("Error checking profile: %v", err)
		case profile == nil:
			status = ProfileMissing
		default:
			status = ProfilePresent
		}
	}

	return NextRoute(signedIn, current, status)
}
