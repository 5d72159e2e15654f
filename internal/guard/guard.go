// Package guard contains the navigation predicates evaluated before a screen
// is shown: one for authentication (honoring routes flagged public), one for
// role membership. Guards are pure functions of auth state and route
// metadata; the only side effect they ask for is the forced logout on the
// failing auth path, reported through Decision.Logout.
package guard

import (
	"net/url"
	"strings"

	"github.com/teletela/storefront/internal/model"
)

// Session is the slice of auth state guards read.
type Session interface {
	IsExpired() bool
	HasRole(model.Role) bool
}

// Route is a navigable screen with static guard metadata. The Public flag and
// role set are read from the deepest matched child.
type Route struct {
	Path     string
	Public   bool
	Roles    []model.Role
	Children []Route
}

// Decision is a guard verdict.
type Decision struct {
	Allowed    bool
	RedirectTo string
	Logout     bool
}

// allow is the passing decision.
var allow = Decision{Allowed: true}

// Match walks the route tree segment by segment and returns the deepest
// matched route (the leaf whose static data governs the guards). Segments
// starting with ':' match any value.
func Match(routes []Route, path string) (*Route, bool) {
	segments := splitPath(path)
	return matchSegments(routes, segments)
}

func splitPath(p string) []string {
	p = strings.Trim(strings.SplitN(p, "?", 2)[0], "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(routes []Route, segments []string) (*Route, bool) {
	for i := range routes {
		r := &routes[i]
		own := splitPath(r.Path)
		if len(own) > len(segments) {
			continue
		}
		if !segmentsMatch(own, segments[:len(own)]) {
			continue
		}
		rest := segments[len(own):]
		if len(rest) == 0 {
			return r, true
		}
		if leaf, ok := matchSegments(r.Children, rest); ok {
			return leaf, true
		}
	}
	return nil, false
}

func segmentsMatch(pattern, actual []string) bool {
	for i := range pattern {
		if strings.HasPrefix(pattern[i], ":") {
			continue
		}
		if pattern[i] != actual[i] {
			return false
		}
	}
	return true
}

// Auth gates a route on session validity. Public leaves pass with no token at
// all; everything else requires a non-expired session, otherwise the decision
// carries a forced logout and a redirect to the login screen with the
// originally requested path as returnUrl.
func Auth(sess Session, leaf *Route, target string) Decision {
	if leaf != nil && leaf.Public {
		return allow
	}
	if !sess.IsExpired() {
		return allow
	}
	q := url.Values{}
	q.Set("returnUrl", target)
	return Decision{
		Allowed:    false,
		RedirectTo: "/login?" + q.Encode(),
		Logout:     true,
	}
}

// Role gates a route on role membership: at least one of the route's required
// roles must be held, otherwise the user is sent to the application root. A
// route with no role requirement passes. Run after Auth, which owns
// expiry/logout handling.
func Role(sess Session, leaf *Route) Decision {
	if leaf == nil || len(leaf.Roles) == 0 {
		return allow
	}
	for _, role := range leaf.Roles {
		if sess.HasRole(role) {
			return allow
		}
	}
	return Decision{Allowed: false, RedirectTo: "/"}
}
