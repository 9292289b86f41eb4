package application

import (
	"path"
	"strings"

	"github.com/bnema/walletdash/internal/domain"
)

const (
	HomePath  = "/"
	LoginPath = "/login"
)

const accountPrefix = "/account"

// RouteTable lists route prefixes by access level. Prefixes match whole path
// segments only.
type RouteTable struct {
	Public    []string
	Protected []string
	Admin     []string
}

func DefaultRouteTable() RouteTable {
	return RouteTable{
		Public:    []string{"/login", "/signup"},
		Protected: []string{"/admin", "/wallets", "/exchange", "/activities", "/profile", "/buy-crypto"},
		Admin:     []string{"/admin"},
	}
}

type Guard struct {
	routes RouteTable
}

func NewGuard(routes RouteTable) Guard {
	return Guard{routes: routes}
}

// Authorize decides a navigation from the session snapshot alone. It never
// performs I/O.
func (g Guard) Authorize(route string, session domain.Session) domain.Decision {
	route = NormalizePath(route)
	authenticated := session.IsAuthenticated && session.Token != ""

	switch {
	case matchesAny(route, g.routes.Public) && authenticated:
		return domain.RedirectTo(HomePath)
	case matchesAny(route, g.routes.Admin) && !authenticated:
		return domain.RedirectTo(LoginPath)
	case matchesAny(route, g.routes.Admin) && !session.IsAdmin():
		return domain.RedirectTo(HomePath)
	case matchesAny(route, g.routes.Protected) && !authenticated:
		return domain.RedirectTo(LoginPath)
	}

	return domain.Allow(domain.PageData{
		User:            session.User.Clone(),
		IsAuthenticated: authenticated,
		IsAdmin:         authenticated && session.IsAdmin(),
	})
}

// NormalizePath strips query and fragment, cleans the path, drops the legacy
// /account prefix and removes any trailing slash.
func NormalizePath(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	route = path.Clean(route)

	if matchesPrefix(route, accountPrefix) {
		route = strings.TrimPrefix(route, accountPrefix)
		if route == "" {
			route = HomePath
		}
	}

	return route
}

func matchesAny(route string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if matchesPrefix(route, NormalizePrefix(prefix)) {
			return true
		}
	}
	return false
}

func matchesPrefix(route string, prefix string) bool {
	if prefix == HomePath {
		return true
	}
	return route == prefix || strings.HasPrefix(route, prefix+"/")
}

// NormalizePrefix cleans a configured route prefix without applying the
// /account rewrite.
func NormalizePrefix(prefix string) string {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return path.Clean(prefix)
}
