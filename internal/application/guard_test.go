package application

import (
	"testing"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/stretchr/testify/assert"
)

func authenticatedSession(role domain.Role) domain.Session {
	profile := fullProfile("1", role)
	return domain.Session{
		State:           domain.SessionAuthenticatedReady,
		IsAuthenticated: true,
		Token:           "abc",
		User:            &profile,
		Generation:      1,
	}
}

func pendingSession() domain.Session {
	return domain.Session{
		State:           domain.SessionAuthenticatedPending,
		IsAuthenticated: true,
		Token:           "abc",
		Generation:      1,
	}
}

func TestGuardAuthorize(t *testing.T) {
	t.Parallel()

	guard := NewGuard(DefaultRouteTable())

	tests := []struct {
		name     string
		route    string
		session  domain.Session
		allowed  bool
		location string
	}{
		{name: "anonymous on login", route: "/login", session: domain.AnonymousSession(0), allowed: true},
		{name: "authenticated on login", route: "/login", session: authenticatedSession(domain.RoleUser), location: "/"},
		{name: "authenticated on signup", route: "/signup/", session: pendingSession(), location: "/"},
		{name: "anonymous on protected", route: "/wallets", session: domain.AnonymousSession(0), location: "/login"},
		{name: "anonymous on nested protected", route: "/profile/settings", session: domain.AnonymousSession(0), location: "/login"},
		{name: "pending session on protected", route: "/exchange", session: pendingSession(), allowed: true},
		{name: "user on admin", route: "/admin", session: authenticatedSession(domain.RoleUser), location: "/"},
		{name: "admin on admin", route: "/admin/users", session: authenticatedSession(domain.RoleAdmin), allowed: true},
		{name: "pending on admin", route: "/admin", session: pendingSession(), location: "/"},
		{name: "anonymous on admin", route: "/admin/statistics", session: domain.AnonymousSession(0), location: "/login"},
		{name: "anonymous on home", route: "/", session: domain.AnonymousSession(0), allowed: true},
		{name: "segment aware prefix", route: "/profiles", session: domain.AnonymousSession(0), allowed: true},
		{name: "legacy account prefix", route: "/account/wallets", session: domain.AnonymousSession(0), location: "/login"},
		{name: "query string ignored", route: "/buy-crypto?asset=btc", session: domain.AnonymousSession(0), location: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := guard.Authorize(tt.route, tt.session)
			if tt.allowed {
				assert.True(t, decision.Allowed())
				assert.Empty(t, decision.Location)
				return
			}
			assert.Equal(t, domain.OutcomeRedirect, decision.Outcome)
			assert.Equal(t, tt.location, decision.Location)
		})
	}
}

func TestGuardAllowPassesPageData(t *testing.T) {
	t.Parallel()

	guard := NewGuard(DefaultRouteTable())
	session := authenticatedSession(domain.RoleAdmin)

	decision := guard.Authorize("/admin/statistics", session)
	assert.True(t, decision.Allowed())
	assert.True(t, decision.Page.IsAuthenticated)
	assert.True(t, decision.Page.IsAdmin)
	assert.Equal(t, "1", decision.Page.User.ID)

	decision.Page.User.FirstName = "changed"
	assert.Equal(t, "John", session.User.FirstName)
}

func TestGuardUsesConfiguredRoutes(t *testing.T) {
	t.Parallel()

	guard := NewGuard(RouteTable{
		Public:    []string{"auth/login"},
		Protected: []string{"/reports/"},
	})

	assert.Equal(t, "/login", guard.Authorize("/reports/q1", domain.AnonymousSession(0)).Location)
	assert.True(t, guard.Authorize("/wallets", domain.AnonymousSession(0)).Allowed())
	assert.Equal(t, "/", guard.Authorize("/auth/login", pendingSession()).Location)
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                 "/",
		"/":                "/",
		"wallets":          "/wallets",
		"/wallets/":        "/wallets",
		"/account":         "/",
		"/account/profile": "/profile",
		"/accounts":        "/accounts",
		"/profile#avatar":  "/profile",
		"//admin//users":   "/admin/users",
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizePath(input), "input %q", input)
	}
}
