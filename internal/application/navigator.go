package application

import (
	"context"
	"fmt"

	"github.com/bnema/walletdash/internal/domain"
)

const maxRedirects = 5

// LoaderFunc loads the data a page needs once the guard has allowed it.
type LoaderFunc func(ctx context.Context) (*domain.UserProfile, error)

type Page struct {
	Path      string
	Redirects []string
	Data      domain.PageData
	Profile   *domain.UserProfile
	LoadErr   error
}

func (p Page) Redirected() bool {
	return len(p.Redirects) > 0
}

// Navigator resolves a path to a page: aliases, guard redirects, then the
// page loader.
type Navigator struct {
	store   *SessionStore
	guard   Guard
	aliases map[string]string
	loaders map[string]LoaderFunc
}

func NewNavigator(store *SessionStore, guard Guard) *Navigator {
	refresh := func(ctx context.Context) (*domain.UserProfile, error) {
		profile, err := store.RefreshProfile(ctx)
		if err != nil {
			return nil, err
		}
		return &profile, nil
	}

	return &Navigator{
		store: store,
		guard: guard,
		aliases: map[string]string{
			"/admin": "/admin/statistics",
		},
		loaders: map[string]LoaderFunc{
			"/profile": refresh,
			"/wallets": refresh,
		},
	}
}

// Register sets the loader for a route prefix, replacing any existing one.
func (n *Navigator) Register(prefix string, loader LoaderFunc) {
	n.loaders[NormalizePrefix(prefix)] = loader
}

func (n *Navigator) Alias(from string, to string) {
	n.aliases[NormalizePath(from)] = NormalizePath(to)
}

func (n *Navigator) Navigate(ctx context.Context, route string) (Page, error) {
	current := NormalizePath(route)
	var redirects []string

	for {
		var target string
		if alias, ok := n.aliases[current]; ok {
			target = alias
		} else {
			decision := n.guard.Authorize(current, n.store.Snapshot())
			if decision.Allowed() {
				page := n.load(ctx, current, redirects, decision.Page)
				if page.LoadErr == nil {
					return page, nil
				}

				// A failed loader may have ended the session.
				decision = n.guard.Authorize(current, n.store.Snapshot())
				if decision.Allowed() {
					page.Data = decision.Page
					return page, nil
				}
			}
			target = NormalizePath(decision.Location)
		}

		redirects = append(redirects, target)
		if len(redirects) > maxRedirects {
			return Page{}, fmt.Errorf("navigate %s: %w", route, domain.ErrRedirectLoop)
		}
		current = target
	}
}

func (n *Navigator) load(ctx context.Context, route string, redirects []string, data domain.PageData) Page {
	page := Page{Path: route, Redirects: redirects, Data: data}

	loader := n.loaderFor(route)
	if loader == nil {
		return page
	}

	profile, err := loader(ctx)
	if err != nil {
		page.LoadErr = err
		return page
	}

	page.Profile = profile
	page.Data.User = profile.Clone()
	return page
}

func (n *Navigator) loaderFor(route string) LoaderFunc {
	var (
		best    string
		matched LoaderFunc
	)
	for prefix, loader := range n.loaders {
		if matchesPrefix(route, prefix) && len(prefix) > len(best) {
			best = prefix
			matched = loader
		}
	}
	return matched
}
