package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() domain.UserProfile {
	return domain.UserProfile{
		ID:           "u-1",
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "john@example.com",
		Role:         domain.RoleAdmin,
		CreatedAt:    "2026-02-01T10:00:00Z",
		ProfileImage: "/uploads/john.png",
		Wallet: domain.Wallet{
			TotalBalance:    domain.Balance{BTC: decimal.RequireFromString("1.25"), USD: decimal.RequireFromString("1234567.5")},
			AssetBalance:    domain.Balance{BTC: decimal.RequireFromString("1"), USD: decimal.RequireFromString("750")},
			ExchangeBalance: domain.Balance{BTC: decimal.RequireFromString("0.25"), USD: decimal.RequireFromString("250")},
		},
	}
}

func TestRenderProfile(t *testing.T) {
	now := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)

	output, err := RenderProfile(sampleProfile(), RenderOptions{BaseURL: "https://api.example.com/", Now: now})
	require.NoError(t, err)

	assert.Contains(t, output, "John Doe")
	assert.Contains(t, output, "[admin]")
	assert.Contains(t, output, "john@example.com")
	assert.Contains(t, output, "member for 10 days")
	assert.Contains(t, output, "https://api.example.com/uploads/john.png")
	assert.Contains(t, output, "1.25000000 BTC")
	assert.Contains(t, output, "$1,234,567.50")
	assert.Contains(t, output, "75% assets / 25% exchange")
}

func TestRenderProfileWithEmptyWalletSkipsSplit(t *testing.T) {
	output, err := RenderProfile(domain.UserProfile{ID: "u-2", Email: "jane@example.com"}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "0.00000000 BTC")
	assert.Contains(t, output, "$0.00")
	assert.NotContains(t, output, "split:")
	assert.NotContains(t, output, "[admin]")
}

func TestRenderSessionAnonymous(t *testing.T) {
	output, err := RenderSession(domain.AnonymousSession(0), RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "anonymous")
	assert.Contains(t, output, "Not logged in")
}

func TestRenderSessionPendingWithError(t *testing.T) {
	output, err := RenderSession(domain.Session{
		State:           domain.SessionAuthenticatedPending,
		IsAuthenticated: true,
		Token:           "abcdefghijklmnopqrstuvwxyz",
		ProfileErr:      errors.New("HTTP 502"),
	}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "pending")
	assert.Contains(t, output, "abcd********wxyz")
	assert.NotContains(t, output, "abcdefghijklmnopqrstuvwxyz")
	assert.Contains(t, output, "Profile not loaded yet.")
	assert.Contains(t, output, "profile unavailable: HTTP 502")
}

func TestRenderSessionReady(t *testing.T) {
	profile := sampleProfile()
	output, err := RenderSession(domain.Session{
		State:           domain.SessionAuthenticatedReady,
		IsAuthenticated: true,
		Token:           "short",
		User:            &profile,
	}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "ready")
	assert.Contains(t, output, "*****")
	assert.Contains(t, output, "John Doe")
	assert.Contains(t, output, "Wallet")
}

func TestFormatUSD(t *testing.T) {
	tests := map[string]string{
		"0":          "$0.00",
		"999.999":    "$1,000.00",
		"1000":       "$1,000.00",
		"-12345.678": "-$12,345.68",
		"100":        "$100.00",
	}

	for input, want := range tests {
		assert.Equal(t, want, FormatUSD(decimal.RequireFromString(input)), "input %s", input)
	}
}

func TestFormatMemberSince(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "", formatMemberSince("", now))
	assert.Equal(t, "member since today", formatMemberSince("2026-06-01T08:00:00Z", now))
	assert.Equal(t, "member for 1 day", formatMemberSince("2026-05-31T08:00:00Z", now))
	assert.Equal(t, "member since Jan 2026", formatMemberSince("2026-01-15T08:00:00Z", now))
	assert.Equal(t, "member since 2026-01", formatMemberSince("2026-01", now))
}
