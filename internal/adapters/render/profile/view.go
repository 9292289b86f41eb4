package profile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const walletBarWidth = 24

type RenderOptions struct {
	BaseURL string
	Now     time.Time
}

func renderProfileView(profile domain.UserProfile, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Profile"),
		profileHeading(profile, s),
		s.detail.Render("email: " + valueOrNA(profile.Email)),
		s.detail.Render("id: " + valueOrNA(profile.ID)),
	}

	if since := formatMemberSince(profile.CreatedAt, opts.Now); since != "" {
		lines = append(lines, s.meta.Render(since))
	}
	if image := domain.ProfileImageURL(opts.BaseURL, profile.ProfileImage); image != "" {
		lines = append(lines, s.meta.Render("image: "+image))
	}

	lines = append(lines, s.section.Render(renderWallet(profile.Wallet, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSessionView(session domain.Session, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Session"),
		s.label.Render("state: ") + stateLabel(session.State, s),
	}

	if !session.IsAuthenticated {
		lines = append(lines, s.empty.Render("Not logged in. Run `wd login` to start a session."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.detail.Render("token: "+MaskToken(session.Token)))

	if session.User == nil {
		lines = append(lines, s.empty.Render("Profile not loaded yet."))
	} else {
		lines = append(lines, profileHeading(*session.User, s))
	}
	if session.Loading {
		lines = append(lines, s.meta.Render("profile refresh in progress"))
	}
	if session.ProfileErr != nil {
		lines = append(lines, s.warning.Render("profile unavailable: "+session.ProfileErr.Error()))
	}

	if session.User != nil {
		lines = append(lines, s.section.Render(renderWallet(session.User.Wallet, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func profileHeading(profile domain.UserProfile, s styles) string {
	name := profile.FullName()
	if name == "" {
		name = valueOrNA(profile.Email)
	}

	heading := s.name.Render(name)
	if profile.IsAdmin() {
		heading += " " + s.badge.Render("[admin]")
	}
	return heading
}

func renderWallet(wallet domain.Wallet, s styles) string {
	lines := []string{
		s.title.Render("Wallet"),
		balanceLine("total", wallet.TotalBalance, s),
		balanceLine("assets", wallet.AssetBalance, s),
		balanceLine("exchange", wallet.ExchangeBalance, s),
	}

	assets := wallet.AssetBalance.USD
	total := assets.Add(wallet.ExchangeBalance.USD)
	if total.IsPositive() {
		share, _ := assets.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.label.Render("split:"),
			" ",
			renderSplitBar(share, walletBarWidth, s),
			" ",
			s.meta.Render(fmt.Sprintf("%2.0f%% assets / %2.0f%% exchange", share, 100-share)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func balanceLine(label string, balance domain.Balance, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(fmt.Sprintf("%-9s", label+":")),
		" ",
		s.detail.Render(FormatBTC(balance.BTC)),
		s.meta.Render("  ≈ "),
		s.detail.Render(FormatUSD(balance.USD)),
	)
}

func renderSplitBar(assetPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(assetPercent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barAsset.Render(strings.Repeat("=", filled)),
		s.barEx.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func stateLabel(state domain.SessionState, s styles) string {
	switch state {
	case domain.SessionAuthenticatedReady:
		return s.stateOK.Render("ready")
	case domain.SessionAuthenticatedPending:
		return s.statePend.Render("pending")
	case domain.SessionAuthenticating:
		return s.statePend.Render("authenticating")
	default:
		return s.stateNone.Render("anonymous")
	}
}

func FormatBTC(amount decimal.Decimal) string {
	return amount.StringFixed(8) + " BTC"
}

func FormatUSD(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return sign + "$" + grouped.String() + "." + cents
}

// MaskToken keeps the first and last four characters of long tokens.
func MaskToken(token string) string {
	if len(token) <= 12 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 8) + token[len(token)-4:]
}

func formatMemberSince(createdAt string, now time.Time) string {
	if createdAt == "" {
		return ""
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return "member since " + createdAt
	}
	if now.IsZero() || created.After(now) {
		return "member since " + created.Format("02 Jan 2006")
	}

	days := int(now.Sub(created).Hours() / 24)
	switch {
	case days < 1:
		return "member since today"
	case days == 1:
		return "member for 1 day"
	case days < 60:
		return fmt.Sprintf("member for %d days", days)
	default:
		return fmt.Sprintf("member since %s", created.Format("Jan 2006"))
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func valueOrNA(value string) string {
	if value == "" {
		return "n/a"
	}
	return value
}
