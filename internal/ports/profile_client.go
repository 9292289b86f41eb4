package ports

import (
	"context"

	"github.com/bnema/walletdash/internal/domain"
)

// ProfileClient is the remote auth/profile API. It holds no session state;
// every authenticated call takes the bearer token explicitly.
type ProfileClient interface {
	FetchProfile(ctx context.Context, token string) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, token string, update domain.ProfileUpdate) (domain.UserProfile, error)
	Login(ctx context.Context, credentials domain.Credentials) (domain.LoginResult, error)
	Signup(ctx context.Context, request domain.SignupRequest) (domain.SignupResult, error)
}
