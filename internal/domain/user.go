package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type UserProfile struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Role         Role   `json:"role,omitempty"`
	Wallet       Wallet `json:"wallet"`
	CreatedAt    string `json:"createdAt,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func (p UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p UserProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Clone returns a copy that shares no pointers with p.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

type Wallet struct {
	TotalBalance    Balance `json:"totalBalance"`
	AssetBalance    Balance `json:"assetBalance"`
	ExchangeBalance Balance `json:"exchangeBalance"`
}

type Balance struct {
	BTC decimal.Decimal `json:"btc"`
	USD decimal.Decimal `json:"usd"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

type SignupResult struct {
	Message string       `json:"message,omitempty"`
	User    *UserProfile `json:"user,omitempty"`
}

// ProfileUpdate is a sparse update: nil fields are left unchanged, a non-nil
// empty string clears the value.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	ProfileImage *ImageUpload
}

type ImageUpload struct {
	Filename string
	Content  []byte
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.ProfileImage == nil
}

// Fields returns the set text fields keyed by their wire name.
func (u ProfileUpdate) Fields() map[string]string {
	fields := make(map[string]string, 3)
	if u.FirstName != nil {
		fields["firstName"] = *u.FirstName
	}
	if u.LastName != nil {
		fields["lastName"] = *u.LastName
	}
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	return fields
}

// Apply merges the set text fields into profile. The image is server-managed
// and never applied locally.
func (u ProfileUpdate) Apply(profile UserProfile) UserProfile {
	if u.FirstName != nil {
		profile.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		profile.LastName = *u.LastName
	}
	if u.Email != nil {
		profile.Email = *u.Email
	}
	return profile
}

// ProfileImageURL resolves a stored image path against the API base URL.
// Absolute http(s) URLs are returned unchanged.
func ProfileImageURL(baseURL, imagePath string) string {
	if imagePath == "" {
		return ""
	}
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(imagePath, "/")
}
