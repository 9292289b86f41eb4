package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/ports"
)

const maxResponseBytes = 1 << 20

const defaultRequestTimeout = 30 * time.Second

type API struct {
	BaseURL           string
	LoginPath         string
	SignupPath        string
	ProfilePath       string
	ProfileUpdatePath string
	ProfileUploadPath string
}

func DefaultAPI(baseURL string) API {
	return API{
		BaseURL:           baseURL,
		LoginPath:         "/api/auth/login",
		SignupPath:        "/api/auth/signup",
		ProfilePath:       "/api/auth/me",
		ProfileUpdatePath: "/api/auth/profile",
		ProfileUploadPath: "/api/user/profile",
	}
}

// Client talks to the dashboard auth/profile API. It keeps no session state.
type Client struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.ProfileClient = Client{}

type profileEnvelope struct {
	User *domain.UserProfile `json:"user"`
}

func (c Client) FetchProfile(ctx context.Context, token string) (domain.UserProfile, error) {
	if token == "" {
		return domain.UserProfile{}, fmt.Errorf("fetch profile: %w", domain.ErrNotAuthenticated)
	}

	var raw rawJSON
	if err := c.doJSON(ctx, requestSpec{
		op:     "fetch profile",
		method: http.MethodGet,
		path:   c.API.ProfilePath,
		token:  token,
	}, &raw); err != nil {
		return domain.UserProfile{}, err
	}

	return decodeProfileResponse(raw)
}

func (c Client) UpdateProfile(ctx context.Context, token string, update domain.ProfileUpdate) (domain.UserProfile, error) {
	if token == "" {
		return domain.UserProfile{}, fmt.Errorf("update profile: %w", domain.ErrNotAuthenticated)
	}
	if update.IsEmpty() {
		return domain.UserProfile{}, &domain.ValidationError{Message: "no profile fields to update"}
	}

	var raw rawJSON
	var err error
	if update.ProfileImage != nil {
		err = c.doMultipart(ctx, "update profile", c.API.ProfileUploadPath, token, update, &raw)
	} else {
		err = c.doJSON(ctx, requestSpec{
			op:     "update profile",
			method: http.MethodPut,
			path:   c.API.ProfileUpdatePath,
			token:  token,
			body:   update.Fields(),
		}, &raw)
	}
	if err != nil {
		return domain.UserProfile{}, err
	}

	return decodeProfileResponse(raw)
}

func (c Client) Login(ctx context.Context, credentials domain.Credentials) (domain.LoginResult, error) {
	if err := validateCredentials(credentials); err != nil {
		return domain.LoginResult{}, err
	}

	var result domain.LoginResult
	if err := c.doJSON(ctx, requestSpec{
		op:     "login",
		method: http.MethodPost,
		path:   c.API.LoginPath,
		body:   credentials,
	}, &result); err != nil {
		return domain.LoginResult{}, err
	}
	if result.Token == "" {
		return domain.LoginResult{}, &domain.ServerError{StatusCode: http.StatusOK, Message: "login response missing token"}
	}

	return result, nil
}

func (c Client) Signup(ctx context.Context, request domain.SignupRequest) (domain.SignupResult, error) {
	if err := validateSignup(request); err != nil {
		return domain.SignupResult{}, err
	}

	var result domain.SignupResult
	if err := c.doJSON(ctx, requestSpec{
		op:         "signup",
		method:     http.MethodPost,
		path:       c.API.SignupPath,
		body:       request,
		allowEmpty: true,
	}, &result); err != nil {
		return domain.SignupResult{}, err
	}

	return result, nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
