package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/bnema/walletdash/internal/domain"
)

type requestSpec struct {
	op         string
	method     string
	path       string
	token      string
	body       any
	allowEmpty bool
}

type rawJSON []byte

func (r *rawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

type apiErrorResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func (c Client) doJSON(ctx context.Context, call requestSpec, out any) error {
	var body io.Reader
	if call.body != nil {
		data, err := json.Marshal(call.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", call.op, err)
		}
		body = bytes.NewReader(data)
	}

	contentType := ""
	if call.body != nil {
		contentType = "application/json"
	}

	return c.do(ctx, call, body, contentType, out)
}

func (c Client) doMultipart(ctx context.Context, op string, path string, token string, update domain.ProfileUpdate, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := update.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return fmt.Errorf("%s: write form field %q: %w", op, name, err)
		}
	}

	filename := update.ProfileImage.Filename
	if filename == "" {
		filename = "profile-image"
	}
	part, err := writer.CreateFormFile("profileImage", filename)
	if err != nil {
		return fmt.Errorf("%s: create image part: %w", op, err)
	}
	if _, err := part.Write(update.ProfileImage.Content); err != nil {
		return fmt.Errorf("%s: write image part: %w", op, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%s: close multipart body: %w", op, err)
	}

	call := requestSpec{op: op, method: http.MethodPut, path: path, token: token}
	return c.do(ctx, call, &buf, writer.FormDataContentType(), out)
}

func (c Client) do(ctx context.Context, call requestSpec, body io.Reader, contentType string, out any) error {
	endpoint, err := buildAPIURL(c.API.BaseURL, call.path)
	if err != nil {
		return fmt.Errorf("%s: %w", call.op, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, call.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", call.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if call.token != "" {
		req.Header.Set("Authorization", "Bearer "+call.token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return &domain.NetworkError{Op: call.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.NetworkError{Op: call.op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromResponse(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if call.allowEmpty {
			return nil
		}
		return &domain.ServerError{StatusCode: resp.StatusCode, Message: "empty response body"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.ServerError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response body: %v", err)}
	}

	return nil
}

func errorFromResponse(statusCode int, data []byte) error {
	message, fields := parseErrorBody(statusCode, data)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &domain.AuthError{StatusCode: statusCode, Message: message}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &domain.ValidationError{Message: message, Fields: fields}
	default:
		return &domain.ServerError{StatusCode: statusCode, Message: message}
	}
}

func parseErrorBody(statusCode int, data []byte) (string, map[string]string) {
	var payload apiErrorResponse
	if err := json.Unmarshal(data, &payload); err == nil {
		switch {
		case payload.Message != "":
			return payload.Message, payload.Errors
		case payload.Error != "":
			return payload.Error, payload.Errors
		case len(payload.Errors) > 0:
			return "", payload.Errors
		}
	}

	if text := strings.TrimSpace(string(data)); text != "" {
		return text, nil
	}
	return http.StatusText(statusCode), nil
}

func decodeProfileResponse(raw rawJSON) (domain.UserProfile, error) {
	var envelope profileEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil && envelope.User.ID != "" {
		return *envelope.User, nil
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return domain.UserProfile{}, &domain.ServerError{StatusCode: http.StatusOK, Message: fmt.Sprintf("malformed profile body: %v", err)}
	}
	if profile.ID == "" {
		return domain.UserProfile{}, &domain.ServerError{StatusCode: http.StatusOK, Message: "profile response missing id"}
	}

	return profile, nil
}

func validateCredentials(credentials domain.Credentials) error {
	fields := map[string]string{}
	if strings.TrimSpace(credentials.Email) == "" {
		fields["email"] = "is required"
	}
	if credentials.Password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Message: "Email and password are required", Fields: fields}
	}
	return nil
}

func validateSignup(request domain.SignupRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(request.FirstName) == "" {
		fields["firstName"] = "is required"
	}
	if strings.TrimSpace(request.LastName) == "" {
		fields["lastName"] = "is required"
	}
	if strings.TrimSpace(request.Email) == "" {
		fields["email"] = "is required"
	}
	if request.Password == "" {
		fields["password"] = "is required"
	}
	if request.Password != request.ConfirmPassword {
		fields["confirmPassword"] = "does not match password"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Message: "invalid signup form", Fields: fields}
	}
	return nil
}
