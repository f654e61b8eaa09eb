// AngelaMos | 2026
// client.go

package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deenhub-app/admin-backend/internal/config"
	"github.com/deenhub-app/admin-backend/internal/core"
)

// AuthUser is the identity record owned by the external provider.
// Only the fields this service reads are modeled.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of exchanging a one-time auth code.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// Provider is the external identity service. Session issuance, OAuth,
// and credential storage are entirely its concern; this service only
// orchestrates admin-API calls against it.
type Provider interface {
	CreateUser(ctx context.Context, email, fullName string) (*AuthUser, error)
	DeleteUser(ctx context.Context, userID string) error
	ExchangeCode(ctx context.Context, code string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(cfg config.IdentityConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type createUserRequest struct {
	Email        string         `json:"email"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

func (c *Client) CreateUser(
	ctx context.Context,
	email, fullName string,
) (*AuthUser, error) {
	payload := createUserRequest{
		Email:        email,
		EmailConfirm: true,
	}
	if fullName != "" {
		payload.UserMetadata = map[string]any{"full_name": fullName}
	}

	var user AuthUser
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.serviceKey, payload, &user); err != nil {
		return nil, fmt.Errorf("create auth user: %w", err)
	}

	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	path := "/admin/users/" + userID
	if err := c.do(ctx, http.MethodDelete, path, c.serviceKey, nil, nil); err != nil {
		return fmt.Errorf("delete auth user: %w", err)
	}
	return nil
}

func (c *Client) ExchangeCode(
	ctx context.Context,
	code string,
) (*Session, error) {
	payload := map[string]string{"auth_code": code}

	var session Session
	err := c.do(
		ctx,
		http.MethodPost,
		"/token?grant_type=authorization_code",
		c.serviceKey,
		payload,
		&session,
	)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	return &session, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

type providerError struct {
	Message string `json:"msg"`
	Error   string `json:"error"`
}

func (c *Client) do(
	ctx context.Context,
	method, path, bearer string,
	payload, out any,
) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) mapError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best-effort error body

	var provErr providerError
	//nolint:errcheck // body may not be JSON
	_ = json.Unmarshal(data, &provErr)

	message := provErr.Message
	if message == "" {
		message = provErr.Error
	}
	if message == "" {
		message = strings.TrimSpace(string(data))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("identity provider: %s: %w", message, core.ErrNotFound)
	case resp.StatusCode == http.StatusUnprocessableEntity,
		strings.Contains(message, "already registered"),
		strings.Contains(message, "already been registered"):
		return fmt.Errorf("identity provider: %s: %w", message, core.ErrDuplicateKey)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("identity provider: %s: %w", message, core.ErrUnauthorized)
	default:
		return errors.New("identity provider: " + message)
	}
}

var _ Provider = (*Client)(nil)
