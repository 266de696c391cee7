package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// Client talks to a GoTrue-compatible auth endpoint and keeps the
// current token pair. State changes (sign-in, sign-out, token refresh)
// are published on subscriber channels.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	user         *entity.AuthUser

	subMu   sync.Mutex
	subs    map[int]chan entity.AuthEvent
	nextSub int
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		subs:    make(map[int]chan entity.AuthEvent),
	}
}

// SignInWithPassword exchanges credentials for a token pair. On success
// the session is stored and a SIGNED_IN event is published.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthUser, error) {
	var resp tokenResponse
	err := c.post(ctx, "/auth/v1/token?grant_type=password", signInRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	user := &entity.AuthUser{ID: resp.User.ID, Email: resp.User.Email}
	c.storeSession(resp, user)
	c.publish(entity.AuthEvent{Type: entity.AuthEventSignedIn, User: user})
	return user, nil
}

// GetSession validates the cached token against the auth service and
// returns the current user, or nil when there is no valid session.
func (c *Client) GetSession(ctx context.Context) (*entity.AuthUser, error) {
	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()

	if token == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusUnauthorized {
		// Session expired remotely. Drop the local copy.
		c.clearSession()
		return nil, nil
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, decodeError(httpResp, "get session")
	}

	var u userResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode auth user: %w", err)
	}

	user := &entity.AuthUser{ID: u.ID, Email: u.Email}
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	return user, nil
}

// SignOut revokes the session remotely and clears the local copy. A
// SIGNED_OUT event is published only when the call succeeds.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()

	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, token)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	defer httpResp.Body.Close()

	if (httpResp.StatusCode < 200 || httpResp.StatusCode > 299) && httpResp.StatusCode != http.StatusUnauthorized {
		return decodeError(httpResp, "sign out")
	}

	c.clearSession()
	c.publish(entity.AuthEvent{Type: entity.AuthEventSignedOut})
	return nil
}

// AccessToken exposes the bearer for the data API client.
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// Subscribe returns a channel of auth events and an unsubscribe func.
// Delivery is best-effort: a subscriber that stops draining loses events
// rather than blocking the publisher.
func (c *Client) Subscribe() (<-chan entity.AuthEvent, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan entity.AuthEvent, 8)
	c.subs[id] = ch

	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		if existing, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(existing)
		}
	}
}

// RunRefresh rotates the token pair shortly before expiry, publishing
// TOKEN_REFRESHED on success. Returns when ctx is cancelled.
func (c *Client) RunRefresh(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshIfNeeded(ctx)
		}
	}
}

func (c *Client) refreshIfNeeded(ctx context.Context) {
	c.mu.Lock()
	refresh := c.refreshToken
	due := refresh != "" && time.Until(c.expiresAt) < 2*time.Minute
	c.mu.Unlock()

	if !due {
		return
	}

	var resp tokenResponse
	if err := c.post(ctx, "/auth/v1/token?grant_type=refresh_token", refreshRequest{RefreshToken: refresh}, &resp); err != nil {
		// Keep the old pair; the next tick retries until the session
		// genuinely expires server-side.
		return
	}

	user := &entity.AuthUser{ID: resp.User.ID, Email: resp.User.Email}
	c.storeSession(resp, user)
	c.publish(entity.AuthEvent{Type: entity.AuthEventTokenRefreshed, User: user})
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	c.setHeaders(req, "")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth service unreachable: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return decodeError(httpResp, "auth")
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode auth response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, bearer string) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
}

func (c *Client) storeSession(resp tokenResponse, user *entity.AuthUser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	c.expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	c.user = user
}

func (c *Client) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.refreshToken = ""
	c.expiresAt = time.Time{}
	c.user = nil
}

func (c *Client) publish(ev entity.AuthEvent) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func decodeError(resp *http.Response, op string) error {
	raw, _ := io.ReadAll(resp.Body)
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.text() != "" {
		return fmt.Errorf("%s rejected (status %d): %s", op, resp.StatusCode, apiErr.text())
	}
	return fmt.Errorf("%s rejected (status %d)", op, resp.StatusCode)
}
