package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

const (
	opGetSession   = "get_session"
	opFetchProfile = "fetch_profile"

	defaultLookupTimeout = 8 * time.Second
	defaultSignInTimeout = 12 * time.Second
)

// SessionState is the reactive view the rest of the app reads.
type SessionState struct {
	User    *entity.AuthUser
	Profile *entity.Profile
	IsAdmin bool
	Loading bool
}

// SignInResult reports a sign-in outcome without raising. State updates
// arrive through the auth-event channel, never from SignIn itself.
type SignInResult struct {
	User *entity.AuthUser
	Err  error
}

// SessionCoordinator is the single source of truth for "who is logged
// in and are they an admin". It reconciles the initial session lookup,
// auth-state-change events and manual sign-in/out without duplicate
// network calls, and never leaves Loading set forever: every remote
// step is bounded by a timeout and degrades to anonymous/no-profile.
type SessionCoordinator struct {
	// Timeouts are settable before the coordinator is started.
	LookupTimeout time.Duration
	SignInTimeout time.Duration

	auth     AuthGateway
	profiles entity.ProfileRepositoryInterface
	log      *slog.Logger

	flights singleflight.Group

	mu      sync.Mutex
	user    *entity.AuthUser
	profile *entity.Profile
	loading bool
	visible bool
}

func NewSessionCoordinator(auth AuthGateway, profiles entity.ProfileRepositoryInterface, log *slog.Logger) *SessionCoordinator {
	if log == nil {
		log = slog.Default()
	}
	return &SessionCoordinator{
		LookupTimeout: defaultLookupTimeout,
		SignInTimeout: defaultSignInTimeout,
		auth:          auth,
		profiles:      profiles,
		log:           log,
		loading:       true,
		visible:       true,
	}
}

// Initialize resolves the current remote session. Concurrent calls
// share one underlying lookup. On any failure or timeout the state
// settles to anonymous with Loading cleared.
func (c *SessionCoordinator) Initialize(ctx context.Context) {
	c.setLoading(true)

	user, err := c.lookupSession(ctx)
	if err != nil {
		c.log.Warn("session lookup failed", "error", err)
		c.mu.Lock()
		c.user = nil
		c.loading = false
		c.mu.Unlock()
		return
	}
	if user == nil {
		c.mu.Lock()
		c.user = nil
		c.loading = false
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	c.fetchProfile(ctx, user.ID)
}

// Run consumes auth-state-change events until ctx is cancelled.
func (c *SessionCoordinator) Run(ctx context.Context) {
	events, unsubscribe := c.auth.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.HandleAuthEvent(ctx, ev)
		}
	}
}

// HandleAuthEvent applies one state-change notification.
//
// Token refreshes and re-confirmations of the already-loaded identity
// update only the cached user: no profile fetch, no loading transition,
// so routine token rotation never flickers the UI. While the frontend
// reports the tab hidden, events update the cached user only and start
// no network calls.
func (c *SessionCoordinator) HandleAuthEvent(ctx context.Context, ev entity.AuthEvent) {
	c.mu.Lock()
	previousID := ""
	if c.user != nil {
		previousID = c.user.ID
	}
	hasProfile := c.profile != nil
	visible := c.visible
	c.mu.Unlock()

	newID := ""
	if ev.User != nil {
		newID = ev.User.ID
	}

	if !visible {
		c.setUser(ev.User)
		return
	}

	switch {
	case ev.Type == entity.AuthEventTokenRefreshed:
		c.setUser(ev.User)

	case ev.Type == entity.AuthEventSignedIn && newID == previousID && hasProfile:
		// Same user re-authenticated. Nothing to reload.
		c.setUser(ev.User)

	case ev.User != nil:
		c.setUser(ev.User)
		if newID != previousID || !hasProfile {
			c.setLoading(true)
			c.fetchProfile(ctx, newID)
		}

	default: // signed out
		c.mu.Lock()
		c.user = nil
		c.profile = nil
		c.loading = false
		c.mu.Unlock()
	}
}

// SignIn issues the remote sign-in under its own timeout. It does not
// touch the cached user or profile: the SIGNED_IN event does that.
func (c *SessionCoordinator) SignIn(ctx context.Context, email, password string) SignInResult {
	type outcome struct {
		user *entity.AuthUser
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		user, err := c.auth.SignInWithPassword(ctx, email, password)
		done <- outcome{user, err}
	}()

	timer := time.NewTimer(c.SignInTimeout)
	defer timer.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			return SignInResult{Err: out.err}
		}
		return SignInResult{User: out.user}
	case <-timer.C:
		return SignInResult{Err: fmt.Errorf("sign in timed out after %s", c.SignInTimeout)}
	case <-ctx.Done():
		return SignInResult{Err: ctx.Err()}
	}
}

// SignOut revokes the remote session and, on success, clears the cached
// user and profile synchronously.
func (c *SessionCoordinator) SignOut(ctx context.Context) error {
	if err := c.auth.SignOut(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.user = nil
	c.profile = nil
	c.loading = false
	c.mu.Unlock()
	return nil
}

// State returns the current reactive view.
func (c *SessionCoordinator) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SessionState{
		User:    c.user,
		Profile: c.profile,
		IsAdmin: c.profile.IsAdmin(),
		Loading: c.loading,
	}
}

// SetVisible mirrors the frontend's tab visibility. Hidden tabs must
// not cause background network churn.
func (c *SessionCoordinator) SetVisible(v bool) {
	c.mu.Lock()
	c.visible = v
	c.mu.Unlock()
}

// lookupSession coalesces concurrent session lookups into one remote
// call bounded by LookupTimeout. On timeout only the result is ignored;
// the in-flight call is left to finish on its own.
func (c *SessionCoordinator) lookupSession(ctx context.Context) (*entity.AuthUser, error) {
	ch := c.flights.DoChan(opGetSession, func() (any, error) {
		return c.auth.GetSession(context.WithoutCancel(ctx))
	})

	timer := time.NewTimer(c.LookupTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		user, _ := res.Val.(*entity.AuthUser)
		return user, nil
	case <-timer.C:
		return nil, fmt.Errorf("session lookup timed out after %s", c.LookupTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetchProfile resolves the role record for a user id, single-flight
// and time-bounded. Failures degrade to "no profile"; Loading always
// ends cleared so the UI stays interactive.
func (c *SessionCoordinator) fetchProfile(ctx context.Context, userID string) {
	ch := c.flights.DoChan(opFetchProfile, func() (any, error) {
		return c.profiles.FindByUserID(context.WithoutCancel(ctx), userID)
	})

	timer := time.NewTimer(c.LookupTimeout)
	defer timer.Stop()

	var profile *entity.Profile
	select {
	case res := <-ch:
		if res.Err != nil {
			c.log.Warn("profile query failed", "user_id", userID, "error", res.Err)
		} else {
			profile, _ = res.Val.(*entity.Profile)
		}
	case <-timer.C:
		c.log.Warn("profile query timed out", "user_id", userID, "timeout", c.LookupTimeout)
	case <-ctx.Done():
	}

	c.mu.Lock()
	c.profile = profile
	c.loading = false
	c.mu.Unlock()
}

func (c *SessionCoordinator) setUser(u *entity.AuthUser) {
	c.mu.Lock()
	c.user = u
	c.mu.Unlock()
}

func (c *SessionCoordinator) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}
