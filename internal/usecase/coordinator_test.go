package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunnyops/sunny-admin/internal/entity"
)

// fakeAuthGateway gives the concurrency tests deterministic control
// over call counts and latency, which mock.Mock cannot.
type fakeAuthGateway struct {
	sessionUser  *entity.AuthUser
	sessionErr   error
	sessionDelay time.Duration
	sessionCalls int32

	signInUser  *entity.AuthUser
	signInErr   error
	signInDelay time.Duration

	signOutErr   error
	signOutCalls int32

	events       chan entity.AuthEvent
	unsubscribes int32
}

func newFakeAuthGateway() *fakeAuthGateway {
	return &fakeAuthGateway{events: make(chan entity.AuthEvent, 8)}
}

func (g *fakeAuthGateway) GetSession(ctx context.Context) (*entity.AuthUser, error) {
	atomic.AddInt32(&g.sessionCalls, 1)
	if g.sessionDelay > 0 {
		time.Sleep(g.sessionDelay)
	}
	return g.sessionUser, g.sessionErr
}

func (g *fakeAuthGateway) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthUser, error) {
	if g.signInDelay > 0 {
		time.Sleep(g.signInDelay)
	}
	return g.signInUser, g.signInErr
}

func (g *fakeAuthGateway) SignOut(ctx context.Context) error {
	atomic.AddInt32(&g.signOutCalls, 1)
	return g.signOutErr
}

func (g *fakeAuthGateway) Subscribe() (<-chan entity.AuthEvent, func()) {
	return g.events, func() { atomic.AddInt32(&g.unsubscribes, 1) }
}

type fakeProfileRepository struct {
	profile *entity.Profile
	err     error
	delay   time.Duration
	calls   int32
}

func (r *fakeProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	atomic.AddInt32(&r.calls, 1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	return r.profile, r.err
}

func newTestCoordinator(gw *fakeAuthGateway, profiles *fakeProfileRepository) *SessionCoordinator {
	c := NewSessionCoordinator(gw, profiles, nil)
	c.LookupTimeout = 100 * time.Millisecond
	c.SignInTimeout = 100 * time.Millisecond
	return c
}

func TestInitializeCoalescesConcurrentLookups(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1", Email: "admin@example.com"}
	gw.sessionDelay = 30 * time.Millisecond
	profiles := &fakeProfileRepository{
		profile: &entity.Profile{ID: "user-1", Role: "admin"},
		delay:   30 * time.Millisecond,
	}
	c := newTestCoordinator(gw, profiles)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Initialize(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&gw.sessionCalls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&profiles.calls))

	state := c.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "user-1", state.User.ID)
	assert.True(t, state.IsAdmin)
	assert.False(t, state.Loading)
}

func TestInitializeTimeoutResolvesAnonymous(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1"}
	gw.sessionDelay = 300 * time.Millisecond
	profiles := &fakeProfileRepository{}
	c := newTestCoordinator(gw, profiles)
	c.LookupTimeout = 20 * time.Millisecond

	c.Initialize(context.Background())

	state := c.State()
	assert.Nil(t, state.User)
	assert.False(t, state.Loading)
	assert.Equal(t, int32(0), atomic.LoadInt32(&profiles.calls))
}

func TestInitializeWithoutSessionIsAnonymous(t *testing.T) {
	gw := newFakeAuthGateway()
	profiles := &fakeProfileRepository{}
	c := newTestCoordinator(gw, profiles)

	c.Initialize(context.Background())

	state := c.State()
	assert.Nil(t, state.User)
	assert.Nil(t, state.Profile)
	assert.False(t, state.Loading)
	assert.Equal(t, int32(0), atomic.LoadInt32(&profiles.calls))
}

func TestProfileFetchTimeoutLeavesNoProfileAndStopsLoading(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1"}
	profiles := &fakeProfileRepository{
		profile: &entity.Profile{ID: "user-1", Role: "admin"},
		delay:   300 * time.Millisecond,
	}
	c := newTestCoordinator(gw, profiles)
	c.LookupTimeout = 20 * time.Millisecond

	c.Initialize(context.Background())

	state := c.State()
	require.NotNil(t, state.User)
	assert.Nil(t, state.Profile)
	assert.False(t, state.IsAdmin)
	assert.False(t, state.Loading)
}

func TestProfileFetchErrorDegradesToNoProfile(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1"}
	profiles := &fakeProfileRepository{err: assert.AnError}
	c := newTestCoordinator(gw, profiles)

	c.Initialize(context.Background())

	state := c.State()
	assert.Nil(t, state.Profile)
	assert.False(t, state.Loading)
}

func TestTokenRefreshNeverReloads(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1"}
	profiles := &fakeProfileRepository{profile: &entity.Profile{ID: "user-1", Role: "admin"}}
	c := newTestCoordinator(gw, profiles)
	c.Initialize(context.Background())
	require.Equal(t, int32(1), atomic.LoadInt32(&profiles.calls))

	refreshed := &entity.AuthUser{ID: "user-1", Email: "rotated@example.com"}
	c.HandleAuthEvent(context.Background(), entity.AuthEvent{Type: entity.AuthEventTokenRefreshed, User: refreshed})

	state := c.State()
	assert.False(t, state.Loading)
	assert.Equal(t, "rotated@example.com", state.User.Email)
	assert.Equal(t, int32(1), atomic.LoadInt32(&profiles.calls))
}

func TestSignedInSameUserWithProfileIsNoop(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1"}
	profiles := &fakeProfileRepository{profile: &entity.Profile{ID: "user-1", Role: "admin"}}
	c := newTestCoordinator(gw, profiles)
	c.Initialize(context.Background())

	c.HandleAuthEvent(context.Background(), entity.AuthEvent{
		Type: entity.AuthEventSignedIn,
		User: &entity.AuthUser{ID: "user-1"},
	})

	assert.Equal(t, int32(1), atomic.LoadInt32(&profiles.calls))
	assert.False(t, c.State().Loading)
}

func TestIdentityChangeFetchesProfile(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1"}
	profiles := &fakeProfileRepository{profile: &entity.Profile{ID: "user-1", Role: "admin"}}
	c := newTestCoordinator(gw, profiles)
	c.Initialize(context.Background())

	profiles.profile = &entity.Profile{ID: "user-2", Role: "viewer"}
	c.HandleAuthEvent(context.Background(), entity.AuthEvent{
		Type: entity.AuthEventSignedIn,
		User: &entity.AuthUser{ID: "user-2"},
	})

	assert.Equal(t, int32(2), atomic.LoadInt32(&profiles.calls))
	state := c.State()
	assert.Equal(t, "user-2", state.User.ID)
	assert.Equal(t, "viewer", state.Profile.Role)
	assert.False(t, state.IsAdmin)
	assert.False(t, state.Loading)
}

func TestSignOutEventClearsEverything(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1"}
	profiles := &fakeProfileRepository{profile: &entity.Profile{ID: "user-1", Role: "admin"}}
	c := newTestCoordinator(gw, profiles)
	c.Initialize(context.Background())

	c.HandleAuthEvent(context.Background(), entity.AuthEvent{Type: entity.AuthEventSignedOut})

	state := c.State()
	assert.Nil(t, state.User)
	assert.Nil(t, state.Profile)
	assert.False(t, state.IsAdmin)
	assert.False(t, state.Loading)
}

func TestHiddenTabEventsOnlyUpdateUser(t *testing.T) {
	gw := newFakeAuthGateway()
	profiles := &fakeProfileRepository{profile: &entity.Profile{ID: "user-2", Role: "admin"}}
	c := newTestCoordinator(gw, profiles)
	c.Initialize(context.Background())

	c.SetVisible(false)
	c.HandleAuthEvent(context.Background(), entity.AuthEvent{
		Type: entity.AuthEventSignedIn,
		User: &entity.AuthUser{ID: "user-2"},
	})

	state := c.State()
	assert.Equal(t, "user-2", state.User.ID)
	assert.Nil(t, state.Profile)
	assert.False(t, state.Loading)
	assert.Equal(t, int32(0), atomic.LoadInt32(&profiles.calls))
}

func TestSignInTimesOutWithoutMutatingState(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.signInUser = &entity.AuthUser{ID: "user-1"}
	gw.signInDelay = 300 * time.Millisecond
	c := newTestCoordinator(gw, &fakeProfileRepository{})
	c.SignInTimeout = 20 * time.Millisecond

	res := c.SignIn(context.Background(), "admin@example.com", "secret")

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "timed out")
	assert.Nil(t, c.State().User)
}

func TestSignInSuccessDoesNotTouchState(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.signInUser = &entity.AuthUser{ID: "user-1"}
	c := newTestCoordinator(gw, &fakeProfileRepository{})

	res := c.SignIn(context.Background(), "admin@example.com", "secret")

	require.NoError(t, res.Err)
	assert.Equal(t, "user-1", res.User.ID)
	// The cached identity arrives via the auth-event channel, not here.
	assert.Nil(t, c.State().User)
}

func TestSignOutClearsStateSynchronously(t *testing.T) {
	gw := newFakeAuthGateway()
	gw.sessionUser = &entity.AuthUser{ID: "user-1"}
	profiles := &fakeProfileRepository{profile: &entity.Profile{ID: "user-1", Role: "admin"}}
	c := newTestCoordinator(gw, profiles)
	c.Initialize(context.Background())

	require.NoError(t, c.SignOut(context.Background()))

	state := c.State()
	assert.Nil(t, state.User)
	assert.Nil(t, state.Profile)
}

func TestRunHandlesEventsAndUnsubscribesOnCancel(t *testing.T) {
	gw := newFakeAuthGateway()
	profiles := &fakeProfileRepository{profile: &entity.Profile{ID: "user-1", Role: "admin"}}
	c := newTestCoordinator(gw, profiles)
	c.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx)
	}()

	gw.events <- entity.AuthEvent{Type: entity.AuthEventSignedIn, User: &entity.AuthUser{ID: "user-1"}}
	assert.Eventually(t, func() bool {
		s := c.State()
		return s.User != nil && s.Profile != nil && !s.Loading
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, int32(1), atomic.LoadInt32(&gw.unsubscribes))
}
