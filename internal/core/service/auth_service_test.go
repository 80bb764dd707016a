package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/moderndash/dashboard/internal/core/domain"
	"github.com/moderndash/dashboard/internal/core/ports"
	"github.com/moderndash/dashboard/internal/infrastructure/db/memory"
)

const demoSecret = "password123"

type stubLoginQueue struct {
	mu     sync.Mutex
	events []ports.LoginEvent
}

func (q *stubLoginQueue) Enqueue(event ports.LoginEvent) {
	q.mu.Lock()
	q.events = append(q.events, event)
	q.mu.Unlock()
}

type authFixture struct {
	svc    *AuthService
	mgr    *SessionManager
	store  *memory.SnapshotStore
	tokens *TokenManager
	queue  *stubLoginQueue
}

func newAuthFixture(t *testing.T, opts AuthOptions) *authFixture {
	t.Helper()
	dir, err := NewDemoDirectory(demoSecret, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	store := memory.NewSnapshotStore()
	mgr := NewSessionManager(store, time.Hour, nil, discardLogger)
	tokens := NewTokenManager("secret", time.Hour)
	queue := &stubLoginQueue{}
	return &authFixture{
		svc:    NewAuthService(dir, mgr, tokens, queue, nil, opts, discardLogger),
		mgr:    mgr,
		store:  store,
		tokens: tokens,
		queue:  queue,
	}
}

func TestAuthService_Authenticate_DemoAccounts(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	ctx := context.Background()

	cases := map[string]domain.Role{
		"admin@moderndash.com":     domain.RoleAdmin,
		"moderator@moderndash.com": domain.RoleModerator,
		"user@moderndash.com":      domain.RoleUser,
	}
	for email, role := range cases {
		s := f.mgr.Open(ctx, "sid-"+email)
		ok, err := f.svc.Authenticate(ctx, s, email, demoSecret)
		if err != nil || !ok {
			t.Fatalf("%s: Authenticate = %v, %v", email, ok, err)
		}
		current, present := s.Current()
		if !present || current.Email != email || current.Role != role {
			t.Fatalf("%s: unexpected identity %+v", email, current)
		}
		if _, err := f.store.Load(ctx, SnapshotKey(s.ID())); err != nil {
			t.Fatalf("%s: expected persisted snapshot: %v", email, err)
		}
	}
}

func TestAuthService_Authenticate_Rejections(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	ctx := context.Background()

	cases := []struct{ email, secret string }{
		{"admin@moderndash.com", "wrong"},
		{"nobody@x.com", demoSecret},
		{"ADMIN@moderndash.com", demoSecret},
		{"", ""},
	}
	for _, tc := range cases {
		s := f.mgr.Open(ctx, "sid")
		ok, err := f.svc.Authenticate(ctx, s, tc.email, tc.secret)
		if err != nil || ok {
			t.Fatalf("(%q,%q): expected (false, nil), got (%v, %v)", tc.email, tc.secret, ok, err)
		}
		if _, present := s.Current(); present {
			t.Fatalf("(%q,%q): session must stay empty", tc.email, tc.secret)
		}
		if _, err := f.store.Load(ctx, SnapshotKey("sid")); !errors.Is(err, ports.ErrSnapshotNotFound) {
			t.Fatalf("(%q,%q): no snapshot expected, got %v", tc.email, tc.secret, err)
		}
	}
	if len(f.queue.events) != 0 {
		t.Fatalf("rejected attempts must not record logins")
	}
}

func TestAuthService_Authenticate_FailureKeepsPreviousIdentity(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	ctx := context.Background()
	s := f.mgr.Open(ctx, "sid")

	if ok, _ := f.svc.Authenticate(ctx, s, "user@moderndash.com", demoSecret); !ok {
		t.Fatalf("expected user login to succeed")
	}
	if ok, _ := f.svc.Authenticate(ctx, s, "admin@moderndash.com", "wrong"); ok {
		t.Fatalf("expected admin login to fail")
	}
	current, _ := s.Current()
	if current.Role != domain.RoleUser {
		t.Fatalf("failed attempt changed the session: %+v", current)
	}
}

func TestAuthService_Authenticate_RejectsDoubleSubmit(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	ctx := context.Background()
	s := f.mgr.Open(ctx, "sid")

	if err := s.beginAuth(); err != nil {
		t.Fatalf("beginAuth: %v", err)
	}
	ok, err := f.svc.Authenticate(ctx, s, "admin@moderndash.com", demoSecret)
	if ok || !errors.Is(err, domain.ErrAuthInProgress) {
		t.Fatalf("expected ErrAuthInProgress, got (%v, %v)", ok, err)
	}
	s.endAuth()
	if _, present := s.Current(); present {
		t.Fatalf("rejected submit must not install an identity")
	}
}

func TestAuthService_Authenticate_LoadingWhileInFlight(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{Delay: 100 * time.Millisecond})
	ctx := context.Background()
	s, release := f.mgr.Attach(ctx, "sid")
	defer release()

	done := make(chan bool, 1)
	go func() {
		ok, _ := f.svc.Authenticate(ctx, s, "admin@moderndash.com", demoSecret)
		done <- ok
	}()

	deadline := time.Now().Add(time.Second)
	for !s.Loading() {
		if time.Now().After(deadline) {
			t.Fatalf("session never reported loading")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := f.svc.Login(ctx, "sid", "admin@moderndash.com", demoSecret); !errors.Is(err, domain.ErrAuthInProgress) {
		t.Fatalf("concurrent login: expected ErrAuthInProgress, got %v", err)
	}

	if ok := <-done; !ok {
		t.Fatalf("in-flight attempt should succeed")
	}
	if s.Loading() {
		t.Fatalf("loading must be false once the attempt completes")
	}
}

func TestAuthService_Authenticate_Timeout(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{Delay: time.Second, Timeout: 20 * time.Millisecond})
	ctx := context.Background()
	s := f.mgr.Open(ctx, "sid")

	ok, err := f.svc.Authenticate(ctx, s, "admin@moderndash.com", demoSecret)
	if ok || !errors.Is(err, domain.ErrAuthTimeout) {
		t.Fatalf("expected ErrAuthTimeout, got (%v, %v)", ok, err)
	}
	if _, present := s.Current(); present {
		t.Fatalf("timed-out attempt must leave the session empty")
	}
	if s.Loading() {
		t.Fatalf("loading must be false after a timeout")
	}
}

func TestAuthService_Login_IssuesTokenAndRecordsLogin(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "", "admin@moderndash.com", demoSecret)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.SessionID == "" || res.Identity.Role != domain.RoleAdmin {
		t.Fatalf("unexpected result: %+v", res)
	}
	sid, err := f.tokens.Parse(res.Token)
	if err != nil || sid != res.SessionID {
		t.Fatalf("token names %q (%v), want %q", sid, err, res.SessionID)
	}

	restarted := NewSessionManager(f.store, time.Hour, nil, discardLogger).Open(ctx, res.SessionID)
	if current, ok := restarted.Current(); !ok || current.Email != "admin@moderndash.com" {
		t.Fatalf("session not rehydrated after login: %+v", current)
	}

	if len(f.queue.events) != 1 || f.queue.events[0].Email != "admin@moderndash.com" {
		t.Fatalf("expected one login event, got %+v", f.queue.events)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	ctx := context.Background()

	if _, err := f.svc.Login(ctx, "sid", "admin@moderndash.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Login(ctx, "sid", "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty fields, got %v", err)
	}
	if f.mgr.Len() != 0 {
		t.Fatalf("failed logins must not retain sessions")
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t, AuthOptions{})
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "", "user@moderndash.com", demoSecret)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := f.svc.Logout(ctx, res.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := f.store.Load(ctx, SnapshotKey(res.SessionID)); !errors.Is(err, ports.ErrSnapshotNotFound) {
		t.Fatalf("snapshot must be removed on logout, got %v", err)
	}
	if _, ok := f.mgr.Open(ctx, res.SessionID).Current(); ok {
		t.Fatalf("session must be empty after logout")
	}
	if err := f.svc.Logout(ctx, ""); err != nil {
		t.Fatalf("logout without session: %v", err)
	}
}

func TestAuthService_Login_SessionsExpireWithTTL(t *testing.T) {
	dir, err := NewDemoDirectory(demoSecret, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	mgr := NewSessionManager(memory.NewSnapshotStore(), 10*time.Millisecond, nil, discardLogger)
	svc := NewAuthService(dir, mgr, NewTokenManager("secret", time.Hour), nil, nil, AuthOptions{}, discardLogger)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		if _, err := svc.Login(ctx, "", "user@moderndash.com", demoSecret); err != nil {
			t.Fatalf("login %d: %v", i, err)
		}
	}

	time.Sleep(50 * time.Millisecond)
	if n := mgr.Len(); n != 0 {
		t.Fatalf("registered sessions after every snapshot expired: %d", n)
	}
}

func TestAuthService_Authenticate_IsMeasured(t *testing.T) {
	dir, err := NewDemoDirectory(demoSecret, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	rec := newRecordingMetrics()
	mgr := NewSessionManager(memory.NewSnapshotStore(), time.Hour, nil, discardLogger)
	svc := NewAuthService(dir, mgr, NewTokenManager("secret", time.Hour), nil, rec, AuthOptions{}, discardLogger)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "", "user@moderndash.com", demoSecret); err != nil {
		t.Fatalf("login: %v", err)
	}
	_, _ = svc.Login(ctx, "", "user@moderndash.com", "wrong")

	if rec.count("auth:success") != 1 || rec.count("auth:invalid") != 1 {
		t.Fatalf("unexpected auth measurements: %v", rec.counts)
	}
}
