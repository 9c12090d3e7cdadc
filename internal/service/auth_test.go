package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/membergate/internal/domain/auth"
	"github.com/target/membergate/internal/domain/model"
	apperrors "github.com/target/membergate/internal/errors"
	"github.com/target/membergate/internal/mocks"
	"go.uber.org/mock/gomock"
)

type authFixture struct {
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionStore
	hasher   *mocks.MockPasswordHasher
	svc      *AuthService
}

func newAuthService(t *testing.T, ttl time.Duration) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &authFixture{
		users:    mocks.NewMockUserRepository(ctrl),
		sessions: mocks.NewMockSessionStore(ctrl),
		hasher:   mocks.NewMockPasswordHasher(ctrl),
	}
	f.svc = NewAuthService(AuthServiceOptions{
		Stores:     AuthStores{Users: f.users, Sessions: f.sessions},
		Hasher:     f.hasher,
		SessionTTL: ttl,
	})
	return f
}

func TestNewAuthService_RequiresDependencies(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthService(AuthServiceOptions{})
	})
}

func TestAuthService_Signup(t *testing.T) {
	f := newAuthService(t, 0)
	ctx := context.Background()

	f.hasher.EXPECT().Hash("pw123").Return("hashed", nil)
	f.users.EXPECT().
		Insert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user model.User) (*model.User, error) {
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "a@x.com", user.Email)
			assert.Equal(t, "hashed", user.PasswordHash)
			assert.False(t, user.Admin)
			user.ID = "user-1"
			return &user, nil
		})

	user, err := f.svc.Signup(ctx, model.CreateUserRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw123",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestAuthService_Signup_ValidationLeavesStorageUntouched(t *testing.T) {
	// No EXPECT calls: any hash or insert would fail the controller.
	f := newAuthService(t, 0)

	cases := []struct {
		name  string
		req   model.CreateUserRequest
		field string
	}{
		{"missing name", model.CreateUserRequest{Email: "a@x.com", Password: "pw123"}, "username"},
		{"missing email", model.CreateUserRequest{Username: "alice", Password: "pw123"}, "email"},
		{"missing password", model.CreateUserRequest{Username: "alice", Email: "a@x.com"}, "password"},
		{"short name", model.CreateUserRequest{Username: "al", Email: "a@x.com", Password: "pw123"}, "username"},
		{"long password", model.CreateUserRequest{Username: "alice", Email: "a@x.com", Password: "aaaaaaaaaaaaaaaaaaaaa"}, "password"},
		{"bad email", model.CreateUserRequest{Username: "alice", Email: "not-an-email", Password: "pw123"}, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := f.svc.Signup(context.Background(), tc.req)
			assert.Nil(t, user)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tc.field, apperrors.GetField(err))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthService(t, 30*time.Minute)
	ctx := context.Background()

	stored := model.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hashed",
	}
	f.users.EXPECT().FindByEmail(ctx, "a@x.com").Return([]model.User{stored}, nil)
	f.hasher.EXPECT().Verify("pw123", "hashed").Return(true)

	var saved domainauth.Session
	f.sessions.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, sess domainauth.Session) error {
			saved = sess
			return nil
		})

	before := time.Now()
	session, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	assert.Equal(t, saved.ID, session.ID)
	assert.NotEmpty(t, session.ID)
	assert.True(t, session.Authenticated)
	assert.Equal(t, "a@x.com", session.Email)
	assert.Equal(t, "alice", session.Name)
	assert.WithinDuration(t, before.Add(30*time.Minute), session.ExpiresAt, 2*time.Second)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	f := newAuthService(t, 0)
	ctx := context.Background()

	two := []model.User{
		{ID: "user-1", Email: "dup@x.com"},
		{ID: "user-2", Email: "dup@x.com"},
	}

	// Zero matches and several matches surface as the same error.
	f.users.EXPECT().FindByEmail(ctx, "nobody@x.com").Return(nil, nil)
	_, errZero := f.svc.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "pw123"})

	f.users.EXPECT().FindByEmail(ctx, "dup@x.com").Return(two, nil)
	_, errMany := f.svc.Login(ctx, LoginInput{Email: "dup@x.com", Password: "pw123"})

	for _, err := range []error{errZero, errMany} {
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, "User Not Found", apperrors.GetMessage(err))
	}
}

func TestAuthService_Login_IncorrectPassword(t *testing.T) {
	f := newAuthService(t, 0)
	ctx := context.Background()

	stored := model.User{ID: "user-1", Username: "alice", Email: "a@x.com", PasswordHash: "hashed"}
	f.users.EXPECT().FindByEmail(ctx, "a@x.com").Return([]model.User{stored}, nil)
	f.hasher.EXPECT().Verify("wrong", "hashed").Return(false)
	// No Save expectation: a rejected login must not create a session.

	session, err := f.svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong"})
	assert.Nil(t, session)
	assert.True(t, apperrors.IsAuthentication(err))
}

func TestAuthService_Login_InvalidEmail(t *testing.T) {
	f := newAuthService(t, 0)

	for _, email := range []string{"", "   ", "this-address-is-well-over-thirty-characters@example.com"} {
		_, err := f.svc.Login(context.Background(), LoginInput{Email: email, Password: "pw123"})
		assert.True(t, apperrors.IsValidation(err), "email %q", email)
	}
}

func TestAuthService_GetSession(t *testing.T) {
	f := newAuthService(t, 0)
	ctx := context.Background()

	sess := domainauth.Session{
		ID:            "sess-1",
		Authenticated: true,
		Email:         "a@x.com",
		Name:          "alice",
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	f.sessions.EXPECT().Get(ctx, "sess-1").Return(sess, nil)

	got, err := f.svc.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, *got)
}

func TestAuthService_GetSession_ExpiredIsDeleted(t *testing.T) {
	f := newAuthService(t, 0)
	ctx := context.Background()

	stale := domainauth.Session{
		ID:            "sess-1",
		Authenticated: true,
		ExpiresAt:     time.Now().Add(-time.Minute),
	}
	f.sessions.EXPECT().Get(ctx, "sess-1").Return(stale, nil)
	f.sessions.EXPECT().Delete(ctx, "sess-1").Return(nil)

	got, err := f.svc.GetSession(ctx, "sess-1")
	assert.Nil(t, got)
	assert.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthService(t, 0)
	ctx := context.Background()

	f.sessions.EXPECT().Delete(ctx, "sess-1").Return(nil)
	assert.NoError(t, f.svc.Logout(ctx, "sess-1"))

	// An empty ID is a no-op, not an error.
	assert.NoError(t, f.svc.Logout(ctx, ""))
}

func TestAuthService_SessionTTL(t *testing.T) {
	assert.Equal(t, DefaultSessionTTL, newAuthService(t, 0).svc.SessionTTL())
	assert.Equal(t, 15*time.Minute, newAuthService(t, 15*time.Minute).svc.SessionTTL())
}
