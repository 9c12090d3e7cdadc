package httpx

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeAdmin flips the stored flag directly so a test user can pass the
// admin gate without going through the toggle endpoint under test.
func (g *gateway) makeAdmin(t *testing.T, email string) {
	t.Helper()
	user, err := g.userSvc.ToggleAdmin(context.Background(), email)
	require.NoError(t, err)
	require.True(t, user.Admin)
}

func TestAdminList(t *testing.T) {
	g := newGateway(t)

	cookie := g.signupAndLogin(t, "alice", "a@x.com", "pw123")
	g.makeAdmin(t, "a@x.com")
	g.signupAndLogin(t, "bob", "b@x.com", "pw456")

	rec := g.get(t, "/admin", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "b@x.com")
	assert.Contains(t, body, "/makeAdmin")
}

func TestAdminRoutes_Gated(t *testing.T) {
	g := newGateway(t)

	// Anonymous requests bounce to the landing page.
	rec := g.get(t, "/admin", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = g.postForm(t, "/makeAdmin", url.Values{"email": {"a@x.com"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// A logged-in non-admin is refused outright.
	cookie := g.signupAndLogin(t, "bob", "b@x.com", "pw123")
	rec = g.get(t, "/admin", cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = g.postForm(t, "/makeAdmin", url.Values{"email": {"b@x.com"}}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMakeAdmin_TogglesBothWays(t *testing.T) {
	g := newGateway(t)

	cookie := g.signupAndLogin(t, "alice", "a@x.com", "pw123")
	g.makeAdmin(t, "a@x.com")
	g.signupAndLogin(t, "bob", "b@x.com", "pw456")

	rec := g.postForm(t, "/makeAdmin", url.Values{"email": {"b@x.com"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	admin, err := g.userSvc.IsAdmin(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.True(t, admin)

	rec = g.postForm(t, "/makeAdmin", url.Values{"email": {"b@x.com"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	admin, err = g.userSvc.IsAdmin(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestMakeAdmin_MissingEmail(t *testing.T) {
	g := newGateway(t)

	cookie := g.signupAndLogin(t, "alice", "a@x.com", "pw123")
	g.makeAdmin(t, "a@x.com")

	rec := g.postForm(t, "/makeAdmin", url.Values{}, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing email")
	assert.Contains(t, rec.Body.String(), `href="/admin"`)
}

func TestMakeAdmin_UserNotFoundAborts(t *testing.T) {
	g := newGateway(t)

	cookie := g.signupAndLogin(t, "alice", "a@x.com", "pw123")
	g.makeAdmin(t, "a@x.com")

	rec := g.postForm(t, "/makeAdmin", url.Values{"email": {"nobody@x.com"}}, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")

	// A toggle aimed at one of several records with the same email aborts too.
	for _, username := range []string{"bob", "bob2"} {
		signup := g.postForm(t, "/submitSignup", url.Values{
			"username": {username},
			"email":    {"dup@x.com"},
			"password": {"pw456"},
		}, nil)
		require.Equal(t, http.StatusSeeOther, signup.Code)
	}
	rec = g.postForm(t, "/makeAdmin", url.Values{"email": {"dup@x.com"}}, cookie)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestAdminRevocation_TakesEffectNextRequest(t *testing.T) {
	g := newGateway(t)

	cookie := g.signupAndLogin(t, "alice", "a@x.com", "pw123")
	g.makeAdmin(t, "a@x.com")

	rec := g.get(t, "/admin", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// Revoking admin mid-session locks the same cookie out immediately.
	rec = g.postForm(t, "/makeAdmin", url.Values{"email": {"a@x.com"}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = g.get(t, "/admin", cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
