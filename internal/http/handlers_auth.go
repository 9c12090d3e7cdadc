package httpx

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/target/membergate/internal/domain/auth"
	"github.com/target/membergate/internal/domain/model"
	apperrors "github.com/target/membergate/internal/errors"
	"github.com/target/membergate/internal/service"
)

// AuthServiceInterface defines the auth service operations the handlers use.
type AuthServiceInterface interface {
	Signup(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	Login(ctx context.Context, input service.LoginInput) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	SessionTTL() time.Duration
}

// AuthHandlers provides HTTP handlers for signup, login, logout, and the
// session-gated views.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Render       Renderer
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Home handles GET /. Authenticated visitors go straight to the members
// view; everyone else sees the landing links.
func (h *AuthHandlers) Home(w http.ResponseWriter, r *http.Request) {
	if IsAuthenticated(r.Context()) {
		http.Redirect(w, r, pathMembers, http.StatusSeeOther)
		return
	}
	h.Render.Render(w, http.StatusOK, "landing", pageData{Title: "Membergate"})
}

// SignupForm handles GET /signup.
func (h *AuthHandlers) SignupForm(w http.ResponseWriter, _ *http.Request) {
	h.Render.Render(w, http.StatusOK, "signup", pageData{Title: "Sign Up"})
}

// SubmitSignup handles POST /submitSignup. Validation failures re-render the
// signup page with the field-specific message and leave storage untouched.
// On success the user is sent to the login form; no session is created.
func (h *AuthHandlers) SubmitSignup(w http.ResponseWriter, r *http.Request) {
	req := model.CreateUserRequest{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if _, err := h.Svc.Signup(r.Context(), req); err != nil {
		if apperrors.IsValidation(err) {
			h.Render.Render(w, http.StatusOK, "signup", pageData{
				Title:   "Sign Up",
				Message: validationMessage(err),
			})
			return
		}
		h.logger().ErrorContext(r.Context(), "signup failed", "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, pathLogin, http.StatusSeeOther)
}

// LoginForm handles GET /login.
func (h *AuthHandlers) LoginForm(w http.ResponseWriter, _ *http.Request) {
	h.Render.Render(w, http.StatusOK, "login", pageData{Title: "Log In"})
}

// SubmitLogin handles POST /submitLogin.
//
// A malformed email redirects back to the login form without a lookup. The
// "user not found" and "incorrect password" outcomes differ only in message
// text; neither reveals whether the email was known.
func (h *AuthHandlers) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	session, err := h.Svc.Login(r.Context(), service.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			http.Redirect(w, r, pathLogin, http.StatusSeeOther)
		case apperrors.IsNotFound(err):
			h.renderMessage(w, "User Not Found", pathLogin)
		case apperrors.IsAuthentication(err):
			h.renderMessage(w, "Incorrect password", pathLogin)
		default:
			h.logger().ErrorContext(r.Context(), "login failed", "error", err)
			http.Error(w, "Error", http.StatusInternalServerError)
		}
		return
	}

	h.setSessionCookie(w, r, session)
	http.Redirect(w, r, pathMembers, http.StatusSeeOther)
}

// Members handles GET /members. The route is wrapped in RequireAuth, so the
// session in context is always authenticated here. The random integer only
// varies the view; nothing stored changes on this path.
func (h *AuthHandlers) Members(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, pathHome, http.StatusSeeOther)
		return
	}

	h.Render.Render(w, http.StatusOK, "members", pageData{
		Title:         "Members",
		Name:          session.Name,
		RandomInteger: rand.IntN(3) + 1,
	})
}

// Logout handles GET /logout. Destroying an absent session is not an error,
// so hitting this twice in a row behaves the same both times.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearSessionCookie(w, r)
	http.Redirect(w, r, pathHome, http.StatusSeeOther)
}

// Status handles GET /api/session and reports the authentication state of
// the current session as JSON.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), cookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie
		h.clearSessionCookie(w, r)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": session.Authenticated,
		"name":          session.Name,
		"email":         session.Email,
		"expires_at":    session.ExpiresAt,
	})
}

func (h *AuthHandlers) renderMessage(w http.ResponseWriter, message, backHref string) {
	h.Render.Render(w, http.StatusOK, "message", pageData{
		Title:    message,
		Message:  message,
		BackHref: backHref,
	})
}

// setSessionCookie writes the session cookie with MaxAge matching the
// session TTL, renewing the client-side lifetime on each login.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, session *domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   int(h.Svc.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the cookie immediately, mirroring the
// attributes used when setting it so browsers actually drop it.
func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// validationMessage extracts the user-facing message from a validation error.
func validationMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Invalid input"
}
