package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/target/membergate/internal/domain/model"
	apperrors "github.com/target/membergate/internal/errors"
)

// UserServiceInterface defines the admin operations the handlers use.
type UserServiceInterface interface {
	List(ctx context.Context) ([]model.User, error)
	ToggleAdmin(ctx context.Context, email string) (*model.User, error)
}

// AdminHandlers provides the admin view and the privilege toggle. Both
// routes are wrapped in RequireAdmin by the router.
type AdminHandlers struct {
	Svc    UserServiceInterface
	Render Renderer
	Logger *slog.Logger
}

func (h *AdminHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// List handles GET /admin and renders the user table. Storage failures
// surface as a generic error rather than propagating detail.
func (h *AdminHandlers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list users failed", "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	h.Render.Render(w, http.StatusOK, "admin", pageData{Title: "Admin", Users: users})
}

// MakeAdmin handles POST /makeAdmin. A lookup that finds no single matching
// user aborts the toggle; the flag is never flipped on a missing record.
func (h *AdminHandlers) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")

	if _, err := h.Svc.ToggleAdmin(r.Context(), email); err != nil {
		switch {
		case apperrors.IsValidation(err):
			h.renderMessage(w, "Missing email")
		case apperrors.IsNotFound(err):
			h.renderMessage(w, "User not found")
		default:
			h.logger().ErrorContext(r.Context(), "toggle admin failed", "error", err)
			http.Error(w, "Error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, pathAdmin, http.StatusSeeOther)
}

func (h *AdminHandlers) renderMessage(w http.ResponseWriter, message string) {
	h.Render.Render(w, http.StatusOK, "message", pageData{
		Title:    message,
		Message:  message,
		BackHref: pathAdmin,
	})
}
