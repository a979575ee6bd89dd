package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"frontend-gin/internal/auth"
	"frontend-gin/internal/backend"
	"frontend-gin/internal/session"
	"frontend-gin/internal/web"

	"github.com/gin-gonic/gin"
)

const (
	tabSignIn = "signin"
	tabSignUp = "signup"

	signInFailed = "Failed to sign in. Please try again."
	signUpFailed = "Signup failed"
)

// AuthView is the data of the auth page. Only the fields of Tab are shown.
type AuthView struct {
	Tab    string
	Error  string
	Errors auth.Errors
	SignIn auth.SignInForm
	SignUp auth.SignUpForm
}

func (h *Handler) ShowAuth(c *gin.Context) {
	view := AuthView{Tab: tabSignIn}
	if c.Query("tab") == tabSignUp {
		view.Tab = tabSignUp
	}
	h.render(c, http.StatusOK, web.PageAuth, "Sign In", view)
}

func (h *Handler) SignIn(c *gin.Context) {
	view := AuthView{Tab: tabSignIn}

	if err := c.Request.ParseForm(); err != nil {
		view.Error = signInFailed
		h.render(c, http.StatusBadRequest, web.PageAuth, "Sign In", view)
		return
	}
	form, err := auth.DecodeSignIn(c.Request.PostForm)
	if err != nil {
		slog.Warn("sign in form rejected", "error", err)
		view.Error = signInFailed
		h.render(c, http.StatusBadRequest, web.PageAuth, "Sign In", view)
		return
	}
	view.SignIn = form

	if errs := form.Validate(); errs.Any() {
		view.Errors = errs
		h.render(c, http.StatusUnprocessableEntity, web.PageAuth, "Sign In", view)
		return
	}

	result, err := h.api.SignIn(c.Request.Context(), form.Request())
	if err != nil {
		slog.Error("sign in failed", "error", err)
		view.Error = backend.Message(err, signInFailed)
		h.render(c, failureStatus(err), web.PageAuth, "Sign In", view)
		return
	}

	h.finishAuth(c, result, view, "Signed in successfully.", signInFailed)
}

func (h *Handler) SignUp(c *gin.Context) {
	view := AuthView{Tab: tabSignUp}

	if err := c.Request.ParseForm(); err != nil {
		view.Error = signUpFailed
		h.render(c, http.StatusBadRequest, web.PageAuth, "Sign Up", view)
		return
	}
	form, err := auth.DecodeSignUp(c.Request.PostForm)
	if err != nil {
		slog.Warn("sign up form rejected", "error", err)
		view.Error = signUpFailed
		h.render(c, http.StatusBadRequest, web.PageAuth, "Sign Up", view)
		return
	}
	view.SignUp = form

	if errs := form.Validate(); errs.Any() {
		view.Errors = errs
		h.render(c, http.StatusUnprocessableEntity, web.PageAuth, "Sign Up", view)
		return
	}

	result, err := h.api.SignUp(c.Request.Context(), form.Request())
	if err != nil {
		slog.Error("sign up failed", "error", err)
		view.Error = backend.Message(err, signUpFailed)
		h.render(c, failureStatus(err), web.PageAuth, "Sign Up", view)
		return
	}

	// Some accounts are created without a token and have to sign in.
	if result.Token == "" {
		h.sessions.AddFlash(c, session.FlashSuccess, messageOr(result.Message, "Account created. Please sign in."))
		c.Redirect(http.StatusSeeOther, "/auth?tab="+tabSignIn)
		return
	}

	h.finishAuth(c, result, view, "Account created successfully.", signUpFailed)
}

// finishAuth stores the returned token and sends the user to their dashboard.
func (h *Handler) finishAuth(c *gin.Context, result *backend.AuthResult, view AuthView, success, fallback string) {
	title := "Sign In"
	if view.Tab == tabSignUp {
		title = "Sign Up"
	}

	sess, err := h.sessions.Save(c, result.Token)
	if err != nil {
		slog.Error("token not stored", "error", err)
		view.Error = fallback
		if errors.Is(err, session.ErrNoToken) {
			view.Error = messageOr(result.Message, fallback)
		}
		h.render(c, http.StatusBadGateway, web.PageAuth, title, view)
		return
	}

	slog.Info("signed in", "role", sess.Role, "user_id", sess.UserID)
	h.sessions.AddFlash(c, session.FlashSuccess, messageOr(result.Message, success))
	c.Redirect(http.StatusSeeOther, "/dashboard/"+string(sess.Role))
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c); err != nil {
		slog.Error("logout failed", "error", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
