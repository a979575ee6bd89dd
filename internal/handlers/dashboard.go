package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"frontend-gin/internal/dashboard"
	"frontend-gin/internal/models"
	"frontend-gin/internal/session"
	"frontend-gin/internal/web"

	"github.com/gin-gonic/gin"
)

// DashboardView is the sidebar plus whichever section is selected.
type DashboardView struct {
	Role     models.Role
	Services []dashboard.Service
	Active   string
	Section  template.HTML
	Error    string
	// Retry reloads the failed section when set.
	Retry string
}

func (h *Handler) DashboardHome(c *gin.Context) {
	state := session.FromContext(c)
	if !state.Authenticated {
		c.Redirect(http.StatusFound, "/auth")
		return
	}
	c.Redirect(http.StatusFound, "/dashboard/"+string(state.Role))
}

func (h *Handler) ShowDashboard(c *gin.Context) {
	state := session.FromContext(c)
	key := c.Param("service")
	title := state.Role.Label() + " Dashboard"

	view := DashboardView{
		Role:     state.Role,
		Services: h.loader.Services(state.Role),
		Active:   key,
	}
	if key == "" {
		h.render(c, http.StatusOK, web.PageDashboard, title, view)
		return
	}

	section, err := h.loader.Resolve(state.Role, key)
	if err != nil {
		slog.Warn("service not resolved", "error", err)
		view.Error = dashboard.UserMessage(err)
		h.render(c, http.StatusNotFound, web.PageDashboard, title, view)
		return
	}
	title = h.loader.ServiceName(state.Role, key)

	req, err := h.sectionRequest(c, state)
	if err != nil {
		c.Error(err)
		view.Error = dashboard.UserMessage(err)
		view.Retry = c.Request.URL.RequestURI()
		h.render(c, http.StatusInternalServerError, web.PageDashboard, title, view)
		return
	}

	data, err := section.Load(c.Request.Context(), req)
	if err != nil {
		slog.Error("section load failed", "service", key, "error", err)
		view.Error = dashboard.UserMessage(err)
		view.Retry = c.Request.URL.RequestURI()
		h.render(c, http.StatusOK, web.PageDashboard, title, view)
		return
	}

	html, err := h.renderer.Section(section.Template(), web.SectionData{Action: c.Request.URL.Path, Data: data})
	if err != nil {
		c.Error(err)
		view.Error = dashboard.UserMessage(err)
		view.Retry = c.Request.URL.RequestURI()
		h.render(c, http.StatusInternalServerError, web.PageDashboard, title, view)
		return
	}

	view.Section = html
	h.render(c, http.StatusOK, web.PageDashboard, title, view)
}

// DashboardAction hands a section form post to the section and redirects
// back to it with the outcome as a flash.
func (h *Handler) DashboardAction(c *gin.Context) {
	state := session.FromContext(c)
	key := c.Param("service")
	back := c.Request.URL.Path

	section, err := h.loader.Resolve(state.Role, key)
	if err != nil {
		slog.Warn("service not resolved", "error", err)
		h.sessions.AddFlash(c, session.FlashError, dashboard.UserMessage(err))
		c.Redirect(http.StatusSeeOther, "/dashboard/"+string(state.Role))
		return
	}
	actor, ok := section.(dashboard.Actor)
	if !ok {
		h.sessions.AddFlash(c, session.FlashError, "This service does not accept submissions.")
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		h.sessions.AddFlash(c, session.FlashError, "The form could not be read. Please try again.")
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	req, err := h.sectionRequest(c, state)
	if err != nil {
		c.Error(err)
		h.sessions.AddFlash(c, session.FlashError, dashboard.UserMessage(err))
		c.Redirect(http.StatusSeeOther, back)
		return
	}

	outcome, err := actor.Act(c.Request.Context(), req, c.Request.PostForm)
	switch {
	case err != nil:
		slog.Error("section action failed", "service", key, "error", err)
		h.sessions.AddFlash(c, session.FlashError, dashboard.UserMessage(err))
	case outcome.Message != "":
		kind := outcome.Kind
		if kind == "" {
			kind = session.FlashSuccess
		}
		h.sessions.AddFlash(c, kind, outcome.Message)
	}

	if q := outcome.Query.Encode(); q != "" {
		back += "?" + q
	}
	c.Redirect(http.StatusSeeOther, back)
}

// sectionRequest collects what a section needs. Only ASHA workers keep a
// wizard draft, so only they are given a draft id.
func (h *Handler) sectionRequest(c *gin.Context, state session.State) (dashboard.Request, error) {
	req := dashboard.Request{Session: state.Session, Query: c.Request.URL.Query()}
	if state.Role == models.RoleASHAWorker {
		id, err := h.sessions.DraftID(c)
		if err != nil {
			return dashboard.Request{}, err
		}
		req.DraftID = id
	}
	return req, nil
}
