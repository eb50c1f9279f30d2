package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Achutha2207/portfolio/internal/catalog"
	"github.com/Achutha2207/portfolio/internal/session"
	"github.com/Achutha2207/portfolio/internal/view"
)

const (
	sessionCookie = "portfolio_session"
	sessionKey    = "session"
	trackKey      = "track"
)

// sessionMiddleware attaches the visitor's live session, if any, and slides
// its cookie in step with the server-side idle timeout. Visitors without one
// see the initial state; a session is only stored once they change it.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		if sess, ok := s.sessions.Get(id); ok {
			s.setSessionCookie(c, sess)
			c.Set(sessionKey, sess)
		}
		c.Next()
	}
}

func (s *Server) setSessionCookie(c *gin.Context, sess *session.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, int(s.cfg.SessionTTL.Seconds()), "/", "", s.cfg.CookieSecure, true)
}

// visitorTracking marks requests whose page views may be recorded. Static
// files, admin pages and visitors sending Do Not Track are skipped.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.analytics == nil ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") {
			c.Next()
			return
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		c.Set(trackKey, true)
		c.Next()
	}
}

// currentState is the visitor's view state, or the initial one when they
// have no session yet.
func (s *Server) currentState(c *gin.Context) view.State {
	if v, ok := c.Get(sessionKey); ok {
		return v.(*session.Session).Snapshot()
	}
	return view.New(s.catalog).State()
}

// transition applies fn to the visitor's controller, starting their session
// first if needed.
func (s *Server) transition(c *gin.Context, fn func(*view.Controller)) view.State {
	var sess *session.Session
	if v, ok := c.Get(sessionKey); ok {
		sess = v.(*session.Session)
	} else {
		sess = s.sessions.Create()
		s.setSessionCookie(c, sess)
		c.Set(sessionKey, sess)
	}
	return sess.Do(fn)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func (s *Server) recordView(c *gin.Context, p view.Page) {
	if !c.GetBool(trackKey) {
		return
	}
	if err := s.analytics.RecordView(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), p.String()); err != nil {
		s.log.Warn("recording page view", zap.Error(err))
	}
}

func (s *Server) recordClick(c *gin.Context, key, target string) {
	if !c.GetBool(trackKey) {
		return
	}
	if err := s.analytics.RecordClick(c.Request.Context(), key, target); err != nil {
		s.log.Warn("recording link click", zap.String("link", key), zap.Error(err))
	}
}

// render writes the whole page, or only the app fragment for HTMX.
func (s *Server) render(c *gin.Context, st view.State) {
	data, err := s.pageData(st)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Sorry, this page could not be rendered.")
		return
	}
	name := "index.html"
	if isHTMX(c) {
		name = "app"
	}
	c.HTML(http.StatusOK, name, data)
}

// afterTransition answers a state change: HTMX gets the new fragment, a
// plain form post is sent back to the page.
func (s *Server) afterTransition(c *gin.Context, st view.State) {
	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	s.render(c, st)
}

// notFound reports an unknown page, certificate or link. HTMX gets the
// message swapped into the flash area; everyone else gets the full page
// with the message on top.
func (s *Server) notFound(c *gin.Context, msg string) {
	if isHTMX(c) {
		c.Header("HX-Retarget", "#flash")
		c.Header("HX-Reswap", "innerHTML")
		c.HTML(http.StatusNotFound, "not-found", msg)
		return
	}
	data, err := s.pageData(s.currentState(c))
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusNotFound, msg)
		return
	}
	data.Error = msg
	c.HTML(http.StatusNotFound, "index.html", data)
}

func (s *Server) handleIndex(c *gin.Context) {
	st := s.currentState(c)
	s.recordView(c, st.Page)
	s.render(c, st)
}

func (s *Server) handleNavigate(c *gin.Context) {
	page, err := view.ParsePage(c.Param("page"))
	if err != nil {
		s.notFound(c, "That page does not exist.")
		return
	}
	st := s.transition(c, func(ctrl *view.Controller) { ctrl.NavigateTo(page) })
	s.recordView(c, page)
	s.afterTransition(c, st)
}

func (s *Server) handleToggleMenu(c *gin.Context) {
	st := s.transition(c, (*view.Controller).ToggleMenu)
	s.afterTransition(c, st)
}

func (s *Server) handleSelectCertificate(c *gin.Context) {
	cert, ok := s.lookupCertificate(c.Param("id"))
	if !ok {
		s.notFound(c, "That certificate does not exist.")
		return
	}
	st := s.transition(c, func(ctrl *view.Controller) { ctrl.SelectCertificate(cert) })
	s.afterTransition(c, st)
}

func (s *Server) lookupCertificate(raw string) (catalog.Certificate, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return catalog.Certificate{}, false
	}
	return s.catalog.Certificate(id)
}

func (s *Server) handleCloseCertificate(c *gin.Context) {
	st := s.transition(c, (*view.Controller).CloseCertificate)
	s.afterTransition(c, st)
}

func (s *Server) handleOutGitHub(c *gin.Context) {
	target := s.catalog.Profile.GitHub
	if target == "" {
		s.notFound(c, "No GitHub profile is configured.")
		return
	}
	s.recordClick(c, "github", target)
	c.Redirect(http.StatusFound, target)
}

func (s *Server) handleOutProject(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.notFound(c, "That project does not exist.")
		return
	}
	p, ok := s.catalog.Project(i)
	if !ok {
		s.notFound(c, "That project does not exist.")
		return
	}
	s.recordClick(c, "project:"+p.Name, p.Link)
	c.Redirect(http.StatusFound, p.Link)
}
