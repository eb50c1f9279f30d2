// Package server is the web frontend of the portfolio. It keeps one view
// controller per visitor and answers HTMX requests with the re-rendered app
// fragment after each transition.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Achutha2207/portfolio/internal/analytics"
	"github.com/Achutha2207/portfolio/internal/catalog"
	"github.com/Achutha2207/portfolio/internal/config"
	"github.com/Achutha2207/portfolio/internal/logging"
	"github.com/Achutha2207/portfolio/internal/session"
	"github.com/Achutha2207/portfolio/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server wires the catalog, the session store and analytics to a gin engine.
type Server struct {
	cfg        *config.Config
	catalog    *catalog.Catalog
	about      template.HTML
	sessions   *session.Store
	analytics  *analytics.Store
	log        *zap.Logger
	tmpl       *template.Template
	engine     *gin.Engine
	adminToken string
}

// New builds the server and its routes. analytics may be nil, in which case
// views and clicks are not recorded and the admin area reports an error.
func New(cfg *config.Config, c *catalog.Catalog, stats *analytics.Store, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	about, err := c.Profile.AboutHTML()
	if err != nil {
		return nil, err
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	token, err := analytics.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generating admin token: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		catalog:    c,
		about:      about,
		sessions:   session.NewStore(c, cfg.SessionTTL, log),
		analytics:  stats,
		log:        log,
		tmpl:       tmpl,
		adminToken: token,
	}
	s.engine = s.routes()
	return s, nil
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"telHref": func(phone string) string {
			return strings.Map(func(r rune) rune {
				if r == '+' || (r >= '0' && r <= '9') {
					return r
				}
				return -1
			}, phone)
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return tmpl, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Requests(s.log))
	r.SetHTMLTemplate(s.tmpl)

	r.Static("/images", s.cfg.ImagesDir)
	r.Static("/static", s.cfg.StaticDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})

	site := r.Group("/")
	site.Use(s.visitorTracking(), s.sessionMiddleware())
	site.GET("/", s.handleIndex)
	site.POST("/nav/:page", s.handleNavigate)
	site.POST("/menu/toggle", s.handleToggleMenu)
	site.POST("/modal/close", s.handleCloseCertificate)
	site.POST("/certificates/:id", s.handleSelectCertificate)
	site.GET("/out/github", s.handleOutGitHub)
	site.GET("/out/project/:index", s.handleOutProject)

	s.setupAdminRoutes(r)
	return r
}

// Handler exposes the gin engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves HTTP until ctx is cancelled, then shuts down gracefully. The
// session sweeper and the analytics retention cleanup run alongside.
func (s *Server) Run(ctx context.Context) error {
	go s.sessions.Run(ctx, s.cfg.SweepInterval)
	if s.analytics != nil {
		go s.cleanupVisitorData(ctx)
	}

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("portfolio listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info("portfolio stopped")
	return nil
}

// cleanupVisitorData applies the retention window now and once a day after.
func (s *Server) cleanupVisitorData(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		n, err := s.analytics.Cleanup(ctx, s.cfg.VisitorRetention)
		if err != nil {
			s.log.Error("privacy cleanup failed", zap.Error(err))
		} else if n > 0 {
			s.log.Info("privacy cleanup removed old views", zap.Int64("count", n))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pageTemplates maps each page to the template that renders its content.
var pageTemplates = map[view.Page]string{
	view.Home:         "page-home",
	view.Projects:     "page-projects",
	view.Resume:       "page-resume",
	view.Certificates: "page-certificates",
	view.Contact:      "page-contact",
}

// contentTemplate returns the template for p, falling back to the home page.
func contentTemplate(p view.Page) string {
	if name, ok := pageTemplates[p]; ok {
		return name
	}
	return pageTemplates[view.Home]
}

type navItem struct {
	Name   string
	Label  string
	Active bool
}

type pageData struct {
	State        view.State
	Nav          []navItem
	Profile      catalog.Profile
	About        template.HTML
	Projects     []catalog.Project
	Certificates []catalog.Certificate
	Main         template.HTML
	Error        string
}

func (s *Server) pageData(st view.State) (*pageData, error) {
	data := &pageData{
		State:        st,
		Profile:      s.catalog.Profile,
		About:        s.about,
		Projects:     s.catalog.Projects,
		Certificates: s.catalog.Certificates,
	}
	for _, p := range view.Pages() {
		data.Nav = append(data.Nav, navItem{Name: p.String(), Label: p.Label(), Active: p == st.Page})
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, contentTemplate(st.Page), data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", st.Page, err)
	}
	data.Main = template.HTML(buf.String())
	return data, nil
}
