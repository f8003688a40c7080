package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"doegen/app"
	"doegen/internal"
	"doegen/internal/api"
	"doegen/internal/config"
	"doegen/internal/container"
	"doegen/ports"
	"doegen/ui/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates static help.md
var embeddedFiles embed.FS

// Server represents the web server for the design table forms
type Server struct {
	router    *gin.Engine
	templates *template.Template
	help      template.HTML

	design    *app.DesignService
	exporters map[string]ports.TableExporter
	pairplot  ports.MatrixPlotter
	chart     ports.MatrixPlotter
	api       http.Handler

	limits  config.LHSConfig
	preview int
	logger  *internal.Logger
}

// NewServer creates a web server wired to the container's services
func NewServer(c *container.Container) (*Server, error) {
	s := &Server{
		router:    gin.Default(),
		design:    c.DesignService,
		exporters: c.Exporters,
		pairplot:  c.PairPlotter,
		chart:     c.EChartsPlotter,
		api:       api.NewRouter(api.NewHandler(c.DesignService, c.Config.LHS.DefaultSamples), c.Config.Server.CORSOrigins),
		limits:    c.Config.LHS,
		preview:   c.Config.Output.PreviewRows,
		logger:    internal.DefaultLogger.With("UI"),
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	help, err := renderHelp(embeddedFiles)
	if err != nil {
		return nil, err
	}
	s.help = help

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"add":  func(a, b int) int { return a + b },
		"join": strings.Join,
		"num": func(v float64) string {
			return strconv.FormatFloat(v, 'g', 5, 64)
		},
		"corr": func(v float64) string {
			return fmt.Sprintf("%+.3f", v)
		},
	}

	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	files, err := fs.Glob(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to glob templates: %w", err)
	}

	s.templates = template.New("").Funcs(funcMap)
	for _, file := range files {
		content, err := fs.ReadFile(templatesFS, file)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", file, err)
		}
		if _, err := s.templates.New(file).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", file, err)
		}
	}
	log.Printf("[TemplateInit] Parsed %d template files: %v", len(files), files)
	return nil
}

// setupMiddleware configures Gin middleware and static assets
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[setupMiddleware] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	pages := s.router.Group("/", middleware.NoStore())
	pages.GET("/doe", s.handleDOE)
	pages.POST("/doe", s.handleDOE)
	pages.GET("/doe/download", s.handleDOEDownload)

	pages.GET("/lhs", s.handleLHS)
	pages.POST("/lhs", s.handleLHS)
	pages.GET("/lhs/download", s.handleLHSDownload)
	pages.GET("/lhs/pairplot.png", s.handlePairPlot)
	pages.GET("/lhs/chart", s.handleChart)

	s.router.Any(api.Prefix+"/*path", gin.WrapH(s.api))
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting doegen UI on http://%s", addr)
	return s.router.Run(addr)
}
