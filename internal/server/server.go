package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/weathall1/trafficpulse/internal/broadcast"
	"github.com/weathall1/trafficpulse/internal/config"
	"github.com/weathall1/trafficpulse/internal/store"
)

//go:embed templates
var templateFS embed.FS

type Server struct {
	echo          *echo.Echo
	config        *config.Config
	store         *store.Store
	hub           *broadcast.Hub
	limiter       *ConnectionLimiter
	upgrader      websocket.Upgrader
	indexTemplate *template.Template
	startTime     time.Time
}

func NewServer(cfg *config.Config, st *store.Store, hub *broadcast.Hub) (*Server, error) {
	indexTmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:    e,
		config:  cfg,
		store:   st,
		hub:     hub,
		limiter: NewConnectionLimiter(int64(cfg.MaxWebSocketConnections)),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     NewCheckOrigin(cfg.AppURL, cfg.IsDevelopment()),
		},
		indexTemplate: indexTmpl,
		startTime:     time.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
