package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/abrezinsky/luckydraw/internal/auth"
	"github.com/abrezinsky/luckydraw/internal/services"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Templates holds all parsed HTML templates
type Templates struct {
	Operator *template.Template
	Login    *template.Template
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// WebSocketServer upgrades /ws requests
type WebSocketServer interface {
	ServeWs(w http.ResponseWriter, r *http.Request)
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Draws        services.DrawServicer
	Settings     services.SettingsServicer
	Auth         *auth.Auth
	Hub          WebSocketServer
	Log          HTTPLogger
	Title        string
	templates    *Templates
	staticServer http.Handler
}

// New creates a new Handlers instance with all dependencies
func New(
	draws services.DrawServicer,
	settings services.SettingsServicer,
	templatesFS fs.FS,
	staticServer http.Handler,
	operatorAuth *auth.Auth,
	hub WebSocketServer,
	log HTTPLogger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		Draws:        draws,
		Settings:     settings,
		Auth:         operatorAuth,
		Hub:          hub,
		Log:          log,
		Title:        "Lucky Draw",
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Operator, err = template.ParseFS(templatesFS, "operator.html"); err != nil {
		return nil, fmt.Errorf("operator template: %w", err)
	}
	if t.Login, err = template.ParseFS(templatesFS, "login.html"); err != nil {
		return nil, fmt.Errorf("login template: %w", err)
	}
	return t, nil
}
