package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/luckydraw/internal/auth"
	"github.com/abrezinsky/luckydraw/internal/config"
	"github.com/abrezinsky/luckydraw/internal/draw"
	"github.com/abrezinsky/luckydraw/internal/handlers"
	"github.com/abrezinsky/luckydraw/internal/logger"
	"github.com/abrezinsky/luckydraw/internal/repository"
	"github.com/abrezinsky/luckydraw/internal/services"
	"github.com/abrezinsky/luckydraw/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	repo     *repository.Repository
	session  *draw.Session
	draws    *services.DrawService
	settings *services.SettingsService
	hub      *websocket.Hub

	mu     sync.Mutex
	server *http.Server
	closed bool
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg config.Config, templatesFS, staticFS fs.FS, operatorAuth *auth.Auth) (*App, error) {
	session, err := draw.NewSession(draw.Config{
		SourceDir:   cfg.SourceDir,
		WinnersRoot: cfg.WinnersRoot,
		Categories:  cfg.Categories,
		Skip:        cfg.Skip,
		Cooldown:    cfg.Cooldown,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid draw configuration: %w", err)
	}

	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// Initialize services
	drawService := services.NewDrawService(log, repo, session)
	settingsService := services.NewSettingsService(log, repo)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, drawService)
	hub.Start()
	drawService.SetBroadcaster(hub)

	staticServer := handlers.NewStaticServer(staticFS)

	h, err := handlers.New(
		drawService,
		settingsService,
		templatesFS,
		staticServer,
		operatorAuth,
		hub,
		log,
	)
	if err != nil {
		hub.Stop()
		repo.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		log:      log,
		handlers: h,
		repo:     repo,
		session:  session,
		draws:    drawService,
		settings: settingsService,
		hub:      hub,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Draws exposes the draw service to other front ends such as the keyboard
func (a *App) Draws() services.DrawServicer {
	return a.draws
}

// BaseURL returns the configured operator URL, or a localhost URL for addr
func (a *App) BaseURL(addr string) string {
	if u, err := a.settings.GetBaseURL(context.Background()); err == nil && u != "" {
		return u
	}
	return "http://localhost" + addr
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	a.mu.Lock()
	server := a.server
	a.closed = true
	a.mu.Unlock()
	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.log.Warn("HTTP server shutdown failed", "error", err)
		}
	}
	if a.hub != nil {
		a.hub.Stop()
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
	}
}

// Run starts the HTTP server and blocks until it stops
func (a *App) Run(addr string) error {
	// Set default base URL if not configured, using detected LAN IP
	ip := getPreferredIP(realNetworkProvider{})
	baseURL := fmt.Sprintf("http://%s%s", ip, addr)
	a.setDefaultBaseURL(baseURL)

	a.log.Info("Server starting", "url", baseURL)
	server := &http.Server{Addr: addr, Handler: a.Router()}
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.server = server
	a.mu.Unlock()

	err := server.ListenAndServe()
	if stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// setDefaultBaseURL sets the base URL setting if not already configured
// or if current value uses localhost (which isn't useful for QR codes)
func (a *App) setDefaultBaseURL(baseURL string) {
	ctx := context.Background()
	existing, _ := a.settings.GetBaseURL(ctx)

	needsUpdate := existing == "" || strings.Contains(existing, "localhost")
	if needsUpdate {
		if err := a.settings.SetBaseURL(ctx, baseURL); err != nil {
			a.log.Warn("Failed to set default base_url", "error", err)
		} else {
			a.log.Info("Default base URL set", "url", baseURL)
		}
	}
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IP address for LAN access.
// Prefers private network addresses (192.168.x.x, 10.x.x.x, 172.16-31.x.x).
// Falls back to localhost if no suitable address is found.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP

	for _, iface := range ifaces {
		// Skip down, loopback, and point-to-point interfaces
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			// Only consider IPv4 addresses
			if ip == nil || ip.To4() == nil {
				continue
			}

			// Skip loopback
			if ip.IsLoopback() {
				continue
			}

			candidates = append(candidates, ip)
		}
	}

	// Prefer private network addresses
	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	// Fall back to any non-loopback if no private address found
	if len(candidates) > 0 {
		return candidates[0].String()
	}

	return "localhost"
}

// isPrivate172 checks if IP is in 172.16.0.0/12 range
func isPrivate172(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		return ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31
	}
	return false
}
