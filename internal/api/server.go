package api

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/tyrius02/next-gen-vision/internal/api/models"
	"github.com/tyrius02/next-gen-vision/internal/devices"
	"github.com/tyrius02/next-gen-vision/internal/events"
	"github.com/tyrius02/next-gen-vision/internal/logging"
	"github.com/tyrius02/next-gen-vision/internal/updater"
	"github.com/tyrius02/next-gen-vision/internal/version"
)

// Server exposes the device registry over a Huma v2 REST API.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	options    *Options
	eventBus   *events.Bus
	logger     *slog.Logger
}

// Options configures the API server. Registry is required for the device
// endpoints; the other collaborators are optional and their routes are
// skipped when absent.
type Options struct {
	Registry          *devices.Registry
	UpdateService     updater.Service
	EventBus          *events.Bus
	AuthUsername      string
	AuthPassword      string
	PrometheusHandler http.Handler
}

// basicAuthMiddleware enforces HTTP basic auth on every operation that
// carries a security requirement. Credentials arrive in the Authorization
// header or, for SSE clients that cannot set headers, base64 encoded in
// an "auth" query parameter.
func (s *Server) basicAuthMiddleware(username, password string) func(huma.Context, func(huma.Context)) {
	expected := []byte(username + ":" + password)

	deny := func(ctx huma.Context, message string, errs ...error) {
		ctx.SetHeader("WWW-Authenticate", `Basic realm="Vision Node API"`)
		huma.WriteErr(s.api, ctx, http.StatusUnauthorized, message, errs...)
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		if op := ctx.Operation(); op != nil && len(op.Security) == 0 {
			next(ctx)
			return
		}

		encoded := ctx.Query("auth")
		if header := ctx.Header("Authorization"); header != "" {
			var isBasic bool
			if encoded, isBasic = strings.CutPrefix(header, "Basic "); !isBasic {
				deny(ctx, "Invalid authentication type")
				return
			}
		}
		if encoded == "" {
			deny(ctx, "Authentication required")
			return
		}

		credentials, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			deny(ctx, "Invalid credentials format", err)
			return
		}
		if !strings.Contains(string(credentials), ":") {
			deny(ctx, "Invalid credentials format")
			return
		}

		if subtle.ConstantTimeCompare(credentials, expected) != 1 {
			deny(ctx, "Invalid credentials")
			return
		}

		next(ctx)
	}
}

// NewServer creates the API server using Go 1.22+ native routing.
func NewServer(opts *Options) *Server {
	if opts == nil {
		opts = &Options{}
	}

	mux := http.NewServeMux()

	// Preflight requests are answered at the mux level, before Huma
	// routing or auth get involved.
	corsConfig := DefaultCORSConfig()
	AddCORSHandler(mux, corsConfig)

	config := huma.DefaultConfig("Vision Node API", "1.0.0")
	config.Info.Description = "Capability discovery API for V4L2 video devices"
	// Empty servers list makes OpenAPI use relative paths, working with any host
	config.Servers = []*huma.Server{}
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"basicAuth": {
			Type:   "http",
			Scheme: "basic",
		},
	}

	api := humago.New(mux, config)

	server := &Server{
		api:      api,
		mux:      mux,
		options:  opts,
		eventBus: opts.EventBus,
		logger:   logging.GetLogger("api"),
	}

	// Middleware order matters: CORS headers must reach even rejected
	// requests, and denied requests should still be logged.
	api.UseMiddleware(NewCORSMiddleware(corsConfig))
	api.UseMiddleware(HTTPLoggingMiddleware)
	if opts.AuthUsername != "" && opts.AuthPassword != "" {
		api.UseMiddleware(server.basicAuthMiddleware(opts.AuthUsername, opts.AuthPassword))
	}

	// Prometheus scrapers do not send credentials, so /metrics lives on
	// the mux outside the authenticated API.
	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()

	// The root carries nothing of its own, point visitors at the docs
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs", http.StatusTemporaryRedirect)
	})

	return server
}

// GetMux returns the underlying HTTP ServeMux for additional setup.
func (s *Server) GetMux() *http.ServeMux {
	return s.mux
}

// GetAPI returns the Huma API instance.
func (s *Server) GetAPI() huma.API {
	return s.api
}

// Start starts the HTTP server on the specified address and blocks until
// the server stops.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting Vision Node API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	return s.httpServer.ListenAndServe()
}

// Stop shuts down the server. SSE connections never drain on their own,
// so close immediately instead of waiting for a graceful shutdown.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")

	if s.httpServer != nil {
		return s.httpServer.Close()
	}

	return nil
}

// registerRoutes sets up all API endpoints. Health and version carry an
// empty security list so monitors can poll them without credentials.
func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
		Security:    []map[string][]string{},
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		return &models.HealthResponse{
			Body: models.HealthData{
				Status:  "ok",
				Message: "API is healthy",
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
		Security:    []map[string][]string{},
	}, func(ctx context.Context, input *struct{}) (*models.VersionResponse, error) {
		versionInfo := version.Get()
		return &models.VersionResponse{
			Body: models.VersionData{
				Version:   versionInfo.Version,
				GitCommit: versionInfo.GitCommit,
				BuildDate: versionInfo.BuildDate,
				BuildID:   versionInfo.BuildID,
				GoVersion: versionInfo.GoVersion,
				Compiler:  versionInfo.Compiler,
				Platform:  versionInfo.Platform,
			},
		}, nil
	})

	s.registerDeviceRoutes()
	s.registerLogRoutes()
	s.registerSSERoutes()
	s.registerUpdateRoutes()
}

// withAuth returns the security requirement for basic auth.
func withAuth() []map[string][]string {
	return []map[string][]string{
		{"basicAuth": {}},
	}
}
