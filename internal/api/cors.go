package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// CORSConfig holds the header values served on every response.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       int
}

// DefaultCORSConfig permits any origin. The node serves LAN dashboards;
// the only cross-origin writes are the scan and update triggers, and
// those sit behind basic auth.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		MaxAge:       86400,
	}
}

// corsHeaders is a CORSConfig with the list values pre-joined.
type corsHeaders struct {
	origin  string
	methods string
	headers string
	maxAge  string
}

func (c CORSConfig) compile() corsHeaders {
	return corsHeaders{
		origin:  c.AllowOrigin,
		methods: strings.Join(c.AllowMethods, ", "),
		headers: strings.Join(c.AllowHeaders, ", "),
		maxAge:  strconv.Itoa(c.MaxAge),
	}
}

func (h corsHeaders) apply(set func(key, value string)) {
	set("Access-Control-Allow-Origin", h.origin)
	set("Access-Control-Allow-Methods", h.methods)
	set("Access-Control-Allow-Headers", h.headers)
	set("Access-Control-Max-Age", h.maxAge)
}

// NewCORSMiddleware decorates routed responses with CORS headers and
// short-circuits preflight requests with 204 No Content.
func NewCORSMiddleware(config CORSConfig) func(huma.Context, func(huma.Context)) {
	compiled := config.compile()

	return func(ctx huma.Context, next func(huma.Context)) {
		compiled.apply(ctx.SetHeader)

		if ctx.Method() == http.MethodOptions {
			ctx.SetStatus(http.StatusNoContent)
			return
		}

		next(ctx)
	}
}

// AddCORSHandler registers a preflight handler on the mux itself. Huma
// middleware never sees OPTIONS requests for paths it has no route for.
func AddCORSHandler(mux *http.ServeMux, config CORSConfig) {
	compiled := config.compile()

	mux.HandleFunc("OPTIONS /", func(w http.ResponseWriter, r *http.Request) {
		compiled.apply(w.Header().Set)
		w.WriteHeader(http.StatusNoContent)
	})
}
