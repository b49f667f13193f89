// Package kernel assembles the HTTP handler: global middleware, the API
// routes, the public file server of the local storage disk and JSON
// fallbacks for unknown routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/bilemo/api/app/routes"
	"github.com/bilemo/api/config"
	"github.com/bilemo/api/pkg/metrics"
	"github.com/bilemo/api/pkg/middleware"
	"github.com/bilemo/api/pkg/reqid"
	"github.com/bilemo/api/pkg/response"
	"github.com/bilemo/api/pkg/router"
	"github.com/bilemo/api/pkg/storage"
)

// HTTPKernel owns the router of the running application.
type HTTPKernel struct {
	router  *router.Router
	limiter *middleware.RateLimiter
}

// Options tune the kernel; the zero value reads everything from config.
type Options struct {
	// RateLimit is requests per minute per client IP; 0 reads RATE_LIMIT,
	// a negative value disables limiting.
	RateLimit int
	// Disk is served under /storage when it is a local disk.
	Disk storage.Disk
}

// NewHTTPKernel mounts app on a new router. Middleware order, outermost
// first: metrics, recovery, request id, access log, CORS, rate limit.
// An invalid TRUSTED_PROXIES entry is an error.
func NewHTTPKernel(app *routes.App, opts Options) (*HTTPKernel, error) {
	limit := opts.RateLimit
	if limit == 0 {
		limit = config.RateLimit()
	}
	if err := middleware.TrustProxies(config.TrustedProxies()); err != nil {
		return nil, err
	}
	k := &HTTPKernel{}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	if limit > 0 {
		k.limiter = middleware.NewRateLimiter(limit, time.Minute)
		r.Use(k.limiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	routes.RegisterAPI(r, app)

	if local, ok := opts.Disk.(*storage.LocalDisk); ok {
		files := http.StripPrefix("/storage/", http.FileServer(http.Dir(local.Root())))
		r.Get("/storage/*", "storage", files.ServeHTTP)
	}

	k.router = r
	return k, nil
}

// Close stops the background work of the middleware.
func (k *HTTPKernel) Close() {
	if k.limiter != nil {
		k.limiter.Close()
	}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Routes lists the mounted endpoints.
func (k *HTTPKernel) Routes() []router.Route {
	return k.router.Routes()
}
