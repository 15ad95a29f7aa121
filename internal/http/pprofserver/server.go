package pprofserver

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config stores debug server settings. Remote callers need User and Pass;
// loopback callers are let through.
type Config struct {
	Addr string
	User string
	Pass string
}

// New returns the debug server listening on cfg.Addr.
func New(cfg Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Handler serves runtime profiles and expvars under /debug.
func Handler(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(guard(cfg))
	r.Mount("/debug", middleware.Profiler())
	return r
}

func guard(cfg Config) func(http.Handler) http.Handler {
	basic := middleware.BasicAuth("pprof", map[string]string{cfg.User: cfg.Pass})
	return func(next http.Handler) http.Handler {
		authed := basic(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case isLoopback(r.RemoteAddr):
				next.ServeHTTP(w, r)
			case cfg.User == "" || cfg.Pass == "":
				w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			default:
				authed.ServeHTTP(w, r)
			}
		})
	}
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
