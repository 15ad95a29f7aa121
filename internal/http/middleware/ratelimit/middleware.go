package ratelimit

import (
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"marketplace-dispatch/internal/logx"
)

// PartnerHeader identifies the calling delivery partner. Polling partners are
// limited per partner rather than per address.
const PartnerHeader = "X-Partner-ID"

const tooManyRequestsBody = `{"error":"too many requests"}`

// KeysFunc maps a request to the buckets it is charged against, checked in
// order. The first bucket that refuses rejects the request.
type KeysFunc func(*http.Request) []string

// Middleware отклоняет запросы сверх лимита ключа
type Middleware struct {
	logger  logx.Logger
	denied  prometheus.Counter
	limiter Limiter
	keys    KeysFunc
}

// New builds the middleware. A nil limiter lets everything through.
func New(logger logx.Logger, denied prometheus.Counter, limiter Limiter) *Middleware {
	if limiter == nil {
		limiter = Unlimited{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Middleware{
		logger:  logger,
		denied:  denied,
		limiter: limiter,
		keys:    PeerThenPartner,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, key := range m.keys(r) {
				if !m.limiter.Allow(key) {
					m.reject(w, r, key)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, key string) {
	if m.denied != nil {
		m.denied.Inc()
	}
	m.logger.Warn("rate limit exceeded",
		logx.String("key", key),
		logx.String("method", r.Method),
		logx.String("path", r.URL.Path),
	)

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)
	if _, err := io.WriteString(w, tooManyRequestsBody); err != nil {
		m.logger.Debug("rate limit response write failed", logx.String("key", key), logx.Err(err))
	}
}

// PeerThenPartner charges every request to its peer address and, when a valid
// X-Partner-ID header is present, to that partner as well. The header is not
// authenticated, so rotating it never buys more than the address's own budget.
func PeerThenPartner(r *http.Request) []string {
	keys := []string{"ip:" + peerHost(r.RemoteAddr)}
	if id, ok := partnerID(r.Header.Get(PartnerHeader)); ok {
		keys = append(keys, "partner:"+strconv.FormatInt(id, 10))
	}
	return keys
}

func partnerID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func peerHost(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
		return host
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return "unknown"
}
