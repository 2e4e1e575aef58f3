package http

import (
	"net"
	"net/http"

	"loan-advisor/metrics"
)

// RateLimitMiddleware rejects requests once a client's token bucket is
// empty. Clients are keyed by remote IP; if the remote address has no
// port the whole address is used as the key.
func RateLimitMiddleware(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.Allow(ip) {
			metrics.RateLimitRejections.Inc()
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
