package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"regexp"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/httpapi/utils"
)

// Replace anything of the form sessions/<uuid> with sessions/{sessionId}
var sessionPathRe = regexp.MustCompile(`sessions/[a-fA-F0-9-]+`)

func CanonicalPath(path string) string {
	return sessionPathRe.ReplaceAllString(path, "sessions/{sessionId}")
}

// ---------------------------
// Zerolog based middleware for logging HTTP requests
func ZeroLoggerMetrics(metrics *HttpMetrics, next http.Handler) http.Handler {
	handler := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("")
		if metrics != nil {
			hname := CanonicalPath(r.URL.Path)
			ssCode := strconv.Itoa(status)
			metrics.requestCount.WithLabelValues(ssCode, r.Method, hname).Inc()
			metrics.requestDuration.WithLabelValues(ssCode, r.Method, hname).Observe(duration.Seconds())
			metrics.responseSize.WithLabelValues(ssCode, r.Method, hname).Observe(float64(size))
		}
	})(next)
	handler = hlog.NewHandler(log.Logger)(handler)
	return handler
}

// ---------------------------

// ProxySecret only lets through requests carrying the secret a fronting proxy
// adds, an empty secret disables the check.
func ProxySecret(secret string, next http.Handler) http.Handler {
	if len(secret) == 0 {
		log.Warn().Msg("ProxySecretMiddleware is disabled")
		return next
	}
	want := []byte(secret)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := []byte(r.Header.Get("X-Proxy-Secret"))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			utils.Encode(w, http.StatusProxyAuthRequired, map[string]string{"error": "missing or wrong proxy secret"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from the remote address, addresses without one are
// returned as is.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// WhiteListIP restricts access to the listed client IPs, a single "*" allows
// everyone.
func WhiteListIP(whitelist []string, next http.Handler) http.Handler {
	if whitelist == nil || (len(whitelist) == 1 && whitelist[0] == "*") {
		log.Warn().Strs("whiteListIPs", whitelist).Msg("WhiteListIPMiddleware is disabled")
		return next
	}
	log.Debug().Strs("whiteListIPs", whitelist).Msg("WhiteListIPMiddleware")
	sorted := slices.Clone(whitelist)
	slices.Sort(sorted)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r.RemoteAddr)
		if _, found := slices.BinarySearch(sorted, ip); !found {
			hlog.FromRequest(r).Debug().Str("ip", ip).Msg("rejected by whitelist")
			utils.Encode(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Recover turns a panicking handler into a 500 json error.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).
					Str("method", r.Method).Str("path", CanonicalPath(r.URL.Path)).
					Bytes("stack", debug.Stack()).Msg("panic recovered")
				utils.Encode(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
