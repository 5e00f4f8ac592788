package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"engagegov/internal/platform/config"
	"engagegov/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware chain for the API host
// reads API_CORS_ORIGINS, API_REQUEST_TIMEOUT, API_SLOW_REQUEST and API_MAX_INFLIGHT
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{
			Slow: cfg.MayDuration("API_SLOW_REQUEST", 2*time.Second),
		}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("API_CORS_ORIGINS", nil),
		}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
	}
	if n := cfg.MayInt("API_MAX_INFLIGHT", 0); n > 0 {
		stack = append(stack, middleware.Throttle(n))
	}
	// upstream probing can walk several candidates, keep this above the fetch budget
	return append(stack, middleware.Timeout(cfg.MayDuration("API_REQUEST_TIMEOUT", 45*time.Second)))
}
