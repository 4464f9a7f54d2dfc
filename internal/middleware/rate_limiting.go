package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"

	"github.com/habitflow/backend/internal/telemetry/metrics"
	"github.com/habitflow/backend/pkg"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// rateLimitKey buckets requests per route and per caller: the authenticated
// user when known, the client ip otherwise.
func rateLimitKey(routeName string, r *http.Request) string {
	if userID, ok := UserIDFromContext(r.Context()); ok {
		return fmt.Sprintf("%s::user::%d", routeName, userID)
	}
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		ip = "unknown"
	}
	return fmt.Sprintf("%s::ip::%s", routeName, ip)
}

func RateLimit(
	rateLimiter RequestRateLimiter,
	routeName string,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			res, err := rateLimiter.Allow(
				r.Context(),
				rateLimitKey(routeName, r),
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limiter [%s]: %s", routeName, err)
				pkg.WriteError(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			pkg.WriteError(
				w,
				fmt.Sprintf("too many requests, retry after %d seconds", retryAfter),
				http.StatusTooManyRequests,
			)
		})
	}
}
