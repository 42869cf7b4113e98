package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/xmarks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/xmarks/internal/httpserver/mw"
)

func init() { Register(registerSync) }

// A sync shells out to the bird CLI, so it gets its own rate limit on
// top of the shared access guards.
func registerSync(r chi.Router, d deps.Deps) {
	r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.SyncRateBurst,
			RefillPerIPPerMin: d.SyncRatePerMin,
			TrustProxy:        d.TrustProxy,
		}),
	).Post("/api/sync", handlers.Sync(d))
}
