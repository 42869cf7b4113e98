package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/xmarks/internal/archiver"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/storage"
	"github.com/MrSnakeDoc/xmarks/internal/syncer"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time   // for testing, defaults to time.Now
	AllowedHosts   []string           // Host headers allowed to access the server (empty = any)
	AllowedCIDRS   []string           // IPs allowed to access the API (empty = any)
	TrustProxy     bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Store          storage.Store      // bookmark collection + archive ledger persistence
	Syncer         *syncer.Syncer     // sync orchestrator
	Archiver       *archiver.Archiver // archive orchestrator
	StoreBackend   string             // "file" or "redis", for status reporting
	RedisClient    *redis.Client      // nil unless the redis backend is active
	SyncRateBurst  int                // rate limit on POST /api/sync
	SyncRatePerMin int
}
