package deps

import (
	"time"

	"github.com/MrSnakeDoc/marque/internal/domain"
	"github.com/MrSnakeDoc/marque/internal/index"
	"github.com/MrSnakeDoc/marque/internal/logger"
	redisstore "github.com/MrSnakeDoc/marque/internal/store/redis"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // IPs allowed to access operational endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)

	RedisClient *redis.Client      // Redis client connection
	Store       *redisstore.Store  // Bookmark persistence + duplicate verdict cache
	MemoryIndex *index.MemoryIndex // In-memory bookmark corpus

	Detector *domain.DuplicateDetector // URL duplicate detection
	Scorer   *domain.SimilarityScorer  // Content similarity scoring

	SearchLimit  int // default max results for search
	SimilarLimit int // default max results for similarity lookups

	RateLimitBurst  int // token bucket capacity per client IP
	RateLimitPerMin int // bucket refill per minute

	ReloadTrigger chan struct{} // Channel to trigger manual corpus reload
}
